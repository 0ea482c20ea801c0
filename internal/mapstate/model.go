// Package mapstate implements the map state authority: the occupied-cell
// index, the four tracked collections (solid blocks, ghost blocks, free
// blocks, items), and the placement/removal operations that enforce
// footprint and clip-compatibility invariants.
package mapstate

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// ModelRef names either a built-in game archetype by id, or a custom model
// embedded in the originating map file, addressed by the SHA-256 of its
// raw bytes.
type ModelRef struct {
	kind modelRefKind
	id   string
	hash [32]byte
}

type modelRefKind uint8

const (
	modelRefID modelRefKind = iota
	modelRefHash
)

// ModelID builds a reference to a built-in archetype.
func ModelID(id string) ModelRef {
	return ModelRef{kind: modelRefID, id: id}
}

// ModelHash builds a reference to an embedded custom model.
func ModelHash(hash [32]byte) ModelRef {
	return ModelRef{kind: modelRefHash, hash: hash}
}

// ArchetypeID returns (s.id, true) for an Id reference, or ("", false) for
// a Hash reference.
func (m ModelRef) ArchetypeID() (string, bool) {
	if m.kind != modelRefID {
		return "", false
	}
	return m.id, true
}

// Hash returns (the hash, true) for a Hash reference, or (zero, false)
// for an Id reference.
func (m ModelRef) Hash() ([32]byte, bool) {
	if m.kind != modelRefHash {
		return [32]byte{}, false
	}
	return m.hash, true
}

type modelRefJSON struct {
	ID   *string `json:"Id,omitempty"`
	Hash *string `json:"Hash,omitempty"`
}

// MarshalJSON renders the reference as an externally-tagged single-key
// object, e.g. {"Id":"PlatformBase"} or {"Hash":"base64..."}.
func (m ModelRef) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case modelRefID:
		return json.Marshal(modelRefJSON{ID: &m.id})
	case modelRefHash:
		enc := base64.StdEncoding.EncodeToString(m.hash[:])
		return json.Marshal(modelRefJSON{Hash: &enc})
	default:
		return nil, fmt.Errorf("mapstate: unknown model ref kind %d", m.kind)
	}
}

// UnmarshalJSON parses an externally-tagged reference object.
func (m *ModelRef) UnmarshalJSON(data []byte) error {
	var raw modelRefJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.ID != nil:
		*m = ModelID(*raw.ID)
	case raw.Hash != nil:
		decoded, err := base64.StdEncoding.DecodeString(*raw.Hash)
		if err != nil {
			return fmt.Errorf("mapstate: decoding model hash: %w", err)
		}
		if len(decoded) != 32 {
			return fmt.Errorf("mapstate: model hash must be 32 bytes, got %d", len(decoded))
		}
		var h [32]byte
		copy(h[:], decoded)
		*m = ModelHash(h)
	default:
		return fmt.Errorf("mapstate: model ref has neither Id nor Hash")
	}
	return nil
}

// Color is an RGB triple, comparable so it can participate in Block's
// hash/equality tuple.
type Color struct {
	R, G, B uint8
}

// EmbeddedBlock is a custom block bundled in a map file: its raw bytes
// plus the built-in archetype whose geometry it imitates.
type EmbeddedBlock struct {
	ArchetypeID string
	Bytes       []byte
}
