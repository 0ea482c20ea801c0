package catalog

import (
	"encoding/json"
	"fmt"

	"mapedit/internal/geom"
)

// ClipDescriptor is a directional compatibility descriptor attached to one
// face of a block unit. It determines whether a neighbour unit may abut
// that face.
type ClipDescriptor struct {
	kind clipKind
	id   string
	asym string
}

type clipKind uint8

const (
	clipNonExclusive clipKind = iota
	clipExclusiveSymmetric
	clipExclusiveAsymmetric
)

// NonExclusive is compatible with another NonExclusive clip; against an
// exclusive clip of either kind it conflicts (see Clips).
func NonExclusive() ClipDescriptor {
	return ClipDescriptor{kind: clipNonExclusive}
}

// ExclusiveSymmetric blocks a neighbour unless it carries the same
// symmetric id.
func ExclusiveSymmetric(id string) ClipDescriptor {
	return ClipDescriptor{kind: clipExclusiveSymmetric, id: id}
}

// ExclusiveAsymmetric blocks a neighbour unless the neighbour's id/asym
// pair is the mirror image of this one.
func ExclusiveAsymmetric(id, asym string) ClipDescriptor {
	return ClipDescriptor{kind: clipExclusiveAsymmetric, id: id, asym: asym}
}

// Clips reports whether self conflicts with (blocks) other. false means the
// two faces are compatible.
func (c ClipDescriptor) Clips(other ClipDescriptor) bool {
	switch {
	case c.kind == clipNonExclusive && other.kind == clipNonExclusive:
		return false
	case c.kind == clipExclusiveSymmetric && other.kind == clipExclusiveSymmetric:
		return c.id != other.id
	case c.kind == clipExclusiveAsymmetric && other.kind == clipExclusiveAsymmetric:
		return c.id != other.asym || c.asym != other.id
	default:
		return true
	}
}

type clipJSON struct {
	Type       string `json:"type"`
	ID         string `json:"id,omitempty"`
	AsymClipID string `json:"asym_clip_id,omitempty"`
}

// MarshalJSON renders the clip as a tagged object, e.g.
// {"type":"exclusive_symmetric","id":"A"}.
func (c ClipDescriptor) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case clipNonExclusive:
		return json.Marshal(clipJSON{Type: "non_exclusive"})
	case clipExclusiveSymmetric:
		return json.Marshal(clipJSON{Type: "exclusive_symmetric", ID: c.id})
	case clipExclusiveAsymmetric:
		return json.Marshal(clipJSON{Type: "exclusive_asymmetric", ID: c.id, AsymClipID: c.asym})
	default:
		return nil, fmt.Errorf("catalog: unknown clip kind %d", c.kind)
	}
}

// UnmarshalJSON parses a tagged clip object.
func (c *ClipDescriptor) UnmarshalJSON(data []byte) error {
	var raw clipJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case "non_exclusive":
		*c = NonExclusive()
	case "exclusive_symmetric":
		*c = ExclusiveSymmetric(raw.ID)
	case "exclusive_asymmetric":
		*c = ExclusiveAsymmetric(raw.ID, raw.AsymClipID)
	default:
		return fmt.Errorf("catalog: unknown clip type %q", raw.Type)
	}
	return nil
}

// UnitClips holds up to four optional clip descriptors, one per cardinal
// direction, attached to a single occupied cell.
type UnitClips struct {
	North *ClipDescriptor `json:"clip_north,omitempty"`
	East  *ClipDescriptor `json:"clip_east,omitempty"`
	South *ClipDescriptor `json:"clip_south,omitempty"`
	West  *ClipDescriptor `json:"clip_west,omitempty"`
}

// Clip returns the descriptor stored for dir, or nil if that face carries
// no clip at all.
func (u UnitClips) Clip(dir geom.Direction) *ClipDescriptor {
	switch dir {
	case geom.North:
		return u.North
	case geom.East:
		return u.East
	case geom.South:
		return u.South
	case geom.West:
		return u.West
	default:
		return nil
	}
}

// RotatedBy returns a new UnitClips with entries rotated by dir: the
// returned entry at world direction d is this unit's local clip at
// direction d-dir, matching how a placed block's footprint exposes its
// local clips to the world once rotated.
func (u UnitClips) RotatedBy(dir geom.Direction) UnitClips {
	sub := func(d geom.Direction) geom.Direction {
		// d - dir, computed mod 4 without relying on unsigned underflow.
		return geom.Direction((int(d) - int(dir) + 4) % 4)
	}
	return UnitClips{
		North: u.Clip(sub(geom.North)),
		East:  u.Clip(sub(geom.East)),
		South: u.Clip(sub(geom.South)),
		West:  u.Clip(sub(geom.West)),
	}
}
