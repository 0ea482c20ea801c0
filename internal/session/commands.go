package session

import (
	"encoding/json"
	"fmt"
)

// ClientCommand is a decoded client-to-server frame: a single-key tagged
// object whose value is the JSON-encoded entity the command carries
// verbatim, e.g. {"PlaceBlock":"{\"model\":...}"}.
type ClientCommand struct {
	Kind    string
	Payload string
}

// UnmarshalJSON parses the externally-tagged single-key object into Kind
// and Payload.
func (c *ClientCommand) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("session: malformed client command: %w", err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("session: client command must have exactly one key, got %d", len(raw))
	}
	for k, v := range raw {
		c.Kind = k
		c.Payload = v
	}
	return nil
}

// Recognised client command kinds.
const (
	KindPlaceBlock       = "PlaceBlock"
	KindRemoveBlock      = "RemoveBlock"
	KindPlaceGhostBlock  = "PlaceGhostBlock"
	KindRemoveGhostBlock = "RemoveGhostBlock"
	KindPlaceFreeBlock   = "PlaceFreeBlock"
	KindRemoveFreeBlock  = "RemoveFreeBlock"
	KindPlaceItem        = "PlaceItem"
	KindRemoveItem       = "RemoveItem"
)

func marshalTagged(tag string, inner any) ([]byte, error) {
	return json.Marshal(map[string]any{tag: inner})
}

// serverPlaceBlock and serverRemoveBlock re-broadcast the received entity
// JSON verbatim, as a string value (matching the wire protocol's
// String-payload commands): the server must not reparse the payload,
// only re-escape it into the outer frame, so later clients see exactly
// the bytes the placing client sent.
func serverPlaceBlock(entityJSON string) ([]byte, error) {
	return marshalTagged(KindPlaceBlock, entityJSON)
}

func serverRemoveBlock(entityJSON string) ([]byte, error) {
	return marshalTagged(KindRemoveBlock, entityJSON)
}

func serverSetGhostBlockCount(blockJSON string, count int) ([]byte, error) {
	return marshalTagged("SetGhostBlockCount", struct {
		BlockJSON string `json:"block_json"`
		Count     uint64 `json:"count"`
	}{blockJSON, uint64(count)})
}

func serverSetFreeBlockCount(freeBlockJSON string, count int) ([]byte, error) {
	return marshalTagged("SetFreeBlockCount", struct {
		FreeBlockJSON string `json:"free_block_json"`
		Count         uint64 `json:"count"`
	}{freeBlockJSON, uint64(count)})
}

func serverSetItemCount(itemJSON string, count int) ([]byte, error) {
	return marshalTagged("SetItemCount", struct {
		ItemJSON string `json:"item_json"`
		Count    uint64 `json:"count"`
	}{itemJSON, uint64(count)})
}
