// Package catalog owns the static archetype tables the map authority
// consults on every placement: per-block-name footprint/clip geometry
// (loaded once from embedded JSON, mirroring the original client/server's
// compiled-in block database) and the set of valid item model ids.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"mapedit/internal/geom"
)

//go:embed data/block_infos.json
var blockInfosJSON []byte

//go:embed data/item_model_ids.json
var itemModelIDsJSON []byte

// BlockUnitInfo is one occupied cell of a block variant's footprint,
// expressed in the block's own unrotated local frame.
type BlockUnitInfo struct {
	Offset geom.Vec3U8 `json:"offset"`
	Clips  UnitClips   `json:"clips"`
}

// BlockInfoVariant is one concrete footprint a block name can take: its
// local bounding extent and the list of cells it occupies.
type BlockInfoVariant struct {
	Extent geom.Vec3U8     `json:"extent"`
	Units  []BlockUnitInfo `json:"units"`
}

// BlockInfo is every variant a block archetype offers, split the way the
// editor splits them: the variants available when the block sits on the
// ground, and the variants available floating in the air.
type BlockInfo struct {
	VariantsGround []BlockInfoVariant `json:"variants_ground"`
	VariantsAir    []BlockInfoVariant `json:"variants_air"`
}

// Variant looks up the variant at index for the ground/air flavour
// selected by isGround. ok is false if the archetype, flavour, or index
// doesn't exist.
func (b BlockInfo) Variant(isGround bool, index int) (BlockInfoVariant, bool) {
	list := b.VariantsAir
	if isGround {
		list = b.VariantsGround
	}
	if index < 0 || index >= len(list) {
		return BlockInfoVariant{}, false
	}
	return list[index], true
}

// Catalog is the immutable, process-wide set of known block archetypes and
// item model ids. The zero value is never valid; use Load.
type Catalog struct {
	blocks       map[string]BlockInfo
	itemModelIDs map[string]struct{}
}

// Load parses the embedded archetype tables. It only fails if the embedded
// JSON itself is malformed, which would be a build-time bug rather than a
// runtime condition.
func Load() (*Catalog, error) {
	var blocks map[string]BlockInfo
	if err := json.Unmarshal(blockInfosJSON, &blocks); err != nil {
		return nil, fmt.Errorf("catalog: parsing block infos: %w", err)
	}

	var itemIDs []string
	if err := json.Unmarshal(itemModelIDsJSON, &itemIDs); err != nil {
		return nil, fmt.Errorf("catalog: parsing item model ids: %w", err)
	}
	idSet := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		idSet[id] = struct{}{}
	}

	return &Catalog{blocks: blocks, itemModelIDs: idSet}, nil
}

// MustLoad is Load, panicking on error. Intended for process startup and
// tests, where a malformed embedded table is unrecoverable.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Block looks up an archetype by name.
func (c *Catalog) Block(name string) (BlockInfo, bool) {
	b, ok := c.blocks[name]
	return b, ok
}

// IsItemModel reports whether id names a known item model.
func (c *Catalog) IsItemModel(id string) bool {
	_, ok := c.itemModelIDs[id]
	return ok
}
