package mapstate

import (
	"mapedit/internal/catalog"
	"mapedit/internal/geom"
	"mapedit/internal/multiset"
)

// PlaceBlockError distinguishes the two ways place_block can reject a
// solid-block placement; the session uses this to decide how to respond
// to the originating client.
type PlaceBlockError uint8

const (
	// Failed covers unknown model, out-of-bounds, clip conflict, or an
	// out-of-range variant index: anything that isn't a simple occupancy
	// collision.
	Failed PlaceBlockError = iota
	// Occupied means one or more target cells already hold a solid
	// block; distinct from Failed because the session treats it as
	// silent (the client is just looking at a stale world).
	Occupied
)

func (e PlaceBlockError) Error() string {
	switch e {
	case Failed:
		return "mapstate: placement failed"
	case Occupied:
		return "mapstate: target cell already occupied"
	default:
		return "mapstate: unknown placement error"
	}
}

// Map is the map state authority: the occupied-unit index, the solid
// block set, the three count-tracked collections, and the embedded
// model registries. The zero value is not valid; use New.
type Map struct {
	size geom.Vec3U8
	cat  *catalog.Catalog

	blocks map[Block]struct{}
	units  map[geom.Vec3U8]catalog.UnitClips

	ghostBlocks multiset.Multiset[Block]
	freeBlocks  multiset.Multiset[FreeBlock]
	items       multiset.Multiset[Item]

	embeddedBlocks map[[32]byte]EmbeddedBlock
	embeddedItems  map[[32]byte][]byte
}

// New creates an empty map state of the given size, backed by cat for
// archetype and item-model lookups.
func New(size geom.Vec3U8, cat *catalog.Catalog) *Map {
	return &Map{
		size:           size,
		cat:            cat,
		blocks:         make(map[Block]struct{}),
		units:          make(map[geom.Vec3U8]catalog.UnitClips),
		embeddedBlocks: make(map[[32]byte]EmbeddedBlock),
		embeddedItems:  make(map[[32]byte][]byte),
	}
}

// Size returns the map's fixed grid size.
func (m *Map) Size() geom.Vec3U8 { return m.size }

// RegisterEmbeddedBlock records a custom block extracted from a map
// file's embedded archive, keyed by the SHA-256 of its raw bytes.
func (m *Map) RegisterEmbeddedBlock(hash [32]byte, b EmbeddedBlock) {
	m.embeddedBlocks[hash] = b
}

// RegisterEmbeddedItem records a custom item's raw bytes, keyed by hash.
func (m *Map) RegisterEmbeddedItem(hash [32]byte, bytes []byte) {
	m.embeddedItems[hash] = bytes
}

// EmbeddedBlock looks up a previously-registered custom block by hash.
func (m *Map) EmbeddedBlock(hash [32]byte) (EmbeddedBlock, bool) {
	b, ok := m.embeddedBlocks[hash]
	return b, ok
}

// resolveArchetypeID resolves a ModelRef to the catalog archetype id it
// names, following the embedded-model registry for custom blocks.
func (m *Map) resolveArchetypeID(model ModelRef) (string, bool) {
	if id, ok := model.ArchetypeID(); ok {
		return id, true
	}
	hash, ok := model.Hash()
	if !ok {
		return "", false
	}
	eb, ok := m.embeddedBlocks[hash]
	if !ok {
		return "", false
	}
	return eb.ArchetypeID, true
}

// resolveVariant resolves (model, isGround, variantIndex) to a concrete
// footprint, or false if the model, archetype, or variant index don't
// exist.
func (m *Map) resolveVariant(model ModelRef, isGround bool, variantIndex uint8) (catalog.BlockInfoVariant, bool) {
	archetypeID, ok := m.resolveArchetypeID(model)
	if !ok {
		return catalog.BlockInfoVariant{}, false
	}
	info, ok := m.cat.Block(archetypeID)
	if !ok {
		return catalog.BlockInfoVariant{}, false
	}
	return info.Variant(isGround, int(variantIndex))
}

// footprintCells computes the world cells b's footprint occupies, given
// variant, without any bounds or occupancy checking.
func footprintCells(b Block, variant catalog.BlockInfoVariant) []geom.Vec3U8 {
	cells := make([]geom.Vec3U8, len(variant.Units))
	for i, unit := range variant.Units {
		rotated := geom.RotateUnitOffset(unit.Offset, b.Dir, variant.Extent)
		cells[i] = b.Coord.Add(rotated)
	}
	return cells
}

// outOfBounds checks against the raw, unrotated footprint extent rather
// than the rotated one - a deliberately preserved quirk, not a bug.
func (m *Map) outOfBounds(coord, extent geom.Vec3U8) bool {
	sum := coord.Add(extent)
	return sum.X >= m.size.X || sum.Y >= m.size.Y || sum.Z >= m.size.Z
}

// PlaceBlock validates and, on success, commits a solid block placement.
func (m *Map) PlaceBlock(b Block) error {
	variant, ok := m.resolveVariant(b.Model, b.IsGround, b.VariantIndex)
	if !ok {
		return Failed
	}
	if m.outOfBounds(b.Coord, variant.Extent) {
		return Failed
	}

	cells := footprintCells(b, variant)
	for _, c := range cells {
		if _, occupied := m.units[c]; occupied {
			return Occupied
		}
	}

	if conflict := m.clipConflict(b, variant, cells); conflict {
		return Failed
	}

	for i, unit := range variant.Units {
		m.units[cells[i]] = unit.Clips.RotatedBy(b.Dir)
	}
	m.blocks[b] = struct{}{}
	return nil
}

// clipConflict runs the per-unit, per-direction clip compatibility
// check against every already-placed neighbour.
func (m *Map) clipConflict(b Block, variant catalog.BlockInfoVariant, cells []geom.Vec3U8) bool {
	for i, unit := range variant.Units {
		for _, d := range geom.Cardinals {
			k := unit.Clips.Clip(d)
			if k == nil {
				continue
			}
			worldDir := d.Add(b.Dir)
			neighbour, inWorld := geom.Neighbour(cells[i], worldDir, m.size)
			if !inWorld {
				continue
			}
			other, ok := m.units[neighbour]
			if !ok {
				continue
			}
			otherClip := other.Clip(worldDir.Opposite())
			if otherClip == nil {
				continue
			}
			if k.Clips(*otherClip) {
				return true
			}
		}
	}
	return false
}

// RemoveBlock removes b if present, clearing every footprint cell it
// claimed in units. Returns whether b was present.
func (m *Map) RemoveBlock(b Block) bool {
	if _, ok := m.blocks[b]; !ok {
		return false
	}
	variant, ok := m.resolveVariant(b.Model, b.IsGround, b.VariantIndex)
	if !ok {
		// A committed block's model failing to resolve here would mean
		// placement inserted something it couldn't itself validate; fall
		// back to clearing just the bookkeeping entry rather than panicking.
		delete(m.blocks, b)
		return true
	}
	for _, c := range footprintCells(b, variant) {
		delete(m.units, c)
	}
	delete(m.blocks, b)
	return true
}

// PlaceGhostBlock validates variant existence and bounds (no occupancy or
// clip check) before inserting into the ghost multiset.
func (m *Map) PlaceGhostBlock(b Block) (ok bool, count int) {
	variant, resolved := m.resolveVariant(b.Model, b.IsGround, b.VariantIndex)
	if !resolved || m.outOfBounds(b.Coord, variant.Extent) {
		return false, m.ghostBlocks.Contains(b)
	}
	return true, m.ghostBlocks.Insert(b)
}

// RemoveGhostBlock decrements the ghost multiset.
func (m *Map) RemoveGhostBlock(b Block) (ok bool, count int) {
	if m.ghostBlocks.Contains(b) == 0 {
		return false, 0
	}
	return true, m.ghostBlocks.Remove(b)
}

// PlaceFreeBlock requires only that the model resolves to some catalog
// archetype; free blocks never touch units.
func (m *Map) PlaceFreeBlock(fb FreeBlock) (ok bool, count int) {
	archetypeID, resolved := m.resolveArchetypeID(fb.Model)
	if !resolved {
		return false, m.freeBlocks.Contains(fb)
	}
	if _, exists := m.cat.Block(archetypeID); !exists {
		return false, m.freeBlocks.Contains(fb)
	}
	return true, m.freeBlocks.Insert(fb)
}

// RemoveFreeBlock decrements the free-block multiset.
func (m *Map) RemoveFreeBlock(fb FreeBlock) (ok bool, count int) {
	if m.freeBlocks.Contains(fb) == 0 {
		return false, 0
	}
	return true, m.freeBlocks.Remove(fb)
}

// itemModelResolves implements the item-specific half of the model
// registry: an Id must be a known item model, a Hash must be registered
// as an embedded item.
func (m *Map) itemModelResolves(model ModelRef) bool {
	if id, ok := model.ArchetypeID(); ok {
		return m.cat.IsItemModel(id)
	}
	hash, ok := model.Hash()
	if !ok {
		return false
	}
	_, ok = m.embeddedItems[hash]
	return ok
}

// PlaceItem requires the item model to resolve either to a known item
// model id or to a registered embedded item.
func (m *Map) PlaceItem(it Item) (ok bool, count int) {
	if !m.itemModelResolves(it.Model) {
		return false, m.items.Contains(it)
	}
	return true, m.items.Insert(it)
}

// RemoveItem decrements the item multiset.
func (m *Map) RemoveItem(it Item) (ok bool, count int) {
	if m.items.Contains(it) == 0 {
		return false, 0
	}
	return true, m.items.Remove(it)
}

// HasBlock reports whether b is currently a solid block.
func (m *Map) HasBlock(b Block) bool {
	_, ok := m.blocks[b]
	return ok
}

// BlockCount returns the number of solid blocks currently placed.
func (m *Map) BlockCount() int { return len(m.blocks) }

// UnitCount returns the number of occupied grid cells.
func (m *Map) UnitCount() int { return len(m.units) }

// GhostBlockCount returns the number of distinct ghost block values with a
// non-zero count.
func (m *Map) GhostBlockCount() int { return m.ghostBlocks.Len() }

// FreeBlockCount returns the number of distinct free block values with a
// non-zero count.
func (m *Map) FreeBlockCount() int { return m.freeBlocks.Len() }

// ItemCount returns the number of distinct item values with a non-zero
// count.
func (m *Map) ItemCount() int { return m.items.Len() }

// HasArchetype reports whether id names a known catalog block archetype.
// Exposed for the map loader, which must classify a raw id as a built-in
// archetype or a custom-model reference before it can build a ModelRef.
func (m *Map) HasArchetype(id string) bool {
	_, ok := m.cat.Block(id)
	return ok
}

// IsItemModelID reports whether id names a known catalog item model.
func (m *Map) IsItemModelID(id string) bool {
	return m.cat.IsItemModel(id)
}
