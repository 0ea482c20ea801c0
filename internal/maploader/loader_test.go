package maploader

import (
	"testing"

	"mapedit/internal/catalog"
	"mapedit/internal/geom"
	"mapedit/internal/mapstate"
)

func testMap(t *testing.T) *mapstate.Map {
	t.Helper()
	return mapstate.New(geom.Vec3U8{X: 48, Y: 40, Z: 48}, catalog.MustLoad())
}

func alwaysPlatformBase([]byte) (string, error) { return "PlatformBase", nil }

func TestLoadPlacesBuiltinAndEmbeddedBlocks(t *testing.T) {
	m := testMap(t)

	descriptorBytes := []byte("fake gbx descriptor bytes")
	parsed := ParsedMap{
		EmbeddedFiles: []EmbeddedFile{
			{Path: "custom1.block.gbx", Bytes: descriptorBytes},
		},
		Blocks: []ParsedBlock{
			{
				ID: "PlatformBase",
				Block: mapstate.Block{
					Model: mapstate.ModelID("PlatformBase"),
					Coord: geom.Vec3U8{X: 5, Y: 5, Z: 5},
					Dir:   geom.North,
				},
			},
			{
				ID: "custom1_CustomBlock",
				Block: mapstate.Block{
					Coord: geom.Vec3U8{X: 10, Y: 5, Z: 5},
					Dir:   geom.North,
				},
			},
		},
	}

	if err := Load(m, parsed, alwaysPlatformBase); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := m.BlockCount(); got != 2 {
		t.Fatalf("expected 2 solid blocks, got %d", got)
	}
}

func TestLoadRejectsUnknownEmbeddedExtension(t *testing.T) {
	m := testMap(t)
	parsed := ParsedMap{
		EmbeddedFiles: []EmbeddedFile{{Path: "mystery.dat", Bytes: []byte("x")}},
	}
	if err := Load(m, parsed, alwaysPlatformBase); err == nil {
		t.Fatal("expected an error for an unrecognised embedded file extension")
	}
}

func TestLoadRejectsUnresolvableBlockModel(t *testing.T) {
	m := testMap(t)
	parsed := ParsedMap{
		Blocks: []ParsedBlock{
			{ID: "NoSuchArchetype", Block: mapstate.Block{Coord: geom.Vec3U8{X: 1, Y: 1, Z: 1}}},
		},
	}
	if err := Load(m, parsed, alwaysPlatformBase); err == nil {
		t.Fatal("expected an error for an unresolvable block model")
	}
}

func TestLoadGhostAndItem(t *testing.T) {
	m := testMap(t)
	parsed := ParsedMap{
		Blocks: []ParsedBlock{
			{
				ID:    "PlatformBase",
				Ghost: true,
				Block: mapstate.Block{
					Model: mapstate.ModelID("PlatformBase"),
					Coord: geom.Vec3U8{X: 2, Y: 2, Z: 2},
					Dir:   geom.North,
				},
			},
		},
		Items: []ParsedItem{
			{ID: "CheckpointFlag"},
		},
	}
	if err := Load(m, parsed, alwaysPlatformBase); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.GhostBlockCount() != 1 {
		t.Fatalf("expected 1 ghost block, got %d", m.GhostBlockCount())
	}
	if m.ItemCount() != 1 {
		t.Fatalf("expected 1 item, got %d", m.ItemCount())
	}
}
