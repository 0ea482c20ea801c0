package catalog

import "testing"

func TestMustLoadFindsKnownArchetypes(t *testing.T) {
	cat := MustLoad()

	for _, name := range []string{"PlatformBase", "TrackWallCurve3", "RoadTechBranchTShaped"} {
		if _, ok := cat.Block(name); !ok {
			t.Fatalf("expected archetype %q to be present", name)
		}
	}

	if _, ok := cat.Block("NoSuchBlock"); ok {
		t.Fatal("expected unknown archetype to report false")
	}
}

func TestVariantLookupRespectsGroundFlag(t *testing.T) {
	cat := MustLoad()
	block, _ := cat.Block("PlatformBase")

	if _, ok := block.Variant(false, 1); !ok {
		t.Fatal("expected PlatformBase air variant 1 (the ring) to exist")
	}
	if _, ok := block.Variant(true, 1); ok {
		t.Fatal("expected PlatformBase ground variant 1 to be absent")
	}
}

func TestItemModelIDs(t *testing.T) {
	cat := MustLoad()
	if !cat.IsItemModel("CheckpointFlag") {
		t.Fatal("expected CheckpointFlag to be a known item model")
	}
	if cat.IsItemModel("NotAModel") {
		t.Fatal("expected unknown item model id to report false")
	}
}
