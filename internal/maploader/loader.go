// Package maploader consumes an already-parsed map-file value - the
// binary .Map.Gbx reader itself is an external collaborator, out of
// scope here - and replays its contents into a mapstate.Map: extracting
// any embedded custom models, then placing every block, free block, and
// item it describes.
package maploader

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"mapedit/internal/errutil"
	"mapedit/internal/mapstate"
)

// DescriptorParser extracts the archetype id a custom block's raw
// descriptor bytes imitate. Parsing the actual binary descriptor format
// is outside this package's scope; callers supply the parser that
// understands the embedded block's on-disk shape.
type DescriptorParser func(bytes []byte) (archetypeID string, err error)

// EmbeddedFile is one member of a map file's bundled archive.
type EmbeddedFile struct {
	Path  string
	Bytes []byte
}

// ParsedBlock is a block as read from a map file, before it has been
// resolved into a mapstate.Block.
type ParsedBlock struct {
	ID    string
	Block mapstate.Block
	Ghost bool
	Free  bool
	Pose  FreeBlockPose
}

// FreeBlockPose carries the continuous-pose fields used by free blocks
// and items; unused for grid-placed blocks.
type FreeBlockPose struct {
	PosX, PosY, PosZ       float32
	Yaw, Pitch, Roll       float32
	PivotX, PivotY, PivotZ float32
	AnimOffset             float32
}

// ParsedItem is an item as read from a map file.
type ParsedItem struct {
	ID           string
	VariantIndex uint8
	Color        mapstate.Color
	Pose         FreeBlockPose
}

// ParsedMap is the structured value an external map-file reader
// produces; Load replays it into a mapstate.Map.
type ParsedMap struct {
	EmbeddedFiles []EmbeddedFile
	Blocks        []ParsedBlock
	Items         []ParsedItem
}

// Load registers every embedded custom model in m, then places every
// block/free-block/item the parsed map describes. A malformed map
// (unknown embedded-file extension, unresolvable model) aborts the load
// and returns an error; the caller decides how to surface it.
func Load(m *mapstate.Map, parsed ParsedMap, parseDescriptor DescriptorParser) error {
	pathToHash, err := registerEmbeddedFiles(m, parsed.EmbeddedFiles, parseDescriptor)
	if err != nil {
		return err
	}

	for _, pb := range parsed.Blocks {
		model, ok := resolveModelRef(m, pb.ID, "_CustomBlock", ".block.gbx", pathToHash)
		if !ok {
			return fmt.Errorf("maploader: block model %q does not resolve to a known archetype or embedded model", pb.ID)
		}
		block := pb.Block
		block.Model = model

		switch {
		case pb.Ghost:
			if ok, _ := m.PlaceGhostBlock(block); !ok {
				return fmt.Errorf("maploader: ghost block %+v rejected by a well-formed map file", block)
			}
		case pb.Free:
			fb := mapstate.FreeBlock{Model: model, Color: block.Color}
			if fb.Pos, err = vec3(pb.Pose.PosX, pb.Pose.PosY, pb.Pose.PosZ); err != nil {
				return errutil.Wrapf(err, "maploader: free block %q pose", pb.ID)
			}
			if err := setEulerAngles(&fb.Yaw, &fb.Pitch, &fb.Roll, pb.Pose); err != nil {
				return errutil.Wrapf(err, "maploader: free block %q pose", pb.ID)
			}
			if ok, _ := m.PlaceFreeBlock(fb); !ok {
				return fmt.Errorf("maploader: free block %+v rejected by a well-formed map file", fb)
			}
		default:
			if err := m.PlaceBlock(block); err != nil {
				return errutil.Wrapf(err, "maploader: block %+v rejected by a well-formed map file", block)
			}
		}
	}

	for _, pi := range parsed.Items {
		model, ok := resolveModelRef(m, pi.ID, "_CustomItem", ".item.gbx", pathToHash)
		if !ok {
			return fmt.Errorf("maploader: item model %q does not resolve to a known item model or embedded item", pi.ID)
		}
		it := mapstate.Item{Model: model, VariantIndex: pi.VariantIndex, Color: pi.Color}
		var err error
		if it.Pos, err = vec3(pi.Pose.PosX, pi.Pose.PosY, pi.Pose.PosZ); err != nil {
			return errutil.Wrapf(err, "maploader: item %q pose", pi.ID)
		}
		if it.PivotPos, err = vec3(pi.Pose.PivotX, pi.Pose.PivotY, pi.Pose.PivotZ); err != nil {
			return errutil.Wrapf(err, "maploader: item %q pivot", pi.ID)
		}
		if err := setEulerAngles(&it.Yaw, &it.Pitch, &it.Roll, pi.Pose); err != nil {
			return errutil.Wrapf(err, "maploader: item %q pose", pi.ID)
		}
		animOffset, err := floatposeNew(pi.Pose.AnimOffset)
		if err != nil {
			return errutil.Wrapf(err, "maploader: item %q anim offset", pi.ID)
		}
		it.AnimOffset = animOffset

		if ok, _ := m.PlaceItem(it); !ok {
			return fmt.Errorf("maploader: item %+v rejected by a well-formed map file", it)
		}
	}

	return nil
}

func registerEmbeddedFiles(m *mapstate.Map, files []EmbeddedFile, parseDescriptor DescriptorParser) (map[string][32]byte, error) {
	pathToHash := make(map[string][32]byte, len(files))
	for _, f := range files {
		hash := sha256.Sum256(f.Bytes)
		pathToHash[f.Path] = hash

		switch {
		case strings.HasSuffix(f.Path, ".block.gbx"):
			archetypeID, err := parseDescriptor(f.Bytes)
			if err != nil {
				return nil, errutil.Wrapf(err, "maploader: parsing block descriptor %q", f.Path)
			}
			if !m.HasArchetype(archetypeID) {
				return nil, fmt.Errorf("maploader: embedded block %q imitates unknown archetype %q", f.Path, archetypeID)
			}
			m.RegisterEmbeddedBlock(hash, mapstate.EmbeddedBlock{ArchetypeID: archetypeID, Bytes: f.Bytes})
		case strings.HasSuffix(f.Path, ".item.gbx"):
			m.RegisterEmbeddedItem(hash, f.Bytes)
		default:
			return nil, fmt.Errorf("maploader: embedded file %q has an unrecognised extension", f.Path)
		}
	}
	return pathToHash, nil
}

// resolveModelRef resolves an id in two steps: first a direct catalog
// archetype/item-model hit on the raw id, then (for customSuffix-tagged
// ids) a lookup of the embedded file whose path is the id with
// customSuffix stripped and pathSuffix appended.
func resolveModelRef(m *mapstate.Map, id, customSuffix, pathSuffix string, pathToHash map[string][32]byte) (mapstate.ModelRef, bool) {
	if m.HasArchetype(id) || m.IsItemModelID(id) {
		return mapstate.ModelID(id), true
	}
	base := strings.TrimSuffix(id, customSuffix)
	hash, ok := pathToHash[base+pathSuffix]
	if !ok {
		return mapstate.ModelRef{}, false
	}
	return mapstate.ModelHash(hash), true
}
