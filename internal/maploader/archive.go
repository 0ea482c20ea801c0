package maploader

import (
	"archive/zip"
	"encoding/json"
	"io"

	"mapedit/internal/errutil"
)

// manifestName is the archive member that carries the block/item
// placement list; everything else in the archive is an embedded custom
// model, keyed by its archive path.
const manifestName = "manifest.json"

// manifest is the JSON shape of manifestName: the structured placement
// data an external .Map.Gbx reader would otherwise hand Load directly.
// Loading from a manifest-bearing zip lets the CLI's --load flag
// exercise the same Load path as any other caller without requiring
// the binary map-file format itself, which is out of scope here.
type manifest struct {
	Blocks []ParsedBlock `json:"blocks"`
	Items  []ParsedItem  `json:"items"`
}

// OpenArchive reads a zip archive at path and returns the ParsedMap it
// describes: every non-manifest member becomes an EmbeddedFile, and
// manifestName supplies the block/item placement list. It mirrors the
// original's zip::ZipArchive-backed map reader, minus the surrounding
// binary container format.
func OpenArchive(path string) (ParsedMap, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return ParsedMap{}, errutil.Wrapf(err, "maploader: opening archive %q", path)
	}
	defer r.Close()

	var parsed ParsedMap
	for _, f := range r.File {
		if f.Name == manifestName {
			m, err := readManifest(f)
			if err != nil {
				return ParsedMap{}, errutil.Wrapf(err, "maploader: reading manifest in %q", path)
			}
			parsed.Blocks = m.Blocks
			parsed.Items = m.Items
			continue
		}

		data, err := readZipFile(f)
		if err != nil {
			return ParsedMap{}, errutil.Wrapf(err, "maploader: reading embedded file %q", f.Name)
		}
		parsed.EmbeddedFiles = append(parsed.EmbeddedFiles, EmbeddedFile{Path: f.Name, Bytes: data})
	}
	return parsed, nil
}

func readManifest(f *zip.File) (manifest, error) {
	data, err := readZipFile(f)
	if err != nil {
		return manifest{}, err
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return manifest{}, errutil.Wrap(err, "decoding manifest")
	}
	return m, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
