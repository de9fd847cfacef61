package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// Bundle is the on-disk form of a built glossary.
type Bundle struct {
	Version int          `json:"version"`
	Terms   []model.Term `json:"terms"`
	Tags    []model.Tag  `json:"tags,omitempty"`
}

// BundleVersion is written into every bundle.
const BundleVersion = 1

// WriteBundle encodes g as indented JSON.
func WriteBundle(w io.Writer, g *model.Glossary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Bundle{Version: BundleVersion, Terms: g.Terms, Tags: g.Tags}); err != nil {
		return fmt.Errorf("encode glossary bundle: %w", err)
	}
	return nil
}

// ReadBundle decodes a bundle and validates its terms.
func ReadBundle(r io.Reader) (*model.Glossary, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode glossary bundle: %w", err)
	}
	if b.Version > BundleVersion {
		return nil, fmt.Errorf("glossary bundle version %d is newer than supported %d", b.Version, BundleVersion)
	}
	if len(b.Terms) == 0 {
		return nil, ErrNoTerms
	}
	for _, t := range b.Terms {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	if err := checkUnique(b.Terms); err != nil {
		return nil, err
	}
	return model.NewGlossary(b.Terms, b.Tags), nil
}

// LoadBundle reads a bundle file.
func LoadBundle(path string) (*model.Glossary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glossary bundle: %w", err)
	}
	defer f.Close()
	g, err := ReadBundle(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// SaveBundle writes g to path atomically.
func SaveBundle(path string, g *model.Glossary) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bundle dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".glossary-*.json")
	if err != nil {
		return fmt.Errorf("create temp bundle: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := WriteBundle(tmp, g); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
