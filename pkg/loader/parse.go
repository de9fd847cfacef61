package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/glossgraph/pkg/metrics"
	"github.com/vanderheijden86/glossgraph/pkg/model"
)

const delimiter = "---"

// frontmatter mirrors the YAML header. Slices are pointers so an absent key
// is told apart from an empty list.
type frontmatter struct {
	ID         string         `yaml:"id"`
	Term       string         `yaml:"term"`
	Tags       *[]string      `yaml:"tags"`
	Links      *[]string      `yaml:"links"`
	Alternates []string       `yaml:"alternates,omitempty"`
	Extensions map[string]any `yaml:"extensions,omitempty"`
}

// ParseFile reads one term file.
func ParseFile(path string) (model.Term, error) {
	defer metrics.Timer(metrics.TermParse)()
	f, err := os.Open(path)
	if err != nil {
		return model.Term{}, fmt.Errorf("failed to open term file: %w", err)
	}
	defer f.Close()
	t, err := Parse(f, filepath.Base(path))
	if err != nil {
		return model.Term{}, err
	}
	t.SourcePath = path
	return t, nil
}

// Parse reads a term from markdown with YAML frontmatter. The body, trimmed,
// becomes the definition. name labels errors.
func Parse(r io.Reader, name string) (model.Term, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Term{}, fmt.Errorf("read %s: %w", name, err)
	}
	header, body, ok := splitFrontmatter(stripBOM(data))
	if !ok {
		return model.Term{}, invalid(name, "frontmatter")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return model.Term{}, fmt.Errorf("%w file %s: %v", model.ErrInvalidTerm, name, err)
	}
	switch {
	case strings.TrimSpace(fm.ID) == "":
		return model.Term{}, invalid(name, "id")
	case strings.TrimSpace(fm.Term) == "":
		return model.Term{}, invalid(name, "term")
	case fm.Tags == nil:
		return model.Term{}, invalid(name, "tags")
	case fm.Links == nil:
		return model.Term{}, invalid(name, "links")
	}

	t := model.Term{
		ID:         strings.TrimSpace(fm.ID),
		Term:       strings.TrimSpace(fm.Term),
		Definition: strings.TrimSpace(string(body)),
		Tags:       *fm.Tags,
		Links:      *fm.Links,
		Alternates: fm.Alternates,
		Extensions: fm.Extensions,
	}
	if err := t.Validate(); err != nil {
		return model.Term{}, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

func invalid(name, field string) error {
	return fmt.Errorf("%w file %s: missing %q", model.ErrInvalidTerm, name, field)
}

// splitFrontmatter separates a leading "---" delimited block from the body.
func splitFrontmatter(data []byte) (header, body []byte, ok bool) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	first, rest, found := bytes.Cut(data, []byte("\n"))
	if !found || strings.TrimSpace(string(first)) != delimiter {
		return nil, nil, false
	}
	for off := 0; off <= len(rest); {
		line, next, more := bytes.Cut(rest[off:], []byte("\n"))
		if strings.TrimSpace(string(line)) == delimiter {
			return rest[:off], next, true
		}
		if !more {
			break
		}
		off += len(line) + 1
	}
	return nil, nil, false
}

// stripBOM removes the UTF-8 Byte Order Mark if present
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}

// Format renders a term back into its file form.
func Format(t model.Term) ([]byte, error) {
	tags, links := t.Tags, t.Links
	if tags == nil {
		tags = []string{}
	}
	if links == nil {
		links = []string{}
	}
	fm := frontmatter{
		ID:         t.ID,
		Term:       t.Term,
		Tags:       &tags,
		Links:      &links,
		Alternates: t.Alternates,
		Extensions: t.Extensions,
	}
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(strings.TrimSpace(t.Definition))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
