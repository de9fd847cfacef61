package testutil

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/glossgraph/pkg/loader"
	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// AssertTermCount verifies the expected number of terms.
func AssertTermCount(t *testing.T, terms []model.Term, expected int) {
	t.Helper()
	if len(terms) != expected {
		t.Errorf("expected %d terms, got %d", expected, len(terms))
	}
}

// AssertNoDuplicateIDs verifies all term IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, terms []model.Term) {
	t.Helper()
	seen := make(map[string]bool)
	for _, term := range terms {
		if seen[term.ID] {
			t.Errorf("duplicate term ID: %s", term.ID)
		}
		seen[term.ID] = true
	}
}

// AssertAllValid verifies all terms pass validation.
func AssertAllValid(t *testing.T, terms []model.Term) {
	t.Helper()
	for i, term := range terms {
		if err := term.Validate(); err != nil {
			t.Errorf("term %d (%s) invalid: %v", i, term.ID, err)
		}
	}
}

// AssertLinkExists verifies that fromID links to toID.
func AssertLinkExists(t *testing.T, terms []model.Term, fromID, toID string) {
	t.Helper()
	for _, term := range terms {
		if term.ID == fromID {
			for _, l := range term.Links {
				if l == toID {
					return
				}
			}
			t.Errorf("expected link from %s to %s not found", fromID, toID)
			return
		}
	}
	t.Errorf("term %s not found", fromID)
}

// AssertFinitePositions verifies no position is NaN or infinite.
func AssertFinitePositions(t *testing.T, pos map[string]r2.Vec) {
	t.Helper()
	for id, p := range pos {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Errorf("%s has non-finite position %v", id, p)
		}
	}
}

// AssertWithin verifies every position lies within radius of center.
func AssertWithin(t *testing.T, pos map[string]r2.Vec, center r2.Vec, radius float64) {
	t.Helper()
	for id, p := range pos {
		if d := r2.Norm(r2.Sub(p, center)); d > radius {
			t.Errorf("%s is %.1f from center, want <= %.1f", id, d, radius)
		}
	}
}

// AssertMinSeparation verifies no two positions are closer than d.
func AssertMinSeparation(t *testing.T, pos map[string]r2.Vec, d float64) {
	t.Helper()
	ids := make([]string, 0, len(pos))
	for id := range pos {
		ids = append(ids, id)
	}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if got := r2.Norm(r2.Sub(pos[ids[i]], pos[ids[j]])); got < d {
				t.Errorf("%s and %s are %.2f apart, want >= %.2f", ids[i], ids[j], got, d)
			}
		}
	}
}

// AssertJSONEqual compares two values after JSON round-tripping.
func AssertJSONEqual(t *testing.T, expected, actual any) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}

	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}

	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// Golden file helpers

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN env var is set, golden files will be updated.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file.
// If GENERATE_GOLDEN is set, updates the golden file instead.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != actual {
		expectedLines := strings.Split(string(expected), "\n")
		actualLines := strings.Split(actual, "\n")

		for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
			var expLine, actLine string
			if i < len(expectedLines) {
				expLine = expectedLines[i]
			}
			if i < len(actualLines) {
				actLine = actualLines[i]
			}
			if expLine != actLine {
				g.t.Errorf("golden file mismatch at line %d:\nexpected: %s\nactual:   %s", i+1, expLine, actLine)
				return
			}
		}
		g.t.Errorf("golden file mismatch (length differs)")
	}
}

// Term file helpers

// WriteTermFiles writes each term as <id>.md in dir, creating dir, and
// returns dir.
func WriteTermFiles(t *testing.T, dir string, terms []model.Term) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create term dir: %v", err)
	}
	for _, term := range terms {
		data, err := loader.Format(term)
		if err != nil {
			t.Fatalf("failed to format %s: %v", term.ID, err)
		}
		if err := os.WriteFile(filepath.Join(dir, term.ID+".md"), data, 0644); err != nil {
			t.Fatalf("failed to write %s: %v", term.ID, err)
		}
	}
	return dir
}

// TempGlossaryDir writes terms into a fresh terms/ directory.
func TempGlossaryDir(t *testing.T, terms []model.Term) string {
	t.Helper()
	return WriteTermFiles(t, filepath.Join(t.TempDir(), "terms"), terms)
}

// GetIDs returns term ids in order.
func GetIDs(terms []model.Term) []string {
	ids := make([]string, len(terms))
	for i, term := range terms {
		ids[i] = term.ID
	}
	return ids
}
