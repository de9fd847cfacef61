//go:build ignore

// generate_testdata.go creates glossary datasets for benchmarking the
// simulation and the loader.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	tests/testdata/benchmark/small/terms/   (100 terms)
//	tests/testdata/benchmark/medium/terms/  (500 terms)
//	tests/testdata/benchmark/large/terms/   (2000 terms)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/glossgraph/pkg/loader"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/testutil"
)

type datasetSpec struct {
	name string
	size int
	desc string
}

var datasets = []datasetSpec{
	{"small", 100, "100 terms, about 5 links each"},
	{"medium", 500, "500 terms, about 5 links each"},
	{"large", 2000, "2000 terms, about 4 links each"},
}

func main() {
	outputDir := filepath.Join("tests", "testdata", "benchmark")

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (%s)...\n", ds.name, ds.desc)

		gen := testutil.New(testutil.GeneratorConfig{
			Seed:     int64(ds.size), // reproducible per size
			IDPrefix: ds.name,
		})
		gf := gen.Random(ds.size, calculateDensity(ds.size))
		terms := gen.ToTerms(gf)
		addRealisticContent(terms)

		dir := filepath.Join(outputDir, ds.name, "terms")
		if err := os.RemoveAll(dir); err != nil {
			fail("clean %s: %v", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fail("create %s: %v", dir, err)
		}
		var bytes int
		for _, t := range terms {
			data, err := loader.Format(t)
			if err != nil {
				fail("format %s: %v", t.ID, err)
			}
			if err := os.WriteFile(filepath.Join(dir, t.ID+".md"), data, 0o644); err != nil {
				fail("write %s: %v", t.ID, err)
			}
			bytes += len(data)
		}

		fmt.Printf("  Written %s (%d files, %d bytes, %d links)\n", dir, len(terms), bytes, len(gf.Edges))
	}

	fmt.Println("\nDone! Test datasets created in", outputDir)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// calculateDensity keeps the mean degree roughly constant as size grows.
func calculateDensity(size int) float64 {
	switch {
	case size <= 100:
		return 0.05
	case size <= 500:
		return 0.01
	default:
		return 0.002
	}
}

func addRealisticContent(terms []model.Term) {
	names := []string{
		"Last Hit", "Deny", "Freeze", "Slow Push", "Roam",
		"Vision Control", "Gank", "Tempo", "Power Spike", "Split Push",
	}
	definitions := []string{
		"A core laning skill.\n\n## Why it matters\n- Gold lead\n- Experience lead",
		"A macro decision about where to spend time on the map.",
		"Timing window where one side is **much stronger** than the other.",
	}
	for i := range terms {
		terms[i].Term = fmt.Sprintf("%s %d", names[i%len(names)], i)
		terms[i].Definition = definitions[i%len(definitions)]
	}
}
