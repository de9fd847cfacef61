package main_test

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/testutil"
)

var ggBinaryPath string
var ggBinaryDir string

func TestMain(m *testing.M) {
	// Build the binary once for all tests
	if err := buildOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build glossgraph binary: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	if ggBinaryDir != "" {
		_ = os.RemoveAll(ggBinaryDir)
	}
	os.Exit(code)
}

func buildOnce() error {
	tempDir, err := os.MkdirTemp("", "glossgraph-e2e-build-*")
	if err != nil {
		return err
	}
	ggBinaryDir = tempDir

	binName := "glossgraph"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(tempDir, binName)

	cmd := exec.Command("go", "build",
		"-ldflags", "-X main.version=v0.0.0-e2e -X main.commit=e2e",
		"-o", binPath, "../../cmd/glossgraph")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("go build failed: %v\n%s", err, out)
	}

	ggBinaryPath = binPath
	return nil
}

// result is one finished invocation.
type result struct {
	stdout string
	stderr string
	code   int
}

// run executes the binary in dir with isolated XDG directories.
func run(t *testing.T, dir string, args ...string) result {
	t.Helper()
	if ggBinaryPath == "" {
		t.Fatal("glossgraph binary not built")
	}
	cmd := exec.Command(ggBinaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(dir, ".config"),
		"XDG_STATE_HOME="+filepath.Join(dir, ".state"),
		"GLOSSARY_DIR=",
		"NO_COLOR=1",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := result{stdout: stdout.String(), stderr: stderr.String()}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.code = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return res
}

// mustRun fails the test on a non-zero exit.
func mustRun(t *testing.T, dir string, args ...string) result {
	t.Helper()
	res := run(t, dir, args...)
	if res.code != 0 {
		t.Fatalf("glossgraph %v exited %d\nstdout: %s\nstderr: %s", args, res.code, res.stdout, res.stderr)
	}
	return res
}

// workspace creates a project dir holding terms/ with the given terms.
func workspace(t *testing.T, terms []model.Term) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteTermFiles(t, filepath.Join(root, "terms"), terms)
	return root
}
