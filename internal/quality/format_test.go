package quality

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestCodeFormattingConsistency verifies that all Go source files in the
// project are properly formatted according to gofmt.
func TestCodeFormattingConsistency(t *testing.T) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		t.Fatalf("Failed to find project root: %v", err)
	}

	var goFiles []string
	err = filepath.Walk(projectRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			// vendor, VCS metadata, runtime data dirs and underscore
			// dirs (ignored by the Go toolchain) are out of scope
			if name == "vendor" || name == ".git" || name == "node_modules" ||
				name == "uploads" || name == "web" || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(path, ".go") {
			goFiles = append(goFiles, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk project directory: %v", err)
	}

	if len(goFiles) == 0 {
		t.Fatal("No Go files found in project")
	}

	for _, file := range goFiles {
		cmd := exec.Command("gofmt", "-l", file)
		output, err := cmd.Output()
		if err != nil {
			t.Errorf("gofmt failed for %s: %v", file, err)
			continue
		}
		if len(output) > 0 {
			t.Errorf("File %s is not properly formatted, run go fmt ./...", file)
		}
	}

	t.Logf("Checked %d Go files for formatting consistency", len(goFiles))
}

// findProjectRoot finds the project root by looking for go.mod
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
