package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNoSkippedTests ensures no test in the module skips itself. Tests should
// either pass or fail; a missing fixture is a failure.
func TestNoSkippedTests(t *testing.T) {
	forbidden := []string{"t.Skip(", "t.SkipNow(", "testing.Short()"}

	var testFiles []string
	err := filepath.WalkDir(projectRoot(t), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// The go tool ignores directories starting with "." or "_".
			name := d.Name()
			if path != projectRoot(t) && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, "_test.go") && filepath.Base(path) != "quality_test.go" {
			testFiles = append(testFiles, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk module: %v", err)
	}
	if len(testFiles) == 0 {
		t.Fatal("No test files found")
	}

	var violations []string
	for _, path := range testFiles {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("Failed to open %s: %v", path, err)
		}

		sc := bufio.NewScanner(f)
		lineNum := 0
		for sc.Scan() {
			lineNum++
			line := sc.Text()
			if strings.HasPrefix(strings.TrimSpace(line), "//") {
				continue
			}
			for _, pattern := range forbidden {
				if strings.Contains(line, pattern) {
					violations = append(violations, fmt.Sprintf("%s:%d: %s", path, lineNum, pattern))
				}
			}
		}
		f.Close()
		if err := sc.Err(); err != nil {
			t.Fatalf("Error scanning %s: %v", path, err)
		}
	}

	for _, v := range violations {
		t.Errorf("skipped test: %s", v)
	}
}
