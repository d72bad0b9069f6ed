package watch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandFiles(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "domains")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	for _, name := range []string{
		filepath.Join(tmpDir, "dinner.pddl"),
		filepath.Join(nested, "blocks.pddl"),
		filepath.Join(nested, "notes.txt"),
	} {
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	files, err := ExpandFiles([]string{filepath.Join(tmpDir, "**", "*.pddl")})
	if err != nil {
		t.Fatalf("ExpandFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}

	// Literal path passes through.
	files, err = ExpandFiles([]string{filepath.Join(tmpDir, "dinner.pddl")})
	if err != nil {
		t.Fatalf("ExpandFiles() literal error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}

	// Duplicates collapse.
	files, err = ExpandFiles([]string{
		filepath.Join(tmpDir, "dinner.pddl"),
		filepath.Join(tmpDir, "*.pddl"),
	})
	if err != nil {
		t.Fatalf("ExpandFiles() dedup error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected deduplicated single file, got %v", files)
	}
}

func TestExpandFiles_NoMatch(t *testing.T) {
	tmpDir := t.TempDir()
	_, err := ExpandFiles([]string{filepath.Join(tmpDir, "missing.pddl")})
	if err == nil {
		t.Error("expected error for missing file")
	}
}
