package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtract_MissingFile(t *testing.T) {
	source := NewPDFSource()

	if _, err := source.Extract("no-such-file.pdf", 4); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtract_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(path, []byte("plain text, not a pdf"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	source := NewPDFSource()
	if _, err := source.Extract(path, 4); err == nil {
		t.Error("expected error for a non-PDF file")
	}
}
