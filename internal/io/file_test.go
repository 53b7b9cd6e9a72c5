package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.m3u", "normal-file.m3u"},
		{"file:with:colons", "file_with_colons"},
		{"file<with>brackets", "file_with_brackets"},
		{"file/with\\slashes", "file_with_slashes"},
		{"file|with|pipes", "file_with_pipes"},
		{"file?with*wildcards", "file_with_wildcards"},
		{"file\"with\"quotes", "file_with_quotes"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteSibling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := WriteSibling(path, []byte("new")); err != nil {
		t.Fatalf("WriteSibling() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory should only hold the rewritten file, got %d entries", len(entries))
	}
}

func TestTempSibling_KeepsExtension(t *testing.T) {
	dir := t.TempDir()
	tmp, err := TempSibling(filepath.Join(dir, "track.m4a"))
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmp)

	if filepath.Dir(tmp) != dir {
		t.Errorf("TempSibling dir = %q, want %q", filepath.Dir(tmp), dir)
	}
	if !strings.HasSuffix(tmp, ".m4a") {
		t.Errorf("TempSibling(%q) should keep the extension", tmp)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.wav")
	dst := filepath.Join(dir, "b.wav")
	if err := os.WriteFile(src, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "RIFF" {
		t.Errorf("copied content = %q", data)
	}
}
