package fsys

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"docchat/internal/domain"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolvePlainPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt")

	got, err := Resolve(path, []string{".txt"})
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("expected %s, got %s", path, got)
	}
}

func TestResolveRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt")

	_, err := Resolve(path, []string{".pdf"})
	if !errors.Is(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestResolveMissingFile(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "gone.txt"), []string{".txt"}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolveGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md")
	want := writeFile(t, dir, "report.pdf")

	got, err := Resolve(filepath.Join(dir, "*"), []string{".pdf"})
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResolveGlobNoMatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md")

	if _, err := Resolve(filepath.Join(dir, "*"), []string{".pdf"}); err == nil {
		t.Error("expected error when no match has an allowed extension")
	}
}
