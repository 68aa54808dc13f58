package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/garnizeh/portfolio/internal/storage"
)

func TestLocal_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := storage.NewLocal(dir, 16, nil)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	name, err := s.Save(ctx, "Photo.JPG", strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Ext(name) != ".jpg" || name == "Photo.JPG" {
		t.Fatalf("unexpected stored name %q", name)
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil || string(b) != "jpeg bytes" {
		t.Fatalf("stored content %q, %v", b, err)
	}

	if err := s.Delete(ctx, name); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, name); err != nil {
		t.Fatalf("deleting a missing file must succeed: %v", err)
	}
	if err := s.Delete(ctx, "../secret"); !errors.Is(err, storage.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestLocal_Rejects(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocal(dir, 4, nil)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	if _, err := s.Save(ctx, "notes.txt", strings.NewReader("x")); !errors.Is(err, storage.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if _, err := s.Save(ctx, "big.png", strings.NewReader("too many bytes")); !errors.Is(err, storage.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("rejected uploads must not leave files, found %d", len(entries))
	}
}
