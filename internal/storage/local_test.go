package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalSaveAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalFileStore(dir)
	ctx := context.Background()

	path, err := store.Save(ctx, "report.txt", strings.NewReader("v1"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "report.txt") {
		t.Errorf("unexpected path: %q", path)
	}

	// Same name overwrites, no collision handling.
	if _, err := store.Save(ctx, "report.txt", strings.NewReader("v2")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(contents) != "v2" {
		t.Errorf("expected overwritten contents, got %q", contents)
	}
}

func TestLocalSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store := NewLocalFileStore(dir)

	if _, err := store.Save(context.Background(), "a.bin", strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.bin")); err != nil {
		t.Errorf("expected file in created directory: %v", err)
	}
}

func TestLocalSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalFileStore(dir)

	path, err := store.Save(context.Background(), "../../escape.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "escape.txt") {
		t.Errorf("expected traversal components stripped, got %q", path)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); err != nil {
		t.Errorf("expected file inside upload dir: %v", err)
	}
}
