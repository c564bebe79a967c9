package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalFileStore writes uploads verbatim to a server-local directory.
type LocalFileStore struct {
	dir string
}

// NewLocalFileStore creates a file store rooted at dir.
func NewLocalFileStore(dir string) *LocalFileStore {
	return &LocalFileStore{dir: dir}
}

// Save writes the contents to <dir>/<filename> and returns the stored path.
// The filename is reduced to its base component, so a name like
// "../../etc/passwd" stores as "passwd" inside the upload directory.
func (s *LocalFileStore) Save(ctx context.Context, filename string, contents io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, contents); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}

// Ensure LocalFileStore implements FileStore
var _ FileStore = (*LocalFileStore)(nil)
