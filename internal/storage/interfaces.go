package storage

import (
	"context"
	"io"
)

// FileStore accepts uploaded bytes and stores them under a name derived
// from the client-supplied filename. Existing files of the same name are
// overwritten.
type FileStore interface {
	// Save writes the contents to the store and returns the stored path.
	Save(ctx context.Context, filename string, contents io.Reader) (string, error)
}
