package service

import (
	"context"
	"io"

	"stockline-api/internal/storage"
)

// UploadService stores uploaded files.
type UploadService struct {
	store storage.FileStore
}

// NewUploadService creates a new upload service.
func NewUploadService(store storage.FileStore) *UploadService {
	if store == nil {
		return nil
	}
	return &UploadService{store: store}
}

// SaveFile writes the uploaded contents under the client-supplied
// filename and returns the stored path.
func (s *UploadService) SaveFile(ctx context.Context, filename string, contents io.Reader) (string, error) {
	return s.store.Save(ctx, filename, contents)
}
