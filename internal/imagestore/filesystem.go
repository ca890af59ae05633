package imagestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore keeps uploads on the local filesystem, for environments where
// no image host is available. The deletehash doubles as the storage key.
type FileStore struct {
	basePath      string
	publicBaseURL string
}

func NewFileStore(basePath, publicBaseURL string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("imagestore: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &FileStore{
		basePath:      basePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *FileStore) Upload(ctx context.Context, filename string, data []byte) (Upload, error) {
	if err := ctx.Err(); err != nil {
		return Upload{}, err
	}

	key := uuid.NewString() + sanitizeExt(filename)
	if err := os.WriteFile(filepath.Join(s.basePath, key), data, 0o644); err != nil {
		return Upload{}, fmt.Errorf("os.WriteFile -> %w", err)
	}

	return Upload{
		URL:        s.publicBaseURL + "/" + key,
		DeleteHash: key,
	}, nil
}

func (s *FileStore) Delete(ctx context.Context, upload Upload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if upload.DeleteHash == "" {
		return errors.New("missing storage key")
	}

	// The key is server-generated, but never trust it as a path.
	key := path.Base(upload.DeleteHash)
	if err := os.Remove(filepath.Join(s.basePath, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ""
	}
}
