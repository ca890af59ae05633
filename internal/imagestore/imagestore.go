// Package imagestore uploads contestant photos to a backing host and
// deletes them again. The production host is the Imgur API; a filesystem
// store serves development and tests.
package imagestore

import (
	"context"
	"fmt"

	"github.com/growoff/growoff-api/internal/config"
)

// Upload is the result of storing one image: a retrievable URL plus the
// host's deletion token (empty when the host deletes by URL alone).
type Upload struct {
	URL        string
	DeleteHash string
}

type Store interface {
	Upload(ctx context.Context, filename string, data []byte) (Upload, error)
	Delete(ctx context.Context, upload Upload) error
}

// New builds the store named by the configuration.
func New(conf *config.ImageStoreConfig) (Store, error) {
	switch conf.Provider {
	case "imgur":
		return NewImgurClient(conf.ImgurBaseURL, conf.ImgurClientID), nil
	case "filesystem":
		return NewFileStore(conf.BasePath, conf.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown image store provider %q", conf.Provider)
	}
}
