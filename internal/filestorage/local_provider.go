package filestorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/railsathi/railsathi/internal/media"
)

// LocalStorage is the target of the direct-upload path: original bytes
// are written to local disk keyed by complaint id and timestamp, with
// no transcoding and no database row.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates the uploads directory tree if missing. Empty
// root defaults to "uploads" in the working directory.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		root = "uploads"
	}
	for _, sub := range []string{"images", "videos"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o750); err != nil {
			return nil, fmt.Errorf("create uploads directory: %w", err)
		}
	}
	return &LocalStorage{root: root}, nil
}

// SaveOriginal writes the untransformed bytes under
// {root}/{images|videos}/{complainID}_{timestamp}_{filename} and
// returns the file path.
func (s *LocalStorage) SaveOriginal(ctx context.Context, kind media.Kind, complainID uint, name string, content []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("save original: %w", ctx.Err())
	default:
	}

	sub := "videos"
	if kind == media.KindImage {
		sub = "images"
	}
	ts := time.Now().Format("20060102150405")
	fname := fmt.Sprintf("%d_%s_%s", complainID, ts, filepath.Base(name))
	path := filepath.Join(s.root, sub, fname)

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path, nil
}
