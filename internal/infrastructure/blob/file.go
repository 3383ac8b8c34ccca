// Package blob provides model artifact sources backed by the local
// filesystem or S3-compatible object storage.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/smartmandi/inference/internal/domain"
)

// FileSource opens artifacts relative to a base directory
type FileSource struct {
	dir string
}

// NewFileSource creates a source rooted at dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Open implements domain.ArtifactSource. Absolute paths are used as given.
func (s *FileSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(s.dir, path)
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, full)
		}
		return nil, fmt.Errorf("open %s: %w", full, err)
	}
	return f, nil
}
