// Package assets provides lazy loading, decoding, scaling and caching
// of flag images keyed by country code and target size.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"geoquiz/internal/domain"
)

// Store is the backing asset store the cache reads from. The cache
// owns decoding; a Store only produces encoded bytes.
type Store interface {
	// LoadImageBytes returns the encoded image for the country code.
	// Returns an error wrapping domain.ErrNotFound when no asset
	// exists for the code.
	LoadImageBytes(ctx context.Context, code string) ([]byte, error)
}

// DirStore reads flag images from a directory laid out as
// <dir>/<lowercase code>.png, the layout the flag downloader produces.
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// LoadImageBytes implements Store.
func (d *DirStore) LoadImageBytes(_ context.Context, code string) ([]byte, error) {
	name := strings.ToLower(strings.TrimSpace(code)) + ".png"
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: flag asset %q", domain.ErrNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("read flag asset %q: %w", code, err)
	}
	return data, nil
}

// Missing returns the codes among the given ones that have no asset on
// disk, without loading anything.
func (d *DirStore) Missing(codes []string) []string {
	var missing []string
	for _, code := range codes {
		name := strings.ToLower(strings.TrimSpace(code)) + ".png"
		if _, err := os.Stat(filepath.Join(d.dir, name)); err != nil {
			missing = append(missing, code)
		}
	}
	return missing
}
