package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PutOptions mirror the blob-store collaborator contract: caching
// metadata for the served object and whether an existing key may be
// overwritten.
type PutOptions struct {
	CacheControl string
	Upsert       bool
}

// BlobStore is the storage half of the remote backend: named binary
// objects resolvable to public URLs.
type BlobStore interface {
	Put(path string, data []byte, opts PutOptions) error
	PublicURL(path string) (string, error)
}

// DiskBlobStore keeps objects on the local filesystem and serves them
// under a static URL prefix. The Cache-Control metadata is applied by
// the static route when the object is served.
type DiskBlobStore struct {
	baseDir    string // absolute or relative dir objects live under
	staticBase string // URL path prefix the router serves baseDir at
	publicBase string // scheme://host used to build absolute URLs
}

func NewDiskBlobStore(baseDir, staticBase, publicBase string) *DiskBlobStore {
	return &DiskBlobStore{
		baseDir:    baseDir,
		staticBase: strings.TrimRight(staticBase, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (s *DiskBlobStore) Put(path string, data []byte, opts PutOptions) error {
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(path))

	if !opts.Upsert {
		if _, err := os.Stat(absPath); err == nil {
			return ErrKeyExists
		}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	if err := os.WriteFile(absPath, data, 0644); err != nil {
		_ = os.Remove(absPath)
		return fmt.Errorf("failed to write object: %w", err)
	}

	return nil
}

func (s *DiskBlobStore) PublicURL(path string) (string, error) {
	if s.publicBase == "" || s.staticBase == "" {
		return "", ErrURLResolution
	}
	return s.publicBase + s.staticBase + "/" + strings.TrimLeft(path, "/"), nil
}
