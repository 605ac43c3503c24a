package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes uploaded images to a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a
// disk-backed store rooted at it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the stream to a uniquely named file and returns its public
// /uploads/... path. The write goes through a temp file so a failed
// upload never leaves a partial image behind.
func (s *DiskStore) Save(originalFilename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("biota-%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(originalFilename)))

	tmp, err := os.CreateTemp(s.dir, ".incoming-*")
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize upload file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to store upload file: %w", err)
	}

	return PublicPrefix + name, nil
}

// Delete removes a locally stored image given its public path. Paths
// outside the /uploads/ prefix are external URLs and are left alone.
func (s *DiskStore) Delete(publicPath string) error {
	if !strings.HasPrefix(publicPath, PublicPrefix) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(publicPath, PublicPrefix))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}
