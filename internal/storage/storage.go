// Package storage persists uploaded catalog images. Disk-backed
// deployments write files under a local upload directory and serve them
// at /uploads/<name>; ephemeral-filesystem deployments reject uploads
// outright so images are never silently dropped.
package storage

import (
	"fmt"
	"io"

	"aquabio-be/internal/apperrors"
)

// PublicPrefix is the URL path prefix under which locally stored images
// are served. Image references outside this prefix (external URLs) are
// never touched by Delete.
const PublicPrefix = "/uploads/"

// ImageStore saves uploaded image files and deletes previously stored
// ones. Save returns the server-relative public path recorded on the
// entry.
type ImageStore interface {
	Save(originalFilename string, r io.Reader) (string, error)
	Delete(publicPath string) error
}

// NewEphemeralStore returns an ImageStore for deployments without a
// persistent filesystem. Save always fails with ErrNotImplemented;
// entries can still be created with direct image URLs.
func NewEphemeralStore() ImageStore {
	return ephemeralStore{}
}

type ephemeralStore struct{}

func (ephemeralStore) Save(string, io.Reader) (string, error) {
	return "", fmt.Errorf("%w: file uploads are not supported on an ephemeral filesystem; supply an image URL instead", apperrors.ErrNotImplemented)
}

func (ephemeralStore) Delete(string) error {
	// Nothing was ever stored locally.
	return nil
}
