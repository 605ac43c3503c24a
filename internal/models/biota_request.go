package models

import "io"

// UploadedImage is a decoded multipart file: the stream, the original
// filename, and the reported size. The service performs size and
// content-type validation; the decoder does not.
type UploadedImage struct {
	Reader   io.ReadSeeker
	Filename string
	Size     int64
}

// CreateBiotaRequest carries the fields for a new catalog entry. Exactly
// one of File or ImageURL must be supplied.
type CreateBiotaRequest struct {
	Name        string
	Location    string
	Category    string  // empty means the configured default category
	Description *string // nil means empty description
	ImageURL    string
	File        *UploadedImage
}

// UpdateBiotaRequest is a partial patch. Empty strings mean "not
// provided" for Name/Location/Category/ImageURL; a nil Description means
// the key was absent, while a pointer to "" clears the description.
// A nil File with an empty ImageURL leaves the image unchanged.
type UpdateBiotaRequest struct {
	Name        string
	Location    string
	Category    string
	Description *string
	ImageURL    string
	File        *UploadedImage
}

// BiotaFilters are the optional list predicates, combined with AND.
// Search is a substring match over name, description, and location;
// Category and Location require exact equality.
type BiotaFilters struct {
	Search   string
	Category string
	Location string
}
