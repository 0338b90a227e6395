package ports

import (
	"context"
	"io"
)

// ImageUpload is a single uploaded image as handed over by the transport.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ImageStore persists uploaded images and returns an opaque reference that
// is stored verbatim in Artwork.Image.
type ImageStore interface {
	// Save validates and stores the upload. Oversized or non-image uploads
	// fail with a ValidationError.
	Save(ctx context.Context, upload *ImageUpload) (string, error)
	Delete(ctx context.Context, ref string) error
}
