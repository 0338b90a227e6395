// Package storage keeps uploaded artwork images on local disk or in a
// Google Cloud Storage bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

const (
	BackendLocal = "local"
	BackendGCS   = "gcs"

	DefaultMaxBytes int64 = 5 << 20
)

// UploadConfig holds the image upload limits and the backend selection.
type UploadConfig struct {
	Backend  string
	Dir      string
	MaxBytes int64

	Bucket        string
	PublicBaseURL string
}

func (c UploadConfig) maxBytes() int64 {
	if c.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return c.MaxBytes
}

// New returns the image store selected by cfg.Backend.
func New(ctx context.Context, cfg UploadConfig, log zerolog.Logger) (ports.ImageStore, error) {
	switch cfg.Backend {
	case "", BackendLocal:
		return NewLocalStore(cfg, log)
	case BackendGCS:
		return NewGCSStore(ctx, cfg, log)
	}
	return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
}

// image is an upload that passed the size and content checks.
type image struct {
	name        string
	contentType string
	data        []byte
}

func (i *image) reader() io.Reader { return bytes.NewReader(i.data) }

// inspect reads the upload within the size limit and sniffs its content.
// The declared filename and extension are never trusted for the type.
func inspect(upload *ports.ImageUpload, cfg UploadConfig) (*image, error) {
	if upload == nil || upload.Content == nil {
		return nil, domain.Validation("image", "image is required")
	}

	limit := cfg.maxBytes()
	if upload.Size > limit {
		return nil, domain.Validation("image", "image must be at most %d bytes", limit)
	}
	data, err := io.ReadAll(io.LimitReader(upload.Content, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, domain.Validation("image", "image must be at most %d bytes", limit)
	}
	if len(data) == 0 {
		return nil, domain.Validation("image", "image is empty")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, domain.Validation("image", "only image uploads are allowed")
	}

	return &image{
		name:        objectName(upload.Filename, mtype.Extension(), time.Now()),
		contentType: mtype.String(),
		data:        data,
	}, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// objectName builds "<unix-millis>-<sanitised filename>".
func objectName(filename, ext string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "image" + ext
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}
