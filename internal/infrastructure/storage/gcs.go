package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

const gcsObjectPrefix = "artworks/"

// GCSStore writes images into a Cloud Storage bucket and hands out their
// public URLs as references.
type GCSStore struct {
	client *storage.Client
	cfg    UploadConfig
	log    zerolog.Logger
}

// NewGCSStore uses Application Default Credentials.
func NewGCSStore(ctx context.Context, cfg UploadConfig, log zerolog.Logger) (*GCSStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs upload backend requires a bucket")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "https://storage.googleapis.com/" + cfg.Bucket
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &GCSStore{client: client, cfg: cfg, log: log}, nil
}

func (s *GCSStore) Save(ctx context.Context, upload *ports.ImageUpload) (string, error) {
	img, err := inspect(upload, s.cfg)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	key := gcsObjectPrefix + uuid.NewString() + "/" + img.name
	w := s.client.Bucket(s.cfg.Bucket).Object(key).NewWriter(ctx)
	w.ContentType = img.contentType
	if _, err := io.Copy(w, img.reader()); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write image to gcs: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close gcs writer: %w", err)
	}

	s.log.Debug().Str("bucket", s.cfg.Bucket).Str("key", key).Msg("image stored")
	return s.cfg.PublicBaseURL + "/" + key, nil
}

func (s *GCSStore) Delete(ctx context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, s.cfg.PublicBaseURL+"/")
	if !ok || !strings.HasPrefix(key, gcsObjectPrefix) {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := s.client.Bucket(s.cfg.Bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete gcs object %q: %w", key, err)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
