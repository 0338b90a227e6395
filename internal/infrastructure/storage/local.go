package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

// LocalPrefix is the reference prefix of locally stored images. The HTTP
// server exposes the upload directory under the same path.
const LocalPrefix = "uploads/"

// LocalStore writes images into a directory on disk.
type LocalStore struct {
	cfg UploadConfig
	log zerolog.Logger
}

func NewLocalStore(cfg UploadConfig, log zerolog.Logger) (*LocalStore, error) {
	if cfg.Dir == "" {
		cfg.Dir = "uploads"
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{cfg: cfg, log: log}, nil
}

func (s *LocalStore) Save(_ context.Context, upload *ports.ImageUpload) (string, error) {
	img, err := inspect(upload, s.cfg)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.cfg.Dir, img.name)
	if err := os.WriteFile(path, img.data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	s.log.Debug().Str("path", path).Str("content_type", img.contentType).Int("bytes", len(img.data)).Msg("image stored")
	return LocalPrefix + img.name, nil
}

// Delete removes an image this store wrote. References it did not produce,
// such as external URLs, are left alone.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if !strings.HasPrefix(ref, LocalPrefix) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(ref, LocalPrefix))
	err := os.Remove(filepath.Join(s.cfg.Dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

// Dir is the directory images are written to.
func (s *LocalStore) Dir() string { return s.cfg.Dir }
