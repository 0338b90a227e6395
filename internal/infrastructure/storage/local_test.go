package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func newLocal(t *testing.T, maxBytes int64) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(UploadConfig{Dir: t.TempDir(), MaxBytes: maxBytes}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	return s
}

func TestLocalStore_SaveAndDelete(t *testing.T) {
	s := newLocal(t, 0)

	ref, err := s.Save(context.Background(), &ports.ImageUpload{
		Filename: "../../etc/My Painting!.png",
		Size:     int64(len(pngBytes)),
		Content:  bytes.NewReader(pngBytes),
	})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !strings.HasPrefix(ref, LocalPrefix) || !strings.HasSuffix(ref, "-My_Painting_.png") {
		t.Fatalf("unexpected reference %q", ref)
	}

	path := filepath.Join(s.Dir(), strings.TrimPrefix(ref, LocalPrefix))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	if err := s.Delete(context.Background(), ref); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, got %v", err)
	}
	if err := s.Delete(context.Background(), ref); err != nil {
		t.Fatalf("deleting twice must not fail: %v", err)
	}
	if err := s.Delete(context.Background(), "https://picsum.photos/800/600"); err != nil {
		t.Fatalf("foreign references are ignored: %v", err)
	}
}

func TestLocalStore_RejectsNonImages(t *testing.T) {
	s := newLocal(t, 0)

	_, err := s.Save(context.Background(), &ports.ImageUpload{
		Filename: "fake.png",
		Content:  strings.NewReader("just some text pretending to be a png"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLocalStore_EnforcesSizeLimit(t *testing.T) {
	s := newLocal(t, 16)

	// Declared size within the limit but actual content larger.
	_, err := s.Save(context.Background(), &ports.ImageUpload{
		Filename: "big.png",
		Size:     10,
		Content:  bytes.NewReader(pngBytes),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = s.Save(context.Background(), &ports.ImageUpload{Filename: "big.png", Size: 1 << 30, Content: bytes.NewReader(pngBytes)})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for declared size, got %v", err)
	}
}

func TestLocalStore_MissingUpload(t *testing.T) {
	s := newLocal(t, 0)
	if _, err := s.Save(context.Background(), nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	cases := map[string]string{
		"photo.jpg":       "1700000000123-photo.jpg",
		`C:\tmp\art.webp`: "1700000000123-art.webp",
		"...":             "1700000000123-image.png",
		"":                "1700000000123-image.png",
	}
	for in, want := range cases {
		if got := objectName(in, ".png", now); got != want {
			t.Errorf("objectName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	if _, err := New(context.Background(), UploadConfig{Backend: "s3"}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
