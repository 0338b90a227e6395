package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Port != "8080" || cfg.Mongo.Database != "art_gallery" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.Auth.TokenTTL)
	}
	if !cfg.Redis.Enabled || cfg.Upload.Backend != "local" || cfg.Upload.MaxBytes != 5<<20 {
		t.Fatalf("unexpected defaults: %+v %+v", cfg.Redis, cfg.Upload)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.HTTP.CORSOrigins)
	}
	if !cfg.Development() {
		t.Fatalf("expected development by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"ENV":                "production",
		"CORS_ORIGINS":       "https://a.example,https://b.example",
		"REDIS_ENABLED":      "false",
		"UPLOAD_BACKEND":     "gcs",
		"UPLOAD_GCS_BUCKET":  "art",
		"RECONCILER_WORKERS": "8",
		"RECONCILER_BACKOFF": "2s",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Development() {
		t.Fatalf("expected production")
	}
	if len(cfg.HTTP.CORSOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Redis.Enabled {
		t.Fatalf("expected redis disabled")
	}
	if cfg.Upload.Backend != "gcs" || cfg.Upload.GCSBucket != "art" {
		t.Fatalf("unexpected upload config %+v", cfg.Upload)
	}
	if cfg.Reconciler.Workers != 8 || cfg.Reconciler.Backoff != 2*time.Second {
		t.Fatalf("unexpected reconciler config %+v", cfg.Reconciler)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}
