package gcp

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type ObjectStorageMode string

const (
	ObjectStorageModeGCS         ObjectStorageMode = "gcs"
	ObjectStorageModeGCSEmulator ObjectStorageMode = "gcs_emulator"
)

type BucketConfig struct {
	Mode          ObjectStorageMode
	BucketName    string
	CDNDomain     string
	EmulatorHost  string
	PublicBaseURL string
	// Credentials is inline service-account JSON or a key file path.
	Credentials string
}

// BucketStore writes course media objects to a single GCS bucket.
type BucketStore struct {
	log           *logger.Logger
	client        *storage.Client
	bucket        string
	cdnDomain     string
	publicBaseURL string
}

func NewBucketStore(ctx context.Context, log *logger.Logger, cfg BucketConfig) (*BucketStore, error) {
	if strings.TrimSpace(cfg.BucketName) == "" {
		return nil, fmt.Errorf("missing GCS bucket name")
	}
	publicBase, err := resolvePublicBaseURL(cfg)
	if err != nil {
		return nil, err
	}
	client, err := newStorageClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	storeLog := log.With("service", "BucketStore")
	storeLog.Info("Object storage initialized", "mode", cfg.Mode, "bucket", cfg.BucketName, "public_base_url", publicBase)
	return &BucketStore{
		log:           storeLog,
		client:        client,
		bucket:        cfg.BucketName,
		cdnDomain:     strings.TrimSpace(cfg.CDNDomain),
		publicBaseURL: publicBase,
	}, nil
}

func newStorageClient(ctx context.Context, cfg BucketConfig) (*storage.Client, error) {
	switch cfg.Mode {
	case ObjectStorageModeGCS, "":
		return storage.NewClient(ctx, credentialOptions(cfg.Credentials)...)
	case ObjectStorageModeGCSEmulator:
		host := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
		if host == "" {
			return nil, fmt.Errorf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST", cfg.Mode)
		}
		_ = os.Setenv("STORAGE_EMULATOR_HOST", host)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	default:
		return nil, fmt.Errorf("invalid OBJECT_STORAGE_MODE=%q", cfg.Mode)
	}
}

func resolvePublicBaseURL(cfg BucketConfig) (string, error) {
	if raw := strings.TrimSpace(cfg.PublicBaseURL); raw != "" {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return "", fmt.Errorf("invalid public base url %q; expected absolute URL", raw)
		}
		return strings.TrimRight(raw, "/"), nil
	}
	if cfg.Mode == ObjectStorageModeGCSEmulator {
		return strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/"), nil
	}
	return "", nil
}

func (s *BucketStore) Upload(ctx context.Context, key string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (s *BucketStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
		return fmt.Errorf("failed to delete GCS object %q: %w", key, err)
	}
	return nil
}

func (s *BucketStore) PublicURL(key string) string {
	return publicURL(s.publicBaseURL, s.cdnDomain, s.bucket, key)
}

func (s *BucketStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func publicURL(publicBase, cdnDomain, bucket, key string) string {
	key = strings.TrimLeft(key, "/")
	switch {
	case publicBase != "":
		return fmt.Sprintf("%s/%s/%s", publicBase, bucket, key)
	case cdnDomain != "":
		return fmt.Sprintf("https://%s/%s", cdnDomain, key)
	default:
		return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
	}
}
