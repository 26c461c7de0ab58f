package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/edulearn-backend/internal/platform/gcp"
	"github.com/yungbote/edulearn-backend/internal/platform/localmedia"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type storageMode string

const (
	storageModeLocal       storageMode = "local"
	storageModeGCS         storageMode = storageMode(gcp.ObjectStorageModeGCS)
	storageModeGCSEmulator storageMode = storageMode(gcp.ObjectStorageModeGCSEmulator)
)

var newBucketStore = gcp.NewBucketStore

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidMode         StorageProviderBootstrapErrorCode = "invalid_mode"
	StorageProviderBootstrapErrorMissingBucket       StorageProviderBootstrapErrorCode = "missing_bucket"
	StorageProviderBootstrapErrorMissingEmulatorHost StorageProviderBootstrapErrorCode = "missing_emulator_host"
	StorageProviderBootstrapErrorConnectFailed       StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code  StorageProviderBootstrapErrorCode
	Mode  string
	Cause error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf("object storage bootstrap failed (code=%s mode=%q): %v", e.Code, e.Mode, e.Cause)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// objectStore is the media backend plus its shutdown hook.
type objectStore struct {
	services.ObjectStore
	close func() error
}

// resolveObjectStore selects the media backend from OBJECT_STORAGE_MODE.
func resolveObjectStore(ctx context.Context, log *logger.Logger, cfg Config) (*objectStore, error) {
	mode := normalizeStorageMode(cfg.ObjectStorageMode)
	fail := func(code StorageProviderBootstrapErrorCode, cause error) error {
		err := &StorageProviderBootstrapError{Code: code, Mode: string(mode), Cause: cause}
		log.Error("Object storage provider bootstrap failed", "mode", mode, "error_code", code, "error", cause)
		return err
	}

	log.Info("Selecting object storage provider", "mode", mode)
	switch mode {
	case storageModeLocal:
		store, err := localmedia.NewStore(cfg.LocalMediaDir, cfg.LocalMediaBaseURL)
		if err != nil {
			return nil, fail(StorageProviderBootstrapErrorConnectFailed, err)
		}
		return &objectStore{ObjectStore: store, close: func() error { return nil }}, nil
	case storageModeGCS, storageModeGCSEmulator:
		if strings.TrimSpace(cfg.GCSBucketName) == "" {
			return nil, fail(StorageProviderBootstrapErrorMissingBucket, errors.New("GCS_BUCKET_NAME is required"))
		}
		if mode == storageModeGCSEmulator && strings.TrimSpace(cfg.StorageEmulatorHost) == "" {
			return nil, fail(StorageProviderBootstrapErrorMissingEmulatorHost, errors.New("STORAGE_EMULATOR_HOST is required"))
		}
		bucket, err := newBucketStore(ctx, log, gcp.BucketConfig{
			Mode:          gcp.ObjectStorageMode(mode),
			BucketName:    cfg.GCSBucketName,
			CDNDomain:     cfg.CDNDomain,
			EmulatorHost:  cfg.StorageEmulatorHost,
			PublicBaseURL: cfg.StoragePublicURL,
			Credentials:   cfg.GCSCredentials,
		})
		if err != nil {
			return nil, fail(StorageProviderBootstrapErrorConnectFailed, err)
		}
		return &objectStore{ObjectStore: bucket, close: bucket.Close}, nil
	default:
		return nil, fail(StorageProviderBootstrapErrorInvalidMode, fmt.Errorf("unsupported object storage mode %q", mode))
	}
}

func storageBootstrapCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return StorageProviderBootstrapErrorConnectFailed
}

func normalizeStorageMode(raw string) storageMode {
	mode := storageMode(strings.ToLower(strings.TrimSpace(raw)))
	if mode == "" {
		return storageModeLocal
	}
	return mode
}
