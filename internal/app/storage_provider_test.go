package app

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/edulearn-backend/internal/platform/gcp"
	"github.com/yungbote/edulearn-backend/internal/platform/localmedia"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

func TestResolveObjectStoreErrorCodes(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want StorageProviderBootstrapErrorCode
	}{
		{"invalid mode", Config{ObjectStorageMode: "s3"}, StorageProviderBootstrapErrorInvalidMode},
		{"gcs without bucket", Config{ObjectStorageMode: "gcs"}, StorageProviderBootstrapErrorMissingBucket},
		{"emulator without host", Config{ObjectStorageMode: "gcs_emulator", GCSBucketName: "media"}, StorageProviderBootstrapErrorMissingEmulatorHost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolveObjectStore(context.Background(), logger.Nop(), tc.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			var got *StorageProviderBootstrapError
			if !errors.As(err, &got) {
				t.Fatalf("expected StorageProviderBootstrapError, got=%T", err)
			}
			if got.Code != tc.want {
				t.Fatalf("code: want=%q got=%q", tc.want, got.Code)
			}
		})
	}
}

func TestResolveObjectStoreConnectFailed(t *testing.T) {
	orig := newBucketStore
	t.Cleanup(func() { newBucketStore = orig })

	var gotCfg gcp.BucketConfig
	newBucketStore = func(ctx context.Context, log *logger.Logger, cfg gcp.BucketConfig) (*gcp.BucketStore, error) {
		gotCfg = cfg
		return nil, errors.New("dial tcp: connection refused")
	}

	_, err := resolveObjectStore(context.Background(), logger.Nop(), Config{
		ObjectStorageMode:   "gcs_emulator",
		GCSBucketName:       "media",
		StorageEmulatorHost: "http://fake-gcs:4443",
	})
	if storageBootstrapCode(err) != StorageProviderBootstrapErrorConnectFailed {
		t.Fatalf("code: got %q (%v)", storageBootstrapCode(err), err)
	}
	if gotCfg.Mode != gcp.ObjectStorageModeGCSEmulator || gotCfg.BucketName != "media" || gotCfg.EmulatorHost != "http://fake-gcs:4443" {
		t.Fatalf("bucket config not forwarded: %+v", gotCfg)
	}
}

func TestResolveObjectStoreDefaultsToLocal(t *testing.T) {
	dir := t.TempDir()
	store, err := resolveObjectStore(context.Background(), logger.Nop(), Config{
		LocalMediaDir:     dir,
		LocalMediaBaseURL: "http://localhost:8080/media/",
	})
	if err != nil {
		t.Fatalf("resolveObjectStore: %v", err)
	}
	if _, ok := store.ObjectStore.(*localmedia.Store); !ok {
		t.Fatalf("expected local store, got %T", store.ObjectStore)
	}
	if got := store.PublicURL("courses/1/video.mp4"); got != "http://localhost:8080/media/courses/1/video.mp4" {
		t.Fatalf("public url: %q", got)
	}
	if err := store.close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
