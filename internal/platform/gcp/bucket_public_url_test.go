package gcp

import "testing"

func TestPublicURL(t *testing.T) {
	cases := []struct {
		name       string
		publicBase string
		cdn        string
		want       string
	}{
		{name: "gcs_default", want: "https://storage.googleapis.com/media/courses/1/video.mp4"},
		{name: "cdn", cdn: "cdn.example.com", want: "https://cdn.example.com/courses/1/video.mp4"},
		{name: "emulator_base", publicBase: "http://localhost:4443", cdn: "cdn.example.com", want: "http://localhost:4443/media/courses/1/video.mp4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := publicURL(tc.publicBase, tc.cdn, "media", "/courses/1/video.mp4")
			if got != tc.want {
				t.Fatalf("publicURL: want=%q got=%q", tc.want, got)
			}
		})
	}
}

func TestResolvePublicBaseURL(t *testing.T) {
	got, err := resolvePublicBaseURL(BucketConfig{Mode: ObjectStorageModeGCSEmulator, EmulatorHost: "http://fake-gcs:4443/"})
	if err != nil {
		t.Fatalf("resolvePublicBaseURL: %v", err)
	}
	if got != "http://fake-gcs:4443" {
		t.Fatalf("emulator base: want=%q got=%q", "http://fake-gcs:4443", got)
	}

	got, err = resolvePublicBaseURL(BucketConfig{Mode: ObjectStorageModeGCS})
	if err != nil || got != "" {
		t.Fatalf("gcs default: want empty got=%q err=%v", got, err)
	}

	if _, err := resolvePublicBaseURL(BucketConfig{PublicBaseURL: "not a url"}); err == nil {
		t.Fatalf("expected error for relative public base url")
	}
}

func TestCredentialOptions(t *testing.T) {
	if got := len(credentialOptions("")); got != 1 {
		t.Fatalf("default credentials: want scope only, got %d options", got)
	}
	if got := len(credentialOptions(`{"type":"service_account"}`)); got != 2 {
		t.Fatalf("inline json: want 2 options, got %d", got)
	}
	if got := len(credentialOptions("/secrets/sa.json")); got != 2 {
		t.Fatalf("key file: want 2 options, got %d", got)
	}
}
