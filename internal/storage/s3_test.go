package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewS3Storage(t *testing.T) {
	cfg := S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:4566", // LocalStack-like endpoint
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	}

	storage, err := NewS3Storage(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewS3Storage() error = %v", err)
	}

	if storage.bucket != cfg.Bucket {
		t.Errorf("bucket = %v, want %v", storage.bucket, cfg.Bucket)
	}
	if storage.region != cfg.Region {
		t.Errorf("region = %v, want %v", storage.region, cfg.Region)
	}
}

func TestS3Storage_Publish_MockServer(t *testing.T) {
	// Create a mock S3 server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT method, got %s", r.Method)
		}

		if !strings.HasSuffix(r.URL.Path, "/test-bucket/ost/ost_track_01.mp3") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read body: %v", err)
		}
		if !strings.Contains(string(body), "track content") {
			t.Errorf("unexpected body: %s", string(body))
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		Endpoint:        server.URL,
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	}

	storage, err := NewS3Storage(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewS3Storage() error = %v", err)
	}

	track := filepath.Join(t.TempDir(), "ost_track_01.mp3")
	if err := os.WriteFile(track, []byte("track content"), 0600); err != nil {
		t.Fatalf("failed to write track: %v", err)
	}

	url, err := storage.Publish(context.Background(), "ost/ost_track_01.mp3", track)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	expectedURL := "https://test-bucket.s3.us-east-1.amazonaws.com/ost/ost_track_01.mp3"
	if url != expectedURL {
		t.Errorf("url = %v, want %v", url, expectedURL)
	}
}

func TestS3Storage_Publish_Errors(t *testing.T) {
	storage, err := NewS3Storage(context.Background(), S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:4566",
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	})
	if err != nil {
		t.Fatalf("NewS3Storage() error = %v", err)
	}

	t.Run("empty key", func(t *testing.T) {
		if _, err := storage.Publish(context.Background(), "/", "track.mp3"); !errors.Is(err, ErrEmptyKey) {
			t.Errorf("expected ErrEmptyKey, got %v", err)
		}
	})

	t.Run("missing track", func(t *testing.T) {
		_, err := storage.Publish(context.Background(), "ost/missing.mp3", "/non/existent/track.mp3")
		if err == nil || !strings.Contains(err.Error(), "open track") {
			t.Errorf("expected open track error, got %v", err)
		}
	})
}
