package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ObjectStorage uploads files and hands back stable public retrieval URLs.
type ObjectStorage interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) error
	PublicURL(path string) string
}

type gcsStorage struct {
	client     *storage.Client
	bucket     string
	publicBase string
}

// NewGCSStorage creates a Google Cloud Storage backed ObjectStorage.
// publicBase overrides the default storage.googleapis.com URL (e.g. a CDN domain).
func NewGCSStorage(ctx context.Context, bucket, publicBase string) (ObjectStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket name is empty")
	}

	client, err := storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &gcsStorage{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (s *gcsStorage) Upload(ctx context.Context, path, contentType string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %w", err)
	}
	return nil
}

func (s *gcsStorage) PublicURL(path string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + path
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path)
}

// LocalStorage keeps uploads on the local filesystem. Used in development
// and in tests; the public URL base is expected to be served separately.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Upload(_ context.Context, path, _ string, r io.Reader) error {
	full := filepath.Join(s.dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) PublicURL(path string) string {
	return s.baseURL + "/" + path
}
