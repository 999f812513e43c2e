// Package assets uploads binary content (page previews, attachments, rendered
// PDF pages, generated images) to the shared object store and returns durable
// public URLs.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/devhardik21/RootStudy/internal/apperr"
)

// Asset is a stored object: its public URL and the object key it lives under.
type Asset struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// Store persists binary content. A failed upload is always reported as an
// error, never as an empty Asset.
type Store interface {
	UploadFile(ctx context.Context, localPath, contentType string) (Asset, error)
	UploadBytes(ctx context.Context, data []byte, contentType string) (Asset, error)
}

// GCSStore implements Store on a single Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

// UploadFile stores the file at localPath under a fresh object key.
func (s *GCSStore) UploadFile(ctx context.Context, localPath, contentType string) (Asset, error) {
	key := objectKey(extensionFor(localPath, contentType))
	open := func() (io.ReadCloser, error) {
		return os.Open(localPath)
	}
	if err := s.uploadWithRetry(ctx, key, contentType, open); err != nil {
		return Asset{}, apperr.Storage(fmt.Sprintf("upload of %s failed", filepath.Base(localPath)), err)
	}
	return Asset{URL: s.publicURL(key), ID: key}, nil
}

// UploadBytes stores an in-memory buffer under a fresh object key.
func (s *GCSStore) UploadBytes(ctx context.Context, data []byte, contentType string) (Asset, error) {
	key := objectKey(extensionFor("", contentType))
	open := func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	if err := s.uploadWithRetry(ctx, key, contentType, open); err != nil {
		return Asset{}, apperr.Storage("buffer upload failed", err)
	}
	return Asset{URL: s.publicURL(key), ID: key}, nil
}

// uploadWithRetry writes one object, retrying transient failures with
// exponential backoff. open is called per attempt so each retry re-reads the
// content from the start.
func (s *GCSStore) uploadWithRetry(ctx context.Context, key, contentType string, open func() (io.ReadCloser, error)) error {
	const maxRetries = 4
	var backoff = 1 * time.Second
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		err := func() error {
			reader, err := open()
			if err != nil {
				return fmt.Errorf("could not open content for %s: %w", key, err)
			}
			defer reader.Close()

			writeCtx, cancel := context.WithTimeout(ctx, time.Second*50)
			defer cancel()

			w := s.client.Bucket(s.bucket).Object(key).NewWriter(writeCtx)
			if contentType != "" {
				w.ContentType = contentType
			}
			if _, err := io.Copy(w, reader); err != nil {
				_ = w.Close()
				return fmt.Errorf("io.Copy to GCS failed: %w", err)
			}
			if err := w.Close(); err != nil {
				return fmt.Errorf("failed to close GCS writer (finalize upload): %w", err)
			}
			return nil
		}()

		if err == nil {
			return nil
		}

		lastErr = err
		slog.Warn(
			"Upload failed, will retry.",
			"gcsObject", key,
			"attempt", i+1,
			"maxRetries", maxRetries,
			"backoff", backoff.String(),
			"error", err,
		)

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			slog.Error("Context cancelled during backoff. Aborting retries.", "gcsObject", key, "error", ctx.Err())
			return ctx.Err()
		}
	}
	slog.Error("Upload failed after all retries.", "gcsObject", key, "error", lastErr)
	return fmt.Errorf("upload for %s failed after all retries: %w", key, lastErr)
}

func (s *GCSStore) publicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}

func objectKey(ext string) string {
	return fmt.Sprintf("assets/%s%s", uuid.NewString(), ext)
}

// extensionFor picks an object-key extension from the source path, falling
// back to the declared content type.
func extensionFor(localPath, contentType string) string {
	if ext := filepath.Ext(localPath); ext != "" {
		return strings.ToLower(ext)
	}
	switch {
	case strings.Contains(contentType, "application/pdf"):
		return ".pdf"
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(contentType, "image/svg"):
		return ".svg"
	case strings.HasPrefix(contentType, "audio/mpeg"):
		return ".mp3"
	case strings.HasPrefix(contentType, "audio/wav"):
		return ".wav"
	default:
		return ""
	}
}
