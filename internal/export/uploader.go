package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// Uploader provides an interface for object storage writes.
// This interface enables mocking and testing of export uploads.
type Uploader interface {
	// Upload streams r into bucket/object.
	Upload(ctx context.Context, bucket, object, contentType string, r io.Reader) error
}

// GCSUploader is the Uploader backed by Google Cloud Storage. It assumes
// Application Default Credentials are configured.
type GCSUploader struct {
	client *storage.Client
}

// NewGCSUploader creates a storage client shared by every upload.
func NewGCSUploader(ctx context.Context) (*GCSUploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSUploader{client: client}, nil
}

// Close releases the storage client.
func (u *GCSUploader) Close() error {
	return u.client.Close()
}

// Upload implements Uploader.
func (u *GCSUploader) Upload(ctx context.Context, bucket, object, contentType string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := u.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("copy to GCS writer: %w", err)
	}

	// Close finalizes the upload.
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}

var _ Uploader = (*GCSUploader)(nil)
