package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
)

const archiveUploadTimeout = 2 * time.Minute

// GCSArchiver uploads saved files to a Cloud Storage bucket.
type GCSArchiver struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSArchiver archives into bucket under prefix. The client is owned by
// the caller.
func NewGCSArchiver(client *storage.Client, bucket, prefix string) (*GCSArchiver, error) {
	if client == nil {
		return nil, errors.New("gcs archiver: client is required")
	}
	if bucket == "" {
		return nil, errors.New("gcs archiver: bucket is required")
	}
	return &GCSArchiver{client: client, bucket: bucket, prefix: prefix}, nil
}

// ObjectName returns the object a local file is archived to.
func (a *GCSArchiver) ObjectName(localPath string) string {
	return path.Join(a.prefix, filepath.Base(localPath))
}

// Archive uploads localPath.
func (a *GCSArchiver) Archive(ctx context.Context, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open file %q: %w", localPath, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, archiveUploadTimeout)
	defer cancel()

	w := a.client.Bucket(a.bucket).Object(a.ObjectName(localPath)).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("copy file to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}
