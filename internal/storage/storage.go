package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"regexp"
	"strings"

	ierr "dearmind-backend/internal/errors"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const publicURLFormat = "https://storage.googleapis.com/%s/%s"

type Uploader interface {
	// Upload writes data as a publicly readable object and returns its URL.
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
}

type BucketUploader struct {
	bucket *gcs.BucketHandle
	name   string
}

var _ Uploader = BucketUploader{}

func New(bucket *gcs.BucketHandle, name string) BucketUploader {
	return BucketUploader{
		bucket: bucket,
		name:   name,
	}
}

func (u BucketUploader) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	w := u.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.PredefinedACL = "publicRead"

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload object: %w, path: %s", err, objectPath)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload object: %w, path: %s", err, objectPath)
	}

	return PublicURL(u.name, objectPath), nil
}

func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf(publicURLFormat, bucket, objectPath)
}

// ImagePath builds "<prefix>/<uid>/<uuid>.png".
func ImagePath(prefix, uid string) string {
	return fmt.Sprintf("%s/%s/%s.png", prefix, uid, uuid.NewString())
}

var dataURLHeader = regexp.MustCompile(`^data:image/\w+;base64,`)

// DecodeDataURL accepts either a data:image/...;base64, URL or a bare base64 string.
func DecodeDataURL(s string) ([]byte, error) {
	payload := strings.TrimSpace(dataURLHeader.ReplaceAllString(strings.TrimSpace(s), ""))
	if payload == "" {
		return nil, ierr.BadRequestf("image is required")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ierr.BadRequestf("image must be base64 encoded")
	}
	if len(data) == 0 {
		return nil, ierr.BadRequestf("image is empty")
	}
	return data, nil
}
