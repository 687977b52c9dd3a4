package images

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"listsync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// objectKey builds the storage key for an image id.
func objectKey(imageID string) string {
	return "images/" + imageID
}

// Store persists item image bytes in blob storage, keyed by image id.
//
// Image bytes never leave the device through sync; this store exists so the
// local UI and the import path (documents may embed base64 payloads) have
// somewhere to put them.
type Store struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewStore creates an image store on the given bucket.
func NewStore(client storage.Client, bucket string, logger *zap.Logger) *Store {
	return &Store{client: client, bucket: bucket, logger: logger}
}

// EnsureBucket creates the image bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check image bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create image bucket: %w", err)
	}
	return nil
}

// PutImage stores raw image bytes under the image id.
func (s *Store) PutImage(ctx context.Context, imageID string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(imageID),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("failed to store image %s: %w", imageID, err)
	}
	return nil
}

// GetImage loads the raw bytes of an image.
func (s *Store) GetImage(ctx context.Context, imageID string) ([]byte, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, objectKey(imageID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", imageID, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", imageID, err)
	}
	return data, nil
}

// RemoveImage deletes the stored bytes of an image. Missing objects are not
// an error; the record may outlive a blob that was never uploaded.
func (s *Store) RemoveImage(ctx context.Context, imageID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectKey(imageID), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove image %s: %w", imageID, err)
	}
	return nil
}

// CopyImage duplicates stored bytes under a new image id. Used by suggestion
// copies, which must never share image ids with their source.
func (s *Store) CopyImage(ctx context.Context, srcImageID, dstImageID string) error {
	data, err := s.GetImage(ctx, srcImageID)
	if err != nil {
		return err
	}
	return s.PutImage(ctx, dstImageID, data)
}
