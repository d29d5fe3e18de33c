package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
)

type StorageBucket struct {
	*storage.BucketHandle
	bucketName string
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		BucketHandle: bucketHandle,
		bucketName:   bucketName,
	}, nil
}

func (sb *StorageBucket) Exists(ctx context.Context, blobName string) (bool, error) {
	if len(blobName) == 0 {
		return false, nil
	}
	handle := sb.Object(blobName)
	if _, err := handle.Attrs(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewBlobName vends the object name a client should upload a report
// image under before submitting.
func (sb *StorageBucket) NewBlobName() string {
	return fmt.Sprintf("reports/%v", uuid.NewString())
}

// Upload resolves a client-uploaded blob into a durable URL. The blob
// must already exist in the bucket; a missing or unreadable blob fails
// the whole submission.
func (sb *StorageBucket) Upload(ctx context.Context, blobName string) (string, error) {
	exists, err := sb.Exists(ctx, blobName)
	if err != nil {
		return "", fmt.Errorf("image blob %v: %w", blobName, err)
	}
	if !exists {
		return "", fmt.Errorf("image blob %v does not exist", blobName)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%v/%v", sb.bucketName, blobName), nil
}
