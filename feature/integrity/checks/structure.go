package checks

import (
	"context"
	"fmt"

	"report-compare/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// CheckStructure returns the required folders missing from the bucket. A folder exists
// when anything, its marker object included, is stored under its prefix.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, required []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	missing := []string{}
	for _, folder := range required {
		if !hasFolder(ctx, client, bucket, folder) {
			missing = append(missing, folder)
		}
	}
	return missing, nil
}

func hasFolder(ctx context.Context, client storage.Client, bucket, folder string) bool {
	// Cancelling stops the listing once the first object arrives.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Prefix: storage.FolderKey(folder), MaxKeys: 1}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		return obj.Err == nil
	}
	return false
}

// FixStructure creates the missing folders as empty marker objects.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		if err := storage.Upload(ctx, client, bucket, storage.FolderKey(folder), nil, storage.ContentTypeFolder); err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
