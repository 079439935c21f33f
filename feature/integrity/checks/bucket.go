package checks

import (
	"context"
	"fmt"

	"uloggd/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// BucketReport is the result of a storage backend check.
type BucketReport struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix"`
	Exists bool   `json:"exists"`
	// Empty is true when no cache object lives under Prefix yet.
	Empty  bool   `json:"empty"`
	Status string `json:"status"` // "ok", "missing"
}

// CheckBucket verifies that bucket exists and that the cache prefix can be listed.
func CheckBucket(ctx context.Context, client storage.Client, bucket, prefix string) (*BucketReport, error) {
	report := &BucketReport{Bucket: bucket, Prefix: prefix, Status: "ok"}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		report.Status = "missing"
		return report, nil
	}
	report.Exists = true

	opts := minio.ListObjectsOptions{
		Prefix:    prefix + "/",
		Recursive: true,
		MaxKeys:   1,
	}

	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	report.Empty = true
	for obj := range client.ListObjects(listCtx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, obj.Err)
		}
		report.Empty = false
		break
	}

	return report, nil
}

// FixBucket creates the bucket.
func FixBucket(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}
