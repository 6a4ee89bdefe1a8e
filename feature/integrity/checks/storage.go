package checks

import (
	"context"
	"fmt"

	"game-importer/core/storage"
)

// StorageReport is the result of the media bucket check.
type StorageReport struct {
	Bucket string `json:"bucket"`
	Exists bool   `json:"exists"`
	Fixed  bool   `json:"fixed"`
}

// CheckStorage reports whether the media bucket exists. With fix set, a
// missing bucket is created.
func CheckStorage(ctx context.Context, client storage.Client, bucket, region string, fix bool) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	report := &StorageReport{Bucket: bucket, Exists: exists}
	if exists || !fix {
		return report, nil
	}

	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		return nil, err
	}
	report.Exists = true
	report.Fixed = true
	return report, nil
}
