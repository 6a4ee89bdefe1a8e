// Package storage provides an abstraction layer for the object storage holding imported media.
//
// It wraps the MinIO Go client, which speaks to both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface exposes only the operations the media resolver and the
// deletion hook need, which keeps the mock in core/storage/mocks small.
//
//   - BucketExists / MakeBucket: used by EnsureBucket at startup and migration.
//   - PutObject: uploads a downloaded image.
//   - RemoveObject: deletes an attachment's object.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
//	url := cfg.Storage.ObjectURL("uploads/half-life-header.jpg")
package storage
