// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the operations
// the comparison service needs: source files are read from the bucket and result
// workbooks are written back to it. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Helpers
//
//   - Download: Reads a whole object, mapping NoSuchKey to ErrObjectNotFound.
//   - Upload: Writes a byte slice as one object with a content type.
//   - List: Lists object names under a prefix.
//   - EnsureBucket: Creates the bucket when it is missing.
//   - FolderKey, ObjectName: Build folder marker and object keys.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	data, err := storage.Download(ctx, client, "reports", "inputs/before.csv")
package storage
