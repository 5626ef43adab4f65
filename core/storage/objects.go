package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound is returned when a requested object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Content types of the objects this service reads and writes.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv"

	// ContentTypeFolder marks the empty objects standing in for folders.
	ContentTypeFolder = "application/x-directory"
)

// Download reads a whole object into memory.
func Download(ctx context.Context, client Client, bucket, object string) ([]byte, error) {
	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapNotFound(object, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// minio reports a missing object on the first read, not on GetObject
		return nil, wrapNotFound(object, err)
	}
	return data, nil
}

// Upload writes data as a single object.
func Upload(ctx context.Context, client Client, bucket, object string, data []byte, contentType string) error {
	_, err := client.PutObject(ctx, bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}
	return nil
}

// List returns the names of the objects under prefix, sorted, skipping folder markers.
func List(ctx context.Context, client Client, bucket, prefix string) ([]string, error) {
	prefix = FolderKey(prefix)

	var names []string
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		names = append(names, obj.Key)
	}
	sort.Strings(names)
	return names, nil
}

// FolderKey returns the marker key of a folder: the prefix with a trailing slash.
func FolderKey(prefix string) string {
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	return prefix + "/"
}

// ObjectName joins a prefix and a name into an object key.
func ObjectName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func wrapNotFound(object string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, object)
	}
	return fmt.Errorf("failed to download %s: %w", object, err)
}
