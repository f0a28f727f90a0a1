package port

import "context"

// ObjectStorage abstracts bucket storage for s3:// file URLs.
// Download returns the object bytes and its content type (empty when the
// store did not record one).
type ObjectStorage interface {
	Download(ctx context.Context, bucket, key string) ([]byte, string, error)
}
