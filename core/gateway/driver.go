package gateway

import (
	"context"
	"time"

	"object-gateway/core/storage"
)

// PutObjectInput is a fully resolved upload handed to a Driver.
type PutObjectInput struct {
	Bucket      string
	Key         string
	Content     []byte
	ContentType string
	// Tags is attached in the backend-native representation
	// (SDK tag set, or metadata headers for REST dialects).
	Tags map[string]string
}

// ObjectFailure is one key that a batch deletion could not remove.
type ObjectFailure struct {
	Key string
	Err error
}

// Driver is implemented by each backend adapter.
//
// Drivers perform exactly one backend round trip per call (RemoveObjects may fan out
// when the backend has no batch API). They return raw errors: classification,
// retries and context wrapping are done by the Gateway.
type Driver[H any] interface {
	// Kind identifies the backend.
	Kind() storage.Kind
	// Connect builds a tenant handle from a validated config.
	Connect(cfg storage.Config) (H, error)

	BucketExists(ctx context.Context, h H, bucket string) (bool, error)
	MakeBucket(ctx context.Context, h H, bucket string) error
	RemoveBucket(ctx context.Context, h H, bucket string) error
	SetVersioning(ctx context.Context, h H, bucket string, enabled bool) error
	ListBuckets(ctx context.Context, h H) ([]storage.Bucket, error)

	PutObject(ctx context.Context, h H, in PutObjectInput) error
	GetObject(ctx context.Context, h H, bucket, key, versionID string) ([]byte, error)
	PresignGetObject(ctx context.Context, h H, bucket, key string, expiry time.Duration) (string, error)
	RemoveObject(ctx context.Context, h H, bucket, key string) error
	// RemoveObjects returns per-key failures. A non-nil error means the request
	// as a whole failed and may be retried.
	RemoveObjects(ctx context.Context, h H, bucket string, keys []string) ([]ObjectFailure, error)
	// ListObjects returns every version of every object, recursively.
	ListObjects(ctx context.Context, h H, bucket string) ([]storage.FileStorage, error)
	ObjectTags(ctx context.Context, h H, bucket, key, versionID string) (map[string]string, error)
}
