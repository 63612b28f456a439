package gateway

import (
	"context"
	"time"

	"object-gateway/core/metrics"
	"object-gateway/core/retry"
	"object-gateway/core/storage"
	"object-gateway/core/storage/registry"

	"go.uber.org/zap"
)

// Store is the capability contract exposed to callers, independent of the backend.
type Store interface {
	Kind() storage.Kind
	UpdateConnection(cfg storage.Config) error

	BucketExists(ctx context.Context, cfg storage.Config, bucket string) (bool, error)
	CreateBucket(ctx context.Context, cfg storage.Config, bucket string) error
	DeleteBucket(ctx context.Context, cfg storage.Config, bucket string) error
	SetVersioning(ctx context.Context, cfg storage.Config, bucket string, enabled bool) error
	ListBuckets(ctx context.Context, cfg storage.Config) ([]storage.Bucket, error)

	Upload(ctx context.Context, cfg storage.Config, in UploadInput) error
	Download(ctx context.Context, cfg storage.Config, bucket, objectName, versionID string) ([]byte, error)
	PresignedURL(ctx context.Context, cfg storage.Config, bucket, objectName string) (string, error)
	DeleteObject(ctx context.Context, cfg storage.Config, bucket, objectName string) error
	DeleteObjects(ctx context.Context, cfg storage.Config, bucket string, objectNames []string) error
	ListObjects(ctx context.Context, cfg storage.Config, bucket string) ([]storage.FileStorage, error)

	FindByTags(ctx context.Context, cfg storage.Config, bucket string, tags map[string]string, mode storage.MatchMode) ([]storage.FileStorage, error)
}

// Gateway orchestrates a Driver: it resolves the tenant connection, validates
// input, applies the retry policy and maps results into the shared model.
type Gateway[H any] struct {
	driver Driver[H]
	conns  *registry.Registry[H]
	retry  *retry.Executor
	logger *zap.Logger
}

// New wires a Gateway around a driver. Each Gateway owns its connection registry.
func New[H any](driver Driver[H], exec *retry.Executor, logger *zap.Logger) *Gateway[H] {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("backend", string(driver.Kind())))
	if exec == nil {
		exec = retry.New(logger)
	}
	return &Gateway[H]{
		driver: driver,
		conns:  registry.New[H](driver.Kind(), driver.Connect, logger),
		retry:  exec,
		logger: logger,
	}
}

// Kind returns the backend kind of the underlying driver.
func (g *Gateway[H]) Kind() storage.Kind {
	return g.driver.Kind()
}

// Connections exposes the registry, mainly for diagnostics.
func (g *Gateway[H]) Connections() *registry.Registry[H] {
	return g.conns
}

// UpdateConnection rebuilds the tenant's handle unconditionally.
func (g *Gateway[H]) UpdateConnection(cfg storage.Config) error {
	return g.conns.Update(cfg)
}

// call runs fn under the retry policy, classifying its error as a backend
// failure annotated with op and resource.
func call[H, T any](ctx context.Context, g *Gateway[H], op, resource string, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := retry.Do(ctx, g.retry, op, func() (T, error) {
		v, err := fn()
		return v, storage.Backend(g.driver.Kind(), op, resource, err)
	})
	metrics.RecordOperation(string(g.driver.Kind()), op, time.Since(start), err == nil)
	return result, err
}

func run[H any](ctx context.Context, g *Gateway[H], op, resource string, fn func() error) error {
	_, err := call(ctx, g, op, resource, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func objectResource(bucket, key string) string {
	return bucket + "/" + key
}
