package gateway

import (
	"context"

	"object-gateway/core/metrics"
	"object-gateway/core/storage"

	"go.uber.org/zap"
)

// UploadInput describes an object to upload.
type UploadInput struct {
	Bucket string
	// Path is an optional prefix joined to ObjectName with "/".
	Path        string
	ObjectName  string
	Content     []byte
	ContentType string
	Tags        map[string]string
}

// Key returns the full object key.
func (in UploadInput) Key() string {
	return storage.ObjectKey(in.Path, in.ObjectName)
}

// Upload stores content, creating the bucket first when needed.
func (g *Gateway[H]) Upload(ctx context.Context, cfg storage.Config, in UploadInput) error {
	const op = "upload"
	if err := storage.RequireName(op, "bucket", in.Bucket); err != nil {
		return err
	}
	if err := storage.RequireName(op, "object name", in.ObjectName); err != nil {
		return err
	}
	if err := storage.RequireContent(op, in.ObjectName, in.Content); err != nil {
		return err
	}

	h, err := g.conns.Get(cfg)
	if err != nil {
		return err
	}
	if err := g.ensureBucket(ctx, h, cfg.Tenant, in.Bucket); err != nil {
		return err
	}

	key := in.Key()
	put := PutObjectInput{
		Bucket:      in.Bucket,
		Key:         key,
		Content:     in.Content,
		ContentType: in.ContentType,
		Tags:        in.Tags,
	}
	if put.ContentType == "" {
		put.ContentType = "application/octet-stream"
	}

	if err := run(ctx, g, op, objectResource(in.Bucket, key), func() error {
		return g.driver.PutObject(ctx, h, put)
	}); err != nil {
		return err
	}

	g.logger.Debug("Uploaded object",
		zap.String("tenant", cfg.Tenant),
		zap.String("bucket", in.Bucket),
		zap.String("key", key),
		zap.Int("size", len(in.Content)))
	return nil
}

// Download returns the full content of an object, optionally a specific version.
func (g *Gateway[H]) Download(ctx context.Context, cfg storage.Config, bucket, objectName, versionID string) ([]byte, error) {
	const op = "download"
	if err := storage.RequireName(op, "bucket", bucket); err != nil {
		return nil, err
	}
	if err := storage.RequireName(op, "object name", objectName); err != nil {
		return nil, err
	}

	h, err := g.conns.Get(cfg)
	if err != nil {
		return nil, err
	}
	return call(ctx, g, op, objectResource(bucket, objectName), func() ([]byte, error) {
		return g.driver.GetObject(ctx, h, bucket, objectName, versionID)
	})
}

// PresignedURL returns a GET URL valid for storage.PresignExpiry.
func (g *Gateway[H]) PresignedURL(ctx context.Context, cfg storage.Config, bucket, objectName string) (string, error) {
	const op = "presign"
	if err := storage.RequireName(op, "bucket", bucket); err != nil {
		return "", err
	}
	if err := storage.RequireName(op, "object name", objectName); err != nil {
		return "", err
	}

	h, err := g.conns.Get(cfg)
	if err != nil {
		return "", err
	}
	return call(ctx, g, op, objectResource(bucket, objectName), func() (string, error) {
		return g.driver.PresignGetObject(ctx, h, bucket, objectName, storage.PresignExpiry)
	})
}

// DeleteObject removes a single object.
func (g *Gateway[H]) DeleteObject(ctx context.Context, cfg storage.Config, bucket, objectName string) error {
	const op = "delete object"
	if err := storage.RequireName(op, "bucket", bucket); err != nil {
		return err
	}
	if err := storage.RequireName(op, "object name", objectName); err != nil {
		return err
	}

	h, err := g.conns.Get(cfg)
	if err != nil {
		return err
	}
	return run(ctx, g, op, objectResource(bucket, objectName), func() error {
		return g.driver.RemoveObject(ctx, h, bucket, objectName)
	})
}

// DeleteObjects removes several objects in one pass. Per-key failures are
// collected into a single partial-failure error naming every failed key.
func (g *Gateway[H]) DeleteObjects(ctx context.Context, cfg storage.Config, bucket string, objectNames []string) error {
	const op = "delete objects"
	if err := storage.RequireName(op, "bucket", bucket); err != nil {
		return err
	}
	if len(objectNames) == 0 {
		return storage.Validation(op, bucket, "object list must not be empty")
	}
	for _, name := range objectNames {
		if err := storage.RequireName(op, "object name", name); err != nil {
			return err
		}
	}

	h, err := g.conns.Get(cfg)
	if err != nil {
		return err
	}

	failures, err := call(ctx, g, op, bucket, func() ([]ObjectFailure, error) {
		return g.driver.RemoveObjects(ctx, h, bucket, objectNames)
	})
	if err != nil {
		return err
	}
	if len(failures) == 0 {
		return nil
	}

	failed := make([]string, 0, len(failures))
	causes := make([]error, 0, len(failures))
	for _, f := range failures {
		failed = append(failed, f.Key)
		causes = append(causes, f.Err)
	}
	metrics.RecordBatchFailures(string(g.driver.Kind()), len(failed))
	g.logger.Warn("Batch delete had failures",
		zap.String("tenant", cfg.Tenant),
		zap.String("bucket", bucket),
		zap.Strings("failed", failed))

	return storage.PartialFailure(g.driver.Kind(), op, bucket, failed, causes)
}

// ListObjects returns every version of every object in the bucket.
// An empty bucket yields an empty, non-nil slice.
func (g *Gateway[H]) ListObjects(ctx context.Context, cfg storage.Config, bucket string) ([]storage.FileStorage, error) {
	if err := storage.RequireName("list objects", "bucket", bucket); err != nil {
		return nil, err
	}
	h, err := g.conns.Get(cfg)
	if err != nil {
		return nil, err
	}
	return g.listObjects(ctx, h, bucket)
}

func (g *Gateway[H]) listObjects(ctx context.Context, h H, bucket string) ([]storage.FileStorage, error) {
	objects, err := call(ctx, g, "list objects", bucket, func() ([]storage.FileStorage, error) {
		return g.driver.ListObjects(ctx, h, bucket)
	})
	if err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []storage.FileStorage{}
	}
	return objects, nil
}
