package gateway

import (
	"context"

	"object-gateway/core/storage"

	"go.uber.org/zap"
)

// BucketExists asks the backend whether the bucket exists.
func (g *Gateway[H]) BucketExists(ctx context.Context, cfg storage.Config, bucket string) (bool, error) {
	if err := storage.RequireName("bucket exists", "bucket", bucket); err != nil {
		return false, err
	}
	h, err := g.conns.Get(cfg)
	if err != nil {
		return false, err
	}
	return g.bucketExists(ctx, h, bucket)
}

func (g *Gateway[H]) bucketExists(ctx context.Context, h H, bucket string) (bool, error) {
	return call(ctx, g, "bucket exists", bucket, func() (bool, error) {
		return g.driver.BucketExists(ctx, h, bucket)
	})
}

// CreateBucket creates the bucket unless it already exists.
func (g *Gateway[H]) CreateBucket(ctx context.Context, cfg storage.Config, bucket string) error {
	if err := storage.RequireName("create bucket", "bucket", bucket); err != nil {
		return err
	}
	h, err := g.conns.Get(cfg)
	if err != nil {
		return err
	}
	return g.ensureBucket(ctx, h, cfg.Tenant, bucket)
}

func (g *Gateway[H]) ensureBucket(ctx context.Context, h H, tenant, bucket string) error {
	exists, err := g.bucketExists(ctx, h, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := run(ctx, g, "create bucket", bucket, func() error {
		return g.driver.MakeBucket(ctx, h, bucket)
	}); err != nil {
		return err
	}
	g.logger.Info("Created bucket", zap.String("tenant", tenant), zap.String("bucket", bucket))
	return nil
}

// DeleteBucket removes the bucket if present; a missing bucket is not an error.
func (g *Gateway[H]) DeleteBucket(ctx context.Context, cfg storage.Config, bucket string) error {
	if err := storage.RequireName("delete bucket", "bucket", bucket); err != nil {
		return err
	}
	h, err := g.conns.Get(cfg)
	if err != nil {
		return err
	}

	exists, err := g.bucketExists(ctx, h, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if err := run(ctx, g, "delete bucket", bucket, func() error {
		return g.driver.RemoveBucket(ctx, h, bucket)
	}); err != nil {
		return err
	}
	g.logger.Info("Deleted bucket", zap.String("tenant", cfg.Tenant), zap.String("bucket", bucket))
	return nil
}

// SetVersioning switches bucket versioning between enabled and suspended.
func (g *Gateway[H]) SetVersioning(ctx context.Context, cfg storage.Config, bucket string, enabled bool) error {
	if err := storage.RequireName("set versioning", "bucket", bucket); err != nil {
		return err
	}
	h, err := g.conns.Get(cfg)
	if err != nil {
		return err
	}
	return run(ctx, g, "set versioning", bucket, func() error {
		return g.driver.SetVersioning(ctx, h, bucket, enabled)
	})
}

// ListBuckets enumerates the buckets visible to the tenant's credentials.
func (g *Gateway[H]) ListBuckets(ctx context.Context, cfg storage.Config) ([]storage.Bucket, error) {
	h, err := g.conns.Get(cfg)
	if err != nil {
		return nil, err
	}
	buckets, err := call(ctx, g, "list buckets", cfg.Tenant, func() ([]storage.Bucket, error) {
		return g.driver.ListBuckets(ctx, h)
	})
	if err != nil {
		return nil, err
	}
	if buckets == nil {
		buckets = []storage.Bucket{}
	}
	return buckets, nil
}
