package s3compat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"

	"github.com/minio/minio-go/v7"
)

// Driver implements gateway.Driver on top of the MinIO SDK.
type Driver struct {
	opts    Options
	factory func(storage.Config, Options) (Client, error)
}

// NewDriver creates a driver that dials tenants with NewClient.
func NewDriver(opts Options) *Driver {
	return &Driver{opts: opts, factory: NewClient}
}

// NewDriverWithFactory lets callers supply their own client constructor.
func NewDriverWithFactory(opts Options, factory func(storage.Config, Options) (Client, error)) *Driver {
	return &Driver{opts: opts, factory: factory}
}

var _ gateway.Driver[Client] = (*Driver)(nil)

func (d *Driver) Kind() storage.Kind {
	return storage.KindS3Compatible
}

func (d *Driver) Connect(cfg storage.Config) (Client, error) {
	return d.factory(cfg, d.opts)
}

func (d *Driver) BucketExists(ctx context.Context, c Client, bucket string) (bool, error) {
	return c.BucketExists(ctx, bucket)
}

// MakeBucket leaves the location empty so the client's region applies: the
// tenant's own region, else Options.DefaultRegion.
func (d *Driver) MakeBucket(ctx context.Context, c Client, bucket string) error {
	return c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

func (d *Driver) RemoveBucket(ctx context.Context, c Client, bucket string) error {
	return c.RemoveBucket(ctx, bucket)
}

func (d *Driver) SetVersioning(ctx context.Context, c Client, bucket string, enabled bool) error {
	if enabled {
		return c.EnableVersioning(ctx, bucket)
	}
	return c.SuspendVersioning(ctx, bucket)
}

func (d *Driver) ListBuckets(ctx context.Context, c Client) ([]storage.Bucket, error) {
	infos, err := c.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}
	buckets := make([]storage.Bucket, 0, len(infos))
	for _, b := range infos {
		buckets = append(buckets, storage.Bucket{Name: b.Name, CreationDate: b.CreationDate})
	}
	return buckets, nil
}

func (d *Driver) PutObject(ctx context.Context, c Client, in gateway.PutObjectInput) error {
	_, err := c.PutObject(ctx, in.Bucket, in.Key, bytes.NewReader(in.Content), int64(len(in.Content)), minio.PutObjectOptions{
		ContentType: in.ContentType,
		UserTags:    in.Tags,
	})
	return err
}

func (d *Driver) GetObject(ctx context.Context, c Client, bucket, key, versionID string) ([]byte, error) {
	obj, err := c.GetObject(ctx, bucket, key, minio.GetObjectOptions{VersionID: versionID})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	// The SDK reports missing objects on first read
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (d *Driver) PresignGetObject(ctx context.Context, c Client, bucket, key string, expiry time.Duration) (string, error) {
	u, err := c.PresignedGetObject(ctx, bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (d *Driver) RemoveObject(ctx context.Context, c Client, bucket, key string) error {
	return c.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}

func (d *Driver) RemoveObjects(ctx context.Context, c Client, bucket string, keys []string) ([]gateway.ObjectFailure, error) {
	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failures []gateway.ObjectFailure
	for rerr := range c.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			failures = append(failures, gateway.ObjectFailure{Key: rerr.ObjectName, Err: rerr.Err})
		}
	}
	return failures, nil
}

func (d *Driver) ListObjects(ctx context.Context, c Client, bucket string) ([]storage.FileStorage, error) {
	opts := minio.ListObjectsOptions{
		WithVersions: true,
		Recursive:    true,
	}

	objects := make([]storage.FileStorage, 0)
	for info := range c.ListObjects(ctx, bucket, opts) {
		if info.Err != nil {
			return nil, fmt.Errorf("list %s: %w", bucket, info.Err)
		}
		if info.IsDeleteMarker {
			continue
		}
		objects = append(objects, toFileStorage(info))
	}
	return objects, nil
}

func (d *Driver) ObjectTags(ctx context.Context, c Client, bucket, key, versionID string) (map[string]string, error) {
	t, err := c.GetObjectTagging(ctx, bucket, key, minio.GetObjectTaggingOptions{VersionID: versionID})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return map[string]string{}, nil
	}
	return t.ToMap(), nil
}

func toFileStorage(info minio.ObjectInfo) storage.FileStorage {
	// Unversioned buckets report no version id; the single copy is current.
	current := info.IsLatest || info.VersionID == "" || info.VersionID == "null"
	return storage.FileStorage{
		ObjectName:     info.Key,
		Size:           info.Size,
		ETag:           info.ETag,
		LastModified:   info.LastModified,
		VersionID:      info.VersionID,
		CurrentVersion: current,
	}
}
