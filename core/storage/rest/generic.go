package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"
)

// GenericDriver speaks the bucket/object REST dialect with basic auth.
//
//	HEAD|PUT|DELETE /buckets/{bucket}
//	PUT|GET|DELETE  /buckets/{bucket}/objects/{key}
//	POST            /buckets/{bucket}/delete
type GenericDriver struct {
	opts   Options
	client Doer
}

// NewGenericDriver creates a driver for the generic REST dialect.
func NewGenericDriver(opts Options) *GenericDriver {
	return &GenericDriver{opts: opts, client: opts.client()}
}

var _ gateway.Driver[*Conn] = (*GenericDriver)(nil)

type genericBucket struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creationDate"`
}

type genericObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ETag         string    `json:"etag"`
	LastModified time.Time `json:"lastModified"`
	VersionID    string    `json:"versionId"`
	IsLatest     bool      `json:"isLatest"`
}

type genericListing struct {
	Objects    []genericObject `json:"objects"`
	NextMarker string          `json:"nextMarker"`
}

type genericDeleteKey struct {
	Key string `json:"key"`
}

type genericDeleteError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (d *GenericDriver) Kind() storage.Kind {
	return storage.KindGenericREST
}

func (d *GenericDriver) Connect(cfg storage.Config) (*Conn, error) {
	return dial(cfg, d.client, basicAuth(cfg.UserName, cfg.Password))
}

func (d *GenericDriver) BucketExists(ctx context.Context, c *Conn, bucket string) (bool, error) {
	return c.exists(ctx, "buckets", bucket)
}

func (d *GenericDriver) MakeBucket(ctx context.Context, c *Conn, bucket string) error {
	return c.doJSON(ctx, http.MethodPut, nil, nil, nil, "buckets", bucket)
}

func (d *GenericDriver) RemoveBucket(ctx context.Context, c *Conn, bucket string) error {
	return c.doJSON(ctx, http.MethodDelete, nil, nil, nil, "buckets", bucket)
}

func (d *GenericDriver) SetVersioning(ctx context.Context, c *Conn, bucket string, enabled bool) error {
	status := "Suspended"
	if enabled {
		status = "Enabled"
	}
	body := map[string]string{"status": status}
	return c.doJSON(ctx, http.MethodPut, nil, body, nil, "buckets", bucket, "versioning")
}

func (d *GenericDriver) ListBuckets(ctx context.Context, c *Conn) ([]storage.Bucket, error) {
	var out struct {
		Buckets []genericBucket `json:"buckets"`
	}
	if err := c.doJSON(ctx, http.MethodGet, nil, nil, &out, "buckets"); err != nil {
		return nil, err
	}
	buckets := make([]storage.Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, storage.Bucket{Name: b.Name, CreationDate: b.CreationDate})
	}
	return buckets, nil
}

func (d *GenericDriver) PutObject(ctx context.Context, c *Conn, in gateway.PutObjectInput) error {
	return c.put(ctx, in.Content, in.ContentType, metaHeaders("X-Object-Meta-", in.Tags), "buckets", in.Bucket, "objects", in.Key)
}

func (d *GenericDriver) GetObject(ctx context.Context, c *Conn, bucket, key, versionID string) ([]byte, error) {
	return c.get(ctx, versionQuery("versionId", versionID), "buckets", bucket, "objects", key)
}

func (d *GenericDriver) PresignGetObject(ctx context.Context, c *Conn, bucket, key string, expiry time.Duration) (string, error) {
	body := map[string]int64{"expiresIn": int64(expiry / time.Second)}
	var out struct {
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodPost, nil, body, &out, "buckets", bucket, "objects", key, "presign"); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.New("presign response has no url")
	}
	return out.URL, nil
}

func (d *GenericDriver) RemoveObject(ctx context.Context, c *Conn, bucket, key string) error {
	return c.remove(ctx, "buckets", bucket, "objects", key)
}

func (d *GenericDriver) RemoveObjects(ctx context.Context, c *Conn, bucket string, keys []string) ([]gateway.ObjectFailure, error) {
	in := struct {
		Objects []genericDeleteKey `json:"objects"`
	}{Objects: make([]genericDeleteKey, 0, len(keys))}
	for _, key := range keys {
		in.Objects = append(in.Objects, genericDeleteKey{Key: key})
	}

	var out struct {
		Errors []genericDeleteError `json:"errors"`
	}
	if err := c.doJSON(ctx, http.MethodPost, nil, in, &out, "buckets", bucket, "delete"); err != nil {
		return nil, err
	}

	var failures []gateway.ObjectFailure
	for _, e := range out.Errors {
		failures = append(failures, gateway.ObjectFailure{Key: e.Key, Err: errors.New(e.Message)})
	}
	return failures, nil
}

func (d *GenericDriver) ListObjects(ctx context.Context, c *Conn, bucket string) ([]storage.FileStorage, error) {
	objects := make([]storage.FileStorage, 0)
	marker := ""
	for {
		query := url.Values{"versions": {"true"}, "recursive": {"true"}}
		if marker != "" {
			query.Set("marker", marker)
		}
		var page genericListing
		if err := c.doJSON(ctx, http.MethodGet, query, nil, &page, "buckets", bucket, "objects"); err != nil {
			return nil, err
		}
		for _, o := range page.Objects {
			objects = append(objects, storage.FileStorage{
				ObjectName:     o.Key,
				Size:           o.Size,
				ETag:           o.ETag,
				LastModified:   o.LastModified,
				VersionID:      o.VersionID,
				CurrentVersion: o.IsLatest || o.VersionID == "",
			})
		}
		if page.NextMarker == "" || page.NextMarker == marker {
			return objects, nil
		}
		marker = page.NextMarker
	}
}

func (d *GenericDriver) ObjectTags(ctx context.Context, c *Conn, bucket, key, versionID string) (map[string]string, error) {
	var out struct {
		Tags map[string]string `json:"tags"`
	}
	if err := c.doJSON(ctx, http.MethodGet, versionQuery("versionId", versionID), nil, &out, "buckets", bucket, "objects", key, "tags"); err != nil {
		return nil, err
	}
	if out.Tags == nil {
		return map[string]string{}, nil
	}
	return out.Tags, nil
}

func metaHeaders(prefix string, tags map[string]string) map[string]string {
	headers := make(map[string]string, len(tags))
	for k, v := range tags {
		headers[prefix+k] = v
	}
	return headers
}
