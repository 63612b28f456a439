package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"

	"golang.org/x/sync/errgroup"
)

// NamespaceDriver speaks the namespace/container REST dialect with a bearer token.
// Every path lives under /namespaces/{namespace}; there is no batch delete
// endpoint, so RemoveObjects fans out single deletes.
type NamespaceDriver struct {
	opts   Options
	client Doer
}

// NewNamespaceDriver creates a driver for the namespace REST dialect.
func NewNamespaceDriver(opts Options) *NamespaceDriver {
	return &NamespaceDriver{opts: opts, client: opts.client()}
}

var _ gateway.Driver[*Conn] = (*NamespaceDriver)(nil)

type namespaceContainer struct {
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
}

type namespaceItem struct {
	Name         string    `json:"name"`
	Bytes        int64     `json:"bytes"`
	Hash         string    `json:"hash"`
	LastModified time.Time `json:"last_modified"`
	Version      string    `json:"version"`
	Latest       bool      `json:"latest"`
}

type namespaceListing struct {
	Items  []namespaceItem `json:"items"`
	Marker string          `json:"marker"`
}

func (d *NamespaceDriver) Kind() storage.Kind {
	return storage.KindNamespaceREST
}

func (d *NamespaceDriver) Connect(cfg storage.Config) (*Conn, error) {
	return dial(cfg, d.client, bearerToken(cfg.Password))
}

func container(c *Conn, name string, rest ...string) []string {
	return append([]string{"namespaces", c.namespace, "containers", name}, rest...)
}

func (d *NamespaceDriver) BucketExists(ctx context.Context, c *Conn, bucket string) (bool, error) {
	return c.exists(ctx, container(c, bucket)...)
}

func (d *NamespaceDriver) MakeBucket(ctx context.Context, c *Conn, bucket string) error {
	return c.doJSON(ctx, http.MethodPut, nil, nil, nil, container(c, bucket)...)
}

func (d *NamespaceDriver) RemoveBucket(ctx context.Context, c *Conn, bucket string) error {
	return c.doJSON(ctx, http.MethodDelete, nil, nil, nil, container(c, bucket)...)
}

func (d *NamespaceDriver) SetVersioning(ctx context.Context, c *Conn, bucket string, enabled bool) error {
	body := map[string]bool{"enabled": enabled}
	return c.doJSON(ctx, http.MethodPut, nil, body, nil, container(c, bucket, "versioning")...)
}

func (d *NamespaceDriver) ListBuckets(ctx context.Context, c *Conn) ([]storage.Bucket, error) {
	var out struct {
		Containers []namespaceContainer `json:"containers"`
	}
	if err := c.doJSON(ctx, http.MethodGet, nil, nil, &out, "namespaces", c.namespace, "containers"); err != nil {
		return nil, err
	}
	buckets := make([]storage.Bucket, 0, len(out.Containers))
	for _, ct := range out.Containers {
		buckets = append(buckets, storage.Bucket{Name: ct.Name, CreationDate: ct.Created})
	}
	return buckets, nil
}

func (d *NamespaceDriver) PutObject(ctx context.Context, c *Conn, in gateway.PutObjectInput) error {
	return c.put(ctx, in.Content, in.ContentType, metaHeaders("X-Meta-", in.Tags), container(c, in.Bucket, "objects", in.Key)...)
}

func (d *NamespaceDriver) GetObject(ctx context.Context, c *Conn, bucket, key, versionID string) ([]byte, error) {
	return c.get(ctx, versionQuery("version", versionID), container(c, bucket, "objects", key)...)
}

func (d *NamespaceDriver) PresignGetObject(ctx context.Context, c *Conn, bucket, key string, expiry time.Duration) (string, error) {
	query := url.Values{"ttl": {strconv.FormatInt(int64(expiry/time.Second), 10)}}
	var out struct {
		ShareURL string `json:"share_url"`
	}
	if err := c.doJSON(ctx, http.MethodGet, query, nil, &out, container(c, bucket, "objects", key, "share")...); err != nil {
		return "", err
	}
	if out.ShareURL == "" {
		return "", errors.New("share response has no share_url")
	}
	return out.ShareURL, nil
}

func (d *NamespaceDriver) RemoveObject(ctx context.Context, c *Conn, bucket, key string) error {
	return c.remove(ctx, container(c, bucket, "objects", key)...)
}

// RemoveObjects deletes keys concurrently and reports failures in input order.
func (d *NamespaceDriver) RemoveObjects(ctx context.Context, c *Conn, bucket string, keys []string) ([]gateway.ObjectFailure, error) {
	errs := make([]error, len(keys))

	g := new(errgroup.Group)
	g.SetLimit(d.opts.concurrency())
	for i, key := range keys {
		g.Go(func() error {
			// Each goroutine owns errs[i]; a failure never cancels its siblings
			errs[i] = d.RemoveObject(ctx, c, bucket, key)
			return nil
		})
	}
	_ = g.Wait()

	var failures []gateway.ObjectFailure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, gateway.ObjectFailure{Key: keys[i], Err: err})
		}
	}
	return failures, nil
}

func (d *NamespaceDriver) ListObjects(ctx context.Context, c *Conn, bucket string) ([]storage.FileStorage, error) {
	objects := make([]storage.FileStorage, 0)
	marker := ""
	for {
		query := url.Values{"versions": {"all"}}
		if marker != "" {
			query.Set("marker", marker)
		}
		var page namespaceListing
		if err := c.doJSON(ctx, http.MethodGet, query, nil, &page, container(c, bucket, "objects")...); err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			objects = append(objects, storage.FileStorage{
				ObjectName:     item.Name,
				Size:           item.Bytes,
				ETag:           item.Hash,
				LastModified:   item.LastModified,
				VersionID:      item.Version,
				CurrentVersion: item.Latest || item.Version == "",
			})
		}
		if page.Marker == "" || page.Marker == marker {
			return objects, nil
		}
		marker = page.Marker
	}
}

func (d *NamespaceDriver) ObjectTags(ctx context.Context, c *Conn, bucket, key, versionID string) (map[string]string, error) {
	var out struct {
		Metadata map[string]string `json:"metadata"`
	}
	if err := c.doJSON(ctx, http.MethodGet, versionQuery("version", versionID), nil, &out, container(c, bucket, "objects", key, "metadata")...); err != nil {
		return nil, err
	}
	if out.Metadata == nil {
		return map[string]string{}, nil
	}
	return out.Metadata, nil
}
