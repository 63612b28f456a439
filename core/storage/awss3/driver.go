package awss3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// maxDeleteKeys is the per-request limit of the DeleteObjects API.
const maxDeleteKeys = 1000

// Options holds settings shared by every tenant connection.
type Options struct {
	DefaultRegion string
	UsePathStyle  bool
}

// Driver implements gateway.Driver on top of aws-sdk-go-v2.
type Driver struct {
	opts    Options
	factory func(storage.Config, Options) (*Client, error)
}

// NewDriver creates a driver that dials tenants with NewClient.
func NewDriver(opts Options) *Driver {
	return &Driver{opts: opts, factory: NewClient}
}

// NewDriverWithFactory lets callers supply their own client constructor.
func NewDriverWithFactory(opts Options, factory func(storage.Config, Options) (*Client, error)) *Driver {
	return &Driver{opts: opts, factory: factory}
}

var _ gateway.Driver[*Client] = (*Driver)(nil)

func (d *Driver) Kind() storage.Kind {
	return storage.KindAWS
}

func (d *Driver) Connect(cfg storage.Config) (*Client, error) {
	return d.factory(cfg, d.opts)
}

func (d *Driver) BucketExists(ctx context.Context, c *Client, bucket string) (bool, error) {
	_, err := c.API.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d *Driver) MakeBucket(ctx context.Context, c *Client, bucket string) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	// us-east-1 rejects an explicit location constraint
	if c.Region != "" && c.Region != DefaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.Region),
		}
	}
	_, err := c.API.CreateBucket(ctx, input)
	return err
}

func (d *Driver) RemoveBucket(ctx context.Context, c *Client, bucket string) error {
	_, err := c.API.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucket)})
	return err
}

func (d *Driver) SetVersioning(ctx context.Context, c *Client, bucket string, enabled bool) error {
	status := types.BucketVersioningStatusSuspended
	if enabled {
		status = types.BucketVersioningStatusEnabled
	}
	_, err := c.API.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket:                  aws.String(bucket),
		VersioningConfiguration: &types.VersioningConfiguration{Status: status},
	})
	return err
}

func (d *Driver) ListBuckets(ctx context.Context, c *Client) ([]storage.Bucket, error) {
	buckets := make([]storage.Bucket, 0)
	input := &s3.ListBucketsInput{}
	for {
		out, err := c.API.ListBuckets(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, b := range out.Buckets {
			buckets = append(buckets, storage.Bucket{
				Name:         aws.ToString(b.Name),
				CreationDate: aws.ToTime(b.CreationDate),
			})
		}
		if aws.ToString(out.ContinuationToken) == "" {
			return buckets, nil
		}
		input.ContinuationToken = out.ContinuationToken
	}
}

func (d *Driver) PutObject(ctx context.Context, c *Client, in gateway.PutObjectInput) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(in.Bucket),
		Key:           aws.String(in.Key),
		Body:          bytes.NewReader(in.Content),
		ContentLength: aws.Int64(int64(len(in.Content))),
		ContentType:   aws.String(in.ContentType),
	}
	if len(in.Tags) > 0 {
		input.Tagging = aws.String(encodeTags(in.Tags))
	}
	_, err := c.API.PutObject(ctx, input)
	return err
}

func (d *Driver) GetObject(ctx context.Context, c *Client, bucket, key, versionID string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}

	out, err := c.API.GetObject(ctx, input)
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (d *Driver) PresignGetObject(ctx context.Context, c *Client, bucket, key string, expiry time.Duration) (string, error) {
	req, err := c.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (d *Driver) RemoveObject(ctx context.Context, c *Client, bucket, key string) error {
	_, err := c.API.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

func (d *Driver) RemoveObjects(ctx context.Context, c *Client, bucket string, keys []string) ([]gateway.ObjectFailure, error) {
	var failures []gateway.ObjectFailure
	for start := 0; start < len(keys); start += maxDeleteKeys {
		end := min(start+maxDeleteKeys, len(keys))

		ids := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(key)})
		}

		out, err := c.API.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			// The whole chunk is unaccounted for
			for _, key := range keys[start:end] {
				failures = append(failures, gateway.ObjectFailure{Key: key, Err: err})
			}
			continue
		}
		for _, e := range out.Errors {
			failures = append(failures, gateway.ObjectFailure{
				Key: aws.ToString(e.Key),
				Err: fmt.Errorf("%s: %s", aws.ToString(e.Code), aws.ToString(e.Message)),
			})
		}
	}
	return failures, nil
}

func (d *Driver) ListObjects(ctx context.Context, c *Client, bucket string) ([]storage.FileStorage, error) {
	objects := make([]storage.FileStorage, 0)
	input := &s3.ListObjectVersionsInput{Bucket: aws.String(bucket)}
	for {
		page, err := c.API.ListObjectVersions(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", bucket, err)
		}
		// Delete markers arrive in page.DeleteMarkers and are not listed
		for _, v := range page.Versions {
			versionID := aws.ToString(v.VersionId)
			objects = append(objects, storage.FileStorage{
				ObjectName:     aws.ToString(v.Key),
				Size:           aws.ToInt64(v.Size),
				ETag:           strings.Trim(aws.ToString(v.ETag), `"`),
				LastModified:   aws.ToTime(v.LastModified),
				VersionID:      versionID,
				CurrentVersion: aws.ToBool(v.IsLatest) || versionID == "" || versionID == "null",
			})
		}
		if !aws.ToBool(page.IsTruncated) {
			return objects, nil
		}
		input.KeyMarker = page.NextKeyMarker
		input.VersionIdMarker = page.NextVersionIdMarker
	}
}

func (d *Driver) ObjectTags(ctx context.Context, c *Client, bucket, key, versionID string) (map[string]string, error) {
	input := &s3.GetObjectTaggingInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}

	out, err := c.API.GetObjectTagging(ctx, input)
	if err != nil {
		return nil, err
	}
	tags := make(map[string]string, len(out.TagSet))
	for _, t := range out.TagSet {
		tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return tags, nil
}

func encodeTags(tags map[string]string) string {
	values := url.Values{}
	for k, v := range tags {
		values.Set(k, v)
	}
	return values.Encode()
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
