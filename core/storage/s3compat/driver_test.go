package s3compat_test

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"
	"object-gateway/core/storage/s3compat"
	"object-gateway/core/storage/s3compat/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDriver(client *mocks.Client) *s3compat.Driver {
	return s3compat.NewDriverWithFactory(s3compat.Options{}, func(storage.Config, s3compat.Options) (s3compat.Client, error) {
		return client, nil
	})
}

func TestNewClient(t *testing.T) {
	t.Run("EndpointWithHTTP", func(t *testing.T) {
		client, err := s3compat.NewClient(storage.Config{
			Tenant: "acme", URL: "http://localhost:9000", UserName: "key", Password: "secret",
		}, s3compat.Options{})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		client, err := s3compat.NewClient(storage.Config{
			Tenant: "acme", URL: "https://s3.example.com/", UserName: "key", Password: "secret", Region: "eu-west-1",
		}, s3compat.Options{TimeoutSeconds: 5})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EmptyEndpoint", func(t *testing.T) {
		_, err := s3compat.NewClient(storage.Config{URL: "https://"}, s3compat.Options{})
		assert.Error(t, err)
	})
}

func TestDriver_Kind(t *testing.T) {
	assert.Equal(t, storage.KindS3Compatible, s3compat.NewDriver(s3compat.Options{}).Kind())
}

func TestDriver_SetVersioning(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("EnableVersioning", ctx, "docs").Return(nil).Once()
	client.On("SuspendVersioning", ctx, "docs").Return(nil).Once()

	d := newDriver(client)
	require.NoError(t, d.SetVersioning(ctx, client, "docs", true))
	require.NoError(t, d.SetVersioning(ctx, client, "docs", false))
	client.AssertExpectations(t)
}

func TestDriver_ListBuckets(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	client := new(mocks.Client)
	client.On("ListBuckets", ctx).Return([]minio.BucketInfo{{Name: "docs", CreationDate: created}}, nil)

	buckets, err := newDriver(client).ListBuckets(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, []storage.Bucket{{Name: "docs", CreationDate: created}}, buckets)
}

func TestDriver_PutObject(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("PutObject", ctx, "docs", "a/b.txt", mock.Anything, int64(5), minio.PutObjectOptions{
		ContentType: "text/plain",
		UserTags:    map[string]string{"env": "prod"},
	}).Return(minio.UploadInfo{}, nil)

	err := newDriver(client).PutObject(ctx, client, gateway.PutObjectInput{
		Bucket:      "docs",
		Key:         "a/b.txt",
		Content:     []byte("hello"),
		ContentType: "text/plain",
		Tags:        map[string]string{"env": "prod"},
	})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestDriver_GetObject(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("GetObject", ctx, "docs", "a.txt", minio.GetObjectOptions{VersionID: "v2"}).
		Return(io.NopCloser(strings.NewReader("payload")), nil)

	data, err := newDriver(client).GetObject(ctx, client, "docs", "a.txt", "v2")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestDriver_PresignGetObject(t *testing.T) {
	ctx := context.Background()
	u, _ := url.Parse("http://localhost:9000/docs/a.txt?X-Amz-Expires=7200")
	client := new(mocks.Client)
	client.On("PresignedGetObject", ctx, "docs", "a.txt", 2*time.Hour, url.Values{}).Return(u, nil)

	got, err := newDriver(client).PresignGetObject(ctx, client, "docs", "a.txt", storage.PresignExpiry)
	require.NoError(t, err)
	assert.Equal(t, u.String(), got)
}

func TestDriver_RemoveObjects(t *testing.T) {
	ctx := context.Background()
	denied := errors.New("access denied")

	errCh := make(chan minio.RemoveObjectError, 1)
	errCh <- minio.RemoveObjectError{ObjectName: "b", Err: denied}
	close(errCh)

	client := new(mocks.Client)
	client.On("RemoveObjects", ctx, "docs", mock.MatchedBy(func(ch <-chan minio.ObjectInfo) bool {
		return len(ch) == 3
	}), minio.RemoveObjectsOptions{}).Return((<-chan minio.RemoveObjectError)(errCh))

	failures, err := newDriver(client).RemoveObjects(ctx, client, "docs", []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "b", failures[0].Key)
	assert.ErrorIs(t, failures[0].Err, denied)
}

func TestDriver_ListObjects(t *testing.T) {
	ctx := context.Background()
	modified := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("SkipsDeleteMarkers", func(t *testing.T) {
		objCh := make(chan minio.ObjectInfo, 3)
		objCh <- minio.ObjectInfo{Key: "a.txt", Size: 3, ETag: "e1", LastModified: modified, VersionID: "v2", IsLatest: true}
		objCh <- minio.ObjectInfo{Key: "a.txt", Size: 2, ETag: "e0", LastModified: modified, VersionID: "v1"}
		objCh <- minio.ObjectInfo{Key: "gone.txt", VersionID: "v9", IsDeleteMarker: true, IsLatest: true}
		close(objCh)

		client := new(mocks.Client)
		client.On("ListObjects", ctx, "docs", minio.ListObjectsOptions{WithVersions: true, Recursive: true}).
			Return((<-chan minio.ObjectInfo)(objCh))

		objects, err := newDriver(client).ListObjects(ctx, client, "docs")
		require.NoError(t, err)
		require.Len(t, objects, 2)
		assert.Equal(t, storage.FileStorage{
			ObjectName: "a.txt", Size: 3, ETag: "e1", LastModified: modified, VersionID: "v2", CurrentVersion: true,
		}, objects[0])
		assert.False(t, objects[1].CurrentVersion)
	})

	t.Run("UnversionedIsCurrent", func(t *testing.T) {
		objCh := make(chan minio.ObjectInfo, 1)
		objCh <- minio.ObjectInfo{Key: "plain.txt", VersionID: "null"}
		close(objCh)

		client := new(mocks.Client)
		client.On("ListObjects", ctx, "docs", mock.Anything).Return((<-chan minio.ObjectInfo)(objCh))

		objects, err := newDriver(client).ListObjects(ctx, client, "docs")
		require.NoError(t, err)
		require.Len(t, objects, 1)
		assert.True(t, objects[0].CurrentVersion)
	})

	t.Run("StreamError", func(t *testing.T) {
		objCh := make(chan minio.ObjectInfo, 1)
		objCh <- minio.ObjectInfo{Err: errors.New("bucket not found")}
		close(objCh)

		client := new(mocks.Client)
		client.On("ListObjects", ctx, "docs", mock.Anything).Return((<-chan minio.ObjectInfo)(objCh))

		_, err := newDriver(client).ListObjects(ctx, client, "docs")
		assert.ErrorContains(t, err, "bucket not found")
	})

	t.Run("Empty", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", ctx, "docs", mock.Anything).Return(nil)

		objects, err := newDriver(client).ListObjects(ctx, client, "docs")
		require.NoError(t, err)
		assert.NotNil(t, objects)
		assert.Empty(t, objects)
	})
}

func TestDriver_ObjectTags(t *testing.T) {
	ctx := context.Background()
	objTags, err := tags.NewTags(map[string]string{"env": "prod"}, true)
	require.NoError(t, err)

	client := new(mocks.Client)
	client.On("GetObjectTagging", ctx, "docs", "a.txt", minio.GetObjectTaggingOptions{VersionID: "v1"}).Return(objTags, nil)

	got, err := newDriver(client).ObjectTags(ctx, client, "docs", "a.txt", "v1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"env": "prod"}, got)
}

func TestGateway_OverS3Compat(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("BucketExists", ctx, "docs").Return(false, nil).Once()
	client.On("MakeBucket", ctx, "docs", minio.MakeBucketOptions{}).Return(nil).Once()

	gw := gateway.New[s3compat.Client](newDriver(client), nil, nil)
	cfg := storage.Config{Tenant: "acme", URL: "http://localhost:9000", UserName: "key", Password: "secret"}

	require.NoError(t, gw.CreateBucket(ctx, cfg, "docs"))
	client.AssertExpectations(t)
}

func TestMakeBucket_UsesTenantRegion(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("BucketExists", ctx, "docs").Return(false, nil).Once()
	client.On("MakeBucket", ctx, "docs", minio.MakeBucketOptions{}).Return(nil).Once()

	var built storage.Config
	d := s3compat.NewDriverWithFactory(s3compat.Options{DefaultRegion: "eu-west-1"}, func(cfg storage.Config, _ s3compat.Options) (s3compat.Client, error) {
		built = cfg
		return client, nil
	})
	gw := gateway.New[s3compat.Client](d, nil, nil)
	cfg := storage.Config{Tenant: "acme", URL: "http://localhost:9000", UserName: "key", Password: "secret", Region: "ap-south-1"}

	require.NoError(t, gw.CreateBucket(ctx, cfg, "docs"))
	assert.Equal(t, "ap-south-1", built.Region)
	client.AssertExpectations(t)
}
