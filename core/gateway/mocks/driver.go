package mocks

import (
	"context"
	"time"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"

	"github.com/stretchr/testify/mock"
)

// Driver is a mock implementation of gateway.Driver using the tenant name as handle.
type Driver struct {
	mock.Mock
	KindValue storage.Kind
}

func (m *Driver) Kind() storage.Kind {
	if m.KindValue == "" {
		return storage.KindS3Compatible
	}
	return m.KindValue
}

func (m *Driver) Connect(cfg storage.Config) (string, error) {
	args := m.Called(cfg)
	return args.String(0), args.Error(1)
}

func (m *Driver) BucketExists(ctx context.Context, h string, bucket string) (bool, error) {
	args := m.Called(ctx, h, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *Driver) MakeBucket(ctx context.Context, h string, bucket string) error {
	args := m.Called(ctx, h, bucket)
	return args.Error(0)
}

func (m *Driver) RemoveBucket(ctx context.Context, h string, bucket string) error {
	args := m.Called(ctx, h, bucket)
	return args.Error(0)
}

func (m *Driver) SetVersioning(ctx context.Context, h string, bucket string, enabled bool) error {
	args := m.Called(ctx, h, bucket, enabled)
	return args.Error(0)
}

func (m *Driver) ListBuckets(ctx context.Context, h string) ([]storage.Bucket, error) {
	args := m.Called(ctx, h)
	if b, ok := args.Get(0).([]storage.Bucket); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Driver) PutObject(ctx context.Context, h string, in gateway.PutObjectInput) error {
	args := m.Called(ctx, h, in)
	return args.Error(0)
}

func (m *Driver) GetObject(ctx context.Context, h string, bucket, key, versionID string) ([]byte, error) {
	args := m.Called(ctx, h, bucket, key, versionID)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Driver) PresignGetObject(ctx context.Context, h string, bucket, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, h, bucket, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *Driver) RemoveObject(ctx context.Context, h string, bucket, key string) error {
	args := m.Called(ctx, h, bucket, key)
	return args.Error(0)
}

func (m *Driver) RemoveObjects(ctx context.Context, h string, bucket string, keys []string) ([]gateway.ObjectFailure, error) {
	args := m.Called(ctx, h, bucket, keys)
	if f, ok := args.Get(0).([]gateway.ObjectFailure); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Driver) ListObjects(ctx context.Context, h string, bucket string) ([]storage.FileStorage, error) {
	args := m.Called(ctx, h, bucket)
	if o, ok := args.Get(0).([]storage.FileStorage); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Driver) ObjectTags(ctx context.Context, h string, bucket, key, versionID string) (map[string]string, error) {
	args := m.Called(ctx, h, bucket, key, versionID)
	if t, ok := args.Get(0).(map[string]string); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
