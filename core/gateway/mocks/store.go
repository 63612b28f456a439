package mocks

import (
	"context"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of gateway.Store
type Store struct {
	mock.Mock
	KindValue storage.Kind
}

func (m *Store) Kind() storage.Kind {
	if m.KindValue == "" {
		return storage.KindS3Compatible
	}
	return m.KindValue
}

func (m *Store) UpdateConnection(cfg storage.Config) error {
	args := m.Called(cfg)
	return args.Error(0)
}

func (m *Store) BucketExists(ctx context.Context, cfg storage.Config, bucket string) (bool, error) {
	args := m.Called(ctx, cfg, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *Store) CreateBucket(ctx context.Context, cfg storage.Config, bucket string) error {
	args := m.Called(ctx, cfg, bucket)
	return args.Error(0)
}

func (m *Store) DeleteBucket(ctx context.Context, cfg storage.Config, bucket string) error {
	args := m.Called(ctx, cfg, bucket)
	return args.Error(0)
}

func (m *Store) SetVersioning(ctx context.Context, cfg storage.Config, bucket string, enabled bool) error {
	args := m.Called(ctx, cfg, bucket, enabled)
	return args.Error(0)
}

func (m *Store) ListBuckets(ctx context.Context, cfg storage.Config) ([]storage.Bucket, error) {
	args := m.Called(ctx, cfg)
	if b, ok := args.Get(0).([]storage.Bucket); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Upload(ctx context.Context, cfg storage.Config, in gateway.UploadInput) error {
	args := m.Called(ctx, cfg, in)
	return args.Error(0)
}

func (m *Store) Download(ctx context.Context, cfg storage.Config, bucket, objectName, versionID string) ([]byte, error) {
	args := m.Called(ctx, cfg, bucket, objectName, versionID)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) PresignedURL(ctx context.Context, cfg storage.Config, bucket, objectName string) (string, error) {
	args := m.Called(ctx, cfg, bucket, objectName)
	return args.String(0), args.Error(1)
}

func (m *Store) DeleteObject(ctx context.Context, cfg storage.Config, bucket, objectName string) error {
	args := m.Called(ctx, cfg, bucket, objectName)
	return args.Error(0)
}

func (m *Store) DeleteObjects(ctx context.Context, cfg storage.Config, bucket string, objectNames []string) error {
	args := m.Called(ctx, cfg, bucket, objectNames)
	return args.Error(0)
}

func (m *Store) ListObjects(ctx context.Context, cfg storage.Config, bucket string) ([]storage.FileStorage, error) {
	args := m.Called(ctx, cfg, bucket)
	if o, ok := args.Get(0).([]storage.FileStorage); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) FindByTags(ctx context.Context, cfg storage.Config, bucket string, tags map[string]string, mode storage.MatchMode) ([]storage.FileStorage, error) {
	args := m.Called(ctx, cfg, bucket, tags, mode)
	if o, ok := args.Get(0).([]storage.FileStorage); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
