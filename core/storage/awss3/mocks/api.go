package mocks

import (
	"context"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

// API is a mock implementation of awss3.API
type API struct {
	mock.Mock
}

func (m *API) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.HeadBucketOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.CreateBucketOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, _ ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.DeleteBucketOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) PutBucketVersioning(ctx context.Context, params *s3.PutBucketVersioningInput, _ ...func(*s3.Options)) (*s3.PutBucketVersioningOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.PutBucketVersioningOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.ListBucketsOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.PutObjectOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.GetObjectOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.DeleteObjectOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.DeleteObjectsOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) ListObjectVersions(ctx context.Context, params *s3.ListObjectVersionsInput, _ ...func(*s3.Options)) (*s3.ListObjectVersionsOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.ListObjectVersionsOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) GetObjectTagging(ctx context.Context, params *s3.GetObjectTaggingInput, _ ...func(*s3.Options)) (*s3.GetObjectTaggingOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.GetObjectTaggingOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

// Presigner is a mock implementation of awss3.Presigner
type Presigner struct {
	mock.Mock
}

func (m *Presigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*v4.PresignedHTTPRequest); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}
