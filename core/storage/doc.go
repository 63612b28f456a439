// Package storage holds the vocabulary shared by every object-storage backend
// served by the gateway.
//
// It defines the per-tenant connection parameters (Config), the backend kinds
// (Kind), the data model returned to callers (FileStorage, Bucket) and the error
// taxonomy (Error) used across adapters.
//
// # Errors
//
// Every failure is an *Error carrying one of four codes:
//
//   - VALIDATION: blank or missing input, raised before any network call.
//   - BACKEND: transport, HTTP or SDK failures; retried by core/retry.
//   - PARTIAL_FAILURE: batch operations where some keys failed.
//   - INTERRUPTED: a retry wait cancelled through its context.
//
// Use errors.Is with the sentinels (ErrValidation, ErrBackend, ...) to branch.
//
// # Adapters
//
// Concrete backends live in sub-packages:
//
//   - s3compat: S3-compatible stores through the MinIO SDK.
//   - awss3: Amazon S3 through aws-sdk-go-v2.
//   - rest: namespace/container and generic REST stores.
//
// Connections are cached per tenant by the registry sub-package.
package storage
