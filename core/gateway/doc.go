// Package gateway implements the backend-independent storage contract.
//
// A Gateway wraps one Driver (a backend adapter) and adds everything the adapters
// share: input validation, per-tenant connection caching (core/storage/registry),
// the retry policy (core/retry), error classification, metrics and logging.
//
// # Operations
//
//   - Buckets: BucketExists, CreateBucket (idempotent), DeleteBucket (idempotent),
//     SetVersioning, ListBuckets.
//   - Objects: Upload, Download, PresignedURL, DeleteObject, DeleteObjects,
//     ListObjects.
//   - Tags: FindByTags with AND (key/value) or OR (value only) matching.
//
// # Usage
//
//	gw := gateway.New[s3compat.Client](s3compat.NewDriver(s3compat.Options{}), retry.New(log), log)
//	err := gw.Upload(ctx, cfg, gateway.UploadInput{Bucket: "docs", ObjectName: "a.pdf", Content: data})
//
// A Router maps backend kinds to Stores so a single process can serve tenants on
// different backends.
package gateway
