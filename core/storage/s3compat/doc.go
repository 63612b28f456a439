// Package s3compat adapts S3-compatible object stores (MinIO, Ceph, Wasabi, ...)
// to the gateway through the MinIO Go SDK.
//
// # Client Interface
//
// The Client interface abstracts the SDK, making it easy to mock storage
// interactions in unit tests (see s3compat/mocks). NewClient builds one client
// per tenant with path-style bucket lookup and strict transport timeouts.
//
// # Representation
//
//   - Tags are attached as S3 object tags (PutObjectOptions.UserTags).
//   - Listings include every version (WithVersions, Recursive); delete markers are skipped.
//   - Batch deletes use the native multi-object delete API.
//
// # Usage
//
//	gw := gateway.New[s3compat.Client](s3compat.NewDriver(s3compat.Options{}), exec, log)
package s3compat
