// Package files exposes the object gateway over HTTP.
//
// Every request names its tenant in the X-Tenant-ID header. The Service looks
// the tenant up in a tenant.Source, picks the backend store through the
// gateway.Router, and forwards the call with the tenant's connection config.
//
// # Routes
//
//	GET    /buckets                        list buckets
//	HEAD   /buckets/:bucket                200 if present, 404 otherwise
//	PUT    /buckets/:bucket                create (idempotent)
//	DELETE /buckets/:bucket                delete (idempotent)
//	PUT    /buckets/:bucket/versioning     ?enabled=true|false
//	GET    /files/:bucket                  list all versions
//	GET    /files/:bucket/search           ?mode=and|or&tag=k:v
//	POST   /files/:bucket                  multipart upload (file, path, name, tag)
//	GET    /files/:bucket/object           ?name=&version=
//	GET    /files/:bucket/presign          ?name=
//	DELETE /files/:bucket/object           ?name=
//	POST   /files/:bucket/delete           {"objects":[...]}
//	POST   /tenants/refresh                rebuild the tenant's connection
//
// # Errors
//
// Validation errors map to 400, unknown tenants to 404, partial batch failures
// to 207 (with the failed keys), interrupted retries to 503 and exhausted
// backend retries to 502.
package files
