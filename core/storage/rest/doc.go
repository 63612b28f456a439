// Package rest adapts object stores that expose a JSON REST API.
//
// Two dialects share the Conn handle and its request helpers:
//
//   - GenericDriver: /buckets/{bucket}/objects/{key}, basic auth, tags as
//     X-Object-Meta-* headers, native batch delete.
//   - NamespaceDriver: /namespaces/{ns}/containers/{container}/objects/{key},
//     bearer token, tags as X-Meta-* headers, batch delete fanned out with a
//     bounded errgroup.
//
// A 404 on HEAD means "absent" and a 404 on DELETE means "already removed";
// every other non-2xx status is returned as *StatusError.
package rest
