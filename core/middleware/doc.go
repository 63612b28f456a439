// Package middleware contains HTTP middleware for the gateway's Fiber application.
//
// # Components
//
//   - auth: checks the X-API-Key header in constant time. Paths listed in
//     Config.Skip (the Prometheus /metrics endpoint) are served without a key,
//     and an empty key disables the check.
//   - rayid: reuses the caller's X-Ray-ID or generates a UUID, stores it in
//     the request locals and echoes it on the response. logger.WithRayID reads
//     it back so every log line of a request shares one id.
//
// Tenant selection (X-Tenant-ID) is not a middleware; the files feature
// resolves it per request through the configured tenant source.
//
// The start command registers rayid first, then request logging, then auth.
package middleware
