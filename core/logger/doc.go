// Package logger builds the gateway's zap logger.
//
// New reads a Config with a level (debug, info, warn, error) and an encoding:
// json for servers, console for the CLI. Debug level starts from zap's
// development config, every other level from the production config.
//
// # Request correlation
//
// WithRayID returns a child logger carrying the ray id the rayid middleware
// stored on the fiber context. Handlers in feature/files log failures through
// it, so a 502 from a storage backend can be traced to the request that
// caused it.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Starting server", zap.String("addr", ":8080"))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Warn("Upload failed", zap.String("bucket", bucket), zap.Error(err))
package logger
