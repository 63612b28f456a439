// Package tenant resolves tenant ids to storage backends and credentials.
//
// # Sources
//
//   - StaticSource: the tenants list from configuration, validated at startup.
//   - DBSource: the storage_tenants table read through GORM. The schema is
//     checked with database.RequireColumns when the source is created.
//   - CachedSource: TTL cache in front of either source, with singleflight
//     stampede protection.
//
// A lookup yields an Entry: the backend kind plus the storage.Config handed to
// the gateway for that backend.
package tenant
