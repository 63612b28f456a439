package gateway

import "time"

// Tenant source names accepted by Config.TenantSource.
const (
	TenantSourceStatic   = "static"
	TenantSourceDatabase = "database"
)

// Config holds settings shared by every backend adapter.
type Config struct {
	// TimeoutSeconds bounds backend HTTP requests.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// DeleteConcurrency bounds parallel single deletes for backends without batch delete.
	DeleteConcurrency int `mapstructure:"delete_concurrency" default:"8"`
	// DefaultRegion applies to SDK backends when a tenant has no region.
	DefaultRegion string `mapstructure:"default_region" default:"us-east-1"`
	// AWSPathStyle forces path-style addressing on the AWS adapter.
	AWSPathStyle bool `mapstructure:"aws_path_style" default:"true"`
	// TenantSource is "static" (tenants list) or "database" (storage_tenants table).
	TenantSource string `mapstructure:"tenant_source" default:"static"`
	// TenantCacheSeconds is the TTL of database tenant lookups.
	TenantCacheSeconds int `mapstructure:"tenant_cache_seconds" default:"60"`
}

// TenantCacheTTL returns the tenant cache TTL as a duration.
func (c Config) TenantCacheTTL() time.Duration {
	if c.TenantCacheSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TenantCacheSeconds) * time.Second
}
