// Package config provides configuration management for the object gateway.
//
// It utilizes Viper for loading configuration from environment variables,
// the .env file (via godotenv) and an optional config.yaml.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Log: Logging level and format
//   - Database: MySQL connection for the database tenant source
//   - Gateway: backend timeouts, delete concurrency, tenant source
//   - Tenants: static tenant list (config.yaml only)
//
// Scalar keys take their defaults from `default` struct tags and can be
// overridden by environment variables such as SERVER_PORT or GATEWAY_TENANT_SOURCE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
