// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration.
//
// # Connect
//
// Connect builds the DSN from Config and delegates to Open, which applies pool
// settings and pings within the configured timeout. Open accepts any dialector,
// so tests can hand it a sqlmock-backed connection.
//
// # Schema Inspection
//
// GetTableColumns and RequireColumns verify that the tenant table carries the
// columns the tenant source maps before it is queried.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.RequireColumns(db, "storage_tenants", "tenant", "backend")
package database
