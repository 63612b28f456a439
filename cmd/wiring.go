package cmd

import (
	"fmt"

	"object-gateway/core/config"
	"object-gateway/core/database"
	"object-gateway/core/gateway"
	"object-gateway/core/logger"
	"object-gateway/core/retry"
	"object-gateway/core/storage/awss3"
	"object-gateway/core/storage/rest"
	"object-gateway/core/storage/s3compat"
	"object-gateway/core/tenant"
	"object-gateway/feature/files"

	"go.uber.org/zap"
)

var configDir string

// newApp builds the dependencies of a command; tests swap it for mocks.
var newApp = bootstrap

// app bundles everything a command needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	router  *gateway.Router
	tenants tenant.Source
	files   *files.Service
}

func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	tenants, err := buildTenantSource(cfg, logg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(cfg.Gateway, logg)
	return &app{
		cfg:     cfg,
		logger:  logg,
		router:  router,
		tenants: tenants,
		files:   files.NewService(router, tenants, logg),
	}, nil
}

// buildRouter registers one gateway per backend kind. Each gateway owns its
// connection registry; all of them share the retry policy.
func buildRouter(cfg gateway.Config, logg *zap.Logger) *gateway.Router {
	exec := retry.New(logg)

	restOpts := rest.Options{
		TimeoutSeconds: cfg.TimeoutSeconds,
		Concurrency:    cfg.DeleteConcurrency,
	}

	return gateway.NewRouter(
		gateway.New[s3compat.Client](s3compat.NewDriver(s3compat.Options{
			TimeoutSeconds: cfg.TimeoutSeconds,
			DefaultRegion:  cfg.DefaultRegion,
		}), exec, logg),
		gateway.New[*awss3.Client](awss3.NewDriver(awss3.Options{
			DefaultRegion: cfg.DefaultRegion,
			UsePathStyle:  cfg.AWSPathStyle,
		}), exec, logg),
		gateway.New[*rest.Conn](rest.NewGenericDriver(restOpts), exec, logg),
		gateway.New[*rest.Conn](rest.NewNamespaceDriver(restOpts), exec, logg),
	)
}

func buildTenantSource(cfg *config.Config, logg *zap.Logger) (tenant.Source, error) {
	switch cfg.Gateway.TenantSource {
	case gateway.TenantSourceStatic, "":
		src, err := tenant.NewStaticSource(cfg.Tenants)
		if err != nil {
			return nil, fmt.Errorf("static tenants: %w", err)
		}
		logg.Info("Using static tenant source", zap.Int("tenants", len(cfg.Tenants)))
		return src, nil
	case gateway.TenantSourceDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		src, err := tenant.NewDBSource(db, logg)
		if err != nil {
			return nil, fmt.Errorf("database tenants: %w", err)
		}
		logg.Info("Using database tenant source",
			zap.String("table", tenant.TableName),
			zap.Duration("cache_ttl", cfg.Gateway.TenantCacheTTL()),
		)
		return tenant.NewCachedSource(src, cfg.Gateway.TenantCacheTTL()), nil
	default:
		return nil, fmt.Errorf("unknown tenant source %q", cfg.Gateway.TenantSource)
	}
}
