package files

import (
	"context"
	"strings"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"
	"object-gateway/core/tenant"

	"go.uber.org/zap"
)

// Service resolves the calling tenant to its backend store and forwards
// each operation with the tenant's connection config.
type Service struct {
	router  *gateway.Router
	tenants tenant.Source
	logger  *zap.Logger
}

// NewService creates a new files service.
func NewService(router *gateway.Router, tenants tenant.Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{router: router, tenants: tenants, logger: logger}
}

type invalidator interface {
	Invalidate(tenantID string)
}

func (s *Service) resolve(ctx context.Context, tenantID string) (gateway.Store, storage.Config, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, storage.Config{}, storage.Validation("resolve tenant", "", "missing tenant id")
	}
	entry, err := s.tenants.Lookup(ctx, tenantID)
	if err != nil {
		return nil, storage.Config{}, err
	}
	store, err := s.router.Store(entry.Backend)
	if err != nil {
		return nil, storage.Config{}, err
	}
	return store, entry.Config, nil
}

func (s *Service) ListBuckets(ctx context.Context, tenantID string) ([]storage.Bucket, error) {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return store.ListBuckets(ctx, cfg)
}

func (s *Service) BucketExists(ctx context.Context, tenantID, bucket string) (bool, error) {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return store.BucketExists(ctx, cfg, bucket)
}

func (s *Service) CreateBucket(ctx context.Context, tenantID, bucket string) error {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return err
	}
	return store.CreateBucket(ctx, cfg, bucket)
}

func (s *Service) DeleteBucket(ctx context.Context, tenantID, bucket string) error {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return err
	}
	return store.DeleteBucket(ctx, cfg, bucket)
}

func (s *Service) SetVersioning(ctx context.Context, tenantID, bucket string, enabled bool) error {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return err
	}
	return store.SetVersioning(ctx, cfg, bucket, enabled)
}

func (s *Service) ListObjects(ctx context.Context, tenantID, bucket string) ([]storage.FileStorage, error) {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return store.ListObjects(ctx, cfg, bucket)
}

func (s *Service) FindByTags(ctx context.Context, tenantID, bucket string, tags map[string]string, mode storage.MatchMode) ([]storage.FileStorage, error) {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return store.FindByTags(ctx, cfg, bucket, tags, mode)
}

func (s *Service) Upload(ctx context.Context, tenantID string, in gateway.UploadInput) error {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return err
	}
	return store.Upload(ctx, cfg, in)
}

func (s *Service) Download(ctx context.Context, tenantID, bucket, name, versionID string) ([]byte, error) {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return store.Download(ctx, cfg, bucket, name, versionID)
}

func (s *Service) PresignedURL(ctx context.Context, tenantID, bucket, name string) (string, error) {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return store.PresignedURL(ctx, cfg, bucket, name)
}

func (s *Service) DeleteObject(ctx context.Context, tenantID, bucket, name string) error {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return err
	}
	return store.DeleteObject(ctx, cfg, bucket, name)
}

func (s *Service) DeleteObjects(ctx context.Context, tenantID, bucket string, names []string) error {
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return err
	}
	return store.DeleteObjects(ctx, cfg, bucket, names)
}

// RefreshConnection drops any cached tenant entry and rebuilds the tenant's
// backend connection from the current source data.
func (s *Service) RefreshConnection(ctx context.Context, tenantID string) error {
	if inv, ok := s.tenants.(invalidator); ok {
		inv.Invalidate(tenantID)
	}
	store, cfg, err := s.resolve(ctx, tenantID)
	if err != nil {
		return err
	}
	if err := store.UpdateConnection(cfg); err != nil {
		return err
	}
	s.logger.Info("Refreshed tenant connection",
		zap.String("tenant", tenantID),
		zap.String("backend", string(store.Kind())),
	)
	return nil
}
