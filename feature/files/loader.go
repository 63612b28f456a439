package files

import (
	"object-gateway/core/gateway"
	"object-gateway/core/tenant"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	router  *gateway.Router
	service *Service
	handler *Handler
}

// NewFeature creates a new files feature.
func NewFeature(router *gateway.Router, tenants tenant.Source, logger *zap.Logger) *Feature {
	svc := NewService(router, tenants, logger)
	h := NewHandler(svc)
	return &Feature{router: router, service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "files"
}

// IsEnabled reports whether any backend store is registered.
func (f *Feature) IsEnabled() bool {
	return len(f.router.Kinds()) > 0
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
