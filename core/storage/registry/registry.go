// Package registry caches one backend connection per tenant.
//
// Each adapter owns a Registry for its own handle type, so the cache key is
// effectively the (backend kind, tenant) pair. Configs are validated before any
// lookup; invalid configs never reach the cache. Concurrent first use of a tenant
// builds exactly one handle.
package registry

import (
	"sync"

	"object-gateway/core/metrics"
	"object-gateway/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Factory builds a new handle for a validated config.
type Factory[H any] func(cfg storage.Config) (H, error)

// Registry holds the cached handles of one backend kind.
type Registry[H any] struct {
	kind   storage.Kind
	build  Factory[H]
	logger *zap.Logger

	mu    sync.RWMutex
	conns map[string]H
	sf    singleflight.Group
}

// New creates an empty registry for the given backend kind.
func New[H any](kind storage.Kind, build Factory[H], logger *zap.Logger) *Registry[H] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry[H]{
		kind:   kind,
		build:  build,
		logger: logger,
		conns:  make(map[string]H),
	}
}

// Get returns the cached handle for cfg.Tenant, building it on first use.
// Construction failures are returned as backend errors and are not retried here.
func (r *Registry[H]) Get(cfg storage.Config) (H, error) {
	var zero H
	if err := cfg.Validate(r.kind); err != nil {
		return zero, err
	}

	// Fast path
	r.mu.RLock()
	h, ok := r.conns[cfg.Tenant]
	r.mu.RUnlock()
	if ok {
		return h, nil
	}

	result, err, _ := r.sf.Do(cfg.Tenant, func() (interface{}, error) {
		// Double-check after winning the flight
		r.mu.RLock()
		h, ok := r.conns[cfg.Tenant]
		r.mu.RUnlock()
		if ok {
			return h, nil
		}

		h, err := r.connect(cfg)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.conns[cfg.Tenant] = h
		n := len(r.conns)
		r.mu.Unlock()
		metrics.SetConnections(string(r.kind), n)

		return h, nil
	})
	if err != nil {
		return zero, err
	}

	return result.(H), nil
}

// Update builds a fresh handle and replaces whatever is cached for the tenant.
// Concurrent readers may observe either handle while the swap happens.
func (r *Registry[H]) Update(cfg storage.Config) error {
	if err := cfg.Validate(r.kind); err != nil {
		return err
	}

	h, err := r.connect(cfg)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.conns[cfg.Tenant] = h
	n := len(r.conns)
	r.mu.Unlock()
	metrics.SetConnections(string(r.kind), n)

	r.logger.Info("Replaced tenant connection",
		zap.String("backend", string(r.kind)),
		zap.String("tenant", cfg.Tenant))
	return nil
}

// Remove drops the cached handle of a tenant, if any.
func (r *Registry[H]) Remove(tenant string) {
	r.mu.Lock()
	delete(r.conns, tenant)
	n := len(r.conns)
	r.mu.Unlock()
	metrics.SetConnections(string(r.kind), n)
}

// Len returns the number of cached handles.
func (r *Registry[H]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Kind returns the backend kind served by this registry.
func (r *Registry[H]) Kind() storage.Kind {
	return r.kind
}

func (r *Registry[H]) connect(cfg storage.Config) (H, error) {
	h, err := r.build(cfg)
	if err != nil {
		r.logger.Error("Failed to create tenant connection",
			zap.String("backend", string(r.kind)),
			zap.String("tenant", cfg.Tenant),
			zap.Error(err))
		var zero H
		return zero, storage.Backend(r.kind, "connect", cfg.Tenant, err)
	}
	return h, nil
}
