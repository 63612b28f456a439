package tenant

import (
	"context"
	"errors"
	"fmt"

	"object-gateway/core/storage"
)

// ErrNotFound is returned when no enabled tenant matches the id.
var ErrNotFound = errors.New("tenant not found")

// Entry binds a tenant to its backend kind and connection parameters.
type Entry struct {
	Backend        storage.Kind `mapstructure:"backend" json:"backend"`
	storage.Config `mapstructure:",squash"`
}

// Validate checks the backend kind and the fields that kind requires.
func (e Entry) Validate() error {
	if !e.Backend.IsValid() {
		return storage.Validation("validate tenant", e.Tenant, fmt.Sprintf("unknown backend %q", e.Backend))
	}
	return e.Config.Validate(e.Backend)
}

// Source resolves tenant ids to their storage entry.
type Source interface {
	Lookup(ctx context.Context, tenantID string) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
}
