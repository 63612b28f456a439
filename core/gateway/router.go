package gateway

import (
	"fmt"
	"sort"

	"object-gateway/core/storage"
)

// Router selects the Store serving a backend kind.
// It is built once at startup and read-only afterwards.
type Router struct {
	stores map[storage.Kind]Store
}

// NewRouter indexes the given stores by their kind. Later stores win on duplicates.
func NewRouter(stores ...Store) *Router {
	r := &Router{stores: make(map[storage.Kind]Store, len(stores))}
	for _, s := range stores {
		r.stores[s.Kind()] = s
	}
	return r
}

// Store returns the store for kind.
func (r *Router) Store(kind storage.Kind) (Store, error) {
	s, ok := r.stores[kind]
	if !ok {
		return nil, fmt.Errorf("no store registered for backend %q", kind)
	}
	return s, nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Router) Kinds() []storage.Kind {
	kinds := make([]storage.Kind, 0, len(r.stores))
	for k := range r.stores {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
