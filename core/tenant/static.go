package tenant

import (
	"context"
	"fmt"
	"sort"
)

// StaticSource serves tenants declared in configuration.
type StaticSource struct {
	entries map[string]Entry
}

// NewStaticSource validates every entry and rejects duplicate tenant ids.
func NewStaticSource(entries []Entry) (*StaticSource, error) {
	byID := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byID[e.Tenant]; dup {
			return nil, fmt.Errorf("duplicate tenant %q", e.Tenant)
		}
		byID[e.Tenant] = e
	}
	return &StaticSource{entries: byID}, nil
}

func (s *StaticSource) Lookup(_ context.Context, tenantID string) (Entry, error) {
	e, ok := s.entries[tenantID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, tenantID)
	}
	return e, nil
}

func (s *StaticSource) List(_ context.Context) ([]Entry, error) {
	list := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Tenant < list[j].Tenant })
	return list, nil
}
