package gateway

import (
	"context"
	"sort"

	"object-gateway/core/storage"

	"go.uber.org/zap"
)

// FindByTags lists the bucket and returns the object versions whose tags match.
//
// The listing is followed by one tag fetch per listed version, so the cost grows
// linearly with the bucket size. MatchAll compares key/value pairs; MatchAny only
// compares values. Matched objects carry the requested values they share with the
// object, ordered by requested key.
//
// If the tenant connection cannot be resolved the query returns no matches
// instead of an error.
func (g *Gateway[H]) FindByTags(ctx context.Context, cfg storage.Config, bucket string, tags map[string]string, mode storage.MatchMode) ([]storage.FileStorage, error) {
	const op = "find by tags"
	if err := storage.RequireName(op, "bucket", bucket); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, storage.Validation(op, bucket, "requested tags must not be empty")
	}
	if mode != storage.MatchAll && mode != storage.MatchAny {
		return nil, storage.Validation(op, string(mode), "mode must be and|or")
	}
	if err := cfg.Validate(g.driver.Kind()); err != nil {
		return nil, err
	}

	result := []storage.FileStorage{}

	h, err := g.conns.Get(cfg)
	if err != nil {
		g.logger.Warn("Tag query could not resolve connection, returning no matches",
			zap.String("tenant", cfg.Tenant),
			zap.String("bucket", bucket),
			zap.Error(err))
		return result, nil
	}

	objects, err := g.listObjects(ctx, h, bucket)
	if err != nil {
		return nil, err
	}

	keys := sortedKeys(tags)
	for _, obj := range objects {
		resource := objectResource(bucket, obj.ObjectName)
		actual, err := call(ctx, g, "get object tags", resource, func() (map[string]string, error) {
			return g.driver.ObjectTags(ctx, h, bucket, obj.ObjectName, obj.VersionID)
		})
		if err != nil {
			return nil, err
		}

		if !Matches(tags, actual, mode) {
			continue
		}
		obj.Tags = matchedValues(keys, tags, actual)
		result = append(result, obj)
	}

	return result, nil
}

// Matches reports whether an object's tags satisfy the requested tags under mode.
func Matches(requested, actual map[string]string, mode storage.MatchMode) bool {
	switch mode {
	case storage.MatchAll:
		for k, v := range requested {
			got, ok := actual[k]
			if !ok || got != v {
				return false
			}
		}
		return len(requested) > 0
	case storage.MatchAny:
		values := valueSet(actual)
		for _, v := range requested {
			if _, ok := values[v]; ok {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// MatchedValues returns the deduplicated requested values present among the
// object's values, ordered by requested key.
func MatchedValues(requested, actual map[string]string) []string {
	return matchedValues(sortedKeys(requested), requested, actual)
}

func matchedValues(keys []string, requested, actual map[string]string) []string {
	values := valueSet(actual)
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		v := requested[k]
		if _, ok := values[v]; !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func valueSet(tags map[string]string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, v := range tags {
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
