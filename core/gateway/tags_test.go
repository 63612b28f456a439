package gateway_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"object-gateway/core/gateway"
	"object-gateway/core/gateway/mocks"
	"object-gateway/core/retry"
	"object-gateway/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var requested = map[string]string{"env": "prod", "tier": "gold"}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		actual map[string]string
		mode   storage.MatchMode
		want   bool
	}{
		{"AndSuperset", map[string]string{"env": "prod", "tier": "gold", "team": "x"}, storage.MatchAll, true},
		{"AndMissingPair", map[string]string{"env": "prod"}, storage.MatchAll, false},
		{"AndWrongValue", map[string]string{"env": "prod", "tier": "silver"}, storage.MatchAll, false},
		{"AndValuesUnderOtherKeys", map[string]string{"a": "prod", "b": "gold"}, storage.MatchAll, false},
		{"OrSharedValue", map[string]string{"env": "prod"}, storage.MatchAny, true},
		{"OrValueUnderOtherKey", map[string]string{"stage": "gold"}, storage.MatchAny, true},
		{"OrNoOverlap", map[string]string{"env": "dev"}, storage.MatchAny, false},
		{"OrUntagged", nil, storage.MatchAny, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gateway.Matches(requested, tt.actual, tt.mode))
		})
	}
}

func TestMatchedValues(t *testing.T) {
	got := gateway.MatchedValues(
		map[string]string{"b": "x", "a": "y", "c": "x"},
		map[string]string{"k1": "x", "k2": "y"},
	)
	assert.Equal(t, []string{"y", "x"}, got)
}

func TestFindByTags(t *testing.T) {
	objects := []storage.FileStorage{
		{ObjectName: "both.txt", VersionID: "1", CurrentVersion: true},
		{ObjectName: "prod-only.txt", VersionID: "2", CurrentVersion: true},
		{ObjectName: "dev.txt", VersionID: "3", CurrentVersion: true},
	}
	tagsFor := map[string]map[string]string{
		"both.txt":      {"env": "prod", "tier": "gold"},
		"prod-only.txt": {"env": "prod"},
		"dev.txt":       {"env": "dev"},
	}

	newGateway := func() (*gateway.Gateway[string], *mocks.Driver) {
		driver := new(mocks.Driver)
		driver.On("Connect", mock.Anything).Return("conn", nil)
		driver.On("ListObjects", mock.Anything, "conn", "docs").Return(objects, nil)
		for _, o := range objects {
			driver.On("ObjectTags", mock.Anything, "conn", "docs", o.ObjectName, o.VersionID).Return(tagsFor[o.ObjectName], nil)
		}
		return gateway.New[string](driver, retry.New(zap.NewNop()), zap.NewNop()), driver
	}

	t.Run("And", func(t *testing.T) {
		gw, driver := newGateway()
		got, err := gw.FindByTags(context.Background(), testConfig(), "docs", requested, storage.MatchAll)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "both.txt", got[0].ObjectName)
		assert.Equal(t, []string{"prod", "gold"}, got[0].Tags)

		// one tag round trip per listed object
		driver.AssertNumberOfCalls(t, "ObjectTags", len(objects))
		driver.AssertNumberOfCalls(t, "ListObjects", 1)
	})

	t.Run("Or", func(t *testing.T) {
		gw, _ := newGateway()
		got, err := gw.FindByTags(context.Background(), testConfig(), "docs", requested, storage.MatchAny)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "both.txt", got[0].ObjectName)
		assert.Equal(t, "prod-only.txt", got[1].ObjectName)
		assert.Equal(t, []string{"prod"}, got[1].Tags)
	})

	t.Run("TagFetchFailure", func(t *testing.T) {
		driver := new(mocks.Driver)
		driver.On("Connect", mock.Anything).Return("conn", nil)
		driver.On("ListObjects", mock.Anything, "conn", "docs").Return(objects[:1], nil)
		driver.On("ObjectTags", mock.Anything, "conn", "docs", "both.txt", "1").Return(nil, errors.New("denied"))
		exec := retry.New(zap.NewNop(), retry.WithSleep(func(context.Context, time.Duration) error { return nil }))
		gw := gateway.New[string](driver, exec, zap.NewNop())

		_, err := gw.FindByTags(context.Background(), testConfig(), "docs", requested, storage.MatchAll)
		assert.True(t, storage.IsBackend(err))
	})
}

func TestFindByTags_ConnectionFailureReturnsNoMatches(t *testing.T) {
	driver := new(mocks.Driver)
	driver.On("Connect", mock.Anything).Return("", errors.New("unreachable"))
	gw := gateway.New[string](driver, retry.New(zap.NewNop()), zap.NewNop())

	got, err := gw.FindByTags(context.Background(), testConfig(), "docs", requested, storage.MatchAny)
	require.NoError(t, err)
	assert.Empty(t, got)
	driver.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindByTags_InvalidMode(t *testing.T) {
	driver := new(mocks.Driver)
	gw := gateway.New[string](driver, nil, nil)

	_, err := gw.FindByTags(context.Background(), testConfig(), "docs", requested, storage.MatchMode("xor"))
	assert.True(t, storage.IsValidation(err))
	assert.Empty(t, driver.Calls)
}
