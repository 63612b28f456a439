package registry

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"object-gateway/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type handle struct {
	tenant string
	serial int64
}

type countingFactory struct {
	calls atomic.Int64
	delay time.Duration
	err   error
}

func (f *countingFactory) build(cfg storage.Config) (*handle, error) {
	n := f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &handle{tenant: cfg.Tenant, serial: n}, nil
}

func config(tenant string) storage.Config {
	return storage.Config{
		Tenant:   tenant,
		URL:      "http://localhost:9000",
		UserName: "user",
		Password: "secret",
	}
}

func TestGet_CachesHandle(t *testing.T) {
	f := &countingFactory{}
	reg := New[*handle](storage.KindS3Compatible, f.build, zap.NewNop())

	first, err := reg.Get(config("acme"))
	require.NoError(t, err)
	second, err := reg.Get(config("acme"))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), f.calls.Load())
	assert.Equal(t, 1, reg.Len())
}

func TestGet_IsolatesTenants(t *testing.T) {
	f := &countingFactory{}
	reg := New[*handle](storage.KindS3Compatible, f.build, zap.NewNop())

	a, err := reg.Get(config("a"))
	require.NoError(t, err)
	b, err := reg.Get(config("b"))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, "a", a.tenant)
	assert.Equal(t, "b", b.tenant)
	assert.Equal(t, 2, reg.Len())
}

func TestGet_ConcurrentFirstUseBuildsOnce(t *testing.T) {
	f := &countingFactory{delay: 20 * time.Millisecond}
	reg := New[*handle](storage.KindS3Compatible, f.build, zap.NewNop())

	const workers = 32
	results := make([]*handle, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			h, err := reg.Get(config("acme"))
			assert.NoError(t, err)
			results[i] = h
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), f.calls.Load())
	for _, h := range results {
		assert.Same(t, results[0], h)
	}
}

func TestGet_InvalidConfigNeverBuilds(t *testing.T) {
	f := &countingFactory{}
	reg := New[*handle](storage.KindNamespaceREST, f.build, zap.NewNop())

	invalid := []storage.Config{
		{URL: "http://x", UserName: "u", Password: "p", Namespace: "ns"},
		{Tenant: "t", UserName: "u", Password: "p", Namespace: "ns"},
		{Tenant: "t", URL: "http://x", Password: "p", Namespace: "ns"},
		{Tenant: "t", URL: "http://x", UserName: "u", Namespace: "ns"},
		{Tenant: "t", URL: "http://x", UserName: "u", Password: "p"},
	}
	for _, cfg := range invalid {
		_, err := reg.Get(cfg)
		assert.True(t, storage.IsValidation(err))
		assert.True(t, storage.IsValidation(reg.Update(cfg)))
	}

	assert.Zero(t, f.calls.Load())
	assert.Zero(t, reg.Len())
}

func TestGet_ConstructionError(t *testing.T) {
	f := &countingFactory{err: errors.New("bad endpoint")}
	reg := New[*handle](storage.KindAWS, f.build, zap.NewNop())

	_, err := reg.Get(config("acme"))
	require.Error(t, err)
	assert.True(t, storage.IsBackend(err))
	assert.Contains(t, err.Error(), "bad endpoint")
	assert.Equal(t, int64(1), f.calls.Load())
	assert.Zero(t, reg.Len())
}

func TestUpdate_ReplacesHandle(t *testing.T) {
	f := &countingFactory{}
	reg := New[*handle](storage.KindS3Compatible, f.build, zap.NewNop())

	// Update without a prior Get still installs a handle
	require.NoError(t, reg.Update(config("acme")))
	first, err := reg.Get(config("acme"))
	require.NoError(t, err)

	require.NoError(t, reg.Update(config("acme")))
	second, err := reg.Get(config("acme"))
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int64(2), f.calls.Load())
	assert.Equal(t, 1, reg.Len())
}

func TestUpdate_FailureKeepsOldHandle(t *testing.T) {
	f := &countingFactory{}
	reg := New[*handle](storage.KindS3Compatible, f.build, zap.NewNop())

	first, err := reg.Get(config("acme"))
	require.NoError(t, err)

	f.err = errors.New("unreachable")
	assert.Error(t, reg.Update(config("acme")))

	f.err = nil
	again, err := reg.Get(config("acme"))
	require.NoError(t, err)
	assert.Same(t, first, again)
}

func TestRemove(t *testing.T) {
	f := &countingFactory{}
	reg := New[*handle](storage.KindS3Compatible, f.build, zap.NewNop())

	_, err := reg.Get(config("acme"))
	require.NoError(t, err)
	reg.Remove("acme")
	assert.Zero(t, reg.Len())
	assert.Equal(t, storage.KindS3Compatible, reg.Kind())
}
