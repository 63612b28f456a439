package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"
	"object-gateway/core/storage/rest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namespaceConn(t *testing.T, handler http.HandlerFunc) (*rest.NamespaceDriver, *rest.Conn) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	d := rest.NewNamespaceDriver(rest.Options{Client: srv.Client(), Concurrency: 2})
	c, err := d.Connect(storage.Config{Tenant: "acme", URL: srv.URL, UserName: "svc", Password: "token-1", Namespace: "acme-ns"})
	require.NoError(t, err)
	return d, c
}

func TestNamespaceDriver_Kind(t *testing.T) {
	d := rest.NewNamespaceDriver(rest.Options{})
	assert.Equal(t, storage.KindNamespaceREST, d.Kind())
	assert.True(t, d.Kind().RequiresNamespace())
}

func TestNamespaceDriver_ContainerLifecycle(t *testing.T) {
	ctx := context.Background()
	var (
		mu    sync.Mutex
		calls []string
	)
	d, c := namespaceConn(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch {
		case r.Method == http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/versioning"):
			var in map[string]bool
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, map[string]bool{"enabled": false}, in)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusCreated)
		}
	})

	ok, err := d.BucketExists(ctx, c, "media")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, d.MakeBucket(ctx, c, "media"))
	require.NoError(t, d.SetVersioning(ctx, c, "media", false))
	require.NoError(t, d.RemoveBucket(ctx, c, "media"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"HEAD /namespaces/acme-ns/containers/media",
		"PUT /namespaces/acme-ns/containers/media",
		"PUT /namespaces/acme-ns/containers/media/versioning",
		"DELETE /namespaces/acme-ns/containers/media",
	}, calls)
}

func TestNamespaceDriver_ListBuckets(t *testing.T) {
	created := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	d, c := namespaceConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/namespaces/acme-ns/containers", r.URL.Path)
		writeJSON(w, map[string]any{"containers": []map[string]any{{"name": "media", "created": created}}})
	})

	buckets, err := d.ListBuckets(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []storage.Bucket{{Name: "media", CreationDate: created}}, buckets)
}

func TestNamespaceDriver_PutObjectMetadataHeaders(t *testing.T) {
	d, c := namespaceConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/namespaces/acme-ns/containers/media/objects/img/logo.png", r.URL.Path)
		assert.Equal(t, "/namespaces/acme-ns/containers/media/objects/img%2Flogo.png", r.URL.EscapedPath())
		assert.Equal(t, "brand", r.Header.Get("X-Meta-category"))
		w.WriteHeader(http.StatusCreated)
	})

	err := d.PutObject(context.Background(), c, gateway.PutObjectInput{
		Bucket:      "media",
		Key:         "img/logo.png",
		Content:     []byte{0x89, 0x50},
		ContentType: "image/png",
		Tags:        map[string]string{"category": "brand"},
	})
	require.NoError(t, err)
}

func TestNamespaceDriver_Share(t *testing.T) {
	d, c := namespaceConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/namespaces/acme-ns/containers/media/objects/a.txt/share", r.URL.Path)
		assert.Equal(t, "7200", r.URL.Query().Get("ttl"))
		writeJSON(w, map[string]string{"share_url": "https://share.example.com/x"})
	})

	got, err := d.PresignGetObject(context.Background(), c, "media", "a.txt", storage.PresignExpiry)
	require.NoError(t, err)
	assert.Equal(t, "https://share.example.com/x", got)
}

func TestNamespaceDriver_RemoveObjectsFansOut(t *testing.T) {
	var hits atomic.Int32
	d, c := namespaceConn(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodDelete, r.Method)
		if strings.HasSuffix(r.URL.Path, "/objects/b") || strings.HasSuffix(r.URL.Path, "/objects/d") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	failures, err := d.RemoveObjects(context.Background(), c, "media", []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, int32(4), hits.Load())
	require.Len(t, failures, 2)
	assert.Equal(t, "b", failures[0].Key)
	assert.Equal(t, "d", failures[1].Key)

	var statusErr *rest.StatusError
	require.ErrorAs(t, failures[0].Err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestNamespaceDriver_ListObjects(t *testing.T) {
	modified := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	d, c := namespaceConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/namespaces/acme-ns/containers/media/objects", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("versions"))
		if r.URL.Query().Get("marker") == "" {
			writeJSON(w, map[string]any{
				"items":  []map[string]any{{"name": "a.txt", "bytes": 4, "hash": "h1", "last_modified": modified, "version": "2", "latest": true}},
				"marker": "m1",
			})
			return
		}
		writeJSON(w, map[string]any{
			"items": []map[string]any{{"name": "a.txt", "bytes": 2, "hash": "h0", "last_modified": modified, "version": "1", "latest": false}},
		})
	})

	objects, err := d.ListObjects(context.Background(), c, "media")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, storage.FileStorage{
		ObjectName: "a.txt", Size: 4, ETag: "h1", LastModified: modified, VersionID: "2", CurrentVersion: true,
	}, objects[0])
	assert.False(t, objects[1].CurrentVersion)
}

func TestNamespaceDriver_ObjectTags(t *testing.T) {
	d, c := namespaceConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/namespaces/acme-ns/containers/media/objects/a.txt/metadata", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("version"))
		writeJSON(w, map[string]any{"metadata": map[string]string{"category": "brand"}})
	})

	tags, err := d.ObjectTags(context.Background(), c, "media", "a.txt", "2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"category": "brand"}, tags)
}

func TestNamespaceDriver_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	d := rest.NewNamespaceDriver(rest.Options{Client: srv.Client()})
	c, err := d.Connect(storage.Config{Tenant: "acme", URL: srv.URL, UserName: "svc", Password: "bad", Namespace: "ns"})
	require.NoError(t, err)

	_, err = d.ListBuckets(context.Background(), c)
	var statusErr *rest.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestNamespaceDriver_KeysStayInsideNamespace(t *testing.T) {
	d, c := namespaceConn(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/namespaces/acme-ns/containers/media/objects/..%2F..%2F..%2Fother-ns%2Fcontainers%2Fpayroll%2Fobjects%2Fx" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("payload"))
	})

	data, err := d.GetObject(context.Background(), c, "media", "../../../other-ns/containers/payroll/objects/x", "")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = d.ObjectTags(context.Background(), c, "..", "x", "")
	assert.True(t, storage.IsValidation(err))
}
