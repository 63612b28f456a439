package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"object-gateway/core/gateway"
	"object-gateway/core/retry"
	"object-gateway/core/storage"
	"object-gateway/core/storage/rest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func genericConn(t *testing.T, handler http.HandlerFunc) (*rest.GenericDriver, *rest.Conn) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d := rest.NewGenericDriver(rest.Options{Client: srv.Client()})
	c, err := d.Connect(storage.Config{Tenant: "acme", URL: srv.URL, UserName: "user", Password: "pass"})
	require.NoError(t, err)
	return d, c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestGenericDriver_Connect(t *testing.T) {
	d := rest.NewGenericDriver(rest.Options{})
	assert.Equal(t, storage.KindGenericREST, d.Kind())

	_, err := d.Connect(storage.Config{URL: "ftp://files.example.com"})
	assert.Error(t, err)

	_, err = d.Connect(storage.Config{URL: "http://"})
	assert.Error(t, err)
}

func TestGenericDriver_BucketExists(t *testing.T) {
	ctx := context.Background()
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "pass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/buckets/docs":
			w.WriteHeader(http.StatusOK)
		case "/buckets/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	ok, err := d.BucketExists(ctx, c, "docs")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.BucketExists(ctx, c, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = d.BucketExists(ctx, c, "broken")
	var statusErr *rest.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestGenericDriver_SetVersioning(t *testing.T) {
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/buckets/docs/versioning", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"status": "Enabled"}, body)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, d.SetVersioning(context.Background(), c, "docs", true))
}

func TestGenericDriver_PutObject(t *testing.T) {
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/buckets/docs/objects/reports/q1.pdf", r.URL.Path)
		assert.Equal(t, "/buckets/docs/objects/reports%2Fq1.pdf", r.URL.EscapedPath())
		assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))
		assert.Equal(t, "prod", r.Header.Get("X-Object-Meta-env"))
		data, _ := io.ReadAll(r.Body)
		assert.Equal(t, "pdf-bytes", string(data))
		w.WriteHeader(http.StatusCreated)
	})

	err := d.PutObject(context.Background(), c, gateway.PutObjectInput{
		Bucket:      "docs",
		Key:         "reports/q1.pdf",
		Content:     []byte("pdf-bytes"),
		ContentType: "application/pdf",
		Tags:        map[string]string{"env": "prod"},
	})
	require.NoError(t, err)
}

func TestGenericDriver_GetObjectWithVersion(t *testing.T) {
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buckets/docs/objects/a.txt", r.URL.Path)
		assert.Equal(t, "v1", r.URL.Query().Get("versionId"))
		_, _ = w.Write([]byte("old"))
	})

	data, err := d.GetObject(context.Background(), c, "docs", "a.txt", "v1")
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), data)
}

func TestGenericDriver_Presign(t *testing.T) {
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/buckets/docs/objects/a.txt/presign", r.URL.Path)
		var in map[string]int64
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, int64(7200), in["expiresIn"])
		writeJSON(w, map[string]string{"url": "https://cdn.example.com/a.txt?sig=1"})
	})

	got, err := d.PresignGetObject(context.Background(), c, "docs", "a.txt", storage.PresignExpiry)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.txt?sig=1", got)
}

func TestGenericDriver_RemoveObject_MissingIsNoop(t *testing.T) {
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})

	assert.NoError(t, d.RemoveObject(context.Background(), c, "docs", "gone.txt"))
}

func TestGenericDriver_RemoveObjects(t *testing.T) {
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/buckets/docs/delete", r.URL.Path)
		var in struct {
			Objects []struct {
				Key string `json:"key"`
			} `json:"objects"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Len(t, in.Objects, 3)
		writeJSON(w, map[string]any{"errors": []map[string]string{{"key": "b", "message": "locked"}}})
	})

	failures, err := d.RemoveObjects(context.Background(), c, "docs", []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "b", failures[0].Key)
	assert.EqualError(t, failures[0].Err, "locked")
}

func TestGenericDriver_ListObjectsPaginates(t *testing.T) {
	modified := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buckets/docs/objects", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("versions"))
		assert.Equal(t, "true", r.URL.Query().Get("recursive"))
		if r.URL.Query().Get("marker") == "" {
			writeJSON(w, map[string]any{
				"objects":    []map[string]any{{"key": "a.txt", "size": 3, "etag": "e1", "lastModified": modified, "versionId": "v2", "isLatest": true}},
				"nextMarker": "a.txt",
			})
			return
		}
		writeJSON(w, map[string]any{
			"objects": []map[string]any{{"key": "b.txt", "size": 5, "etag": "e2", "lastModified": modified}},
		})
	})

	objects, err := d.ListObjects(context.Background(), c, "docs")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, storage.FileStorage{
		ObjectName: "a.txt", Size: 3, ETag: "e1", LastModified: modified, VersionID: "v2", CurrentVersion: true,
	}, objects[0])
	assert.True(t, objects[1].CurrentVersion)
}

func TestGenericDriver_ObjectTags(t *testing.T) {
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buckets/docs/objects/a.txt/tags", r.URL.Path)
		writeJSON(w, map[string]any{"tags": map[string]string{"env": "prod"}})
	})

	tags, err := d.ObjectTags(context.Background(), c, "docs", "a.txt", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"env": "prod"}, tags)
}

func TestGateway_OverGenericREST_ValidationMakesNoRequests(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	exec := retry.New(zap.NewNop(), retry.WithSleep(func(context.Context, time.Duration) error { return nil }))
	gw := gateway.New[*rest.Conn](rest.NewGenericDriver(rest.Options{Client: srv.Client()}), exec, zap.NewNop())
	ctx := context.Background()
	cfg := storage.Config{Tenant: "acme", URL: srv.URL, UserName: "user", Password: "pass"}

	err := gw.Upload(ctx, cfg, gateway.UploadInput{Bucket: "docs", ObjectName: "a.txt"})
	assert.ErrorIs(t, err, storage.ErrValidation)

	err = gw.DeleteObjects(ctx, cfg, "docs", nil)
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = gw.ListObjects(ctx, storage.Config{Tenant: "acme", URL: srv.URL}, "docs")
	assert.ErrorIs(t, err, storage.ErrValidation)

	assert.Zero(t, hits.Load())
}

func TestGateway_OverGenericREST_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	exec := retry.New(zap.NewNop(), retry.WithSleep(func(context.Context, time.Duration) error { return nil }))
	gw := gateway.New[*rest.Conn](rest.NewGenericDriver(rest.Options{Client: srv.Client()}), exec, zap.NewNop())
	cfg := storage.Config{Tenant: "acme", URL: srv.URL, UserName: "user", Password: "pass"}

	data, err := gw.Download(context.Background(), cfg, "docs", "a.txt", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGenericDriver_KeysStayInsideBucket(t *testing.T) {
	ctx := context.Background()
	var (
		mu    sync.Mutex
		paths []string
	)
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.EscapedPath())
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, d.RemoveObject(ctx, c, "docs", "../../buckets/payroll/objects/report.pdf"))
	require.NoError(t, d.RemoveObject(ctx, c, "docs", "a//b"))
	require.NoError(t, d.RemoveObject(ctx, c, "docs", "./notes.txt"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"/buckets/docs/objects/..%2F..%2Fbuckets%2Fpayroll%2Fobjects%2Freport.pdf",
		"/buckets/docs/objects/a%2F%2Fb",
		"/buckets/docs/objects/.%2Fnotes.txt",
	}, paths)
}

func TestGenericDriver_DotSegmentRejected(t *testing.T) {
	var hits atomic.Int32
	d, c := genericConn(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})

	err := d.RemoveObject(context.Background(), c, "docs", "..")
	assert.True(t, storage.IsValidation(err))

	_, err = d.BucketExists(context.Background(), c, ".")
	assert.True(t, storage.IsValidation(err))
	assert.Zero(t, hits.Load())
}
