package resource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func serverURL(t *testing.T, srv *httptest.Server, path string) URL {
	t.Helper()
	u, err := ParseURL(srv.URL + path)
	require.NoError(t, err)
	return u
}

func TestHTTPFetcher_OK(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Custom", "yes")
		_, _ = w.Write([]byte("<p>hello</p>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, "", zaptest.NewLogger(t))
	resp, err := f.Fetch(context.Background(), serverURL(t, srv, "/index.html"))
	require.NoError(t, err)

	assert.Equal(t, "<p>hello</p>", resp.Body)
	assert.Equal(t, Status{Code: 200, Explanation: "OK"}, resp.Status)
	assert.Equal(t, "HTTP/1.1", resp.Version)
	assert.Equal(t, "yes", resp.Headers["x-custom"])
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, "test-agent", nil)
	_, err := f.Fetch(context.Background(), serverURL(t, srv, "/missing.css"))
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.Status.Code)
	assert.Equal(t, "Not Found", statusErr.Status.Explanation)
}

func TestHTTPFetcher_DecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte{'c', 'a', 'f', 0xe9})
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, "", nil)
	resp, err := f.Fetch(context.Background(), serverURL(t, srv, "/"))
	require.NoError(t, err)
	assert.Equal(t, "café", resp.Body)
}

func TestHTTPFetcher_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewHTTPFetcher(5*time.Second, "", nil)
	_, err := f.Fetch(ctx, serverURL(t, srv, "/"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcher_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>local</p>"), 0o600))

	u, err := ParseURL("file://" + filepath.ToSlash(path))
	require.NoError(t, err)

	f := NewHTTPFetcher(time.Second, "", nil)
	resp, err := f.Fetch(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "<p>local</p>", resp.Body)
	assert.Equal(t, 200, resp.Status.Code)
}

func TestHTTPFetcher_MissingFile(t *testing.T) {
	u, err := ParseURL("file:///nonexistent/lantern/index.html")
	require.NoError(t, err)

	f := NewHTTPFetcher(time.Second, "", nil)
	_, err = f.Fetch(context.Background(), u)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPFetcher_UnsupportedScheme(t *testing.T) {
	f := NewHTTPFetcher(time.Second, "", nil)
	_, err := f.Fetch(context.Background(), URL{Scheme: "gopher", Host: "example.com", Path: "/"})
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}
