package webclient_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"scraper/pkg/webclient"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testUA = "Mozilla/5.0 (test)"

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *webclient.HTTPClient {
	return webclient.New(&http.Client{Transport: fn}, testUA)
}

func TestHTTPClient_Page_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "example.com", r.URL.Host)
		require.Equal(t, "/page", r.URL.Path)
		require.Equal(t, testUA, r.Header.Get("User-Agent"))

		h := http.Header{}
		h.Set("Content-Type", "text/html; charset=utf-8")

		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     h,
			Body:       io.NopCloser(strings.NewReader(`<a href="a.jpg">a</a>`)),
		}, nil
	})

	page, err := c.Page(context.Background(), "http://example.com/page")
	require.NoError(t, err)
	require.Equal(t, `<a href="a.jpg">a</a>`, string(page.Body))
	require.Equal(t, "text/html; charset=utf-8", page.ContentType)
}

func TestHTTPClient_Page_non2xx(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader("go away bot")),
		}, nil
	})

	_, err := c.Page(context.Background(), "http://example.com/page")
	require.Error(t, err)

	var statusErr *webclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	require.Contains(t, err.Error(), "go away bot")
}

func TestHTTPClient_Page_transportError(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: no such host")
	})

	_, err := c.Page(context.Background(), "http://nowhere.invalid/")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no such host")
}

func TestHTTPClient_Page_badURL(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		t.Fatalf("no request expected")

		return nil, nil
	})

	_, err := c.Page(context.Background(), "http://[::1")
	require.Error(t, err)
}

func TestHTTPClient_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, testUA, r.UserAgent())
		switch r.URL.Path {
		case "/a.png":
			_, _ = w.Write([]byte("PNGDATA"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := webclient.New(&http.Client{Transport: webclient.WithLogger(nil)}, testUA)

	var buf bytes.Buffer
	n, err := c.Download(context.Background(), srv.URL+"/a.png", &buf)
	require.NoError(t, err)
	require.EqualValues(t, 7, n)
	require.Equal(t, "PNGDATA", buf.String())

	buf.Reset()
	_, err = c.Download(context.Background(), srv.URL+"/missing.png", &buf)
	var statusErr *webclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	require.Zero(t, buf.Len())
}

func TestHTTPClient_Download_cancelled(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, r.Context().Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Download(ctx, "http://example.com/a.zip", io.Discard)
	require.ErrorIs(t, err, context.Canceled)
}
