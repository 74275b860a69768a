package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"table_spider/internal/config"

	"github.com/stretchr/testify/require"
)

const page = `<html><body><table><tbody><tr><td>a</td></tr></tbody></table></body></html>`

var largePage = "<table><tbody>" + strings.Repeat("<tr><td>cell</td></tr>", 600_000) + "</tbody></table>"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/private", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "<html><body>gone</body></html>")
	})
	mux.HandleFunc("/latin1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<html><body><table><tr><td>caf\xe9</td></tr></table></body></html>"))
	})
	mux.HandleFunc("/large", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, largePage)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/page", http.StatusFound)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func transports() map[string]config.FetchConfig {
	return map[string]config.FetchConfig{
		config.TransportHTTP:  {Transport: config.TransportHTTP, TimeoutSec: 5},
		config.TransportColly: {Transport: config.TransportColly, TimeoutSec: 5},
	}
}

func TestFetch(t *testing.T) {
	server := newServer(t)

	for name, cfg := range transports() {
		t.Run(name, func(t *testing.T) {
			f, err := New(cfg)
			require.NoError(t, err)

			doc, err := f.Fetch(context.Background(), server.URL+"/page")
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, doc.StatusCode)
			require.Equal(t, page, string(doc.Body))
			require.Contains(t, doc.ContentType, "text/html")
		})
	}
}

func TestFetchNon2xxIsNotAnError(t *testing.T) {
	server := newServer(t)

	for name, cfg := range transports() {
		t.Run(name, func(t *testing.T) {
			f, err := New(cfg)
			require.NoError(t, err)

			doc, err := f.Fetch(context.Background(), server.URL+"/missing")
			require.NoError(t, err)
			require.Equal(t, http.StatusNotFound, doc.StatusCode)
			require.Contains(t, string(doc.Body), "gone")
		})
	}
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	address := server.URL + "/page"
	server.Close()

	for name, cfg := range transports() {
		t.Run(name, func(t *testing.T) {
			f, err := New(cfg)
			require.NoError(t, err)

			doc, err := f.Fetch(context.Background(), address)
			require.ErrorIs(t, err, ErrNetwork)
			require.Nil(t, doc)
		})
	}
}

func TestFetchCancelledContext(t *testing.T) {
	server := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, cfg := range transports() {
		t.Run(name, func(t *testing.T) {
			f, err := New(cfg)
			require.NoError(t, err)

			_, err = f.Fetch(ctx, server.URL+"/page")
			require.ErrorIs(t, err, ErrNetwork)
		})
	}
}

func TestHTTPFetchInvalidAddress(t *testing.T) {
	f := NewHTTPFetcher(config.FetchConfig{})
	_, err := f.Fetch(context.Background(), "not a url")
	require.ErrorIs(t, err, ErrNetwork)
}

func TestHTTPFetchFollowsRedirect(t *testing.T) {
	server := newServer(t)
	f := NewHTTPFetcher(config.FetchConfig{TimeoutSec: 5})

	doc, err := f.Fetch(context.Background(), server.URL+"/redirect")
	require.NoError(t, err)
	require.Equal(t, server.URL+"/page", doc.URL)
	require.Equal(t, page, string(doc.Body))
}

func TestHTTPFetchKeepsRawBytes(t *testing.T) {
	server := newServer(t)
	f := NewHTTPFetcher(config.FetchConfig{TimeoutSec: 5})

	doc, err := f.Fetch(context.Background(), server.URL+"/latin1")
	require.NoError(t, err)
	require.Equal(t, "text/html; charset=iso-8859-1", doc.ContentType)
	require.Contains(t, string(doc.Body), "caf\xe9")
}

func TestFetchLargeBody(t *testing.T) {
	server := newServer(t)
	require.Greater(t, len(largePage), 10*1024*1024)

	for name, cfg := range transports() {
		t.Run(name, func(t *testing.T) {
			f, err := New(cfg)
			require.NoError(t, err)

			doc, err := f.Fetch(context.Background(), server.URL+"/large")
			require.NoError(t, err)
			require.Equal(t, len(largePage), len(doc.Body))
		})
	}
}

func TestFetchHonoursContextDeadline(t *testing.T) {
	server := newServer(t)

	for name, cfg := range transports() {
		t.Run(name, func(t *testing.T) {
			cfg.TimeoutSec = 0
			f, err := New(cfg)
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err = f.Fetch(ctx, server.URL+"/slow")
			require.ErrorIs(t, err, ErrNetwork)
			require.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestTranscodedContentType(t *testing.T) {
	testCases := []struct {
		contentType string
		body        string
		expected    string
	}{
		{contentType: "text/html; charset=iso-8859-1", body: "café", expected: "text/html; charset=utf-8"},
		{contentType: "text/html; charset=iso-8859-1", body: "caf\xe9", expected: "text/html; charset=iso-8859-1"},
		{contentType: "text/html", body: "caf\xe9", expected: "text/html"},
		{contentType: "", body: "x", expected: ""},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, transcodedContentType(tc.contentType, []byte(tc.body)), tc.contentType)
	}
}

func TestHTTPFetchRespectsRobots(t *testing.T) {
	server := newServer(t)
	f := NewHTTPFetcher(config.FetchConfig{TimeoutSec: 5, RespectRobots: true})

	_, err := f.Fetch(context.Background(), server.URL+"/private")
	require.ErrorIs(t, err, ErrNetwork)

	doc, err := f.Fetch(context.Background(), server.URL+"/page")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, doc.StatusCode)

	f = NewHTTPFetcher(config.FetchConfig{TimeoutSec: 5})
	_, err = f.Fetch(context.Background(), server.URL+"/private")
	require.NoError(t, err)
}

func TestNewUnknownTransport(t *testing.T) {
	_, err := New(config.FetchConfig{Transport: "gopher"})
	require.Error(t, err)
}
