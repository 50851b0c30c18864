package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrate/internal/config"
	"go.uber.org/goleak"
)

var sampleInvite = []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n")

func serve(t *testing.T, srv *InviteServer, req *http.Request) *http.Response {
	t.Helper()
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	resp := w.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// -----------------------------------------------------------------------------
// Handler
// -----------------------------------------------------------------------------

func TestHandler_ServesInvite(t *testing.T) {
	srv := NewInviteServer(0)
	srv.Update(sampleInvite)

	for _, route := range []string{config.RouteRoot, config.RouteInvite} {
		t.Run(route, func(t *testing.T) {
			resp := serve(t, srv, httptest.NewRequest(http.MethodGet, route, nil))

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
			assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
			assert.Equal(t, config.InviteDisposition, resp.Header.Get(config.HeaderDisposition))
			assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))
			assert.NotEmpty(t, resp.Header.Get(config.HeaderLastModified))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, sampleInvite, body)
		})
	}
}

func TestHandler_UnknownPath(t *testing.T) {
	srv := NewInviteServer(0)
	srv.Update(sampleInvite)

	resp := serve(t, srv, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	srv := NewInviteServer(0)
	srv.Update(sampleInvite)

	resp := serve(t, srv, httptest.NewRequest(http.MethodHead, config.RouteInvite, nil))
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
}

// TestHandler_ConditionalRequests covers both cache validators.
func TestHandler_ConditionalRequests(t *testing.T) {
	srv := NewInviteServer(0)
	srv.Update(sampleInvite)

	first := serve(t, srv, httptest.NewRequest(http.MethodGet, config.RouteInvite, nil))
	etag := first.Header.Get(config.HeaderETag)
	lastMod := first.Header.Get(config.HeaderLastModified)
	require.NotEmpty(t, etag)

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"Matching ETag", config.HeaderIfNoneMatch, etag, http.StatusNotModified},
		{"Stale ETag", config.HeaderIfNoneMatch, `"stale"`, http.StatusOK},
		{"Same Last-Modified", config.HeaderIfModifiedSince, lastMod, http.StatusNotModified},
		{"Older client copy", config.HeaderIfModifiedSince, time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat), http.StatusOK},
		{"Garbage date", config.HeaderIfModifiedSince, "yesterday-ish", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, config.RouteInvite, nil)
			req.Header.Set(tt.header, tt.value)

			resp := serve(t, srv, req)
			assert.Equal(t, tt.want, resp.StatusCode)

			if tt.want == http.StatusNotModified {
				body, _ := io.ReadAll(resp.Body)
				assert.Empty(t, body, "Body must be empty on 304 Not Modified")
			}
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := NewInviteServer(0)

	resp := serve(t, srv, httptest.NewRequest(http.MethodPost, config.RouteInvite, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow))
}

func TestHandler_NotReady(t *testing.T) {
	srv := NewInviteServer(0)

	resp := serve(t, srv, httptest.NewRequest(http.MethodGet, config.RouteInvite, nil))

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

// TestServer_ConcurrentUpdates runs writers and readers together.
// Run this with `go test -race`.
func TestServer_ConcurrentUpdates(t *testing.T) {
	srv := NewInviteServer(0)
	handler := srv.Handler()
	end := time.Now().Add(200 * time.Millisecond)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; time.Now().Before(end); i++ {
				srv.Update([]byte(fmt.Sprintf("VERSION:%d-%d", id, i)))
			}
		}(w)
	}
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteInvite, nil))
				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}
	wg.Wait()
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

func TestStart_PortValidation(t *testing.T) {
	err := NewInviteServer(0).Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRequired)

	err = NewInviteServer(70000).Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRange)
}

func TestStart_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", config.LocalhostBindAddr+":0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port
	err = NewInviteServer(port).Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrServerStartup)
}

// TestServer_Lifecycle binds a real listener and checks graceful shutdown.
func TestServer_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ln, err := net.Listen("tcp", config.LocalhostBindAddr+":0")
	require.NoError(t, err)
	url := "http://" + ln.Addr().String() + config.RouteInvite

	srv := NewInviteServer(ln.Addr().(*net.TCPAddr).Port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ctx, ln)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}

	resp, err := client.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	srv.Update(sampleInvite)

	resp, err = client.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sampleInvite, body)

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err, "Serve should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}
