package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-celebrate/internal/config"
)

// invite is the rendered calendar invite with its HTTP cache validators.
type invite struct {
	data         []byte
	etag         string
	lastModified time.Time
}

// InviteServer shares the countdown target as an iCalendar file on localhost,
// so guests on the same machine can import it or subscribe to it.
type InviteServer struct {
	// Readers never block: the invite is swapped as a whole.
	current atomic.Pointer[invite]
	Port    int
}

// NewInviteServer creates a server for the given port.
func NewInviteServer(port int) *InviteServer {
	return &InviteServer{Port: port}
}

// Handler returns the HTTP routes: the invite is served at / and /invite.ics.
func (s *InviteServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleInvite)
	mux.HandleFunc(config.RouteInvite, s.handleInvite)
	return mux
}

// Start listens on localhost and serves until ctx is cancelled.
func (s *InviteServer) Start(ctx context.Context) error {
	if s.Port == 0 {
		return errors.New(config.ErrPortRequired)
	}
	if s.Port < config.MinPort || s.Port > config.MaxPort {
		return fmt.Errorf("%s: %d", config.ErrPortRange, s.Port)
	}

	addr := net.JoinHostPort(config.LocalhostBindAddr, strconv.Itoa(s.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *InviteServer) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyURL, config.SchemeHTTP+"://"+ln.Addr().String()+config.RouteInvite,
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served invite.
func (s *InviteServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	item := &invite{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Truncate(time.Second),
	}
	s.current.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

func (s *InviteServer) handleInvite(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteRoot && r.URL.Path != config.RouteInvite {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.current.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderDisposition, config.InviteDisposition)
	h.Set(config.HeaderETag, item.etag)
	h.Set(config.HeaderLastModified, item.lastModified.Format(http.TimeFormat))

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// notModified evaluates If-None-Match first, then If-Modified-Since.
func notModified(r *http.Request, item *invite) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}
	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := http.ParseTime(since)
	if err != nil {
		return false
	}
	return !item.lastModified.After(clientTime)
}
