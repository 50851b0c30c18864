package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-celebrate/internal/config"
)

// VCardFetcher retrieves the recipient's vCard from a remote address book.
// The importer depends on this interface so tests never touch the network.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads a single recipient card over HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher bounded by HTTPTimeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: config.HTTPTimeout}}
}

// Fetch asks for a vCard (Accept negotiates text/vcard) and returns a body
// capped at MaxHTTPResponseSize. A server announcing a larger body is refused
// before anything is read; one that lies about it is truncated.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, redactURL(u)),
		slog.String(config.LogKeyUser, user),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeVCardAccept)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	log.Debug(config.MsgRecipientFetch)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgRecipientStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrFetchStatus, resp.Status)
	}

	if resp.ContentLength > config.MaxHTTPResponseSize {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s: %d", config.ErrFetchTooLarge, resp.ContentLength)
	}

	// Address books often serve cards as text/plain; only log the oddity.
	if !isVCardType(resp.Header.Get(config.HeaderContentType)) {
		log.Debug(config.MsgRecipientType, slog.String(config.LogKeyValue, resp.Header.Get(config.HeaderContentType)))
	}

	log.Debug(config.MsgRecipientRecv, slog.Int64(config.LogKeySizeBytes, resp.ContentLength))

	return cardBody{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// redactURL drops the query and credentials, which may carry tokens.
func redactURL(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

func isVCardType(header string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return mediaType == config.MimeVCard || mediaType == config.MimeVCardLegacy
}

// cardBody limits reads but closes the real connection.
type cardBody struct {
	io.Reader
	io.Closer
}
