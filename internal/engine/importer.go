package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/zalando/go-keyring"
)

// PasswordFunc resolves the password of a remote vCard account.
type PasswordFunc func(user string) (string, error)

// KeyringPassword reads the password from the OS keyring.
func KeyringPassword(user string) (string, error) {
	return keyring.Get(config.KeyringService, user)
}

// Importer reads the recipient vCard from disk or over HTTP.
type Importer struct {
	Fetcher  VCardFetcher // Interface for network abstraction.
	Password PasswordFunc // Defaults to KeyringPassword.
}

// NewImporter creates an importer using the HTTP fetcher and the OS keyring.
func NewImporter() *Importer {
	return &Importer{
		Fetcher:  NewHTTPFetcher(),
		Password: KeyringPassword,
	}
}

// Import returns the first card of the stream that carries a usable name or birthday.
func (im *Importer) Import(ctx context.Context, src config.Recipient) (Recipient, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyMode, src.Source,
	)

	reader, err := im.open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return Recipient{}, ctx.Err()
		}
		return Recipient{}, fmt.Errorf("%s: %w", config.ErrRecipientImport, err)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = reader.Close() }()

	r, err := decodeRecipient(ctx, reader)
	if err != nil {
		return Recipient{}, err
	}

	log.Info(config.MsgRecipientLoaded,
		config.LogKeyName, r.Name,
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return r, nil
}

// open selects the data source based on configuration.
func (im *Importer) open(ctx context.Context, src config.Recipient) (io.ReadCloser, error) {
	switch src.Source {
	case config.SourceModeLocal:
		if src.Path == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.Path)
	case config.SourceModeWeb:
		if src.URL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, src.URL, src.User, im.password(src.User))
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Source)
	}
}

// password never fails: a missing secret means an anonymous request.
func (im *Importer) password(user string) string {
	if user == "" || im.Password == nil {
		return ""
	}
	p, err := im.Password(user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyUser, user,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompImporter)
		return ""
	}
	return p
}

// maxCardFailures stops decoding a stream that keeps failing at the same spot.
const maxCardFailures = 16

// decodeRecipient walks the cards until one yields a name or a birthday.
func decodeRecipient(ctx context.Context, r io.Reader) (Recipient, error) {
	decoder := vcard.NewDecoder(r)
	failures := 0

	for {
		if ctx.Err() != nil {
			return Recipient{}, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return Recipient{}, errors.New(config.ErrVCardEmpty)
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Recipient{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		if err != nil {
			failures++
			if failures >= maxCardFailures {
				return Recipient{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
			continue
		}
		failures = 0

		rec := recipientFromCard(card)
		if rec.Name != "" || !rec.DateOfBirth.IsZero() {
			return rec, nil
		}
	}
}

func recipientFromCard(card vcard.Card) Recipient {
	var rec Recipient

	// Name Strategy: FN (Formatted) > N (Structured)
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		rec.Name = fn.Value
	} else if n := card.Name(); n != nil {
		rec.Name = n.GivenName
	}

	if bday := card.Get(config.VCardBDAY); bday != nil && bday.Value != "" {
		if dob, yearKnown, err := parseDate(bday.Value); err == nil {
			rec.DateOfBirth = dob
			rec.YearKnown = yearKnown
		} else {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyValue, bday.Value)
		}
	}

	rec.Note = card.Value(config.VCardNote)
	rec.Photo = card.Value(config.VCardPhoto)
	return rec
}

// parseDate handles the vCard date formats, with or without a year.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (--MM-DD) are pinned to a leap year so Feb 29 survives.
	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
