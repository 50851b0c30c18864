package display

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-celebrate/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog resolves user-facing strings. Every lookup falls back to the key
// itself, so a broken catalog degrades to readable text instead of failing.
type Catalog struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	languages []string
}

// NewCatalog loads the embedded locale files and selects lang.
// Unknown languages fall back to English.
func NewCatalog(lang string) *Catalog {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	c := &Catalog{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		c.languages = append(c.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	c.localizer = i18n.NewLocalizer(bundle, lang, language.English.String())
	return c
}

// Languages lists the locale codes found in the embedded catalog.
func (c *Catalog) Languages() []string {
	return c.languages
}

// Msg translates key, substituting data into the message template.
func (c *Catalog) Msg(key string, data map[string]any) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural picks the plural form of key matching n.
func (c *Catalog) Plural(key string, n int) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: key, PluralCount: n})
}

func (c *Catalog) localize(lc *i18n.LocalizeConfig) string {
	if c == nil || c.localizer == nil {
		return lc.MessageID
	}
	msg, err := c.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}
