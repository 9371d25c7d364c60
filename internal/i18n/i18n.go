// Package i18n provides internationalization support using go-i18n.
package i18n

import (
	"embed"
	"encoding/json"
	"strings"
	"sync/atomic"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds all loaded translations.
var bundle *i18n.Bundle

// Supported language tags
var (
	English = language.English
	Persian = language.Persian
	Russian = language.Russian
	Chinese = language.Chinese
)

// Supported lists the languages offered by /language, in menu order.
var Supported = []language.Tag{English, Persian, Russian, Chinese}

var fallback atomic.Value // language.Tag

func init() {
	bundle = i18n.NewBundle(English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, tag := range Supported {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+tag.String()+".json"); err != nil {
			panic(err)
		}
	}
	fallback.Store(English)
}

// SetDefault sets the language used when neither the chat nor Telegram
// gives a supported one.
func SetDefault(code string) {
	if tag, ok := lookup(code); ok {
		fallback.Store(tag)
	}
}

// Default returns the current fallback language code.
func Default() string {
	return fallback.Load().(language.Tag).String()
}

// Localizer creates a localizer for the given language code.
func Localizer(langCode string) *i18n.Localizer {
	tag := FromTelegram(langCode)
	return i18n.NewLocalizer(bundle, tag.String())
}

// T translates a message ID using the provided localizer.
func T(loc *i18n.Localizer, messageID string) string {
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		// Fallback: return the message ID itself
		return messageID
	}
	return msg
}

// TWithData translates a message with template data.
func TWithData(loc *i18n.Localizer, messageID string, data map[string]any) string {
	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// FromTelegram converts Telegram's language_code to a supported language.Tag.
func FromTelegram(code string) language.Tag {
	if tag, ok := lookup(code); ok {
		return tag
	}
	return fallback.Load().(language.Tag)
}

// IsSupported reports whether code names one of the bundled languages.
func IsSupported(code string) bool {
	_, ok := lookup(code)
	return ok
}

// Resolve picks the reply language: saved preference, then Telegram's code.
func Resolve(saved, telegramCode string) string {
	if IsSupported(saved) {
		return FromTelegram(saved).String()
	}
	return FromTelegram(telegramCode).String()
}

func lookup(code string) (language.Tag, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return language.Und, false
	}
	// Telegram sends codes like "en-US" or "zh-hans"; only the base matters.
	base, _ := language.Make(code).Base()
	for _, tag := range Supported {
		if b, _ := tag.Base(); b == base {
			return tag, true
		}
	}
	return language.Und, false
}
