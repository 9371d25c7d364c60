package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromTelegram(t *testing.T) {
	tests := map[string]string{
		"en":      "en",
		"en-US":   "en",
		"ru":      "ru",
		"fa":      "fa",
		"zh-hans": "zh",
		"ZH-hant": "zh",
		"de":      "en",
		"":        "en",
	}
	for code, want := range tests {
		assert.Equal(t, want, FromTelegram(code).String(), "code %q", code)
	}
}

func TestSetDefault(t *testing.T) {
	t.Cleanup(func() { SetDefault("en") })

	SetDefault("ru")
	assert.Equal(t, "ru", Default())
	assert.Equal(t, "ru", FromTelegram("de").String())

	SetDefault("klingon")
	assert.Equal(t, "ru", Default(), "unsupported default is ignored")
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "fa", Resolve("fa", "en"))
	assert.Equal(t, "zh", Resolve("", "zh-hans"))
	assert.Equal(t, "en", Resolve("", "de"))
	assert.Equal(t, "ru", Resolve("xx", "ru"))
}

func TestTranslations(t *testing.T) {
	en := Localizer("en")
	assert.Equal(t, "Send me a file (max 2GB) to upload to Google Drive.", T(en, "start"))
	assert.Equal(t, "Oops! Something went wrong.", T(en, "upload_failed"))
	assert.Equal(t, "Uploaded to Google Drive: https://drive.example/abc123",
		TWithData(en, "upload_success", map[string]any{"Link": "https://drive.example/abc123"}))
	assert.Equal(t, "no_such_key", T(en, "no_such_key"))

	for _, tag := range Supported {
		loc := Localizer(tag.String())
		for _, id := range []string{"start", "help", "upload_in_progress", "upload_failed", "choose_language", "stats"} {
			assert.NotEqual(t, id, T(loc, id), "%s missing %s", tag, id)
		}
	}
}
