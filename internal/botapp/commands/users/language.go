package users

import (
	"context"
	"strings"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/i18n"
	"github.com/archnets/drive-relay-bot/internal/logger"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// LanguageCallbackPrefix prefixes the callback data of language buttons.
const LanguageCallbackPrefix = "lang:"

var languageButtons = []models.InlineKeyboardButton{
	{Text: "🇬🇧 English", CallbackData: LanguageCallbackPrefix + "en"},
	{Text: "🇮🇷 فارسی", CallbackData: LanguageCallbackPrefix + "fa"},
	{Text: "🇷🇺 Русский", CallbackData: LanguageCallbackPrefix + "ru"},
	{Text: "🇨🇳 中文", CallbackData: LanguageCallbackPrefix + "zh"},
}

// HandleLanguage shows language selection buttons.
func HandleLanguage(ctx context.Context, b commands.Bot, u *models.Update, deps commands.Deps) {
	if u.Message == nil {
		return
	}

	loc := i18n.Localizer(deps.Language(ctx, u))
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			languageButtons[:2],
			languageButtons[2:],
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      u.Message.Chat.ID,
		Text:        i18n.T(loc, "choose_language"),
		ReplyMarkup: keyboard,
	})
	if err != nil {
		logger.ForUpdate(u).Warnf("send language menu: %v", err)
	}
}

// HandleLanguageCallback saves the language picked from the inline keyboard.
func HandleLanguageCallback(ctx context.Context, b commands.Bot, u *models.Update, deps commands.Deps) {
	if u.CallbackQuery == nil {
		return
	}

	cb := u.CallbackQuery
	lg := logger.ForUser(cb.From.ID)

	// Parse "lang:fa" -> "fa"
	lang := strings.TrimPrefix(cb.Data, LanguageCallbackPrefix)
	if lang == cb.Data {
		return // Not a language callback
	}
	if !i18n.IsSupported(lang) {
		lg.Warnf("Unsupported language callback: %q", lang)
		answerCallback(ctx, b, cb.ID, "", false)
		return
	}

	if err := deps.Store.SetLang(ctx, cb.From.ID, lang); err != nil {
		lg.Errorf("Save lang error: %v", err)
		answerCallback(ctx, b, cb.ID, i18n.T(i18n.Localizer(lang), "upload_failed"), true)
		return
	}

	answerCallback(ctx, b, cb.ID, "", false)
	deleteMessage(ctx, b, cb)
	commands.SendText(ctx, b, cb.From.ID, i18n.T(i18n.Localizer(lang), "language_saved"))
	lg.Infof("Language changed to %s", lang)
}
