// Package commands provides shared types for command handlers.
package commands

import (
	"context"
	"net/http"
	"slices"

	"github.com/archnets/drive-relay-bot/internal/core"
	"github.com/archnets/drive-relay-bot/internal/i18n"
	"github.com/archnets/drive-relay-bot/internal/store"
	"github.com/archnets/drive-relay-bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Bot is the part of *bot.Bot the handlers call.
type Bot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	telegram.FileAPI
}

var _ Bot = (*bot.Bot)(nil)

// Deps contains shared dependencies for all command handlers.
type Deps struct {
	Relay *core.Relay
	Store store.Store

	// HTTPClient downloads Telegram files; nil uses telegram.DefaultHTTPClient.
	HTTPClient    *http.Client
	AcceptedKinds core.KindSet
	AdminIDs      []int64
}

func (d Deps) IsAdmin(userID int64) bool {
	return slices.Contains(d.AdminIDs, userID)
}

// Language returns the reply language for the sender of u.
func (d Deps) Language(ctx context.Context, u *models.Update) string {
	chatID := ChatID(u)
	var tgCode string
	if user := UserFrom(u); user != nil {
		tgCode = user.LanguageCode
	}
	var saved string
	if d.Store != nil && chatID != 0 {
		saved = d.Store.GetLang(ctx, chatID)
	}
	return i18n.Resolve(saved, tgCode)
}

// UserFrom extracts the user from any update type.
func UserFrom(u *models.Update) *models.User {
	if u == nil {
		return nil
	}
	if u.Message != nil {
		return u.Message.From
	}
	if u.CallbackQuery != nil {
		return &u.CallbackQuery.From
	}
	return nil
}

// ChatID extracts the chat ID from any update type.
func ChatID(u *models.Update) int64 {
	if u == nil {
		return 0
	}
	if u.Message != nil {
		return u.Message.Chat.ID
	}
	if u.CallbackQuery != nil {
		return u.CallbackQuery.From.ID
	}
	return 0
}
