// Package commands provides command handler types, middleware, and shared dependencies.
package commands

import (
	"context"
	"runtime/debug"

	"github.com/archnets/drive-relay-bot/internal/i18n"
	"github.com/archnets/drive-relay-bot/internal/logger"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerFunc is the standard signature for all command handlers.
type HandlerFunc func(ctx context.Context, b Bot, u *models.Update, deps Deps)

// Middleware wraps a handler to add functionality.
type Middleware func(HandlerFunc) HandlerFunc

// WithRecover stops a panicking handler from taking the bot down. The user
// gets the generic failure message; the panic goes to the log.
func WithRecover(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, b Bot, u *models.Update, deps Deps) {
		defer func() {
			if p := recover(); p != nil {
				logger.ForUpdate(u).Errorf("handler panic: %v\n%s", p, debug.Stack())
				SendText(ctx, b, ChatID(u), i18n.T(i18n.Localizer(deps.Language(ctx, u)), "upload_failed"))
			}
		}()
		next(ctx, b, u, deps)
	}
}

// WithAdmin lets only ADMIN_IDS through; everyone else gets "access denied".
func WithAdmin(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, b Bot, u *models.Update, deps Deps) {
		user := UserFrom(u)
		if user == nil {
			return
		}
		if !deps.IsAdmin(user.ID) {
			logger.ForUpdate(u).Warnf("non-admin %d denied", user.ID)
			SendText(ctx, b, ChatID(u), i18n.T(i18n.Localizer(deps.Language(ctx, u)), "access_denied"))
			return
		}
		next(ctx, b, u, deps)
	}
}

// Chain combines multiple middleware into a single middleware.
func Chain(middlewares ...Middleware) Middleware {
	return func(final HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// SendText sends a plain-text message, logging failures.
func SendText(ctx context.Context, b Bot, chatID int64, text string) {
	if chatID == 0 {
		return
	}
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		logger.ForUser(chatID).Warnf("send message: %v", err)
	}
}
