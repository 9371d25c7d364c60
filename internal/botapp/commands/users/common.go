package users

import (
	"context"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/i18n"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// historyLimit is how many relays /history lists.
const historyLimit = 5

func reply(ctx context.Context, b commands.Bot, u *models.Update, deps commands.Deps, key string) {
	loc := i18n.Localizer(deps.Language(ctx, u))
	commands.SendText(ctx, b, commands.ChatID(u), i18n.T(loc, key))
}

func answerCallback(ctx context.Context, b commands.Bot, id, text string, alert bool) {
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: id,
		Text:            text,
		ShowAlert:       alert,
	})
}

func deleteMessage(ctx context.Context, b commands.Bot, cb *models.CallbackQuery) {
	if cb.Message.Message != nil {
		_, _ = b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    cb.Message.Message.Chat.ID,
			MessageID: cb.Message.Message.ID,
		})
	}
}
