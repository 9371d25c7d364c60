package botapp

import (
	"context"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/botapp/commands/admins"
	"github.com/archnets/drive-relay-bot/internal/botapp/commands/users"
	"github.com/archnets/drive-relay-bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// route binds a text command to its handler.
type route struct {
	command string
	handler commands.HandlerFunc
}

func textRoutes() []route {
	admin := commands.Chain(commands.WithAdmin)
	return []route{
		{"/start", users.HandleStart},
		{"/help", users.HandleHelp},
		{"/history", users.HandleHistory},
		{"/language", users.HandleLanguage},
		{"/stats", admin(admins.HandleStats)},
	}
}

func register(b *bot.Bot, deps commands.Deps) {
	for _, r := range textRoutes() {
		b.RegisterHandler(bot.HandlerTypeMessageText, r.command, bot.MatchTypeExact, adapt(r.handler, deps))
	}

	// Inline language buttons: "lang:<code>"
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, users.LanguageCallbackPrefix, bot.MatchTypePrefix,
		adapt(users.HandleLanguageCallback, deps))

	// Files of an accepted kind; everything else falls to the default handler.
	b.RegisterHandlerMatchFunc(telegram.HasFile(deps.AcceptedKinds), adapt(users.HandleUpload, deps))
}

// adapt turns a commands.HandlerFunc into a bot handler with panic recovery.
func adapt(h commands.HandlerFunc, deps commands.Deps) bot.HandlerFunc {
	h = commands.WithRecover(h)
	return func(ctx context.Context, b *bot.Bot, u *models.Update) {
		h(ctx, b, u, deps)
	}
}
