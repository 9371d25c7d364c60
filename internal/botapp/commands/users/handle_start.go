package users

import (
	"context"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/logger"
	"github.com/go-telegram/bot/models"
)

// HandleStart handles the /start command.
func HandleStart(ctx context.Context, b commands.Bot, u *models.Update, deps commands.Deps) {
	if u.Message == nil {
		return
	}
	reply(ctx, b, u, deps, "start")
	logger.ForUpdate(u).Infof("Start command handled")
}

// HandleHelp handles the /help command.
func HandleHelp(ctx context.Context, b commands.Bot, u *models.Update, deps commands.Deps) {
	if u.Message == nil {
		return
	}
	reply(ctx, b, u, deps, "help")
}
