package users

import (
	"context"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/go-telegram/bot/models"
)

// DefaultHandler handles any unrecognized messages, including files of a
// kind that is not accepted.
func DefaultHandler(ctx context.Context, b commands.Bot, u *models.Update, deps commands.Deps) {
	if u.Message == nil {
		return
	}
	reply(ctx, b, u, deps, "send_file_hint")
}
