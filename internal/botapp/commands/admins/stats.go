package admins

import (
	"context"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/i18n"
	"github.com/archnets/drive-relay-bot/internal/logger"
	"github.com/dustin/go-humanize"
	"github.com/go-telegram/bot/models"
)

// HandleStats handles the /stats command. Wrap it with commands.WithAdmin.
func HandleStats(ctx context.Context, b commands.Bot, u *models.Update, deps commands.Deps) {
	if u.Message == nil {
		return
	}
	lg := logger.ForUpdate(u)
	loc := i18n.Localizer(deps.Language(ctx, u))

	st, err := deps.Store.Stats(ctx)
	if err != nil {
		lg.Errorf("Load stats: %v", err)
		commands.SendText(ctx, b, u.Message.Chat.ID, i18n.T(loc, "upload_failed"))
		return
	}

	commands.SendText(ctx, b, u.Message.Chat.ID, i18n.TWithData(loc, "stats", map[string]any{
		"Total":     st.Total,
		"Succeeded": st.Succeeded,
		"Failed":    st.Failed,
		"Bytes":     humanize.IBytes(uint64(max(st.Bytes, 0))),
	}))
	lg.Infof("Admin stats command handled")
}
