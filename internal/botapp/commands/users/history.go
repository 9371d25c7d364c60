package users

import (
	"context"
	"strings"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/i18n"
	"github.com/archnets/drive-relay-bot/internal/logger"
	"github.com/archnets/drive-relay-bot/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleHistory handles the /history command.
func HandleHistory(ctx context.Context, b commands.Bot, u *models.Update, deps commands.Deps) {
	if u.Message == nil {
		return
	}
	lg := logger.ForUpdate(u)
	loc := i18n.Localizer(deps.Language(ctx, u))

	uploads, err := deps.Store.RecentUploads(ctx, u.Message.Chat.ID, historyLimit)
	if err != nil {
		lg.Errorf("Load history: %v", err)
		commands.SendText(ctx, b, u.Message.Chat.ID, i18n.T(loc, "upload_failed"))
		return
	}
	if len(uploads) == 0 {
		commands.SendText(ctx, b, u.Message.Chat.ID, i18n.T(loc, "history_empty"))
		return
	}

	lines := []string{i18n.T(loc, "history_header")}
	for _, up := range uploads {
		data := map[string]any{
			"Name": up.FileName,
			"Size": humanize.IBytes(uint64(max(up.Size, 0))),
			"Link": up.Link,
		}
		if up.Status == store.StatusDone {
			lines = append(lines, i18n.TWithData(loc, "history_done", data))
		} else {
			lines = append(lines, i18n.TWithData(loc, "history_failed", data))
		}
	}

	noPreview := true
	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:             u.Message.Chat.ID,
		Text:               strings.Join(lines, "\n"),
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: &noPreview},
	})
	if err != nil {
		lg.Warnf("send history: %v", err)
	}
}
