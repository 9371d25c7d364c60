package users

import (
	"context"
	"time"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/core"
	"github.com/archnets/drive-relay-bot/internal/i18n"
	"github.com/archnets/drive-relay-bot/internal/logger"
	"github.com/archnets/drive-relay-bot/internal/store"
	"github.com/archnets/drive-relay-bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleUpload relays the file in the message to Google Drive.
func HandleUpload(ctx context.Context, b commands.Bot, u *models.Update, deps commands.Deps) {
	if u.Message == nil {
		return
	}
	lg := logger.ForUpdate(u)

	att, ok := telegram.NewDownloader(b, deps.HTTPClient).Attachment(u.Message, deps.AcceptedKinds)
	if !ok {
		DefaultHandler(ctx, b, u, deps)
		return
	}
	lg.Infof("Relaying %s %q (%d bytes)", att.Kind, att.Name, att.Size)

	resp := &chatResponder{
		b:       b,
		store:   deps.Store,
		msg:     u.Message,
		att:     att,
		lang:    deps.Language(ctx, u),
		started: time.Now(),
		lg:      lg,
	}
	deps.Relay.Run(ctx, att, resp)
}

// chatResponder reports a relay back to the chat it came from.
type chatResponder struct {
	b       commands.Bot
	store   store.Store
	msg     *models.Message
	att     core.Attachment
	lang    string
	started time.Time
	lg      logger.TgLogger
}

func (r *chatResponder) Progress(ctx context.Context, stage core.Stage) {
	if stage != core.StageUploading {
		return
	}
	if err := r.send(ctx, i18n.T(i18n.Localizer(r.lang), "upload_in_progress")); err != nil {
		r.lg.Warnf("send progress: %v", err)
	}
}

// Report sends exactly one outcome message. Error details never reach the chat.
func (r *chatResponder) Report(ctx context.Context, res core.Result) error {
	loc := i18n.Localizer(r.lang)
	text := i18n.T(loc, "upload_failed")
	if res.OK() {
		text = i18n.TWithData(loc, "upload_success", map[string]any{"Link": res.Link()})
	}

	err := r.send(ctx, text)
	r.record(ctx, res)
	return err
}

func (r *chatResponder) send(ctx context.Context, text string) error {
	_, err := r.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: r.msg.Chat.ID,
		Text:   text,
		ReplyParameters: &models.ReplyParameters{
			MessageID:                r.msg.ID,
			AllowSendingWithoutReply: true,
		},
	})
	return err
}

// record saves the relay to history. Failures only reach the log.
func (r *chatResponder) record(ctx context.Context, res core.Result) {
	if r.store == nil {
		return
	}
	name := res.Upload.Name
	if name == "" {
		name = r.att.Name
	}
	if name == "" {
		name = core.FallbackName
	}

	rec := store.Upload{
		RelayID:    res.RelayID,
		ChatID:     r.msg.Chat.ID,
		FileName:   name,
		Kind:       string(r.att.Kind),
		Size:       res.Size,
		Status:     store.StatusDone,
		FileID:     res.Upload.FileID,
		Link:       res.Link(),
		CreatedAt:  r.started,
		FinishedAt: time.Now(),
	}
	if rec.Size == 0 {
		rec.Size = r.att.Size
	}
	if r.msg.From != nil {
		rec.UserID = r.msg.From.ID
	}
	if !res.OK() {
		rec.Status = store.StatusFailed
		rec.ErrorCode = core.TextCode(res.Err)
	}

	if err := r.store.RecordUpload(ctx, rec); err != nil {
		r.lg.WithRelay(res.RelayID).Warnf("record upload: %v", err)
	}
}
