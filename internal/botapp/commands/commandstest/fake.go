// Package commandstest provides a recording fake of commands.Bot.
package commandstest

import (
	"context"
	"errors"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Bot records outgoing calls. Files maps a file ID to its FilePath and
// LinkBase prefixes download links.
type Bot struct {
	mu        sync.Mutex
	Sent      []*bot.SendMessageParams
	Answered  []*bot.AnswerCallbackQueryParams
	Deleted   []*bot.DeleteMessageParams
	Files     map[string]string
	LinkBase  string
	SendError error
}

func (b *Bot) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Sent = append(b.Sent, params)
	if b.SendError != nil {
		return nil, b.SendError
	}
	return &models.Message{ID: len(b.Sent), Text: params.Text}, nil
}

func (b *Bot) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Answered = append(b.Answered, params)
	return true, nil
}

func (b *Bot) DeleteMessage(_ context.Context, params *bot.DeleteMessageParams) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Deleted = append(b.Deleted, params)
	return true, nil
}

func (b *Bot) GetFile(_ context.Context, params *bot.GetFileParams) (*models.File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	path, ok := b.Files[params.FileID]
	if !ok {
		return nil, errors.New("Bad Request: invalid file_id")
	}
	return &models.File{FileID: params.FileID, FilePath: path}, nil
}

func (b *Bot) FileDownloadLink(f *models.File) string {
	return b.LinkBase + "/" + f.FilePath
}

// Texts returns the text of every sent message, in order.
func (b *Bot) Texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.Sent))
	for i, p := range b.Sent {
		out[i] = p.Text
	}
	return out
}

// Message builds a text update from user id in a private chat.
func Message(userID int64, text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   1,
		Chat: models.Chat{ID: userID, Type: models.ChatTypePrivate},
		From: &models.User{ID: userID, FirstName: "test", LanguageCode: "en"},
		Text: text,
	}}
}
