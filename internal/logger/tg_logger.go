package logger

import (
	"strconv"

	"github.com/go-telegram/bot/models"
)

const (
	colorBrightCyan    = "\033[96m"
	colorBrightMagenta = "\033[95m"
)

// TgLogger prefixes every line with the chat and, inside a relay, the relay ID.
type TgLogger struct {
	chatID  int64
	relayID string
}

func ForUpdate(u *models.Update) TgLogger {
	var chatID int64
	switch {
	case u == nil:
	case u.Message != nil:
		chatID = u.Message.Chat.ID
	case u.CallbackQuery != nil:
		chatID = u.CallbackQuery.From.ID
	}
	return TgLogger{chatID: chatID}
}

func ForUser(userID int64) TgLogger {
	return TgLogger{chatID: userID}
}

// ForRelay scopes log lines to a relay that has no chat attached yet.
func ForRelay(relayID string) TgLogger {
	return TgLogger{relayID: relayID}
}

// WithRelay returns a copy of l tagged with a relay ID.
func (l TgLogger) WithRelay(relayID string) TgLogger {
	l.relayID = relayID
	return l
}

func (l TgLogger) prefix() string {
	var p string
	if l.chatID != 0 {
		p = colorBrightCyan + "[" + strconv.FormatInt(l.chatID, 10) + "]" + colorReset
	}
	if l.relayID != "" {
		p += colorBrightMagenta + "[relay " + l.relayID + "]" + colorReset
	}
	if p == "" {
		return ""
	}
	return p + " "
}

func (l TgLogger) Infof(format string, args ...any) {
	Infof(l.prefix()+format, args...)
}

func (l TgLogger) Debugf(format string, args ...any) {
	Debugf(l.prefix()+format, args...)
}

func (l TgLogger) Warnf(format string, args ...any) {
	Warnf(l.prefix()+format, args...)
}

func (l TgLogger) Errorf(format string, args ...any) {
	Errorf(l.prefix()+format, args...)
}
