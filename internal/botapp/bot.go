package botapp

import (
	"context"
	"time"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/botapp/commands/users"
	"github.com/archnets/drive-relay-bot/internal/logger"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Options configures the Telegram client.
type Options struct {
	Token       string
	ServerURL   string
	Debug       bool
	InitTimeout time.Duration
}

func NewBot(opts Options, deps commands.Deps) (*bot.Bot, error) {
	if opts.InitTimeout <= 0 {
		opts.InitTimeout = 5 * time.Second
	}

	defaultHandler := func(ctx context.Context, b *bot.Bot, u *models.Update) {
		commands.WithRecover(users.DefaultHandler)(ctx, b, u, deps)
	}

	botOpts := []bot.Option{
		bot.WithCheckInitTimeout(opts.InitTimeout),
		bot.WithDefaultHandler(defaultHandler),
		bot.WithErrorsHandler(func(err error) {
			logger.Errorf("telegram: %v", err)
		}),
	}
	if opts.ServerURL != "" {
		botOpts = append(botOpts, bot.WithServerURL(opts.ServerURL))
	}
	if opts.Debug {
		botOpts = append(botOpts,
			bot.WithDebug(),
			bot.WithDebugHandler(func(format string, args ...any) {
				logger.Debugf(format, args...)
			}),
		)
	}

	b, err := bot.New(opts.Token, botOpts...)
	if err != nil {
		return nil, err
	}

	register(b, deps)
	return b, nil
}
