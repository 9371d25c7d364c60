package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/archnets/drive-relay-bot/config"
	"github.com/archnets/drive-relay-bot/internal/auth"
	"github.com/archnets/drive-relay-bot/internal/botapp"
	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/core"
	"github.com/archnets/drive-relay-bot/internal/i18n"
	"github.com/archnets/drive-relay-bot/internal/logger"
	"github.com/archnets/drive-relay-bot/internal/store"
	"github.com/archnets/drive-relay-bot/internal/telegram"
	"github.com/archnets/drive-relay-bot/service"
)

func main() {
	// Handle Ctrl+C / SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	i18n.SetDefault(cfg.DefaultLang)

	if err := cfg.Validate(); err != nil {
		logger.Errorf("invalid configuration: %v", err)
		os.Exit(1)
	}

	// Google Drive client authenticated as the service account
	sa := auth.ServiceAccount{
		File:    cfg.CredentialsFile,
		JSON:    cfg.CredentialsJSON,
		Subject: cfg.ImpersonateEmail,
	}
	httpClient, err := sa.HTTPClient(ctx)
	if err != nil {
		logger.Errorf("load Google credentials: %v", err)
		os.Exit(1)
	}
	drive, err := service.NewDriveClient(ctx, httpClient)
	if err != nil {
		logger.Errorf("create Drive client: %v", err)
		os.Exit(1)
	}

	// Relay history and language preferences
	var st store.Store = store.NewMemoryStore()
	if cfg.DatabasePath != "" {
		db, err := store.Open(cfg.DatabasePath)
		if err != nil {
			logger.Errorf("open database: %v", err)
			os.Exit(1)
		}
		st = db
	}
	defer st.Close()

	stager := core.NewStager(cfg.StagingDir)
	relay := core.NewRelay(drive, stager,
		core.WithFolder(cfg.DriveFolderID),
		core.WithMaxSize(cfg.MaxFileSize()),
	)

	deps := commands.Deps{
		Relay:         relay,
		Store:         st,
		HTTPClient:    telegram.DefaultHTTPClient(),
		AcceptedKinds: cfg.Kinds(),
		AdminIDs:      cfg.AdminIDs,
	}

	b, err := botapp.NewBot(botapp.Options{
		Token:       cfg.BotToken,
		ServerURL:   cfg.APIURL,
		Debug:       cfg.BotDebug,
		InitTimeout: cfg.InitTimeout,
	}, deps)
	if err != nil {
		logger.Errorf("failed to create bot: %v", err)
		os.Exit(1)
	}

	logger.Infof("Starting Telegram bot (kinds=%s, staging=%s)", deps.AcceptedKinds, stager.Dir())
	b.Start(ctx)
	logger.Infof("Bot stopped")
}
