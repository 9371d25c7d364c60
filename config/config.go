package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/archnets/drive-relay-bot/internal/core"
	"github.com/archnets/drive-relay-bot/internal/env"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken    string
	APIURL      string
	BotDebug    bool
	InitTimeout time.Duration

	CredentialsFile  string
	CredentialsJSON  string
	ImpersonateEmail string

	DriveFolderID string
	AcceptedKinds []string
	StagingDir    string
	MaxFileSizeMB int64

	DatabasePath string
	AdminIDs     []int64
	DefaultLang  string
	LogLevel     string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		BotToken:    env.GetString("TELEGRAM_BOT_TOKEN", ""),
		APIURL:      env.GetString("TELEGRAM_API_URL", ""),
		BotDebug:    env.GetBool("BOT_DEBUG", false),
		InitTimeout: time.Duration(env.GetInt("BOT_INIT_TIMEOUT_S", 5)) * time.Second,

		CredentialsFile:  env.GetString("GOOGLE_APPLICATION_CREDENTIALS", "service_account.json"),
		CredentialsJSON:  env.GetString("GOOGLE_CREDENTIALS_JSON", ""),
		ImpersonateEmail: env.GetString("GOOGLE_IMPERSONATE_SUBJECT", ""),

		DriveFolderID: env.GetString("DRIVE_FOLDER_ID", ""),
		AcceptedKinds: env.GetList("ACCEPTED_KINDS", kindNames(core.DefaultKinds)),
		StagingDir:    env.GetString("STAGING_DIR", filepath.Join(os.TempDir(), "drive-relay")),
		MaxFileSizeMB: env.GetInt64("MAX_FILE_SIZE_MB", 2048),

		DatabasePath: env.GetString("DATABASE_PATH", ""),
		AdminIDs:     env.GetInt64List("ADMIN_IDS"),
		DefaultLang:  env.GetString("DEFAULT_LANG", "en"),
		LogLevel:     env.GetString("LOG_LEVEL", "INFO"),
	}
}

// Validate reports every problem at once so a bad deployment fails with a
// complete list.
func (c Config) Validate() error {
	var errs []error
	if c.BotToken == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN is not set"))
	}
	if c.CredentialsJSON == "" && c.CredentialsFile == "" {
		errs = append(errs, errors.New("no Google credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS_JSON"))
	}
	if _, err := core.ParseKinds(c.AcceptedKinds); err != nil {
		errs = append(errs, fmt.Errorf("ACCEPTED_KINDS: %w", err))
	}
	if c.MaxFileSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("MAX_FILE_SIZE_MB must be positive, got %d", c.MaxFileSizeMB))
	}
	if c.InitTimeout <= 0 {
		errs = append(errs, errors.New("BOT_INIT_TIMEOUT_S must be positive"))
	}
	return errors.Join(errs...)
}

// Kinds returns the accepted attachment kinds. Call Validate first.
func (c Config) Kinds() core.KindSet {
	kinds, err := core.ParseKinds(c.AcceptedKinds)
	if err != nil {
		kinds, _ = core.ParseKinds(kindNames(core.DefaultKinds))
	}
	return kinds
}

// MaxFileSize is the size ceiling in bytes.
func (c Config) MaxFileSize() int64 {
	return c.MaxFileSizeMB << 20
}

func kindNames(kinds []core.Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
