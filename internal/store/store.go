// Package store keeps relay history and per-chat preferences.
package store

import (
	"context"
	"time"
)

const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

// Upload is the history record of one relay operation.
type Upload struct {
	RelayID    string
	ChatID     int64
	UserID     int64
	FileName   string
	Kind       string
	Size       int64
	Status     string
	FileID     string
	Link       string
	ErrorCode  string
	CreatedAt  time.Time
	FinishedAt time.Time
}

// Stats aggregates all recorded relays.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
	Bytes     int64
}

// Store defines the interface for history storage backends.
type Store interface {
	RecordUpload(ctx context.Context, u Upload) error
	// RecentUploads returns the newest uploads of a chat first.
	RecentUploads(ctx context.Context, chatID int64, limit int) ([]Upload, error)
	Stats(ctx context.Context) (Stats, error)
	GetLang(ctx context.Context, chatID int64) string
	SetLang(ctx context.Context, chatID int64, lang string) error
	Close() error
}
