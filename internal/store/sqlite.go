package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore provides SQLite-backed storage.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps a connection that already has migrations applied.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// RecordUpload stores a relay record, replacing one with the same relay ID.
func (s *SQLiteStore) RecordUpload(ctx context.Context, u Upload) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO uploads
			(relay_id, chat_id, user_id, file_name, kind, size, status, file_id, link, error_code, created_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.RelayID, u.ChatID, u.UserID, u.FileName, u.Kind, u.Size, u.Status, u.FileID, u.Link, u.ErrorCode,
		u.CreatedAt.UnixMilli(), u.FinishedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// RecentUploads returns up to limit uploads of a chat, newest first.
func (s *SQLiteStore) RecentUploads(ctx context.Context, chatID int64, limit int) ([]Upload, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT relay_id, chat_id, user_id, file_name, kind, size, status, file_id, link, error_code, created_at, finished_at
		FROM uploads WHERE chat_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}
	defer rows.Close()

	var out []Upload
	for rows.Next() {
		var u Upload
		var createdAt, finishedAt int64
		if err := rows.Scan(&u.RelayID, &u.ChatID, &u.UserID, &u.FileName, &u.Kind, &u.Size, &u.Status,
			&u.FileID, &u.Link, &u.ErrorCode, &createdAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		u.CreatedAt = time.UnixMilli(createdAt)
		u.FinishedAt = time.UnixMilli(finishedAt)
		out = append(out, u)
	}
	return out, rows.Err()
}

// Stats counts relays by outcome.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN size ELSE 0 END), 0)
		FROM uploads
	`, StatusDone, StatusDone).Scan(&st.Total, &st.Succeeded, &st.Bytes)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	st.Failed = st.Total - st.Succeeded
	return st, nil
}

// GetLang returns the saved language for a chat, or "" when none is saved.
func (s *SQLiteStore) GetLang(ctx context.Context, chatID int64) string {
	var lang string
	err := s.db.QueryRowContext(ctx, `SELECT lang FROM chat_settings WHERE chat_id = ?`, chatID).Scan(&lang)
	if err != nil {
		return ""
	}
	return lang
}

// SetLang saves the language for a chat.
func (s *SQLiteStore) SetLang(ctx context.Context, chatID int64, lang string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_settings (chat_id, lang) VALUES (?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET lang = excluded.lang
	`, chatID, lang)
	if err != nil {
		return fmt.Errorf("set lang: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
