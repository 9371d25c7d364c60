package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "relay.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openSQLite(t),
	}
}

func upload(relayID string, chatID int64, status string, size int64, at time.Time) Upload {
	return Upload{
		RelayID:    relayID,
		ChatID:     chatID,
		UserID:     chatID,
		FileName:   relayID + ".pdf",
		Kind:       "document",
		Size:       size,
		Status:     status,
		FileID:     "drive-" + relayID,
		Link:       "https://drive.example/" + relayID,
		CreatedAt:  at,
		FinishedAt: at.Add(time.Second),
	}
}

func TestRecentUploads(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.RecordUpload(ctx, upload("a", 1, StatusDone, 10, base)))
			require.NoError(t, s.RecordUpload(ctx, upload("b", 1, StatusFailed, 20, base.Add(time.Minute))))
			require.NoError(t, s.RecordUpload(ctx, upload("c", 1, StatusDone, 30, base.Add(2*time.Minute))))
			require.NoError(t, s.RecordUpload(ctx, upload("z", 2, StatusDone, 40, base)))

			got, err := s.RecentUploads(ctx, 1, 2)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "c", got[0].RelayID)
			assert.Equal(t, "b", got[1].RelayID)
			assert.Equal(t, "b.pdf", got[1].FileName)
			assert.Equal(t, StatusFailed, got[1].Status)
			assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))

			all, err := s.RecentUploads(ctx, 1, 0)
			require.NoError(t, err)
			assert.Len(t, all, 3)

			none, err := s.RecentUploads(ctx, 99, 5)
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestStats(t *testing.T) {
	now := time.Now()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			st, err := s.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, Stats{}, st)

			require.NoError(t, s.RecordUpload(ctx, upload("a", 1, StatusDone, 100, now)))
			require.NoError(t, s.RecordUpload(ctx, upload("b", 2, StatusFailed, 50, now)))
			require.NoError(t, s.RecordUpload(ctx, upload("c", 3, StatusDone, 25, now)))

			st, err = s.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, Stats{Total: 3, Succeeded: 2, Failed: 1, Bytes: 125}, st)
		})
	}
}

func TestLanguagePreference(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			assert.Empty(t, s.GetLang(ctx, 5))

			require.NoError(t, s.SetLang(ctx, 5, "fa"))
			require.NoError(t, s.SetLang(ctx, 5, "ru"))
			assert.Equal(t, "ru", s.GetLang(ctx, 5))
			assert.Empty(t, s.GetLang(ctx, 6))
		})
	}
}

func TestRecordUploadIsIdempotentPerRelay(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u := upload("r", 1, StatusFailed, 1, time.Now())

			require.NoError(t, s.RecordUpload(ctx, u))
			u.Status = StatusDone
			require.NoError(t, s.RecordUpload(ctx, u))

			got, err := s.RecentUploads(ctx, 1, 10)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, StatusDone, got[0].Status)
		})
	}
}

func TestMigrateTwice(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "twice.db"))
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM uploads`).Scan(&n))
	assert.Zero(t, n)
}
