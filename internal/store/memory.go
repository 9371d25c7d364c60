package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore provides thread-safe in-memory storage. History is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	uploads []Upload
	langs   map[int64]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		langs: make(map[int64]string),
	}
}

// RecordUpload stores a relay record, replacing one with the same relay ID.
func (s *MemoryStore) RecordUpload(_ context.Context, u Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.uploads {
		if s.uploads[i].RelayID == u.RelayID {
			s.uploads[i] = u
			return nil
		}
	}
	s.uploads = append(s.uploads, u)
	return nil
}

// RecentUploads returns up to limit uploads of a chat, newest first.
func (s *MemoryStore) RecentUploads(_ context.Context, chatID int64, limit int) ([]Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Upload
	for _, u := range s.uploads {
		if u.ChatID == chatID {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats counts relays by outcome.
func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	for _, u := range s.uploads {
		st.Total++
		if u.Status == StatusDone {
			st.Succeeded++
			st.Bytes += u.Size
		} else {
			st.Failed++
		}
	}
	return st, nil
}

// GetLang returns the saved language for a chat.
func (s *MemoryStore) GetLang(_ context.Context, chatID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.langs[chatID]
}

// SetLang saves the language for a chat.
func (s *MemoryStore) SetLang(_ context.Context, chatID int64, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.langs[chatID] = lang
	return nil
}

// Close is a no-op for in-memory store (implements Store interface).
func (s *MemoryStore) Close() error {
	return nil
}
