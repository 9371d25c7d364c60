package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrTooLarge is returned when an attachment exceeds the size ceiling.
var ErrTooLarge = errors.New("attachment exceeds size limit")

// Stager writes attachment bytes to uniquely named files in one directory.
type Stager struct {
	dir string
	// remove is swapped in tests to count deletions.
	remove func(name string) error
}

func NewStager(dir string) *Stager {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "drive-relay")
	}
	return &Stager{dir: dir, remove: os.Remove}
}

// Dir returns the staging directory.
func (s *Stager) Dir() string {
	return s.dir
}

// PathFor is the staging path of a relay. Relay IDs are UUIDs, so paths never collide.
func (s *Stager) PathFor(relayID string) string {
	return filepath.Join(s.dir, "relay-"+relayID)
}

// Stage allocates the relay's staging file and streams the attachment into it.
// limit <= 0 disables the size ceiling. On error nothing is left on disk.
func (s *Stager) Stage(ctx context.Context, relayID string, h FetchHandle, limit int64) (*StagedFile, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	path := s.PathFor(relayID)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("allocate staging file: %w", err)
	}
	staged := &StagedFile{Path: path, file: f, remove: s.remove}

	if err := staged.fill(ctx, h, limit); err != nil {
		_ = staged.Release()
		return nil, err
	}
	return staged, nil
}

// StagedFile is the local copy of one attachment, owned by a single relay.
type StagedFile struct {
	Path string
	Size int64

	file   *os.File
	remove func(string) error

	once       sync.Once
	releaseErr error
}

func (f *StagedFile) fill(ctx context.Context, h FetchHandle, limit int64) error {
	if h == nil {
		return errors.New("attachment has no fetch handle")
	}
	src, err := h.Open(ctx)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer src.Close()

	var r io.Reader = src
	if limit > 0 {
		r = io.LimitReader(src, limit+1)
	}
	n, err := io.Copy(f.file, r)
	if err != nil {
		return fmt.Errorf("copy attachment: %w", err)
	}
	if limit > 0 && n > limit {
		return ErrTooLarge
	}
	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("sync staging file: %w", err)
	}
	f.Size = n
	return nil
}

// ReadAt lets the uploader read the staged bytes without loading them into memory.
func (f *StagedFile) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}

// Release closes and deletes the file. Only the first call does any work.
func (f *StagedFile) Release() error {
	f.once.Do(func() {
		closeErr := f.file.Close()
		removeErr := f.remove(f.Path)
		if removeErr != nil && !os.IsNotExist(removeErr) {
			f.releaseErr = fmt.Errorf("remove staging file: %w", removeErr)
			return
		}
		if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			f.releaseErr = fmt.Errorf("close staging file: %w", closeErr)
		}
	})
	return f.releaseErr
}
