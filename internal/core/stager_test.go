package core

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagerWritesAndReleasesOnce(t *testing.T) {
	stager, removed := countingStager(t)

	staged, err := stager.Stage(context.Background(), "r1", bytesHandle("hello"), 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(stager.Dir(), "relay-r1"), staged.Path)
	assert.Equal(t, int64(5), staged.Size)

	buf := make([]byte, 5)
	_, err = staged.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))

	info, err := os.Stat(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, staged.Release())
	require.NoError(t, staged.Release())
	assert.Len(t, *removed, 1)
	assert.NoFileExists(t, staged.Path)
}

func TestStagerRefusesToReusePath(t *testing.T) {
	stager, _ := countingStager(t)

	first, err := stager.Stage(context.Background(), "dup", bytesHandle("a"), 0)
	require.NoError(t, err)
	defer first.Release()

	_, err = stager.Stage(context.Background(), "dup", bytesHandle("b"), 0)
	assert.Error(t, err)
}

func TestStagerCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "staging")
	stager := NewStager(dir)

	staged, err := stager.Stage(context.Background(), "r2", bytesHandle("x"), 0)
	require.NoError(t, err)
	require.NoError(t, staged.Release())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStagerNilHandle(t *testing.T) {
	stager, removed := countingStager(t)

	_, err := stager.Stage(context.Background(), "r3", nil, 0)
	assert.Error(t, err)
	assert.Len(t, *removed, 1)
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestStagerClosesSource(t *testing.T) {
	stager, _ := countingStager(t)
	src := &closeTracker{Reader: io.LimitReader(zeroReader{}, 10)}

	staged, err := stager.Stage(context.Background(), "r4", FetchFunc(func(context.Context) (io.ReadCloser, error) {
		return src, nil
	}), 0)
	require.NoError(t, err)
	defer staged.Release()

	assert.True(t, src.closed)
	assert.Equal(t, int64(10), staged.Size)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
