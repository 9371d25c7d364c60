package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/archnets/drive-relay-bot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeDrive speaks just enough of the resumable upload protocol for files.create.
type fakeDrive struct {
	mu          sync.Mutex
	metadata    map[string]any
	query       map[string]string
	body        []byte
	initStatus  int
	sessionHits int
	response    string
}

func (d *fakeDrive) handler(srvURL func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.mu.Lock()
		defer d.mu.Unlock()

		if r.URL.Query().Get("uploadType") == "resumable" {
			d.query = map[string]string{
				"fields":            r.URL.Query().Get("fields"),
				"supportsAllDrives": r.URL.Query().Get("supportsAllDrives"),
			}
			_ = json.NewDecoder(r.Body).Decode(&d.metadata)
			if d.initStatus != 0 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(d.initStatus)
				_, _ = io.WriteString(w, `{"error":{"code":401,"message":"Invalid Credentials"}}`)
				return
			}
			w.Header().Set("Location", srvURL()+"/session/upload-1")
			w.WriteHeader(http.StatusOK)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/session/") {
			d.sessionHits++
			b, _ := io.ReadAll(r.Body)
			d.body = append(d.body, b...)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, d.response)
			return
		}

		http.NotFound(w, r)
	}
}

func newFakeDrive(t *testing.T, d *fakeDrive) *DriveClient {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(d.handler(func() string { return srv.URL }))
	t.Cleanup(srv.Close)

	client, err := NewDriveClient(context.Background(), srv.Client(),
		option.WithEndpoint(srv.URL+"/drive/v3/"))
	require.NoError(t, err)
	return client
}

func TestDriveUploadResumable(t *testing.T) {
	d := &fakeDrive{response: `{"id":"abc123","name":"report.pdf","webViewLink":"https://drive.example/abc123"}`}
	client := newFakeDrive(t, d)

	content := "%PDF-1.7 body"
	res, err := client.Upload(context.Background(), core.UploadRequest{
		Name:     "report.pdf",
		FolderID: "folder-9",
		MimeType: "application/pdf",
		Size:     int64(len(content)),
		Content:  strings.NewReader(content),
	})
	require.NoError(t, err)

	assert.Equal(t, core.UploadResult{
		FileID:   "abc123",
		Name:     "report.pdf",
		ViewLink: "https://drive.example/abc123",
	}, res)

	assert.Equal(t, "report.pdf", d.metadata["name"])
	assert.Equal(t, []any{"folder-9"}, d.metadata["parents"])
	assert.Equal(t, "true", d.query["supportsAllDrives"])
	assert.Contains(t, d.query["fields"], "webViewLink")
	assert.Equal(t, 1, d.sessionHits)
	assert.Equal(t, content, string(d.body))
}

func TestDriveUploadWithoutFolder(t *testing.T) {
	d := &fakeDrive{response: `{"id":"x1","name":"a.bin"}`}
	client := newFakeDrive(t, d)

	res, err := client.Upload(context.Background(), core.UploadRequest{
		Name:    "a.bin",
		Size:    3,
		Content: strings.NewReader("abc"),
	})
	require.NoError(t, err)

	assert.Equal(t, "x1", res.FileID)
	assert.Empty(t, res.ViewLink)
	_, hasParents := d.metadata["parents"]
	assert.False(t, hasParents)
}

func TestDriveUploadRejected(t *testing.T) {
	d := &fakeDrive{initStatus: http.StatusUnauthorized}
	client := newFakeDrive(t, d)

	_, err := client.Upload(context.Background(), core.UploadRequest{
		Name:    "a.bin",
		Size:    3,
		Content: strings.NewReader("abc"),
	})
	require.Error(t, err)
	assert.Equal(t, core.ErrUpload, core.KindOf(err))
	assert.Zero(t, d.sessionHits)
}
