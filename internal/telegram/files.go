// Package telegram turns Telegram file messages into relay attachments.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/archnets/drive-relay-bot/internal/core"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// FileAPI is the part of the bot client needed to resolve and download files.
type FileAPI interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

var _ FileAPI = (*bot.Bot)(nil)

// DefaultHTTPClient downloads files. It has no overall timeout since large
// files can take minutes; callers cancel through the context.
func DefaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// Downloader builds fetch handles for file IDs.
type Downloader struct {
	api  FileAPI
	http *http.Client
}

func NewDownloader(api FileAPI, httpClient *http.Client) *Downloader {
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	return &Downloader{api: api, http: httpClient}
}

// Handle returns a fetch handle for fileID. Nothing is requested until Open.
func (d *Downloader) Handle(fileID string) core.FetchHandle {
	return core.FetchFunc(func(ctx context.Context) (io.ReadCloser, error) {
		return d.open(ctx, fileID)
	})
}

func (d *Downloader) open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	f, err := d.api.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	if f == nil || f.FilePath == "" {
		return nil, fmt.Errorf("get file: no file path for %s", fileID)
	}

	// A local Bot API server started with --local returns absolute paths on
	// its own disk instead of a downloadable path.
	if filepath.IsAbs(f.FilePath) {
		if file, err := os.Open(f.FilePath); err == nil {
			return file, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.api.FileDownloadLink(f), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Attachment extracts the file carried by msg if its kind is accepted.
func (d *Downloader) Attachment(msg *models.Message, kinds core.KindSet) (core.Attachment, bool) {
	att, fileID, ok := Accepted(msg, kinds)
	if !ok {
		return core.Attachment{}, false
	}
	att.Handle = d.Handle(fileID)
	return att, true
}

type candidate struct {
	att    core.Attachment
	fileID string
}

// candidates lists every file description msg carries, most specific first.
// Telegram fills both Animation and Document for a GIF.
func candidates(msg *models.Message) []candidate {
	if msg == nil {
		return nil
	}
	var out []candidate
	if a := msg.Animation; a != nil {
		out = append(out, candidate{build(core.KindAnimation, a.FileName, a.MimeType, int64(a.FileSize)), a.FileID})
	}
	if doc := msg.Document; doc != nil {
		out = append(out, candidate{build(core.KindDocument, doc.FileName, doc.MimeType, int64(doc.FileSize)), doc.FileID})
	}
	if v := msg.Video; v != nil {
		out = append(out, candidate{build(core.KindVideo, v.FileName, v.MimeType, int64(v.FileSize)), v.FileID})
	}
	if a := msg.Audio; a != nil {
		out = append(out, candidate{build(core.KindAudio, a.FileName, a.MimeType, int64(a.FileSize)), a.FileID})
	}
	if v := msg.Voice; v != nil {
		out = append(out, candidate{build(core.KindVoice, "", v.MimeType, int64(v.FileSize)), v.FileID})
	}
	if len(msg.Photo) > 0 {
		p := largestPhoto(msg.Photo)
		out = append(out, candidate{build(core.KindPhoto, "", "image/jpeg", int64(p.FileSize)), p.FileID})
	}
	return out
}

// Extract describes the most specific file in msg, without a fetch handle.
func Extract(msg *models.Message) (core.Attachment, string, bool) {
	c := candidates(msg)
	if len(c) == 0 {
		return core.Attachment{}, "", false
	}
	return c[0].att, c[0].fileID, true
}

// Accepted is Extract restricted to kinds. A GIF is accepted as a document
// when animations are not.
func Accepted(msg *models.Message, kinds core.KindSet) (core.Attachment, string, bool) {
	for _, c := range candidates(msg) {
		if kinds.Accepts(c.att.Kind) {
			return c.att, c.fileID, true
		}
	}
	return core.Attachment{}, "", false
}

// HasFile reports whether an update carries an accepted file. It is used as
// a handler match func so other messages reach the default handler.
func HasFile(kinds core.KindSet) func(u *models.Update) bool {
	return func(u *models.Update) bool {
		if u == nil {
			return false
		}
		_, _, ok := Accepted(u.Message, kinds)
		return ok
	}
}

func build(kind core.Kind, name, mime string, size int64) core.Attachment {
	return core.Attachment{
		Name:     strings.TrimSpace(name),
		Kind:     kind,
		MimeType: strings.TrimSpace(mime),
		Size:     size,
	}
}

func largestPhoto(items []models.PhotoSize) models.PhotoSize {
	best := items[0]
	for _, item := range items[1:] {
		area, bestArea := item.Width*item.Height, best.Width*best.Height
		if area > bestArea || (area == bestArea && item.FileSize > best.FileSize) {
			best = item
		}
	}
	return best
}
