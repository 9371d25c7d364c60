package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/archnets/drive-relay-bot/internal/core"
	"github.com/archnets/drive-relay-bot/internal/logger"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const defaultMimeType = "application/octet-stream"

// DriveClient uploads staged files to Google Drive.
// It is shared by all relays and holds no per-upload state.
type DriveClient struct {
	files *drive.FilesService
}

// NewDriveClient builds a client on top of an authenticated HTTP client.
// Extra options are mostly used by tests to point at a fake endpoint.
func NewDriveClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*DriveClient, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveClient{files: drive.NewFilesService(svc)}, nil
}

// Upload creates the file with a resumable upload, whatever its size.
func (c *DriveClient) Upload(ctx context.Context, req core.UploadRequest) (core.UploadResult, error) {
	meta := &drive.File{Name: req.Name}
	if req.FolderID != "" {
		meta.Parents = []string{req.FolderID}
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	// ResumableMedia is deprecated, but Media switches to a multipart upload
	// for small files. This call is the one that stays resumable at any size.
	f, err := c.files.Create(meta).
		ResumableMedia(ctx, req.Content, req.Size, mimeType).
		ProgressUpdater(func(current, total int64) {
			logger.Debugf("drive upload %q: %d/%d bytes", req.Name, current, total)
		}).
		SupportsAllDrives(true).
		Fields("id, name, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return core.UploadResult{}, core.UploadError(err, "drive files.create")
	}

	return core.UploadResult{
		FileID:   f.Id,
		Name:     f.Name,
		ViewLink: f.WebViewLink,
	}, nil
}
