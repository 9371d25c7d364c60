package core

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/archnets/drive-relay-bot/internal/logger"
	"github.com/google/uuid"
)

// DefaultMaxSize is the largest attachment the relay accepts (2 GiB).
const DefaultMaxSize int64 = 2 << 30

// FallbackName is used when the platform sends a file without a name.
const FallbackName = "uploaded_file"

// Stage is a relay's position in the pipeline. Transitions only move forward.
type Stage int

const (
	StageStaging Stage = iota
	StageUploading
	StageReporting
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStaging:
		return "staging"
	case StageUploading:
		return "uploading"
	case StageReporting:
		return "reporting"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UploadRequest is the destination metadata plus the staged content.
type UploadRequest struct {
	Name     string
	FolderID string
	MimeType string
	Size     int64
	Content  io.ReaderAt
}

// UploadResult is what the storage provider reports for a created file.
type UploadResult struct {
	FileID   string
	Name     string
	ViewLink string
}

// Uploader creates a file on the storage provider with a resumable upload.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
}

// Result is the outcome of one relay: either an upload or an error.
type Result struct {
	RelayID string
	Stage   Stage
	// Size is the number of bytes staged; 0 when staging did not finish.
	Size   int64
	Upload UploadResult
	Err    error
}

func (r Result) OK() bool { return r.Err == nil }

// Link is the shareable link of a successful relay.
func (r Result) Link() string {
	if r.Err != nil {
		return ""
	}
	return r.Upload.ViewLink
}

// Kind is empty for successful relays.
func (r Result) Kind() ErrorKind {
	return KindOf(r.Err)
}

// Responder is the chat side of a relay. Report is called exactly once per run.
type Responder interface {
	Progress(ctx context.Context, stage Stage)
	Report(ctx context.Context, res Result) error
}

// Relay runs the stage, upload, report and cleanup steps for one attachment.
type Relay struct {
	stager   *Stager
	uploader Uploader
	folderID string
	maxSize  int64
	newID    func() string
}

type Option func(*Relay)

// WithFolder uploads into the given Drive folder instead of the account root.
func WithFolder(folderID string) Option {
	return func(r *Relay) { r.folderID = strings.TrimSpace(folderID) }
}

// WithMaxSize sets the size ceiling; n <= 0 removes it.
func WithMaxSize(n int64) Option {
	return func(r *Relay) { r.maxSize = n }
}

func NewRelay(uploader Uploader, stager *Stager, opts ...Option) *Relay {
	r := &Relay{
		stager:   stager,
		uploader: uploader,
		maxSize:  DefaultMaxSize,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays att and reports the outcome to resp. The staged file is always
// released before the outcome is reported.
func (r *Relay) Run(ctx context.Context, att Attachment, resp Responder) Result {
	res := r.safeTransfer(ctx, att, resp, Result{RelayID: r.newID()})

	resp.Progress(ctx, StageReporting)
	if err := resp.Report(ctx, res); err != nil {
		logger.ForRelay(res.RelayID).Warnf("report failed: %v", err)
	}
	return res
}

func (r *Relay) safeTransfer(ctx context.Context, att Attachment, resp Responder, res Result) (out Result) {
	out = res
	defer func() {
		if p := recover(); p != nil {
			logger.ForRelay(res.RelayID).Errorf("relay panicked: %v", p)
			out.Err = UnhandledError(p)
			out.Stage = StageFailed
			out.Upload = UploadResult{}
		}
	}()
	return r.transfer(ctx, att, resp, res)
}

// transfer stages and uploads; the deferred release runs before reporting.
func (r *Relay) transfer(ctx context.Context, att Attachment, resp Responder, res Result) Result {
	lg := logger.ForRelay(res.RelayID)

	fail := func(err error) Result {
		res.Err = err
		res.Stage = StageFailed
		lg.Errorf("relay failed (%s): %v", KindOf(err), err)
		return res
	}

	res.Stage = StageStaging
	resp.Progress(ctx, StageStaging)

	if r.maxSize > 0 && att.Size > r.maxSize {
		return fail(DownloadError(ErrTooLarge, "attachment rejected before download"))
	}

	staged, err := r.stager.Stage(ctx, res.RelayID, att.Handle, r.maxSize)
	if err != nil {
		return fail(DownloadError(err, "stage attachment"))
	}
	defer func() {
		if err := staged.Release(); err != nil {
			lg.Warnf("release staged file: %v", err)
		}
	}()
	lg.Debugf("staged %d bytes at %s", staged.Size, staged.Path)
	res.Size = staged.Size

	res.Stage = StageUploading
	resp.Progress(ctx, StageUploading)

	up, err := r.uploader.Upload(ctx, r.describe(att, staged))
	if err != nil {
		if KindOf(err) == ErrUnhandled {
			err = UploadError(err, "upload to storage provider")
		}
		return fail(err)
	}
	if up.FileID == "" {
		return fail(UploadError(errors.New("provider returned no file id"), "upload to storage provider"))
	}
	if up.ViewLink == "" {
		up.ViewLink = ViewLink(up.FileID)
	}

	lg.Infof("uploaded %q as %s", up.Name, up.FileID)
	res.Upload = up
	res.Stage = StageDone
	return res
}

func (r *Relay) describe(att Attachment, staged *StagedFile) UploadRequest {
	name := att.Name
	if name == "" {
		name = FallbackName
	}
	return UploadRequest{
		Name:     name,
		FolderID: r.folderID,
		MimeType: att.MimeType,
		Size:     staged.Size,
		Content:  staged,
	}
}

// ViewLink is the Drive web link for a file ID.
func ViewLink(fileID string) string {
	return "https://drive.google.com/file/d/" + fileID + "/view"
}
