package core

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeDownloadFailed = "RELAY_DOWNLOAD_FAILED"
	TextCodeUploadFailed   = "RELAY_UPLOAD_FAILED"
	TextCodeUnhandled      = "RELAY_UNHANDLED"
)

// ErrorKind is the relay failure taxonomy.
type ErrorKind string

const (
	ErrDownload  ErrorKind = "download"
	ErrUpload    ErrorKind = "upload"
	ErrUnhandled ErrorKind = "unhandled"
)

// DownloadError wraps a failure to fetch or stage attachment bytes.
func DownloadError(err error, message string) error {
	return relayError(err, goerrors.CategoryExternal, TextCodeDownloadFailed, message)
}

// UploadError wraps a storage provider rejection or transport failure.
func UploadError(err error, message string) error {
	return relayError(err, goerrors.CategoryExternal, TextCodeUploadFailed, message)
}

// UnhandledError converts a recovered panic value or stray error.
func UnhandledError(v any) error {
	if err, ok := v.(error); ok {
		return relayError(err, goerrors.CategoryInternal, TextCodeUnhandled, "unhandled relay error")
	}
	return goerrors.New(fmt.Sprintf("unhandled relay error: %v", v), goerrors.CategoryInternal).
		WithTextCode(TextCodeUnhandled)
}

func relayError(source error, category goerrors.Category, textCode, message string) error {
	if source == nil {
		return goerrors.New(message, category).WithTextCode(textCode)
	}
	return goerrors.Wrap(source, category, message).WithTextCode(textCode)
}

// KindOf classifies err. Errors that never went through the taxonomy are unhandled.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		switch rich.TextCode {
		case TextCodeDownloadFailed:
			return ErrDownload
		case TextCodeUploadFailed:
			return ErrUpload
		}
	}
	return ErrUnhandled
}

// TextCode returns the stable code stored in upload history for err.
func TextCode(err error) string {
	switch KindOf(err) {
	case ErrDownload:
		return TextCodeDownloadFailed
	case ErrUpload:
		return TextCodeUploadFailed
	case ErrUnhandled:
		return TextCodeUnhandled
	default:
		return ""
	}
}
