package core

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Kind is the Telegram media type an attachment arrived as.
type Kind string

const (
	KindDocument  Kind = "document"
	KindVideo     Kind = "video"
	KindAudio     Kind = "audio"
	KindVoice     Kind = "voice"
	KindAnimation Kind = "animation"
	KindPhoto     Kind = "photo"
)

// DefaultKinds mirrors the document/video/audio filter the bot has always used.
var DefaultKinds = []Kind{KindDocument, KindVideo, KindAudio}

var knownKinds = map[Kind]bool{
	KindDocument:  true,
	KindVideo:     true,
	KindAudio:     true,
	KindVoice:     true,
	KindAnimation: true,
	KindPhoto:     true,
}

// KindSet is the set of attachment kinds the bot relays.
type KindSet map[Kind]bool

// ParseKinds builds a KindSet from config values such as "document,video".
func ParseKinds(values []string) (KindSet, error) {
	set := make(KindSet, len(values))
	for _, v := range values {
		k := Kind(strings.ToLower(strings.TrimSpace(v)))
		if k == "" {
			continue
		}
		if !knownKinds[k] {
			return nil, fmt.Errorf("unknown attachment kind %q", v)
		}
		set[k] = true
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no attachment kinds configured")
	}
	return set, nil
}

func (s KindSet) Accepts(k Kind) bool {
	return s[k]
}

// String lists the kinds in a stable order, for logs.
func (s KindSet) String() string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// FetchHandle opens the remote bytes of an attachment.
type FetchHandle interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FetchFunc adapts a function to FetchHandle.
type FetchFunc func(ctx context.Context) (io.ReadCloser, error)

func (f FetchFunc) Open(ctx context.Context) (io.ReadCloser, error) { return f(ctx) }

// Attachment is a file received in a chat message, not yet staged.
type Attachment struct {
	Name     string
	Kind     Kind
	MimeType string
	// Size is what the platform declared; 0 when unknown.
	Size   int64
	Handle FetchHandle
}
