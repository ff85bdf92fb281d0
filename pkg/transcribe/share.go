package transcribe

import (
	"errors"

	"github.com/atotto/clipboard"
)

var (
	// ErrShareUnsupported is returned by a Sharer when the platform has no
	// native share mechanism.
	ErrShareUnsupported = errors.New("sharing not supported on this platform")
	// ErrShareCancelled is returned by a Sharer when the user dismissed the
	// share dialog without sharing.
	ErrShareCancelled = errors.New("share cancelled")
)

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the default Clipboard backed by the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Sharer hands text to a platform share surface. Implementations return
// ErrShareUnsupported when no such surface exists and ErrShareCancelled
// when the user backed out.
type Sharer interface {
	Share(title, text string) error
}

// CopyToClipboard copies text with the attribution tag appended. An empty
// text argument means the current transcript. Returns false, without
// propagating an error, when there is nothing to copy or the clipboard
// write fails.
func (s *Service) CopyToClipboard(text string) bool {
	text = s.trimOrCurrent(text)
	if text == "" {
		s.log.Warn("copy requested with no text available")
		return false
	}

	withAttribution := text + "\n\n" + AttributionTag
	if err := s.clip.WriteAll(withAttribution); err != nil {
		s.log.Error("clipboard copy failed", "error", err)
		return false
	}

	s.log.Debug("journal entry copied to clipboard", "length", len(text))
	return true
}

// ShareTranscript hands text to the platform sharer with the attribution
// postfix appended. An empty text argument means the current transcript.
// A cancelled share returns false without logging an error; an unsupported
// platform falls back to the clipboard.
func (s *Service) ShareTranscript(text string) bool {
	text = s.trimOrCurrent(text)
	if text == "" {
		s.log.Warn("share requested with no text available")
		return false
	}

	if s.sharer == nil {
		return s.CopyToClipboard(text)
	}

	err := s.sharer.Share(ShareTitle, text+SharePostfix)
	switch {
	case err == nil:
		s.log.Debug("journal entry shared", "length", len(text))
		return true
	case errors.Is(err, ErrShareCancelled):
		return false
	case errors.Is(err, ErrShareUnsupported):
		return s.CopyToClipboard(text)
	default:
		s.log.Error("share failed", "error", err)
		return false
	}
}

// IsShareSupported reports whether a native share surface is wired in.
func (s *Service) IsShareSupported() bool {
	return s.sharer != nil
}
