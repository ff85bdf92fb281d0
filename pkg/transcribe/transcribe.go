// Package transcribe turns captured audio into journal mutations. The
// transcription backend itself is a black box; this package owns input
// validation, the progress indicator, the parser fallback for backends
// that return only raw text, and the hand-off to the journal service.
package transcribe

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/daysay-app/daysay/pkg/journal"
	"github.com/daysay-app/daysay/pkg/parser"
)

// Backend converts an audio payload into a transcription result. Backends
// that cannot extract structure themselves may fill only Text; the service
// runs the local parser over it in that case.
type Backend interface {
	Transcribe(ctx context.Context, audio []byte) (parser.Result, error)
}

// Service coordinates one transcription at a time: validate, track
// progress, call the backend, parse if needed, and apply the result to the
// journal.
type Service struct {
	backend  Backend
	parser   *parser.Parser
	journal  *journal.Service
	progress *Progress
	clip     Clipboard
	sharer   Sharer
	log      *slog.Logger

	mu      sync.Mutex
	text    string
	lastErr string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClipboard overrides the clipboard collaborator.
func WithClipboard(clip Clipboard) ServiceOption {
	return func(s *Service) { s.clip = clip }
}

// WithSharer installs a platform share collaborator. Without one, sharing
// falls back to the clipboard.
func WithSharer(sharer Sharer) ServiceOption {
	return func(s *Service) { s.sharer = sharer }
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// NewService wires a transcription backend to a journal service. The
// parser may be nil when the backend always returns structured results.
func NewService(backend Backend, p *parser.Parser, journalSvc *journal.Service, opts ...ServiceOption) *Service {
	s := &Service{
		backend:  backend,
		parser:   p,
		journal:  journalSvc,
		progress: NewProgress(),
		clip:     SystemClipboard{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Progress exposes the progress indicator for presentation layers.
func (s *Service) Progress() *Progress {
	return s.progress
}

// TranscribeAudio runs one full transcription: empty audio is a logged
// no-op returning an empty result, backend failures propagate after the
// error state is recorded and the progress indicator reset, and successful
// results are applied to the journal before being returned.
func (s *Service) TranscribeAudio(ctx context.Context, audio []byte) (parser.Result, error) {
	if len(audio) == 0 {
		s.log.Warn("transcribe: no audio data provided")
		return parser.Result{Commands: []parser.Command{}, Tags: []string{}}, nil
	}

	s.progress.Start()

	result, err := s.backend.Transcribe(ctx, audio)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.progress.Reset()
		return parser.Result{}, err
	}

	s.progress.Complete()

	// Backends without their own understanding return bare text; run the
	// local parser to recover commands, mood and tags.
	if result.Commands == nil && result.Tags == nil && result.Mood == "" && s.parser != nil {
		result = s.parser.Parse(result.Text)
	}
	if result.Commands == nil {
		result.Commands = []parser.Command{}
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}

	s.mu.Lock()
	s.text = result.Text
	s.lastErr = ""
	s.mu.Unlock()

	s.journal.ProcessTranscription(result)

	return result, nil
}

// IsTranscribing reports whether a transcription is currently in flight.
func (s *Service) IsTranscribing() bool {
	state := s.progress.State()
	return state == ProgressRunning || state == ProgressCompleting
}

// CurrentTranscript returns the text of the last successful transcription.
func (s *Service) CurrentTranscript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// LastError returns the message of the last failed transcription, or "".
func (s *Service) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearTranscript discards the held transcript text.
func (s *Service) ClearTranscript() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = ""
}

// trimOrCurrent resolves the text argument shared by the copy and share
// surfaces: an empty argument means "use the current transcript".
func (s *Service) trimOrCurrent(text string) string {
	if text == "" {
		text = s.CurrentTranscript()
	}
	return strings.TrimSpace(text)
}
