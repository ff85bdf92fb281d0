package journal

import (
	"log/slog"
	"strings"
	"time"

	"github.com/daysay-app/daysay/pkg/parser"
)

// ReactionHooks is the notification surface toward presentation
// collaborators. Calls are fire-and-forget: the service never waits on a
// hook and a hook cannot fail a journal operation.
type ReactionHooks interface {
	ReactToEntryLength(length int)
	ReactToMood(mood string)
	SetExpression(expression string, duration time.Duration)
}

// NopHooks is a ReactionHooks that does nothing.
type NopHooks struct{}

func (NopHooks) ReactToEntryLength(int)              {}
func (NopHooks) ReactToMood(string)                  {}
func (NopHooks) SetExpression(string, time.Duration) {}

// Service coordinates parsed transcription results into store mutations.
type Service struct {
	store *Store
	hooks ReactionHooks
	log   *slog.Logger
}

// NewService wraps a store. A nil hooks argument installs NopHooks.
func NewService(store *Store, hooks ReactionHooks, log *slog.Logger) *Service {
	if hooks == nil {
		hooks = NopHooks{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, hooks: hooks, log: log}
}

// Store exposes the underlying entry store.
func (s *Service) Store() *Store {
	return s.store
}

// ProcessTranscription applies one parsed transcription result: explicit
// commands in order, then the residual prose, then the top-level mood
// (which can override a command-driven mood), then the extracted tags, and
// finally the presentation notifications. Blank prose text short-circuits
// the whole sequence as a logged no-op.
func (s *Service) ProcessTranscription(result parser.Result) {
	text := strings.TrimSpace(result.Text)
	if text == "" {
		s.log.Debug("journal: no text content to process")
		return
	}

	for _, cmd := range result.Commands {
		s.applyCommand(cmd)
	}

	s.AddContentToEntry(text, "")

	if result.Mood != "" {
		s.store.SetEntryMood(result.Mood, "")
		s.hooks.ReactToMood(result.Mood)
	}

	for _, tag := range result.Tags {
		s.store.AddEntryTag(tag, "")
	}

	s.hooks.ReactToEntryLength(len(text))
}

func (s *Service) applyCommand(cmd parser.Command) {
	switch cmd.Kind {
	case parser.CommandNewEntry:
		s.store.AddEntry("", "")
	case parser.CommandTodayEntry:
		s.store.AddTodayEntry()
	case parser.CommandYesterdayEntry:
		s.store.AddYesterdayEntry()
	case parser.CommandContinueEntry:
		// Appending to the active entry is the default behavior already.
	case parser.CommandSetMood:
		if len(cmd.Params) > 0 {
			s.store.SetEntryMood(cmd.Params[0], "")
		}
	case parser.CommandAddTag:
		if len(cmd.Params) > 0 {
			s.store.AddEntryTag(cmd.Params[0], "")
		}
	}
}

// AddContentToEntry appends text to the given entry, defaulting to the
// active entry and creating a today entry when nothing is active yet.
// Returns the id of the entry that received the content.
func (s *Service) AddContentToEntry(text, entryID string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if entryID == "" {
		if _, ok := s.store.ActiveEntry(); !ok {
			entryID = s.store.AddTodayEntry()
		} else {
			entryID = s.store.State().ActiveEntryID
		}
	}

	s.store.AddContent(text, entryID)
	return entryID
}
