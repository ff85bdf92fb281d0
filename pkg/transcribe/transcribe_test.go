package transcribe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/daysay-app/daysay/pkg/journal"
	"github.com/daysay-app/daysay/pkg/parser"
)

// fakeBackend returns a canned result or error.
type fakeBackend struct {
	result parser.Result
	err    error
	calls  int
}

func (f *fakeBackend) Transcribe(ctx context.Context, audio []byte) (parser.Result, error) {
	f.calls++
	return f.result, f.err
}

// fakeClipboard records writes and can be told to fail.
type fakeClipboard struct {
	written []string
	err     error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, text)
	return nil
}

// fakeSharer returns a configured error.
type fakeSharer struct {
	err    error
	titles []string
	texts  []string
}

func (f *fakeSharer) Share(title, text string) error {
	if f.err != nil {
		return f.err
	}
	f.titles = append(f.titles, title)
	f.texts = append(f.texts, text)
	return nil
}

func newTestTranscribeService(t *testing.T, backend Backend) (*Service, *journal.Store, *fakeClipboard) {
	t.Helper()

	store := journal.NewStore(nil)
	store.Initialize()
	journalSvc := journal.NewService(store, nil, nil)
	clip := &fakeClipboard{}
	svc := NewService(backend, parser.New(parser.Lexicon{}), journalSvc, WithClipboard(clip))
	return svc, store, clip
}

func TestTranscribeAudioEmptyInputIsNoOp(t *testing.T) {
	backend := &fakeBackend{}
	svc, store, _ := newTestTranscribeService(t, backend)
	before := store.State()

	result, err := svc.TranscribeAudio(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error for empty audio, got %v", err)
	}
	if result.Text != "" || len(result.Commands) != 0 || len(result.Tags) != 0 {
		t.Errorf("Expected an empty result, got %#v", result)
	}
	if backend.calls != 0 {
		t.Error("Expected the backend not to be invoked for empty audio")
	}
	if len(store.State().Entries) != len(before.Entries) {
		t.Error("Expected the journal untouched by empty audio")
	}
}

func TestTranscribeAudioBackendErrorPropagates(t *testing.T) {
	backendErr := errors.New("upstream transcription failed")
	svc, _, _ := newTestTranscribeService(t, &fakeBackend{err: backendErr})

	_, err := svc.TranscribeAudio(context.Background(), []byte("audio"))
	if !errors.Is(err, backendErr) {
		t.Fatalf("Expected backend error to propagate, got %v", err)
	}

	if svc.LastError() == "" {
		t.Error("Expected the error state to be recorded")
	}
	if svc.Progress().State() != ProgressIdle {
		t.Errorf("Expected progress reset after failure, got %s", svc.Progress().State())
	}
	if svc.IsTranscribing() {
		t.Error("Expected no transcription in flight after failure")
	}
}

func TestTranscribeAudioParserFallbackForBareText(t *testing.T) {
	backend := &fakeBackend{result: parser.Result{Text: "new entry. Today I feel happy."}}
	svc, store, _ := newTestTranscribeService(t, backend)

	result, err := svc.TranscribeAudio(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("TranscribeAudio failed: %v", err)
	}

	if result.Mood != "happy" {
		t.Errorf("Expected the local parser to detect the mood, got %q", result.Mood)
	}
	if result.Text != "Today" {
		t.Errorf("Expected cleaned text from the parser, got %q", result.Text)
	}

	entry, ok := store.ActiveEntry()
	if !ok {
		t.Fatal("Expected an active entry")
	}
	if entry.Mood != "happy" {
		t.Errorf("Expected the mood applied to the journal, got %q", entry.Mood)
	}
	if svc.CurrentTranscript() != "Today" {
		t.Errorf("Expected current transcript recorded, got %q", svc.CurrentTranscript())
	}
	if svc.LastError() != "" {
		t.Errorf("Expected error state cleared on success, got %q", svc.LastError())
	}
}

func TestTranscribeAudioStructuredResultSkipsParser(t *testing.T) {
	structured := parser.Result{
		Text:     "Raw prose untouched by reparsing",
		Commands: []parser.Command{},
		Mood:     "calm",
		Tags:     []string{"pre"},
	}
	svc, store, _ := newTestTranscribeService(t, &fakeBackend{result: structured})

	result, err := svc.TranscribeAudio(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("TranscribeAudio failed: %v", err)
	}
	if result.Text != structured.Text {
		t.Errorf("Expected structured text passed through, got %q", result.Text)
	}

	entry, _ := store.ActiveEntry()
	if entry.Mood != "calm" {
		t.Errorf("Expected structured mood applied, got %q", entry.Mood)
	}
	if len(entry.Tags) != 1 || entry.Tags[0] != "pre" {
		t.Errorf("Expected structured tags applied, got %v", entry.Tags)
	}
}

func TestCopyToClipboardAppendsAttribution(t *testing.T) {
	svc, _, clip := newTestTranscribeService(t, &fakeBackend{result: parser.Result{Text: "A fine day."}})

	if _, err := svc.TranscribeAudio(context.Background(), []byte("audio")); err != nil {
		t.Fatalf("TranscribeAudio failed: %v", err)
	}

	if !svc.CopyToClipboard("") {
		t.Fatal("Expected copy to succeed")
	}
	if len(clip.written) != 1 {
		t.Fatalf("Expected one clipboard write, got %d", len(clip.written))
	}
	if !strings.HasSuffix(clip.written[0], AttributionTag) {
		t.Errorf("Expected attribution appended, got %q", clip.written[0])
	}
	if !strings.HasPrefix(clip.written[0], "A fine day.") {
		t.Errorf("Expected transcript text first, got %q", clip.written[0])
	}
}

func TestCopyToClipboardNothingToCopy(t *testing.T) {
	svc, _, clip := newTestTranscribeService(t, &fakeBackend{})

	if svc.CopyToClipboard("   ") {
		t.Error("Expected copy of blank text to report failure")
	}
	if len(clip.written) != 0 {
		t.Errorf("Expected no clipboard writes, got %v", clip.written)
	}
}

func TestCopyToClipboardSwallowsWriteErrors(t *testing.T) {
	svc, _, clip := newTestTranscribeService(t, &fakeBackend{})
	clip.err = errors.New("no clipboard available")

	if svc.CopyToClipboard("some text") {
		t.Error("Expected copy failure to be reported as false, not panic or error")
	}
}

func TestShareTranscriptCancelledIsNotAFailurePath(t *testing.T) {
	svc, _, clip := newTestTranscribeService(t, &fakeBackend{})
	sharer := &fakeSharer{err: ErrShareCancelled}
	WithSharer(sharer)(svc)

	if svc.ShareTranscript("an entry") {
		t.Error("Expected cancelled share to return false")
	}
	if len(clip.written) != 0 {
		t.Error("Expected no clipboard fallback on cancellation")
	}
}

func TestShareTranscriptUnsupportedFallsBackToClipboard(t *testing.T) {
	svc, _, clip := newTestTranscribeService(t, &fakeBackend{})
	WithSharer(&fakeSharer{err: ErrShareUnsupported})(svc)

	if !svc.ShareTranscript("an entry") {
		t.Fatal("Expected the clipboard fallback to succeed")
	}
	if len(clip.written) != 1 {
		t.Fatalf("Expected one clipboard write from the fallback, got %d", len(clip.written))
	}
}

func TestShareTranscriptAddsPostfixAndTitle(t *testing.T) {
	svc, _, _ := newTestTranscribeService(t, &fakeBackend{})
	sharer := &fakeSharer{}
	WithSharer(sharer)(svc)

	if !svc.ShareTranscript("an entry") {
		t.Fatal("Expected share to succeed")
	}
	if len(sharer.texts) != 1 || !strings.HasSuffix(sharer.texts[0], SharePostfix) {
		t.Errorf("Expected share postfix appended, got %#v", sharer.texts)
	}
	if sharer.titles[0] != ShareTitle {
		t.Errorf("Expected share title %q, got %q", ShareTitle, sharer.titles[0])
	}
}

func TestShareTranscriptWithoutSharerCopiesInstead(t *testing.T) {
	svc, _, clip := newTestTranscribeService(t, &fakeBackend{})

	if !svc.ShareTranscript("an entry") {
		t.Fatal("Expected share without a sharer to fall back to copy")
	}
	if len(clip.written) != 1 {
		t.Fatalf("Expected one clipboard write, got %d", len(clip.written))
	}
	if svc.IsShareSupported() {
		t.Error("Expected share to be reported unsupported without a sharer")
	}
}

func TestClearTranscript(t *testing.T) {
	svc, _, _ := newTestTranscribeService(t, &fakeBackend{result: parser.Result{Text: "Something."}})

	if _, err := svc.TranscribeAudio(context.Background(), []byte("audio")); err != nil {
		t.Fatalf("TranscribeAudio failed: %v", err)
	}
	if svc.CurrentTranscript() == "" {
		t.Fatal("Expected a transcript to be held")
	}

	svc.ClearTranscript()
	if svc.CurrentTranscript() != "" {
		t.Error("Expected transcript cleared")
	}
}

func TestRandomCopyMessageComesFromTheList(t *testing.T) {
	for i := 0; i < 20; i++ {
		msg := RandomCopyMessage()
		found := false
		for _, candidate := range CopyMessages {
			if msg == candidate {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("RandomCopyMessage returned %q, not in CopyMessages", msg)
		}
	}
}
