package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/daysay-app/daysay/pkg/storage"
)

// Store owns the canonical in-memory collection of journal entries and the
// active-entry pointer. Every mutation updates memory and writes through to
// the persistence collaborator before returning, so a read after any
// mutating call always matches what was persisted.
//
// A nil persistence collaborator leaves the store fully usable in memory.
// Storage failures degrade the same way: they are logged, never surfaced.
type Store struct {
	mu      sync.Mutex
	state   State
	persist storage.Persistence
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for storage degradation messages.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore builds a store around the given persistence collaborator. Call
// Initialize before use; the lifecycle is under caller control.
func NewStore(persist storage.Persistence, opts ...Option) *Store {
	s := &Store{
		state:   State{Entries: []Entry{}, Version: CurrentVersion},
		persist: persist,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Initialize rehydrates the store from persisted state, or synthesizes and
// persists a default entry for today when no usable prior state exists.
// Safe to call more than once. After it returns the store holds at least
// one entry and an active id.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, activeID, version, ok := s.loadStoredState()
	if ok {
		if version < CurrentVersion {
			// Future migration logic goes here; for now just restamp.
			s.writeKey(storage.KeyVersion, strconv.Itoa(CurrentVersion))
		}
		if activeID == "" {
			activeID = stored[0].ID
		}
		s.state = State{Entries: stored, ActiveEntryID: activeID, Version: CurrentVersion}
		return
	}

	def := s.defaultEntry()
	s.state = State{Entries: []Entry{def}, ActiveEntryID: def.ID, Version: CurrentVersion}
	s.persistLocked()
}

// loadStoredState reads the three storage keys. It reports ok=false when no
// prior state is available, including the malformed-JSON case, which is
// logged and treated as absence.
func (s *Store) loadStoredState() ([]Entry, string, int, bool) {
	if s.persist == nil {
		return nil, "", 0, false
	}

	raw, err := s.persist.Get(storage.KeyEntries)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Error("journal: reading persisted entries", "error", err)
		}
		return nil, "", 0, false
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Error("journal: malformed persisted entries, starting fresh", "error", err)
		return nil, "", 0, false
	}
	if len(entries) == 0 {
		return nil, "", 0, false
	}

	activeID, err := s.persist.Get(storage.KeyActiveEntry)
	if err != nil {
		activeID = ""
	}

	version := 0
	if rawVersion, err := s.persist.Get(storage.KeyVersion); err == nil {
		if v, err := strconv.Atoi(rawVersion); err == nil {
			version = v
		}
	}

	return entries, activeID, version, true
}

// AddEntry creates an entry for the given date (today when empty) and makes
// it active. If an entry already exists for that date it is activated and
// its id returned instead; one entry per date is the working invariant.
func (s *Store) AddEntry(date, title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date == "" {
		date = FormatDate(s.now())
	}
	if title == "" {
		title = fmt.Sprintf("Journal Entry for %s", date)
	}

	for _, e := range s.state.Entries {
		if e.Date == date {
			s.state.ActiveEntryID = e.ID
			s.persistLocked()
			return e.ID
		}
	}

	entry := Entry{
		ID:        newEntryID(date),
		Date:      date,
		Title:     title,
		Content:   []Paragraph{},
		Mood:      "neutral",
		Tags:      []string{},
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	s.state.Entries = append(s.state.Entries, entry)
	s.state.ActiveEntryID = entry.ID
	s.persistLocked()
	return entry.ID
}

// AddTodayEntry creates or activates the entry for today.
func (s *Store) AddTodayEntry() string {
	return s.AddEntry("", "")
}

// AddYesterdayEntry creates or activates the entry for yesterday.
func (s *Store) AddYesterdayEntry() string {
	s.mu.Lock()
	yesterday := FormatDate(s.now().AddDate(0, 0, -1))
	s.mu.Unlock()
	return s.AddEntry(yesterday, "")
}

// DeleteEntry removes an entry. The collection never goes empty: deleting
// the last entry synthesizes a fresh default, and deleting the active entry
// re-selects the most recently dated survivor. Persistence fires even when
// the id is unknown.
func (s *Store) DeleteEntry(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.state.Entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.state.Entries = append(s.state.Entries[:idx], s.state.Entries[idx+1:]...)

		if len(s.state.Entries) == 0 {
			def := s.defaultEntry()
			s.state.Entries = append(s.state.Entries, def)
			s.state.ActiveEntryID = def.ID
		} else if s.state.ActiveEntryID == id {
			s.state.ActiveEntryID = s.mostRecentLocked().ID
		}
	}

	s.persistLocked()
}

// SetActiveEntry points implicit operations at the given entry. An unknown
// id changes nothing, but the persistence write still fires.
func (s *Store) SetActiveEntry(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.state.Entries {
		if e.ID == id {
			s.state.ActiveEntryID = id
			break
		}
	}

	s.persistLocked()
}

// AddContent appends a paragraph to the targeted entry (the active entry
// when entryID is empty). Empty or whitespace-only text is a no-op.
func (s *Store) AddContent(text, entryID string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mutateEntryLocked(entryID, func(e *Entry) bool {
		e.Content = append(e.Content, Paragraph{
			ID:        newParagraphID(),
			Text:      text,
			Timestamp: s.now(),
		})
		return true
	})
}

// UpdateEntryContent replaces the targeted entry's paragraph sequence
// wholesale. A nil slice is a no-op.
func (s *Store) UpdateEntryContent(content []Paragraph, entryID string) {
	if content == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mutateEntryLocked(entryID, func(e *Entry) bool {
		e.Content = content
		return true
	})
}

// SetEntryMood sets the mood on the targeted entry.
func (s *Store) SetEntryMood(mood, entryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mutateEntryLocked(entryID, func(e *Entry) bool {
		e.Mood = mood
		return true
	})
}

// SetEntryTitle sets the title on the targeted entry. Empty or
// whitespace-only titles are rejected as a no-op.
func (s *Store) SetEntryTitle(title, entryID string) {
	if strings.TrimSpace(title) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mutateEntryLocked(entryID, func(e *Entry) bool {
		e.Title = strings.TrimSpace(title)
		return true
	})
}

// AddEntryTag adds one tag to the targeted entry. Idempotent: a tag already
// present is not duplicated. Empty tags are rejected.
func (s *Store) AddEntryTag(tag, entryID string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mutateEntryLocked(entryID, func(e *Entry) bool {
		for _, existing := range e.Tags {
			if existing == tag {
				return false
			}
		}
		e.Tags = append(e.Tags, tag)
		return true
	})
}

// RemoveEntryTag removes one tag from the targeted entry.
func (s *Store) RemoveEntryTag(tag, entryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mutateEntryLocked(entryID, func(e *Entry) bool {
		kept := e.Tags[:0]
		for _, existing := range e.Tags {
			if existing != tag {
				kept = append(kept, existing)
			}
		}
		e.Tags = kept
		return true
	})
}

// SetEntryTags replaces the targeted entry's tag set, trimming, dropping
// empties and deduplicating. A nil slice is a no-op.
func (s *Store) SetEntryTags(tags []string, entryID string) {
	if tags == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mutateEntryLocked(entryID, func(e *Entry) bool {
		seen := make(map[string]bool)
		deduped := []string{}
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			deduped = append(deduped, tag)
		}
		e.Tags = deduped
		return true
	})
}

// GetEntryByDate returns the entry for a calendar date.
func (s *Store) GetEntryByDate(date string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.state.Entries {
		if e.Date == date {
			return cloneEntry(e), true
		}
	}
	return Entry{}, false
}

// GetEntryByID returns the entry with the given id.
func (s *Store) GetEntryByID(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.state.Entries {
		if e.ID == id {
			return cloneEntry(e), true
		}
	}
	return Entry{}, false
}

// GetEntriesByDateRange returns entries dated on or between the two bounds,
// inclusive. Entries with unparseable dates are skipped.
func (s *Store) GetEntriesByDateRange(startDate, endDate string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return []Entry{}
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return []Entry{}
	}

	matches := []Entry{}
	for _, e := range s.state.Entries {
		d, err := time.Parse(DateLayout, e.Date)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			matches = append(matches, cloneEntry(e))
		}
	}
	return matches
}

// GetEntriesByMood returns entries carrying the given mood.
func (s *Store) GetEntriesByMood(mood string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := []Entry{}
	for _, e := range s.state.Entries {
		if e.Mood == mood {
			matches = append(matches, cloneEntry(e))
		}
	}
	return matches
}

// GetEntriesByTag returns entries carrying the given tag.
func (s *Store) GetEntriesByTag(tag string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := []Entry{}
	for _, e := range s.state.Entries {
		for _, t := range e.Tags {
			if t == tag {
				matches = append(matches, cloneEntry(e))
				break
			}
		}
	}
	return matches
}

// State returns a snapshot of the full store state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := State{
		Entries:       make([]Entry, 0, len(s.state.Entries)),
		ActiveEntryID: s.state.ActiveEntryID,
		Version:       s.state.Version,
	}
	for _, e := range s.state.Entries {
		snapshot.Entries = append(snapshot.Entries, cloneEntry(e))
	}
	return snapshot
}

// PersistToStorage forces a write of the current state.
func (s *Store) PersistToStorage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked()
}

// mutateEntryLocked applies fn to the targeted entry (active entry when
// entryID is empty), bumps UpdatedAt when fn reports a change, and persists
// regardless of whether anything matched.
func (s *Store) mutateEntryLocked(entryID string, fn func(*Entry) bool) {
	target := entryID
	if target == "" {
		target = s.state.ActiveEntryID
	}

	for i := range s.state.Entries {
		if s.state.Entries[i].ID == target {
			if fn(&s.state.Entries[i]) {
				s.state.Entries[i].UpdatedAt = s.now()
			}
			break
		}
	}

	s.persistLocked()
}

// mostRecentLocked returns the entry with the latest date. Callers must
// hold the lock and guarantee a non-empty collection.
func (s *Store) mostRecentLocked() Entry {
	best := s.state.Entries[0]
	bestDate, _ := time.Parse(DateLayout, best.Date)
	for _, e := range s.state.Entries[1:] {
		d, err := time.Parse(DateLayout, e.Date)
		if err != nil {
			continue
		}
		if d.After(bestDate) {
			best = e
			bestDate = d
		}
	}
	return best
}

func (s *Store) defaultEntry() Entry {
	date := FormatDate(s.now())
	return Entry{
		ID:        newEntryID(date),
		Date:      date,
		Title:     fmt.Sprintf("Journal Entry for %s", date),
		Content:   []Paragraph{},
		Mood:      "neutral",
		Tags:      []string{},
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
}

// persistLocked writes the full state through the persistence collaborator.
// Failures are logged; the in-memory state stays authoritative.
func (s *Store) persistLocked() {
	if s.persist == nil {
		return
	}

	data, err := json.Marshal(s.state.Entries)
	if err != nil {
		s.log.Error("journal: marshaling entries", "error", err)
		return
	}
	s.writeKey(storage.KeyEntries, string(data))
	s.writeKey(storage.KeyActiveEntry, s.state.ActiveEntryID)
	s.writeKey(storage.KeyVersion, strconv.Itoa(s.state.Version))
}

func (s *Store) writeKey(key, value string) {
	if err := s.persist.Set(key, value); err != nil {
		s.log.Error("journal: persisting state", "key", key, "error", err)
	}
}
