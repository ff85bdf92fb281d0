package journal

import (
	"sort"
	"time"
)

// Derived views are recomputed from the current store snapshot on every
// call. They are projections, never a source of truth.

// EntriesByDate returns all entries sorted newest-first by date.
func (s *Store) EntriesByDate() []Entry {
	entries := s.State().Entries
	sort.SliceStable(entries, func(i, j int) bool {
		di, erri := time.Parse(DateLayout, entries[i].Date)
		dj, errj := time.Parse(DateLayout, entries[j].Date)
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		return di.After(dj)
	})
	return entries
}

// ActiveEntry returns the entry implicit operations currently target.
func (s *Store) ActiveEntry() (Entry, bool) {
	s.mu.Lock()
	activeID := s.state.ActiveEntryID
	s.mu.Unlock()

	if activeID == "" {
		return Entry{}, false
	}
	return s.GetEntryByID(activeID)
}

// ActiveEntryContent returns the active entry's paragraph sequence, or an
// empty slice when nothing is active.
func (s *Store) ActiveEntryContent() []Paragraph {
	entry, ok := s.ActiveEntry()
	if !ok {
		return []Paragraph{}
	}
	return entry.Content
}

// AllTags returns every tag in use across entries, each once.
func (s *Store) AllTags() []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, e := range s.State().Entries {
		for _, t := range e.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// AllMoods returns every mood in use across entries, each once.
func (s *Store) AllMoods() []string {
	seen := make(map[string]bool)
	moods := []string{}
	for _, e := range s.State().Entries {
		if e.Mood != "" && !seen[e.Mood] {
			seen[e.Mood] = true
			moods = append(moods, e.Mood)
		}
	}
	return moods
}
