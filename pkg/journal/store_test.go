package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/daysay-app/daysay/pkg/storage"
)

// countingStore wraps a MemoryStore and counts write-through calls.
type countingStore struct {
	*storage.MemoryStore
	sets int
}

func (c *countingStore) Set(key, value string) error {
	c.sets++
	return c.MemoryStore.Set(key, value)
}

func newTestStore(t *testing.T) (*Store, *countingStore) {
	t.Helper()

	persist := &countingStore{MemoryStore: storage.NewMemoryStore()}
	clock := fixedClock(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	store := NewStore(persist, WithClock(clock))
	store.Initialize()
	return store, persist
}

// fixedClock returns a time source that advances one second per call, so
// successive UpdatedAt stamps are distinguishable.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestInitializeCreatesDefaultEntry(t *testing.T) {
	store, _ := newTestStore(t)

	state := store.State()
	if len(state.Entries) != 1 {
		t.Fatalf("Expected exactly one default entry, got %d", len(state.Entries))
	}

	entry := state.Entries[0]
	if entry.Date != "2024-01-15" {
		t.Errorf("Expected default entry dated 2024-01-15, got %s", entry.Date)
	}
	if entry.Title != "Journal Entry for 2024-01-15" {
		t.Errorf("Unexpected default title %q", entry.Title)
	}
	if entry.Mood != "neutral" {
		t.Errorf("Expected default mood neutral, got %q", entry.Mood)
	}
	if state.ActiveEntryID != entry.ID {
		t.Errorf("Expected the default entry to be active")
	}
}

func TestInitializeWithNilPersistence(t *testing.T) {
	store := NewStore(nil)
	store.Initialize()

	state := store.State()
	if len(state.Entries) != 1 {
		t.Fatalf("Expected in-memory store to hold one default entry, got %d", len(state.Entries))
	}
	if state.ActiveEntryID == "" {
		t.Error("Expected an active entry id after initialization")
	}
}

func TestInitializeRehydratesPersistedState(t *testing.T) {
	persist := storage.NewMemoryStore()

	first := NewStore(persist, WithClock(fixedClock(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))))
	first.Initialize()
	id := first.AddEntry("2024-01-10", "Older day")
	first.SetEntryMood("calm", id)
	first.AddEntryTag("lake", id)

	second := NewStore(persist)
	second.Initialize()

	state := second.State()
	if len(state.Entries) != 2 {
		t.Fatalf("Expected two rehydrated entries, got %d", len(state.Entries))
	}
	if state.ActiveEntryID != id {
		t.Errorf("Expected rehydrated active entry %s, got %s", id, state.ActiveEntryID)
	}

	entry, ok := second.GetEntryByID(id)
	if !ok {
		t.Fatalf("Expected rehydrated entry %s to exist", id)
	}
	if entry.Mood != "calm" {
		t.Errorf("Expected rehydrated mood calm, got %q", entry.Mood)
	}
	if len(entry.Tags) != 1 || entry.Tags[0] != "lake" {
		t.Errorf("Expected rehydrated tags [lake], got %v", entry.Tags)
	}
}

func TestInitializeMalformedEntriesStartsFresh(t *testing.T) {
	persist := storage.NewMemoryStore()
	persist.Set(storage.KeyEntries, "{not json")

	store := NewStore(persist)
	store.Initialize()

	state := store.State()
	if len(state.Entries) != 1 {
		t.Fatalf("Expected a fresh default entry after malformed state, got %d entries", len(state.Entries))
	}

	// The fresh state must have been written back.
	raw, err := persist.Get(storage.KeyEntries)
	if err != nil {
		t.Fatalf("Expected fresh entries to be persisted: %v", err)
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("Persisted entries are not valid JSON: %v", err)
	}
}

func TestInitializeRestampsOldVersion(t *testing.T) {
	persist := storage.NewMemoryStore()

	seed := NewStore(persist)
	seed.Initialize()
	persist.Set(storage.KeyVersion, "0")

	store := NewStore(persist)
	store.Initialize()

	raw, err := persist.Get(storage.KeyVersion)
	if err != nil {
		t.Fatalf("Expected version key to exist: %v", err)
	}
	if raw != "1" {
		t.Errorf("Expected version restamped to 1, got %q", raw)
	}
}

func TestAddEntryDeduplicatesByDate(t *testing.T) {
	store, _ := newTestStore(t)

	first := store.AddEntry("2024-01-01", "")
	second := store.AddEntry("2024-01-01", "different title")

	if first != second {
		t.Errorf("Expected one entry per date, got ids %s and %s", first, second)
	}

	state := store.State()
	if len(state.Entries) != 2 { // default plus 2024-01-01
		t.Errorf("Expected two entries total, got %d", len(state.Entries))
	}
	if state.ActiveEntryID != first {
		t.Errorf("Expected re-added entry to become active")
	}
}

func TestAddYesterdayEntry(t *testing.T) {
	store, _ := newTestStore(t)

	id := store.AddYesterdayEntry()
	entry, ok := store.GetEntryByID(id)
	if !ok {
		t.Fatalf("Expected yesterday's entry to exist")
	}
	if entry.Date != "2024-01-14" {
		t.Errorf("Expected yesterday's date 2024-01-14, got %s", entry.Date)
	}
}

func TestDeleteLastEntryCreatesFreshDefault(t *testing.T) {
	store, _ := newTestStore(t)

	original := store.State().Entries[0]
	store.DeleteEntry(original.ID)

	state := store.State()
	if len(state.Entries) != 1 {
		t.Fatalf("Expected one fresh entry after deleting the last one, got %d", len(state.Entries))
	}
	if state.Entries[0].ID == original.ID {
		t.Error("Expected a new entry, got the deleted one back")
	}
	if state.ActiveEntryID != state.Entries[0].ID {
		t.Error("Expected the fresh entry to be active")
	}
}

func TestDeleteActiveEntrySelectsMostRecent(t *testing.T) {
	store, _ := newTestStore(t)

	older := store.AddEntry("2024-01-20", "")
	newest := store.AddEntry("2024-01-25", "")
	active := store.AddEntry("2024-01-22", "")

	store.DeleteEntry(active)

	state := store.State()
	if state.ActiveEntryID != newest {
		t.Errorf("Expected most recently dated entry %s to become active, got %s", newest, state.ActiveEntryID)
	}
	if _, ok := store.GetEntryByID(older); !ok {
		t.Error("Expected unrelated entry to survive the delete")
	}
}

func TestDeleteUnknownEntryStillPersists(t *testing.T) {
	store, persist := newTestStore(t)

	before := persist.sets
	store.DeleteEntry("entry_nope")
	if persist.sets <= before {
		t.Error("Expected a persistence write even for an unknown id")
	}

	if len(store.State().Entries) != 1 {
		t.Error("Expected entries to be untouched by unknown-id delete")
	}
}

func TestSetActiveEntryUnknownIDPersistsWithoutChange(t *testing.T) {
	store, persist := newTestStore(t)
	originalActive := store.State().ActiveEntryID

	before := persist.sets
	store.SetActiveEntry("entry_missing")

	if store.State().ActiveEntryID != originalActive {
		t.Error("Expected active entry unchanged for unknown id")
	}
	if persist.sets <= before {
		t.Error("Expected a persistence write even for an unknown id")
	}
}

func TestAddContent(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddContent("First paragraph", "")
	store.AddContent("  ", "") // whitespace only, must be ignored
	store.AddContent("Second paragraph", "")

	content := store.ActiveEntryContent()
	if len(content) != 2 {
		t.Fatalf("Expected two paragraphs, got %d", len(content))
	}
	if content[0].Text != "First paragraph" || content[1].Text != "Second paragraph" {
		t.Errorf("Unexpected paragraph texts: %#v", content)
	}
	if content[0].ID == content[1].ID {
		t.Error("Expected distinct paragraph ids")
	}
	if !content[1].Timestamp.After(content[0].Timestamp) {
		t.Error("Expected paragraph timestamps to advance")
	}
}

func TestAddEntryTagIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.State().ActiveEntryID

	store.AddEntryTag("hiking", id)
	first, _ := store.GetEntryByID(id)

	store.AddEntryTag("hiking", id)
	second, _ := store.GetEntryByID(id)

	if len(second.Tags) != 1 {
		t.Fatalf("Expected one tag after duplicate add, got %v", second.Tags)
	}
	// Re-adding a present tag must not look like a modification.
	if !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Error("Expected UpdatedAt untouched by a duplicate tag add")
	}
}

func TestRemoveEntryTag(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.State().ActiveEntryID

	store.AddEntryTag("one", id)
	store.AddEntryTag("two", id)
	store.RemoveEntryTag("one", id)

	entry, _ := store.GetEntryByID(id)
	if len(entry.Tags) != 1 || entry.Tags[0] != "two" {
		t.Errorf("Expected tags [two], got %v", entry.Tags)
	}
}

func TestSetEntryTagsDeduplicatesAndTrims(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.State().ActiveEntryID

	store.SetEntryTags([]string{" hiking ", "hiking", "", "lake"}, id)

	entry, _ := store.GetEntryByID(id)
	expected := []string{"hiking", "lake"}
	if len(entry.Tags) != 2 || entry.Tags[0] != expected[0] || entry.Tags[1] != expected[1] {
		t.Errorf("Expected tags %v, got %v", expected, entry.Tags)
	}
}

func TestSetEntryTitleRejectsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.State().ActiveEntryID

	store.SetEntryTitle("A real title", id)
	store.SetEntryTitle("   ", id)

	entry, _ := store.GetEntryByID(id)
	if entry.Title != "A real title" {
		t.Errorf("Expected title preserved, got %q", entry.Title)
	}
}

func TestGetEntriesByDateRangeInclusive(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddEntry("2023-12-31", "")
	store.AddEntry("2024-01-01", "")
	store.AddEntry("2024-01-03", "")
	store.AddEntry("2024-01-04", "")

	entries := store.GetEntriesByDateRange("2024-01-01", "2024-01-03")

	if len(entries) != 2 {
		t.Fatalf("Expected two entries in range, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Date == "2023-12-31" || e.Date == "2024-01-04" {
			t.Errorf("Entry %s outside the inclusive range was returned", e.Date)
		}
	}
}

func TestGetEntriesByDateRangeBadBounds(t *testing.T) {
	store, _ := newTestStore(t)

	entries := store.GetEntriesByDateRange("not-a-date", "2024-01-03")
	if len(entries) != 0 {
		t.Errorf("Expected no entries for unparseable bounds, got %d", len(entries))
	}
}

func TestGetEntriesByMoodAndTag(t *testing.T) {
	store, _ := newTestStore(t)

	a := store.AddEntry("2024-01-01", "")
	b := store.AddEntry("2024-01-02", "")
	store.SetEntryMood("happy", a)
	store.SetEntryMood("happy", b)
	store.AddEntryTag("beach", a)

	byMood := store.GetEntriesByMood("happy")
	if len(byMood) != 2 {
		t.Errorf("Expected two happy entries, got %d", len(byMood))
	}

	byTag := store.GetEntriesByTag("beach")
	if len(byTag) != 1 || byTag[0].ID != a {
		t.Errorf("Expected only entry %s tagged beach, got %#v", a, byTag)
	}
}

func TestStateSnapshotIsIsolated(t *testing.T) {
	store, _ := newTestStore(t)

	snapshot := store.State()
	snapshot.Entries[0].Title = "mutated"
	snapshot.Entries[0].Tags = append(snapshot.Entries[0].Tags, "sneaky")

	entry := store.State().Entries[0]
	if entry.Title == "mutated" {
		t.Error("Expected snapshot mutation not to leak into the store")
	}
	if len(entry.Tags) != 0 {
		t.Errorf("Expected store tags untouched, got %v", entry.Tags)
	}
}

func TestEveryMutationWritesThrough(t *testing.T) {
	store, persist := newTestStore(t)
	id := store.State().ActiveEntryID

	checkpoints := persist.sets
	mutations := []func(){
		func() { store.AddEntry("2024-02-01", "") },
		func() { store.SetActiveEntry(id) },
		func() { store.AddContent("text", id) },
		func() { store.SetEntryMood("calm", id) },
		func() { store.AddEntryTag("t", id) },
		func() { store.RemoveEntryTag("t", id) },
		func() { store.DeleteEntry(id) },
	}
	for i, mutate := range mutations {
		mutate()
		if persist.sets <= checkpoints {
			t.Errorf("Mutation %d did not write through to storage", i)
		}
		checkpoints = persist.sets
	}
}
