package journal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CurrentVersion is the schema version stamped into persisted state.
// Stored states with an older version are bumped on load; real migration
// logic slots in here when the layout actually changes.
const CurrentVersion = 1

// DateLayout is the calendar-date form used for entry dates.
const DateLayout = "2006-01-02"

// Paragraph is one appended unit of prose inside an entry. Paragraph IDs
// are unique within their entry but not globally.
type Paragraph struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry is one journal record for a calendar date: paragraphs of content,
// a mood, tags and a title.
type Entry struct {
	ID        string      `json:"id"`
	Date      string      `json:"date"`
	Title     string      `json:"title"`
	Content   []Paragraph `json:"content"`
	Mood      string      `json:"mood"`
	Tags      []string    `json:"tags"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// State is the full persisted shape of the store: the entry collection, the
// active-entry pointer and the schema version.
type State struct {
	Entries       []Entry `json:"entries"`
	ActiveEntryID string  `json:"active_entry_id"`
	Version       int     `json:"version"`
}

// FormatDate renders a time as a calendar-date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// newEntryID derives an id from the entry date plus a randomized
// disambiguator, e.g. "entry_20240101_3f2a9c1d".
func newEntryID(date string) string {
	compact := strings.ReplaceAll(date, "-", "")
	return "entry_" + compact + "_" + uuid.NewString()[:8]
}

// newParagraphID returns an id for one appended paragraph.
func newParagraphID() string {
	return "p_" + uuid.NewString()[:8]
}

// cloneEntry returns a copy whose slices do not alias the original.
func cloneEntry(e Entry) Entry {
	c := e
	c.Content = make([]Paragraph, len(e.Content))
	copy(c.Content, e.Content)
	c.Tags = make([]string, len(e.Tags))
	copy(c.Tags, e.Tags)
	return c
}
