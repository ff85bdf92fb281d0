package parser

// MoodIndicator maps one canonical mood to the synonym words that count
// toward it during frequency-based detection. The slice order of moods in a
// Lexicon is significant: frequency ties resolve to the earlier mood.
type MoodIndicator struct {
	Name       string   `json:"name" mapstructure:"name"`
	Indicators []string `json:"indicators" mapstructure:"indicators"`
}

// Lexicon holds the phrase vocabulary the parser matches against. Zero-value
// fields fall back to the built-in defaults, so a partial override only
// replaces the lists it names.
type Lexicon struct {
	NewEntryKeywords       []string        `json:"new_entry_keywords" mapstructure:"new_entry_keywords"`
	TodayEntryKeywords     []string        `json:"today_entry_keywords" mapstructure:"today_entry_keywords"`
	YesterdayEntryKeywords []string        `json:"yesterday_entry_keywords" mapstructure:"yesterday_entry_keywords"`
	ContinueEntryKeywords  []string        `json:"continue_entry_keywords" mapstructure:"continue_entry_keywords"`
	SetMoodKeywords        []string        `json:"set_mood_keywords" mapstructure:"set_mood_keywords"`
	AddTagKeywords         []string        `json:"add_tag_keywords" mapstructure:"add_tag_keywords"`
	Moods                  []MoodIndicator `json:"moods" mapstructure:"moods"`
}

// DefaultLexicon returns the canonical phrase vocabulary.
func DefaultLexicon() Lexicon {
	return Lexicon{
		NewEntryKeywords:       []string{"new entry", "start new entry", "create new entry", "begin new entry"},
		TodayEntryKeywords:     []string{"today's entry", "entry for today", "write about today"},
		YesterdayEntryKeywords: []string{"yesterday's entry", "entry for yesterday", "write about yesterday"},
		ContinueEntryKeywords:  []string{"continue entry", "continue this entry", "add to entry", "add to current entry"},
		SetMoodKeywords:        []string{"set mood to", "my mood is", "i feel", "feeling"},
		AddTagKeywords:         []string{"add tag", "new tag", "create tag", "tag this", "tag as", "hashtag"},
		Moods: []MoodIndicator{
			{Name: "happy", Indicators: []string{"happy", "glad", "excited", "joyful", "pleased", "delighted", "content", "cheerful"}},
			{Name: "sad", Indicators: []string{"sad", "unhappy", "depressed", "down", "blue", "gloomy", "miserable", "upset"}},
			{Name: "angry", Indicators: []string{"angry", "mad", "frustrated", "annoyed", "irritated", "furious", "enraged"}},
			{Name: "anxious", Indicators: []string{"anxious", "nervous", "worried", "uneasy", "stressed", "concerned", "scared", "fearful"}},
			{Name: "tired", Indicators: []string{"tired", "exhausted", "sleepy", "fatigued", "drained", "weary"}},
			{Name: "calm", Indicators: []string{"calm", "peaceful", "relaxed", "serene", "tranquil", "at ease", "chill"}},
			{Name: "neutral", Indicators: []string{"neutral", "okay", "fine", "so-so", "average", "normal", "neither good nor bad"}},
			{Name: "surprised", Indicators: []string{"surprised", "shocked", "astonished", "amazed", "startled", "stunned"}},
			{Name: "proud", Indicators: []string{"proud", "accomplished", "satisfied", "confident", "successful"}},
			{Name: "grateful", Indicators: []string{"grateful", "thankful", "appreciative", "blessed", "fortunate"}},
		},
	}
}

// withDefaults fills any unset field from the default lexicon.
func (l Lexicon) withDefaults() Lexicon {
	def := DefaultLexicon()
	if len(l.NewEntryKeywords) == 0 {
		l.NewEntryKeywords = def.NewEntryKeywords
	}
	if len(l.TodayEntryKeywords) == 0 {
		l.TodayEntryKeywords = def.TodayEntryKeywords
	}
	if len(l.YesterdayEntryKeywords) == 0 {
		l.YesterdayEntryKeywords = def.YesterdayEntryKeywords
	}
	if len(l.ContinueEntryKeywords) == 0 {
		l.ContinueEntryKeywords = def.ContinueEntryKeywords
	}
	if len(l.SetMoodKeywords) == 0 {
		l.SetMoodKeywords = def.SetMoodKeywords
	}
	if len(l.AddTagKeywords) == 0 {
		l.AddTagKeywords = def.AddTagKeywords
	}
	if len(l.Moods) == 0 {
		l.Moods = def.Moods
	}
	return l
}

// hasMood reports whether name is one of the canonical mood keys.
func (l Lexicon) hasMood(name string) bool {
	for _, m := range l.Moods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// moodForIndicator returns the canonical mood a synonym belongs to.
func (l Lexicon) moodForIndicator(word string) (string, bool) {
	for _, m := range l.Moods {
		for _, ind := range m.Indicators {
			if ind == word {
				return m.Name, true
			}
		}
	}
	return "", false
}
