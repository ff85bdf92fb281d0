package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// CommandKind classifies a directive extracted from transcribed speech.
type CommandKind string

const (
	CommandNewEntry       CommandKind = "NEW_ENTRY"
	CommandTodayEntry     CommandKind = "TODAY_ENTRY"
	CommandYesterdayEntry CommandKind = "YESTERDAY_ENTRY"
	CommandContinueEntry  CommandKind = "CONTINUE_ENTRY"
	CommandSetMood        CommandKind = "SET_MOOD"
	CommandAddTag         CommandKind = "ADD_TAG"
)

// Command is a structured directive pulled out of free-form text, distinct
// from the prose content itself.
type Command struct {
	Kind         CommandKind `json:"kind"`
	Params       []string    `json:"params,omitempty"`
	OriginalText string      `json:"original_text,omitempty"`
}

// Result is the outcome of parsing one transcript: the cleaned prose, the
// ordered command list, the detected mood ("" when none) and the extracted
// tags (lowercased, deduplicated).
type Result struct {
	Text     string    `json:"text"`
	Commands []Command `json:"commands"`
	Mood     string    `json:"mood,omitempty"`
	Tags     []string  `json:"tags"`
}

// Parser extracts commands, tags and a mood guess from transcribed text.
// It is deterministic for a given lexicon and never fails: unrecognized
// phrasing simply produces no command.
type Parser struct {
	lex Lexicon

	leadingCommand *regexp.Regexp
	sentenceSplit  *regexp.Regexp
	hashtag        *regexp.Regexp
	whitespace     *regexp.Regexp

	moodStatements []*regexp.Regexp // one per set-mood keyword, captures the mood word
	tagStatements  []*regexp.Regexp // one per add-tag keyword, captures the tag token
	moodCleanups   []*regexp.Regexp // mood statement with trailing punctuation, for text cleanup
	entryCleanups  []*regexp.Regexp // leading entry-type keyword strippers
	indicatorWords map[string]*regexp.Regexp
}

// New compiles a Parser from the given lexicon. Unset lexicon fields fall
// back to the defaults.
func New(lex Lexicon) *Parser {
	lex = lex.withDefaults()

	p := &Parser{
		lex:            lex,
		sentenceSplit:  regexp.MustCompile(`[.!?]\s+`),
		hashtag:        regexp.MustCompile(`#([a-zA-Z0-9_]+)`),
		whitespace:     regexp.MustCompile(`\s+`),
		indicatorWords: make(map[string]*regexp.Regexp),
	}

	// The anchored matcher covers every command phrase in the lexicon,
	// longest first so "start new entry" is not shadowed by "new entry".
	var phrases []string
	for _, list := range [][]string{
		lex.NewEntryKeywords, lex.TodayEntryKeywords, lex.YesterdayEntryKeywords,
		lex.ContinueEntryKeywords, lex.SetMoodKeywords, lex.AddTagKeywords,
	} {
		phrases = append(phrases, list...)
	}
	sort.SliceStable(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })
	quoted := make([]string, len(phrases))
	for i, ph := range phrases {
		quoted[i] = regexp.QuoteMeta(ph)
	}
	p.leadingCommand = regexp.MustCompile(`(?i)^(` + strings.Join(quoted, "|") + `).*?[.!?]\s*`)

	for _, kw := range lex.SetMoodKeywords {
		p.moodStatements = append(p.moodStatements,
			regexp.MustCompile(`(?i)`+regexp.QuoteMeta(kw)+`\s+([a-zA-Z]+)`))
		p.moodCleanups = append(p.moodCleanups,
			regexp.MustCompile(`(?i)`+regexp.QuoteMeta(kw)+`\s+[a-zA-Z]+[.!?]?\s*`))
	}
	for _, kw := range lex.AddTagKeywords {
		p.tagStatements = append(p.tagStatements,
			regexp.MustCompile(`(?i)`+regexp.QuoteMeta(kw)+`\s+([a-zA-Z0-9_]+)`))
	}
	for _, list := range [][]string{
		lex.NewEntryKeywords, lex.TodayEntryKeywords,
		lex.YesterdayEntryKeywords, lex.ContinueEntryKeywords,
	} {
		for _, kw := range list {
			p.entryCleanups = append(p.entryCleanups,
				regexp.MustCompile(`(?i)^`+regexp.QuoteMeta(kw)+`\s*`))
		}
	}
	for _, m := range lex.Moods {
		for _, ind := range m.Indicators {
			if _, ok := p.indicatorWords[ind]; !ok {
				p.indicatorWords[ind] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(ind) + `\b`)
			}
		}
	}

	return p
}

// Lexicon returns the (defaulted) lexicon the parser was compiled from.
func (p *Parser) Lexicon() Lexicon {
	return p.lex
}

// Parse turns raw transcribed text into cleaned prose plus structured
// directives. The stages run in a fixed order: command extraction, tag
// extraction, mood detection, synthetic command emission, text cleanup.
func (p *Parser) Parse(raw string) Result {
	commands := []Command{}
	if strings.TrimSpace(raw) == "" {
		return Result{Text: "", Commands: commands, Tags: []string{}}
	}

	text, commands := p.extractCommands(raw, commands)

	text, tags := p.extractTags(text)

	mood := p.detectMood(text)
	if mood != "" {
		commands = append(commands, Command{
			Kind:         CommandSetMood,
			Params:       []string{mood},
			OriginalText: fmt.Sprintf("Detected mood: %s", mood),
		})
	}
	for _, tag := range tags {
		commands = append(commands, Command{
			Kind:         CommandAddTag,
			Params:       []string{tag},
			OriginalText: fmt.Sprintf("Add tag: %s", tag),
		})
	}

	text = p.cleanText(text)

	return Result{Text: text, Commands: commands, Mood: mood, Tags: tags}
}

// extractCommands pulls a command phrase anchored at the start of the text
// (stripping it) and then classifies each sentence-like segment, collecting
// embedded commands without removing them from the prose.
func (p *Parser) extractCommands(text string, commands []Command) (string, []Command) {
	remaining := text

	if match := p.leadingCommand.FindString(remaining); match != "" {
		if cmd, ok := p.identifyCommand(match); ok {
			commands = append(commands, cmd)
			remaining = strings.TrimSpace(remaining[len(match):])
		}
	}

	segments := p.sentenceSplit.Split(remaining, -1)
	var rebuilt strings.Builder
	for i, segment := range segments {
		if cmd, ok := p.identifyCommand(segment); ok {
			commands = append(commands, cmd)
		}
		rebuilt.WriteString(segment)
		if i < len(segments)-1 {
			rebuilt.WriteString(". ")
		}
	}
	if rebuilt.Len() > 0 {
		remaining = rebuilt.String()
	}

	return remaining, commands
}

// identifyCommand classifies one text fragment. Checks run in precedence
// order and the first match wins; a fragment yields at most one command.
func (p *Parser) identifyCommand(text string) (Command, bool) {
	lower := strings.ToLower(text)

	for _, kw := range p.lex.NewEntryKeywords {
		if strings.Contains(lower, kw) {
			return Command{Kind: CommandNewEntry, Params: []string{}, OriginalText: text}, true
		}
	}
	for _, kw := range p.lex.TodayEntryKeywords {
		if strings.Contains(lower, kw) {
			return Command{Kind: CommandTodayEntry, Params: []string{}, OriginalText: text}, true
		}
	}
	for _, kw := range p.lex.YesterdayEntryKeywords {
		if strings.Contains(lower, kw) {
			return Command{Kind: CommandYesterdayEntry, Params: []string{}, OriginalText: text}, true
		}
	}
	for _, kw := range p.lex.ContinueEntryKeywords {
		if strings.Contains(lower, kw) {
			return Command{Kind: CommandContinueEntry, Params: []string{}, OriginalText: text}, true
		}
	}
	for _, re := range p.moodStatements {
		if m := re.FindStringSubmatch(lower); m != nil {
			return Command{Kind: CommandSetMood, Params: []string{strings.ToLower(m[1])}, OriginalText: text}, true
		}
	}
	for _, re := range p.tagStatements {
		if m := re.FindStringSubmatch(lower); m != nil {
			return Command{Kind: CommandAddTag, Params: []string{strings.ToLower(m[1])}, OriginalText: text}, true
		}
	}

	return Command{}, false
}

// extractTags collects hashtag tokens and "add tag X" phrases, lowercased
// and deduplicated in first-seen order, stripping both from the text.
func (p *Parser) extractTags(text string) (string, []string) {
	tags := []string{}
	seen := make(map[string]bool)
	record := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	for _, m := range p.hashtag.FindAllStringSubmatch(text, -1) {
		record(strings.ToLower(m[1]))
	}
	updated := p.hashtag.ReplaceAllString(text, "")

	for _, re := range p.tagStatements {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			record(strings.ToLower(m[1]))
			updated = strings.Replace(updated, m[0], "", 1)
		}
	}

	return strings.TrimSpace(updated), tags
}

// detectMood looks for an explicit mood statement first; failing that it
// counts whole-word indicator occurrences and picks the strictly highest
// total. Ties keep the earlier mood in lexicon order; zero means no mood.
func (p *Parser) detectMood(text string) string {
	lower := strings.ToLower(text)

	for _, re := range p.moodStatements {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		stated := strings.ToLower(m[1])
		if p.lex.hasMood(stated) {
			return stated
		}
		if mood, ok := p.lex.moodForIndicator(stated); ok {
			return mood
		}
	}

	highest := 0
	detected := ""
	for _, m := range p.lex.Moods {
		count := 0
		for _, ind := range m.Indicators {
			count += len(p.indicatorWords[ind].FindAllString(lower, -1))
		}
		if count > highest {
			highest = count
			detected = m.Name
		}
	}
	return detected
}

// cleanText strips leading entry-type keywords, removes the first occurrence
// of each mood statement, and collapses runs of whitespace.
func (p *Parser) cleanText(text string) string {
	cleaned := text

	for _, re := range p.entryCleanups {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	for _, re := range p.moodCleanups {
		if loc := re.FindStringIndex(cleaned); loc != nil {
			cleaned = cleaned[:loc[0]] + cleaned[loc[1]:]
		}
	}

	cleaned = p.whitespace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
