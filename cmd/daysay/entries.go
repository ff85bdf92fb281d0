package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daysay-app/daysay/pkg/journal"
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage journal entries",
	Long:  `Provides commands for creating, listing, getting, deleting, and tagging journal entries.`,
}

var entryNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a journal entry for a date and make it active",
	Long:  `Creates a journal entry for the given date (today when omitted). If an entry already exists for that date it simply becomes active.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		title, _ := cmd.Flags().GetString("title")

		if date != "" {
			if _, err := time.Parse(journal.DateLayout, date); err != nil {
				return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
			}
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		id := store.AddEntry(date, title)
		entry, _ := store.GetEntryByID(id)
		return printEntry(entry)
	},
}

var entryTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Switch to today's entry, creating it if needed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		id := store.AddTodayEntry()
		entry, _ := store.GetEntryByID(id)
		return printEntry(entry)
	},
}

var entryYesterdayCmd = &cobra.Command{
	Use:   "yesterday",
	Short: "Switch to yesterday's entry, creating it if needed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		id := store.AddYesterdayEntry()
		entry, _ := store.GetEntryByID(id)
		return printEntry(entry)
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all journal entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		entries := store.EntriesByDate()
		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		fmt.Println("Entries:")
		output, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format entries output: %w", err)
		}
		fmt.Println(string(output))
		return nil
	},
}

var entryGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get one entry by id, by date, or the active entry",
	Long:  `Retrieves one entry. Pass an entry id as the argument, use --date to look up by date, or pass nothing for the active entry.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		var entry journal.Entry
		var ok bool
		switch {
		case len(args) == 1:
			entry, ok = store.GetEntryByID(args[0])
			if !ok {
				fmt.Printf("Entry with id %s not found.\n", args[0])
				return nil
			}
		case date != "":
			entry, ok = store.GetEntryByDate(date)
			if !ok {
				fmt.Printf("No entry found for date %s.\n", date)
				return nil
			}
		default:
			entry, ok = store.ActiveEntry()
			if !ok {
				fmt.Println("No active entry.")
				return nil
			}
		}
		return printEntry(entry)
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an entry by its id",
	Long:  `Deletes an entry. The journal always keeps at least one entry; deleting the last one creates a fresh entry for today.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		if _, ok := store.GetEntryByID(args[0]); !ok {
			fmt.Printf("Entry with id %s not found.\n", args[0])
			return nil
		}

		store.DeleteEntry(args[0])
		fmt.Printf("Entry %s deleted.\n", args[0])
		return nil
	},
}

var entryActivateCmd = &cobra.Command{
	Use:   "activate [id]",
	Short: "Make the entry with the given id the active entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		if _, ok := store.GetEntryByID(args[0]); !ok {
			fmt.Printf("Entry with id %s not found.\n", args[0])
			return nil
		}

		store.SetActiveEntry(args[0])
		fmt.Printf("Entry %s is now active.\n", args[0])
		return nil
	},
}

var entryMoodCmd = &cobra.Command{
	Use:   "mood [mood]",
	Short: "Set the mood of an entry",
	Long:  `Sets the mood of the entry given via --entry, or the active entry when omitted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, _ := cmd.Flags().GetString("entry")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		entry, ok := resolveEntry(store, entryID)
		if !ok {
			return nil
		}

		store.SetEntryMood(args[0], entry.ID)
		updated, _ := store.GetEntryByID(entry.ID)
		return printEntry(updated)
	},
}

var entryTitleCmd = &cobra.Command{
	Use:   "title [title]",
	Short: "Set the title of an entry",
	Long:  `Sets the title of the entry given via --entry, or the active entry when omitted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, _ := cmd.Flags().GetString("entry")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		entry, ok := resolveEntry(store, entryID)
		if !ok {
			return nil
		}

		store.SetEntryTitle(args[0], entry.ID)
		updated, _ := store.GetEntryByID(entry.ID)
		return printEntry(updated)
	},
}

var entryTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Add or remove tags for an entry",
	Long:  `Manages tags for the entry given via --entry (the active entry when omitted) by adding new tags and/or removing existing ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, _ := cmd.Flags().GetString("entry")
		addTagsStr, _ := cmd.Flags().GetString("add")
		removeTagsStr, _ := cmd.Flags().GetString("remove")

		if addTagsStr == "" && removeTagsStr == "" {
			fmt.Println("No tags provided to add or remove. Use --add and/or --remove flags.")
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		entry, ok := resolveEntry(store, entryID)
		if !ok {
			return nil
		}

		for _, tag := range splitTags(addTagsStr) {
			store.AddEntryTag(tag, entry.ID)
		}
		for _, tag := range splitTags(removeTagsStr) {
			store.RemoveEntryTag(tag, entry.ID)
		}

		updated, _ := store.GetEntryByID(entry.ID)
		return printEntry(updated)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags",
	Long:  `Provides commands for listing tags.`,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all distinct tags across journal entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		tags := store.AllTags()
		if len(tags) == 0 {
			fmt.Println("No tags found.")
			return nil
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "Manage moods",
	Long:  `Provides commands for listing moods.`,
}

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all distinct moods across journal entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		moods := store.AllMoods()
		if len(moods) == 0 {
			fmt.Println("No moods found.")
			return nil
		}
		for _, mood := range moods {
			fmt.Println(mood)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for entries by mood, tag, or date range",
	Long:  `Searches for entries. Filters combine with AND; --from and --to form an inclusive date range and must be provided together.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mood, _ := cmd.Flags().GetString("mood")
		tag, _ := cmd.Flags().GetString("tag")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		if mood == "" && tag == "" && from == "" && to == "" {
			return fmt.Errorf("at least one of --mood, --tag, --from/--to is required")
		}
		if (from == "") != (to == "") {
			return fmt.Errorf("--from and --to must be provided together")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		var entries []journal.Entry
		if from != "" {
			entries = store.GetEntriesByDateRange(from, to)
		} else {
			entries = store.EntriesByDate()
		}

		var matched []journal.Entry
		for _, e := range entries {
			if mood != "" && e.Mood != mood {
				continue
			}
			if tag != "" && !entryHasTag(e, tag) {
				continue
			}
			matched = append(matched, e)
		}

		if len(matched) == 0 {
			fmt.Println("No entries found matching the criteria.")
			return nil
		}

		fmt.Println("Search results:")
		output, err := json.MarshalIndent(matched, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format search results: %w", err)
		}
		fmt.Println(string(output))
		return nil
	},
}

// resolveEntry looks up entryID, or the active entry when entryID is empty,
// printing a message when nothing is found.
func resolveEntry(store *journal.Store, entryID string) (journal.Entry, bool) {
	if entryID != "" {
		entry, ok := store.GetEntryByID(entryID)
		if !ok {
			fmt.Printf("Entry with id %s not found.\n", entryID)
		}
		return entry, ok
	}
	entry, ok := store.ActiveEntry()
	if !ok {
		fmt.Println("No active entry.")
	}
	return entry, ok
}

func printEntry(entry journal.Entry) error {
	output, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format entry output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		t := strings.TrimSpace(tag)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func entryHasTag(e journal.Entry, tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func init() {
	entryNewCmd.Flags().StringP("date", "d", "", "Entry date in YYYY-MM-DD format (defaults to today)")
	entryNewCmd.Flags().StringP("title", "t", "", "Title for the entry")

	entryGetCmd.Flags().StringP("date", "d", "", "Look up the entry for this date (YYYY-MM-DD)")

	entryMoodCmd.Flags().StringP("entry", "e", "", "Entry id (defaults to the active entry)")
	entryTitleCmd.Flags().StringP("entry", "e", "", "Entry id (defaults to the active entry)")

	entryTagCmd.Flags().StringP("entry", "e", "", "Entry id (defaults to the active entry)")
	entryTagCmd.Flags().String("add", "", "Comma-separated list of tags to add to the entry")
	entryTagCmd.Flags().String("remove", "", "Comma-separated list of tags to remove from the entry")

	searchCmd.Flags().StringP("mood", "m", "", "Only entries with this mood")
	searchCmd.Flags().StringP("tag", "t", "", "Only entries carrying this tag")
	searchCmd.Flags().String("from", "", "Range start in YYYY-MM-DD format")
	searchCmd.Flags().String("to", "", "Range end in YYYY-MM-DD format")
}
