package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/daysay-app/daysay/pkg/journal"
)

// registerTools wires every journal tool onto the MCP server.
func (s *DaySayMCPServer) registerTools() {
	s.registerPingTool()
	s.registerCreateEntryTool()
	s.registerListEntriesTool()
	s.registerGetEntryTool()
	s.registerDeleteEntryTool()
	s.registerSetActiveEntryTool()
	s.registerAddContentTool()
	s.registerSetMoodTool()
	s.registerSetTitleTool()
	s.registerAddTagTool()
	s.registerRemoveTagTool()
	s.registerListTagsTool()
	s.registerListMoodsTool()
	s.registerSearchEntriesTool()
	s.registerProcessTranscriptTool()
}

func (s *DaySayMCPServer) registerPingTool() {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the DaySay MCP server is alive."),
		// No arguments needed for ping
	)
	s.mcpServer.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong_daysay"), nil
	})
}

func (s *DaySayMCPServer) registerCreateEntryTool() {
	createEntry := mcp.NewTool("create_entry",
		mcp.WithDescription("Creates a journal entry for a date and makes it active. Returns the existing entry if one already exists for that date."),
		mcp.WithString("date", mcp.Description("Entry date in YYYY-MM-DD format. Defaults to today.")),
		mcp.WithString("title", mcp.Description("Optional title for the entry.")),
	)
	s.mcpServer.AddTool(createEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, _ := request.Params.Arguments["date"].(string)
		title, _ := request.Params.Arguments["title"].(string)

		if date != "" {
			if _, err := time.Parse(journal.DateLayout, date); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid 'date' parameter %q: expected YYYY-MM-DD.", date)), nil
			}
		}

		id := s.store.AddEntry(date, title)
		entry, ok := s.store.GetEntryByID(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Entry '%s' vanished after creation.", id)), nil
		}
		return entryResult(entry)
	})
}

func (s *DaySayMCPServer) registerListEntriesTool() {
	listEntries := mcp.NewTool("list_entries",
		mcp.WithDescription("Lists all journal entries, newest first."),
		// No parameters for now
	)
	s.mcpServer.AddTool(listEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries := s.store.EntriesByDate()
		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		jsonResult, err := json.Marshal(entries)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entries to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

func (s *DaySayMCPServer) registerGetEntryTool() {
	getEntry := mcp.NewTool("get_entry",
		mcp.WithDescription("Retrieves one journal entry by id or by date. Without arguments, returns the active entry."),
		mcp.WithString("id", mcp.Description("Entry id to retrieve.")),
		mcp.WithString("date", mcp.Description("Entry date in YYYY-MM-DD format.")),
	)
	s.mcpServer.AddTool(getEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := request.Params.Arguments["id"].(string)
		date, _ := request.Params.Arguments["date"].(string)

		var entry journal.Entry
		var ok bool
		switch {
		case id != "":
			entry, ok = s.store.GetEntryByID(id)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("Entry with id '%s' not found.", id)), nil
			}
		case date != "":
			entry, ok = s.store.GetEntryByDate(date)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("No entry found for date '%s'.", date)), nil
			}
		default:
			entry, ok = s.store.ActiveEntry()
			if !ok {
				return mcp.NewToolResultError("No active entry."), nil
			}
		}
		return entryResult(entry)
	})
}

func (s *DaySayMCPServer) registerDeleteEntryTool() {
	deleteEntry := mcp.NewTool("delete_entry",
		mcp.WithDescription("Deletes a journal entry by id. The journal always keeps at least one entry; deleting the last one creates a fresh entry for today."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry id to delete.")),
	)
	s.mcpServer.AddTool(deleteEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, idOk := request.Params.Arguments["id"].(string)
		if !idOk || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		if _, ok := s.store.GetEntryByID(id); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Entry with id '%s' not found.", id)), nil
		}

		s.store.DeleteEntry(id)
		return mcp.NewToolResultText(fmt.Sprintf("Entry '%s' deleted.", id)), nil
	})
}

func (s *DaySayMCPServer) registerSetActiveEntryTool() {
	setActive := mcp.NewTool("set_active_entry",
		mcp.WithDescription("Makes the entry with the given id the active entry."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry id to activate.")),
	)
	s.mcpServer.AddTool(setActive, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, idOk := request.Params.Arguments["id"].(string)
		if !idOk || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		if _, ok := s.store.GetEntryByID(id); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Entry with id '%s' not found.", id)), nil
		}

		s.store.SetActiveEntry(id)
		return mcp.NewToolResultText(fmt.Sprintf("Entry '%s' is now active.", id)), nil
	})
}

func (s *DaySayMCPServer) registerAddContentTool() {
	addContent := mcp.NewTool("add_content",
		mcp.WithDescription("Appends a paragraph of text to an entry. Without an entry id the text goes to the active entry, creating today's entry if none is active."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Paragraph text to append.")),
		mcp.WithString("entry_id", mcp.Description("Optional entry id. Defaults to the active entry.")),
	)
	s.mcpServer.AddTool(addContent, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, textOk := request.Params.Arguments["text"].(string)
		if !textOk || text == "" {
			return mcp.NewToolResultError("'text' parameter is required and must be a non-empty string."), nil
		}
		entryID, _ := request.Params.Arguments["entry_id"].(string)

		if entryID != "" {
			if _, ok := s.store.GetEntryByID(entryID); !ok {
				return mcp.NewToolResultError(fmt.Sprintf("Entry with id '%s' not found.", entryID)), nil
			}
		}

		targetID := s.service.AddContentToEntry(text, entryID)
		entry, ok := s.store.GetEntryByID(targetID)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Entry '%s' not found after update.", targetID)), nil
		}
		return entryResult(entry)
	})
}

func (s *DaySayMCPServer) registerSetMoodTool() {
	setMood := mcp.NewTool("set_mood",
		mcp.WithDescription("Sets the mood of an entry."),
		mcp.WithString("mood", mcp.Required(), mcp.Description("Mood name, e.g. happy, sad, calm.")),
		mcp.WithString("entry_id", mcp.Description("Optional entry id. Defaults to the active entry.")),
	)
	s.mcpServer.AddTool(setMood, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mood, moodOk := request.Params.Arguments["mood"].(string)
		if !moodOk || mood == "" {
			return mcp.NewToolResultError("'mood' parameter is required and must be a non-empty string."), nil
		}
		entryID, _ := request.Params.Arguments["entry_id"].(string)

		entry, ok := s.resolveEntry(entryID)
		if !ok {
			return entryNotFoundResult(entryID), nil
		}

		s.store.SetEntryMood(mood, entry.ID)
		updated, _ := s.store.GetEntryByID(entry.ID)
		return entryResult(updated)
	})
}

func (s *DaySayMCPServer) registerSetTitleTool() {
	setTitle := mcp.NewTool("set_title",
		mcp.WithDescription("Sets the title of an entry."),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title for the entry.")),
		mcp.WithString("entry_id", mcp.Description("Optional entry id. Defaults to the active entry.")),
	)
	s.mcpServer.AddTool(setTitle, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, titleOk := request.Params.Arguments["title"].(string)
		if !titleOk || title == "" {
			return mcp.NewToolResultError("'title' parameter is required and must be a non-empty string."), nil
		}
		entryID, _ := request.Params.Arguments["entry_id"].(string)

		entry, ok := s.resolveEntry(entryID)
		if !ok {
			return entryNotFoundResult(entryID), nil
		}

		s.store.SetEntryTitle(title, entry.ID)
		updated, _ := s.store.GetEntryByID(entry.ID)
		return entryResult(updated)
	})
}

func (s *DaySayMCPServer) registerAddTagTool() {
	addTag := mcp.NewTool("add_tag",
		mcp.WithDescription("Adds a tag to an entry. Adding an already present tag is a no-op."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to add.")),
		mcp.WithString("entry_id", mcp.Description("Optional entry id. Defaults to the active entry.")),
	)
	s.mcpServer.AddTool(addTag, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tag, tagOk := request.Params.Arguments["tag"].(string)
		if !tagOk || tag == "" {
			return mcp.NewToolResultError("'tag' parameter is required and must be a non-empty string."), nil
		}
		entryID, _ := request.Params.Arguments["entry_id"].(string)

		entry, ok := s.resolveEntry(entryID)
		if !ok {
			return entryNotFoundResult(entryID), nil
		}

		s.store.AddEntryTag(tag, entry.ID)
		updated, _ := s.store.GetEntryByID(entry.ID)
		return entryResult(updated)
	})
}

func (s *DaySayMCPServer) registerRemoveTagTool() {
	removeTag := mcp.NewTool("remove_tag",
		mcp.WithDescription("Removes a tag from an entry."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to remove.")),
		mcp.WithString("entry_id", mcp.Description("Optional entry id. Defaults to the active entry.")),
	)
	s.mcpServer.AddTool(removeTag, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tag, tagOk := request.Params.Arguments["tag"].(string)
		if !tagOk || tag == "" {
			return mcp.NewToolResultError("'tag' parameter is required and must be a non-empty string."), nil
		}
		entryID, _ := request.Params.Arguments["entry_id"].(string)

		entry, ok := s.resolveEntry(entryID)
		if !ok {
			return entryNotFoundResult(entryID), nil
		}

		s.store.RemoveEntryTag(tag, entry.ID)
		updated, _ := s.store.GetEntryByID(entry.ID)
		return entryResult(updated)
	})
}

func (s *DaySayMCPServer) registerListTagsTool() {
	listTags := mcp.NewTool("list_tags",
		mcp.WithDescription("Lists all distinct tags used across journal entries."),
	)
	s.mcpServer.AddTool(listTags, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags := s.store.AllTags()
		jsonResult, err := json.Marshal(tags)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize tags to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

func (s *DaySayMCPServer) registerListMoodsTool() {
	listMoods := mcp.NewTool("list_moods",
		mcp.WithDescription("Lists all distinct moods used across journal entries."),
	)
	s.mcpServer.AddTool(listMoods, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		moods := s.store.AllMoods()
		jsonResult, err := json.Marshal(moods)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize moods to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

func (s *DaySayMCPServer) registerSearchEntriesTool() {
	searchEntries := mcp.NewTool("search_entries",
		mcp.WithDescription("Finds entries by mood, tag, or inclusive date range. Filters combine with AND."),
		mcp.WithString("mood", mcp.Description("Only entries with this mood.")),
		mcp.WithString("tag", mcp.Description("Only entries carrying this tag.")),
		mcp.WithString("start_date", mcp.Description("Range start in YYYY-MM-DD format. Requires end_date.")),
		mcp.WithString("end_date", mcp.Description("Range end in YYYY-MM-DD format. Requires start_date.")),
	)
	s.mcpServer.AddTool(searchEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mood, _ := request.Params.Arguments["mood"].(string)
		tag, _ := request.Params.Arguments["tag"].(string)
		startDate, _ := request.Params.Arguments["start_date"].(string)
		endDate, _ := request.Params.Arguments["end_date"].(string)

		if (startDate == "") != (endDate == "") {
			return mcp.NewToolResultError("'start_date' and 'end_date' must be provided together."), nil
		}

		var entries []journal.Entry
		switch {
		case startDate != "":
			entries = s.store.GetEntriesByDateRange(startDate, endDate)
		default:
			entries = s.store.EntriesByDate()
		}

		filtered := entries[:0:0]
		for _, e := range entries {
			if mood != "" && e.Mood != mood {
				continue
			}
			if tag != "" && !hasTag(e, tag) {
				continue
			}
			filtered = append(filtered, e)
		}

		if len(filtered) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		jsonResult, err := json.Marshal(filtered)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entries to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

func (s *DaySayMCPServer) registerProcessTranscriptTool() {
	processTranscript := mcp.NewTool("process_transcript",
		mcp.WithDescription("Runs raw transcript text through the journal parser and applies the extracted commands, mood and tags to the journal. Returns the parse result."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw transcript text to process.")),
	)
	s.mcpServer.AddTool(processTranscript, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, textOk := request.Params.Arguments["text"].(string)
		if !textOk || text == "" {
			return mcp.NewToolResultError("'text' parameter is required and must be a non-empty string."), nil
		}

		result := s.parser.Parse(text)
		s.service.ProcessTranscription(result)

		jsonResult, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize parse result to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// resolveEntry returns the entry for entryID, or the active entry when
// entryID is empty.
func (s *DaySayMCPServer) resolveEntry(entryID string) (journal.Entry, bool) {
	if entryID != "" {
		return s.store.GetEntryByID(entryID)
	}
	return s.store.ActiveEntry()
}

func entryNotFoundResult(entryID string) *mcp.CallToolResult {
	if entryID == "" {
		return mcp.NewToolResultError("No active entry.")
	}
	return mcp.NewToolResultError(fmt.Sprintf("Entry with id '%s' not found.", entryID))
}

func entryResult(entry journal.Entry) (*mcp.CallToolResult, error) {
	jsonResult, err := json.Marshal(entry)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entry to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}

func hasTag(e journal.Entry, tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
