package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/daysay-app/daysay/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the DaySay MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes the journal,
its entries, moods, tags and the transcript pipeline as MCP tools via STDIO.

The --data flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\daysay
- macOS: ~/Library/Application Support/daysay
- Linux: ~/.local/share/daysay

Example:

  daysay mcp --data ./daysay-data

  # Or simply use the default location:
  daysay mcp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		srv, err := mcp.NewDaySayMCPServer(cfg, slog.Default())
		if err != nil {
			return err
		}
		defer srv.Close()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "DaySay MCP server started. Data: %s\n", srv.DataPath)
		fmt.Fprintln(os.Stderr, "Available tools: ping, create_entry, list_entries, get_entry, delete_entry, set_active_entry, add_content, set_mood, set_title, add_tag, remove_tag, list_tags, list_moods, search_entries, process_transcript")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
