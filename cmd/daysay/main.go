package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	daysay "github.com/daysay-app/daysay/pkg"
	"github.com/daysay-app/daysay/pkg/config"
	"github.com/daysay-app/daysay/pkg/journal"
	"github.com/daysay-app/daysay/pkg/logger"
	"github.com/daysay-app/daysay/pkg/storage"
)

var (
	dataPath       string
	storageBackend string
)

var rootCmd = &cobra.Command{
	Use:     "daysay",
	Short:   "A voice-first journal: speak about your day, get structured entries back.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", daysay.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for daysay.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(daysay completion bash)

  Bash (persist):
    $ daysay completion bash > /etc/bash_completion.d/daysay

  Zsh:
    $ daysay completion zsh > "${fpath[1]}/_daysay"

  Fish:
    $ daysay completion fish | source
    $ daysay completion fish > ~/.config/fish/completions/daysay.fish

  PowerShell:
    PS> daysay completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of daysay",
	Long:  `All software has versions. This is daysay's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(daysay.Version)
	},
}

// loadConfig merges the config file with command line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if storageBackend != "" {
		cfg.StorageBackend = storageBackend
	}
	return cfg, nil
}

// openStore builds an initialized journal store from the effective config.
// The returned closer is non-nil only for backends holding resources.
func openStore(cfg config.Config) (*journal.Store, func() error, error) {
	resolved, err := cfg.ResolveDataPath()
	if err != nil {
		return nil, nil, err
	}

	var persist storage.Persistence
	var closer func() error
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		sq, err := storage.NewSQLiteStore(filepath.Join(resolved, "daysay.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open journal database: %w", err)
		}
		persist = sq
		closer = sq.Close
	case config.BackendMemory:
		persist = storage.NewMemoryStore()
	default:
		dk, err := storage.NewDiskvStore(filepath.Join(resolved, "journal"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open journal storage: %w", err)
		}
		persist = dk
	}

	store := journal.NewStore(persist, journal.WithLogger(slog.Default()))
	store.Initialize()
	return store, closer, nil
}

func initCmd() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Directory for journal data (defaults to a system-specific location)")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "Storage backend: diskv, sqlite or memory (defaults to config or diskv)")

	entriesCmd.AddCommand(entryNewCmd, entryTodayCmd, entryYesterdayCmd, entryListCmd,
		entryGetCmd, entryDeleteCmd, entryActivateCmd, entryMoodCmd, entryTitleCmd, entryTagCmd)
	tagsCmd.AddCommand(tagListCmd)
	moodsCmd.AddCommand(moodListCmd)

	rootCmd.AddCommand(completionCmd, versionCmd, entriesCmd, tagsCmd, moodsCmd, searchCmd, processCmd, mcpCmd)
}

func main() {
	logger.SetupDefault(os.Stderr, slog.LevelInfo)
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
