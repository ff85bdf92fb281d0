package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daysay-app/daysay/pkg/journal"
	"github.com/daysay-app/daysay/pkg/parser"
	"github.com/daysay-app/daysay/pkg/transcribe"
)

// textBackend treats the audio payload as already-transcribed text, which
// lets the CLI drive the full transcription pipeline from a plain
// transcript.
type textBackend struct{}

func (textBackend) Transcribe(ctx context.Context, audio []byte) (parser.Result, error) {
	return parser.Result{Text: string(audio)}, nil
}

var processCmd = &cobra.Command{
	Use:   "process [text]",
	Short: "Run a transcript through the journal pipeline",
	Long: `Parses the transcript text for spoken commands, mood and tags, and applies
the result to the journal. Reads from stdin when no text argument is given.

Example:

  daysay process "new entry. Today I feel happy. #sunny"
  cat transcript.txt | daysay process`,
	RunE: func(cmd *cobra.Command, args []string) error {
		copyAfter, _ := cmd.Flags().GetBool("copy")
		shareAfter, _ := cmd.Flags().GetBool("share")

		text := strings.Join(args, " ")
		if text == "" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read transcript from stdin: %w", err)
			}
			text = string(raw)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("no transcript text provided")
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

		p := parser.New(cfg.Lexicon)
		svc := journal.NewService(store, nil, nil)
		ts := transcribe.NewService(textBackend{}, p, svc)

		result, err := ts.TranscribeAudio(cmd.Context(), []byte(text))
		if err != nil {
			return fmt.Errorf("failed to process transcript: %w", err)
		}

		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format parse result: %w", err)
		}
		fmt.Println(string(output))

		if copyAfter {
			if ts.CopyToClipboard("") {
				fmt.Println(transcribe.RandomCopyMessage())
			} else {
				fmt.Fprintln(os.Stderr, "Could not copy the transcript to the clipboard.")
			}
		}
		if shareAfter {
			// No native share surface on the CLI; this falls back to the
			// clipboard with the share attribution.
			if !ts.ShareTranscript("") {
				fmt.Fprintln(os.Stderr, "Could not share the transcript.")
			}
		}
		return nil
	},
}

func init() {
	processCmd.Flags().Bool("copy", false, "Copy the processed transcript to the clipboard")
	processCmd.Flags().Bool("share", false, "Share the processed transcript (falls back to the clipboard)")
}
