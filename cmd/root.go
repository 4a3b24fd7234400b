package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chat-history/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	noColor    bool
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	// cfg is loaded before every command runs
	cfg = internal.DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chat-history",
	Short: "Inspect and measure AI coding assistant transcripts",
	Long: `A CLI tool to read the JSONL transcripts written by AI coding assistants.

It understands both the Claude Code project format and the Codex rollout
format, removes messages that were copied between transcript files, and
reconstructs how long the assistant actually spent working on your requests.

Features:
  • Statistics with deduplicated message counts and total work time
  • Long-response reports that separate active work from idle gaps
  • Colored transcript viewer with thinking and tool call rendering
  • Export as text, Markdown, JSON, JSONL, YAML or SQLite

Quick Start:
  chat-history stats ~/.claude/projects/my-project
  chat-history show . --limit 50 --no-thinking
  chat-history export . --format md --out history.md`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)

		loaded, err := internal.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/chat-history/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
