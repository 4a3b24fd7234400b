package cmd

import (
	"github.com/iksnae/chat-history/internal"
	"github.com/iksnae/chat-history/internal/render"
	"github.com/spf13/cobra"
)

var showFlags viewFlags

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Show the messages of a transcript directory",
	Long: `Display the deduplicated messages found under a transcript directory
(default: the current directory) in time order.

Thinking blocks, tool calls and tool output are shown in full unless
--no-thinking, --no-tools or --truncate is given. Agent transcripts
(agent-*.jsonl) are skipped unless --include-agents is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		load, err := loadTranscripts(cmd, args)
		if err != nil {
			return err
		}

		messages := showFlags.selectMessages(cmd, load)
		if len(messages) == 0 {
			internal.PrintWarning(cmd.ErrOrStderr(), "No messages found")
			return nil
		}

		out := cmd.OutOrStdout()
		formatter := render.NewFormatter(out, showFlags.renderOptions(colorFor(cmd), render.RuleWidth(out)))
		formatter.WriteMessages(out, messages)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showFlags.register(showCmd)
}
