package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/chat-history/internal"
	"github.com/spf13/cobra"
)

const listPreviewLength = 40

var listIncludeAgents bool

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List the sessions of a transcript directory",
	Long: `List every session found under a transcript directory with its project,
message count, first and last message time and the start of its first question.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		load, err := loadTranscripts(cmd, args)
		if err != nil {
			return err
		}

		messages := load.Messages
		if !listIncludeAgents {
			messages = internal.ExcludeAgents(messages)
		}
		sessions := internal.SummarizeSessions(internal.BuildTimeline(messages, true))
		if len(sessions) == 0 {
			internal.PrintWarning(cmd.ErrOrStderr(), "No sessions found")
			return nil
		}

		out := cmd.OutOrStdout()
		table := newTable(out, []string{"Session", "Project", "Messages", "First", "Last", "Question"}, 2)
		for _, s := range sessions {
			table.Append([]string{
				s.ID,
				s.Project,
				humanize.Comma(int64(s.MessageCount)),
				formatListTime(s.FirstMessage),
				formatListTime(s.LastMessage),
				internal.Ellipsize(strings.Join(strings.Fields(s.Preview), " "), listPreviewLength),
			})
		}
		table.Render()

		_, _ = fmt.Fprintf(out, "\n%d session(s)\n", len(sessions))
		return nil
	},
}

func formatListTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listIncludeAgents, "include-agents", false, "Include agent-* transcript files")
}
