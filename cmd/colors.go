package cmd

import (
	"fmt"
	"strings"

	"github.com/iksnae/chat-history/internal"
	"github.com/iksnae/chat-history/internal/render"
	"github.com/spf13/cobra"
)

// colorsCmd prints every style of the transcript palette
var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Preview the colors used by show",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		opts := render.DefaultOptions()
		opts.Color = colorFor(cmd)
		f := render.NewFormatter(out, opts)
		p := f.Palette()

		samples := []struct {
			label string
			text  string
			paint func(string) string
		}{
			{"User message", "👤 User", func(s string) string { return f.Paint(p.User, s) }},
			{"Assistant message", "🤖 Assistant", func(s string) string { return f.Paint(p.Assistant, s) }},
			{"Thinking", "╔══ 💭 Thinking ══╗", func(s string) string { return f.Paint(p.Thinking, s) }},
			{"Tool call", "🔧 Tool call: Bash", func(s string) string { return f.Paint(p.ToolCall, s) }},
			{"Tool output", "✅ Tool output", func(s string) string { return f.Paint(p.ToolOutput, s) }},
			{"Timestamp / meta", "2025-01-01 12:00:00", func(s string) string { return f.Paint(p.Meta, s) }},
			{"Separator", strings.Repeat("─", 20), func(s string) string { return f.Paint(p.Separator, s) }},
			{"Highlight", "Conversation history", func(s string) string { return f.Paint(p.Highlight, s) }},
		}

		for _, s := range samples {
			_, _ = fmt.Fprintf(out, "%-20s %s\n", s.label+":", s.paint(s.text))
		}

		if !opts.Color {
			internal.PrintInfo(cmd.ErrOrStderr(), "Colors are disabled (not a terminal, NO_COLOR or --no-color)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(colorsCmd)
}
