package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/chat-history/internal"
	"github.com/iksnae/chat-history/internal/render"
	"github.com/spf13/cobra"
)

const statsQuestionLength = 60

var statsByProject bool

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [path]",
	Short: "Show message counts and assistant work time",
	Long: `Summarize a transcript directory (default: the current directory).

Messages are deduplicated before counting. Total work time is the sum of
every question → response burst, with gaps longer than the idle threshold
left out; tool executions always count. Bursts that span at least the
long-response threshold are listed with their idle periods.

Both thresholds can be set in the config file (idle_threshold,
long_response_threshold).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		load, err := loadTranscripts(cmd, args)
		if err != nil {
			return err
		}
		if len(load.Messages) == 0 {
			internal.PrintWarning(cmd.ErrOrStderr(), "No messages found in %s", load.Root)
			return nil
		}

		out := cmd.OutOrStdout()
		formatter := render.NewFormatter(out, render.Options{Color: colorFor(cmd), Width: render.RuleWidth(out)})

		stats := internal.ComputeStatistics(load, cfg.WorkTime())
		printStatistics(out, formatter, stats)

		if statsByProject {
			printProjectStatistics(out, internal.ComputeProjectStatistics(load, cfg.WorkTime()))
		}
		return nil
	},
}

func printStatistics(w io.Writer, f *render.Formatter, s *internal.Statistics) {
	p := f.Palette()
	rule := f.Rule("=")
	section := func(title string) {
		_, _ = fmt.Fprintf(w, "\n%s\n", f.Paint(p.Highlight, title))
	}
	line := func(format string, args ...interface{}) {
		_, _ = fmt.Fprintf(w, "   "+format+"\n", args...)
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", rule)
	_, _ = fmt.Fprintln(w, f.Paint(p.Highlight, "Chat history statistics (deduplicated)"))
	_, _ = fmt.Fprintln(w, rule)

	section("📁 Files:")
	line("Main session files: %s", humanize.Comma(int64(s.MainFiles)))
	line("Agent files: %s", humanize.Comma(int64(s.AgentFiles)))
	line("Total: %s files", humanize.Comma(int64(s.MainFiles+s.AgentFiles)))
	if s.SkippedLines > 0 {
		line("Unreadable lines: %s", humanize.Comma(int64(s.SkippedLines)))
	}

	section("💬 Messages:")
	line("Raw messages: %s", humanize.Comma(int64(s.RawMessages)))
	if s.Removed() > 0 {
		line("After deduplication: %s (removed %s duplicates, %d%%)",
			humanize.Comma(int64(s.UniqueMessages)), humanize.Comma(int64(s.Removed())), s.RemovedPercent())
	}
	line("User messages: %s", humanize.Comma(int64(s.UserMessages)))
	line("Assistant messages: %s", humanize.Comma(int64(s.AssistantMessages)))

	section("🔗 Sessions:")
	line("Distinct sessions: %s", humanize.Comma(int64(s.Sessions)))

	if !s.Earliest.IsZero() {
		section("📅 Time span:")
		line("Earliest message: %s", s.Earliest.Format("2006-01-02 15:04:05"))
		line("Latest message: %s", s.Latest.Format("2006-01-02 15:04:05"))
		line("Span: %d days", s.DaySpan())
	}

	section("⏱️  Work time:")
	line("Total assistant time: %s", internal.FormatDuration(s.WorkTime.TotalTime))
	if avg, ok := s.AverageResponseTime(); ok {
		line("Average response time: %s", internal.FormatDuration(avg))
	}
	if pct, ok := s.WorkPercentage(); ok {
		line("Work percentage: %.1f%% (total time / span)", pct)
	}
	if s.WorkTime.SkippedBursts > 0 {
		line("Skipped bursts (bad timestamps): %d", s.WorkTime.SkippedBursts)
	}

	if len(s.WorkTime.LongResponses) > 0 {
		printLongResponses(w, f, s.WorkTime.LongResponses)
	}

	if days := s.RecentDays(cfg.HistogramDays); cfg.HistogramDays > 0 && len(days) > 0 {
		section(fmt.Sprintf("📊 Messages per day (last %d days, deduplicated):", cfg.HistogramDays))
		for _, day := range days {
			line("%s: %4d %s", day.Date, day.Count, internal.HistogramBar(day.Count))
		}
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", rule)
}

func printLongResponses(w io.Writer, f *render.Formatter, reports []internal.LongResponseReport) {
	threshold := internal.FormatDuration(cfg.LongResponseThreshold)

	_, _ = fmt.Fprintf(w, "\n%s\n", f.Paint(f.Palette().ToolCall, fmt.Sprintf("⚠️  Long responses (≥ %s):", threshold)))
	_, _ = fmt.Fprintf(w, "   %d response(s) took %s or longer\n", len(reports), threshold)

	for i, r := range reports {
		question := internal.Ellipsize(strings.Join(strings.Fields(r.QuestionPreview), " "), statsQuestionLength)

		_, _ = fmt.Fprintf(w, "\n   %d. Span: %s → %s\n", i+1, r.Start.Format("2006-01-02 15:04:05"), r.End.Format("01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "      Total: %s\n", internal.FormatDuration(r.TotalSpan))
		_, _ = fmt.Fprintf(w, "      Active: %s\n", internal.FormatDuration(r.ActiveDuration))
		_, _ = fmt.Fprintf(w, "      Question: %s\n", question)
		_, _ = fmt.Fprintf(w, "      Assistant messages: %d\n", r.AssistantMessages)
		_, _ = fmt.Fprintf(w, "      Tool calls: %d\n", r.ToolInvocations)

		if len(r.IdlePeriods) > 0 {
			_, _ = fmt.Fprintf(w, "      Interruptions: %d (total %s)\n", len(r.IdlePeriods), internal.FormatDuration(r.IdleTotal()))
			for j, idle := range r.IdlePeriods {
				_, _ = fmt.Fprintf(w, "         • %d: %s → %s (%s)\n", j+1,
					idle.Start.Format("01-02 15:04"), idle.End.Format("01-02 15:04"), internal.FormatDuration(idle.Duration))
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\n   Work time excludes gaps longer than %s (idle_threshold)\n", internal.FormatDuration(cfg.IdleThreshold))
}

func printProjectStatistics(w io.Writer, rows []internal.ProjectStatistics) {
	_, _ = fmt.Fprintln(w)
	table := newTable(w, []string{"Project", "Messages", "Unique", "User", "Assistant", "Sessions", "Work time", "Long"}, 1)
	for _, row := range rows {
		table.Append([]string{
			row.Project,
			humanize.Comma(int64(row.RawMessages)),
			humanize.Comma(int64(row.UniqueMessages)),
			humanize.Comma(int64(row.UserMessages)),
			humanize.Comma(int64(row.AssistantMessages)),
			humanize.Comma(int64(row.Sessions)),
			internal.FormatDuration(row.WorkTime.TotalTime),
			fmt.Sprint(len(row.WorkTime.LongResponses)),
		})
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsByProject, "by-project", false, "Add a per-project breakdown")
}
