package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-history/internal"
	"github.com/iksnae/chat-history/internal/render"
	"github.com/spf13/cobra"
)

var healthcheckDetails bool

type healthStyles struct {
	success, warning, err, info, section lipgloss.Style
}

func newHealthStyles(w io.Writer, color bool) healthStyles {
	r := render.NewRenderer(w, color)
	return healthStyles{
		success: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("39")),
		section: r.NewStyle().Foreground(lipgloss.Color("62")).Bold(true).Underline(true),
	}
}

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck [dir...]",
	Short: "Check that transcript directories can be found and read",
	Long: `Check the default transcript locations (~/.claude/projects and
~/.codex/sessions), or the directories given as arguments, by verifying:
  • The directory exists and is readable
  • How many transcript files it holds (main and agent)
  • That the transcripts contain readable messages`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		st := newHealthStyles(out, colorFor(cmd))

		roots := args
		if len(roots) == 0 {
			paths, err := internal.DetectSourcePaths()
			if err != nil {
				return fmt.Errorf("failed to detect transcript paths: %w", err)
			}
			roots = paths.Roots()
		}

		_, _ = fmt.Fprintln(out, st.section.Render("🔍 Chat History Health Check"))
		_, _ = fmt.Fprintln(out)

		loader := internal.NewLoader()
		available, totalFiles := 0, 0

		for i, root := range roots {
			_, _ = fmt.Fprintln(out, st.info.Render(fmt.Sprintf("Step %d: Checking %s...", i+1, root)))

			if _, err := os.Stat(root); err != nil {
				_, _ = fmt.Fprintln(out, st.warning.Render("⚠️  Directory not found"))
				if healthcheckDetails {
					_, _ = fmt.Fprintf(out, "   %v\n", err)
				}
				_, _ = fmt.Fprintln(out)
				continue
			}

			files, err := loader.Discover(root)
			if err != nil {
				_, _ = fmt.Fprintln(out, st.err.Render("❌ Failed to scan directory:"), err)
				_, _ = fmt.Fprintln(out)
				continue
			}
			available++

			result := &internal.LoadResult{Root: root, Files: files}
			if len(files) == 0 {
				_, _ = fmt.Fprintln(out, st.warning.Render("⚠️  Directory exists but holds no transcript files"))
			} else {
				_, _ = fmt.Fprintln(out, st.success.Render(fmt.Sprintf("✅ Found %d transcript file(s) (%d main, %d agent)",
					len(files), result.MainFiles(), result.AgentFiles())))
				totalFiles += len(files)
			}

			if healthcheckDetails && len(files) > 0 {
				messages, skipped, err := loader.LoadFile(files[0])
				if err != nil {
					_, _ = fmt.Fprintln(out, st.warning.Render("⚠️  Could not read sample file:"), err)
				} else {
					_, _ = fmt.Fprintf(out, "   Sample %s: %d messages, %d unreadable lines\n", files[0].Path, len(messages), skipped)
				}
				for j, f := range files {
					if j == 5 {
						_, _ = fmt.Fprintf(out, "   ... and %d more\n", len(files)-5)
						break
					}
					_, _ = fmt.Fprintf(out, "   [%d] %s (project %s)\n", j+1, f.Path, f.Project)
				}
			}
			_, _ = fmt.Fprintln(out)
		}

		// Summary
		_, _ = fmt.Fprintln(out, st.section.Render("📊 Summary"))
		_, _ = fmt.Fprintln(out)

		switch {
		case available > 0 && totalFiles > 0:
			_, _ = fmt.Fprintln(out, st.success.Render("✅ Health check passed!"))
			_, _ = fmt.Fprintln(out, st.success.Render(fmt.Sprintf("   • Transcripts: %d found", totalFiles)))
			return nil
		case available > 0:
			_, _ = fmt.Fprintln(out, st.warning.Render("⚠️  Transcript directories exist but no transcripts found"))
			return nil
		default:
			_, _ = fmt.Fprintln(out, st.err.Render("❌ Health check failed"))
			_, _ = fmt.Fprintln(out, "   • No transcript directory is available")
			return fmt.Errorf("health check failed: no transcript directory found")
		}
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckDetails, "details", "d", false, "Show detailed diagnostic information")
}
