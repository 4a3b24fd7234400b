package cmd

import (
	"github.com/iksnae/chat-history/internal"
	"github.com/iksnae/chat-history/internal/export"
	"github.com/spf13/cobra"
)

var (
	reconstructFormat    string
	reconstructByProject bool
)

// reconstructCmd represents the reconstruct command
var reconstructCmd = &cobra.Command{
	Use:   "reconstruct [path]",
	Short: "Print the reconstructed work time as JSON or YAML",
	Long: `Run the work-time reconstruction over a transcript directory and print
the result in a machine-readable form: total active time, burst counts
and every long response with its idle periods.

With --by-project each project is also deduplicated and reconstructed on
its own.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		load, err := loadTranscripts(cmd, args)
		if err != nil {
			return err
		}

		workCfg := cfg.WorkTime()
		reconstructor := internal.NewReconstructor(workCfg)

		timeline := internal.BuildTimeline(load.Messages, true)
		overall := reconstructor.Reconstruct(timeline)

		var byProject map[string]internal.WorkTimeResult
		if reconstructByProject {
			groups := internal.NewDeduplicator().DeduplicateByProject(load.Messages)
			for _, group := range groups {
				internal.SortTimeline(group)
			}
			byProject = reconstructor.ReconstructByProject(groups)
		}

		doc := export.NewWorkTimeDocument(load.Root, reconstructor.Config(), len(timeline), overall, byProject)
		return export.WriteWorkTime(cmd.OutOrStdout(), reconstructFormat, doc)
	},
}

func init() {
	rootCmd.AddCommand(reconstructCmd)
	reconstructCmd.Flags().StringVarP(&reconstructFormat, "format", "f", "json", "Output format (json, yaml)")
	reconstructCmd.Flags().BoolVar(&reconstructByProject, "by-project", false, "Add a result per project")
}
