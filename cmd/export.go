package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/chat-history/internal"
	"github.com/iksnae/chat-history/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFlags viewFlags
	format      string
	outputFile  string
	perSession  string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export messages to a file",
	Long: `Export the messages found under a transcript directory to text, md,
json, jsonl, yaml or sqlite.

Without --out the export is written to stdout (not allowed for sqlite).
With --per-session DIR one file per session is written as
session_<id>.<ext>. The selection flags are the same as for 'show'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}
		if outputFile != "" && perSession != "" {
			return fmt.Errorf("--out and --per-session cannot be used together")
		}
		if _, ok := exporter.(*export.SQLiteExporter); ok && outputFile == "" && perSession == "" {
			return &internal.ExportError{Format: format, Err: fmt.Errorf("sqlite output needs --out or --per-session")}
		}

		load, err := loadTranscripts(cmd, args)
		if err != nil {
			return err
		}

		messages := exportFlags.selectMessages(cmd, load)
		if len(messages) == 0 {
			internal.PrintWarning(cmd.ErrOrStderr(), "No messages found")
			return nil
		}
		opts := exportFlags.renderOptions(false, 0)

		if perSession != "" {
			return exportPerSession(cmd, exporter, load.Root, messages)
		}

		transcript := export.NewTranscript(exportFlags.session, load.Root, messages, opts)
		if outputFile == "" {
			return exporter.Export(transcript, cmd.OutOrStdout())
		}

		if err := writeExport(exporter, transcript, outputFile); err != nil {
			return err
		}
		internal.PrintSuccess(cmd.ErrOrStderr(), "Exported %d messages to %s", len(messages), outputFile)
		return nil
	},
}

// exportPerSession writes one file per session ID into the --per-session directory
func exportPerSession(cmd *cobra.Command, exporter export.Exporter, root string, messages []*internal.Message) error {
	if err := os.MkdirAll(perSession, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summaries := internal.SummarizeSessions(messages)
	bySession := make(map[string][]*internal.Message, len(summaries))
	for _, msg := range messages {
		bySession[msg.SessionID] = append(bySession[msg.SessionID], msg)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	exported := 0
	err := internal.ShowProgress(ctx, fmt.Sprintf("Exporting %d session(s) to %s", len(summaries), perSession), func() error {
		for _, summary := range summaries {
			name := fmt.Sprintf("session_%s.%s", sessionFileName(summary.ID), exporter.Extension())
			path := filepath.Join(perSession, name)

			transcript := export.NewTranscript(summary.ID, root, bySession[summary.ID], exportFlags.renderOptions(false, 0))
			if err := writeExport(exporter, transcript, path); err != nil {
				internal.LogError("Failed to export session %s: %v", summary.ID, err)
				continue
			}
			exported++
		}
		return nil
	})
	if err != nil {
		return err
	}

	internal.PrintSuccess(cmd.ErrOrStderr(), "Export complete: %d session(s) exported to %s", exported, perSession)
	return nil
}

// writeExport creates path and writes the transcript into it
func writeExport(exporter export.Exporter, transcript *export.Transcript, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := exporter.Export(transcript, file); err != nil {
		_ = file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return nil
}

// sessionFileName makes a session ID safe to use in a file name
func sessionFileName(id string) string {
	if id == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, id)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "text", "Export format ("+strings.Join(export.Formats, ", ")+")")
	exportCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&perSession, "per-session", "", "Write one file per session into this directory")
}
