package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/chat-history/internal"
	"github.com/iksnae/chat-history/internal/render"
	"github.com/spf13/cobra"
)

// viewFlags are the message selection flags shared by show and export
type viewFlags struct {
	limit         int
	session       string
	noThinking    bool
	noTools       bool
	truncate      bool
	noDeduplicate bool
	includeAgents bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Only keep the last N messages")
	cmd.Flags().StringVar(&f.session, "session", "", "Only keep messages whose session ID contains this value")
	cmd.Flags().BoolVar(&f.noThinking, "no-thinking", false, "Hide thinking blocks")
	cmd.Flags().BoolVar(&f.noTools, "no-tools", false, "Hide tool calls and tool output")
	cmd.Flags().BoolVar(&f.truncate, "truncate", false, "Shorten long tool output and thinking")
	cmd.Flags().BoolVar(&f.noDeduplicate, "no-deduplicate", false, "Keep messages that appear in more than one file")
	cmd.Flags().BoolVar(&f.includeAgents, "include-agents", false, "Include agent-* transcript files")
}

func (f *viewFlags) reset() {
	*f = viewFlags{}
}

// selectMessages applies the agent, dedupe, session and limit filters in that order
func (f *viewFlags) selectMessages(cmd *cobra.Command, load *internal.LoadResult) []*internal.Message {
	messages := load.Messages
	if !f.includeAgents {
		messages = internal.ExcludeAgents(messages)
	}

	before := len(messages)
	timeline := internal.BuildTimeline(messages, !f.noDeduplicate)

	errOut := cmd.ErrOrStderr()
	switch {
	case f.noDeduplicate:
		internal.PrintWarning(errOut, "Not deduplicated: all %d messages kept (may contain duplicates)", before)
	case before > len(timeline):
		internal.PrintSuccess(errOut, "Deduplicated: removed %d duplicate messages (%d → %d)", before-len(timeline), before, len(timeline))
	default:
		internal.PrintSuccess(errOut, "Deduplicated: no duplicate messages found")
	}

	if f.session != "" {
		timeline = internal.FilterSession(timeline, f.session)
		internal.PrintInfo(errOut, "%d messages match session %s", len(timeline), f.session)
	}

	return internal.LastN(timeline, f.limit)
}

func (f *viewFlags) renderOptions(color bool, width int) render.Options {
	return render.Options{
		ShowThinking: !f.noThinking,
		ShowTools:    !f.noTools,
		Truncate:     f.truncate,
		Limits:       cfg.Truncate,
		Color:        color,
		Width:        width,
	}
}

// resolveRoot returns the transcript directory from the optional path argument
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 && args[0] != "" {
		root = args[0]
	}

	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	return abs, nil
}

// loadTranscripts resolves the root argument and loads every transcript under it
func loadTranscripts(cmd *cobra.Command, args []string) (*internal.LoadResult, error) {
	root, err := resolveRoot(args)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var load *internal.LoadResult
	err = internal.ShowProgress(ctx, fmt.Sprintf("Loading transcripts from %s", root), func() error {
		var loadErr error
		load, loadErr = internal.NewLoader().Load(root)
		return loadErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transcripts: %w", err)
	}

	internal.LogInfo("Found %d transcript files (%d main, %d agent)", len(load.Files), load.MainFiles(), load.AgentFiles())
	if load.SkippedLines > 0 {
		internal.LogWarn("Skipped %d unreadable lines", load.SkippedLines)
	}
	return load, nil
}

func colorFor(cmd *cobra.Command) bool {
	return render.ColorEnabled(cmd.OutOrStdout(), noColor)
}
