package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/iksnae/chat-history/internal"
	"github.com/spf13/cobra"
)

// resetFlags puts every package-level flag variable back to its default,
// since rootCmd and its children are shared between tests.
func resetFlags() {
	verbose, configPath, noColor = false, "", false
	cfg = internal.DefaultConfig()

	showFlags.reset()
	exportFlags.reset()
	format, outputFile, perSession = "text", "", ""
	listIncludeAgents = false
	statsByProject = false
	reconstructFormat, reconstructByProject = "json", false
	healthcheckDetails = false

	var clear func(c *cobra.Command)
	clear = func(c *cobra.Command) {
		for _, name := range []string{"help", "version"} {
			if f := c.Flags().Lookup(name); f != nil {
				_ = f.Value.Set("false")
			}
		}
		for _, child := range c.Commands() {
			clear(child)
		}
	}
	clear(rootCmd)
}

// runCommand executes rootCmd with args and returns what it wrote to stdout and stderr.
// The config directory points at an empty temp dir so a user config never leaks in.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	internal.SetLogOutput(io.Discard)
	t.Cleanup(func() { internal.SetLogOutput(os.Stderr) })

	resetFlags()
	t.Cleanup(resetFlags)

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
