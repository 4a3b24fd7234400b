package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ShowProgress runs fn while a spinner is drawn on stderr. Outside a terminal
// the message is logged instead.
func ShowProgress(ctx context.Context, message string, fn func() error) error {
	return showProgress(ctx, os.Stderr, message, fn)
}

func showProgress(ctx context.Context, w io.Writer, message string, fn func() error) error {
	if !IsTerminal(w) {
		LogDebug("%s", message)
		return fn()
	}

	done := make(chan error, 1)
	stop := make(chan struct{})
	spinnerDone := make(chan struct{})

	go func() {
		defer close(spinnerDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", progressStyle.Render(spinnerChars[i%len(spinnerChars)]), message)
				i++
			}
		}
	}()

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		close(stop)
		<-spinnerDone
		if err != nil {
			fmt.Fprintf(w, "\r%s %s\n", errorStyle.Render("✗"), message)
			return err
		}
		fmt.Fprintf(w, "\r%s %s\n", successStyle.Render("✓"), message)
		return nil
	case <-ctx.Done():
		close(stop)
		<-spinnerDone
		return ctx.Err()
	}
}

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS ptys)
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PrintSuccess prints a success line to w
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	printStatus(w, successStyle, "✓", format, args...)
}

// PrintError prints an error line to w
func PrintError(w io.Writer, format string, args ...interface{}) {
	printStatus(w, errorStyle, "✗", format, args...)
}

// PrintWarning prints a warning line to w
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	printStatus(w, warningStyle, "⚠", format, args...)
}

// PrintInfo prints an informational line to w
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	printStatus(w, infoStyle, "ℹ", format, args...)
}

func printStatus(w io.Writer, style lipgloss.Style, symbol, format string, args ...interface{}) {
	if IsTerminal(w) && os.Getenv("NO_COLOR") == "" {
		symbol = style.Render(symbol)
	}
	fmt.Fprintf(w, "%s %s\n", symbol, fmt.Sprintf(format, args...))
}
