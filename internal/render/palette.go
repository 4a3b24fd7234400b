package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultRuleWidth is the width of separator rules when the terminal is wider or unknown
const DefaultRuleWidth = 80

// Palette holds the styles used for transcript output
type Palette struct {
	User       lipgloss.Style
	Assistant  lipgloss.Style
	Thinking   lipgloss.Style
	ToolCall   lipgloss.Style
	ToolOutput lipgloss.Style
	Meta       lipgloss.Style
	Separator  lipgloss.Style
	Highlight  lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w. When color is false the
// renderer is pinned to the ASCII profile so no escape codes are produced.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewPalette builds the transcript styles on a renderer
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{
		User:       r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Assistant:  r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Thinking:   r.NewStyle().Foreground(lipgloss.Color("7")).Faint(true),
		ToolCall:   r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		ToolOutput: r.NewStyle().Foreground(lipgloss.Color("14")),
		Meta:       r.NewStyle().Foreground(lipgloss.Color("8")),
		Separator:  r.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
		Highlight:  r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

// ColorEnabled decides whether output to w should be colored: it must be a
// terminal, NO_COLOR must be unset and the user must not have opted out.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// RuleWidth returns DefaultRuleWidth, or the terminal width if that is narrower
func RuleWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultRuleWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || width > DefaultRuleWidth {
		return DefaultRuleWidth
	}
	return width
}

// paint applies style to every line of s separately. Rendering the block as a
// whole would pad all lines to the widest one.
func paint(style lipgloss.Style, color bool, s string) string {
	if !color || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
