package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Banner printed by the version command
const Banner = `
  ┌─┐┬─┐┌─┐┌┬┐┌─┐┌┬┐┬─┐┌─┐┌─┐
  ├─┘├┬┘│ ││││├─┘ │ ├┬┘├┤ │
  ┴  ┴└─└─┘┴ ┴┴   ┴ ┴└─└─┘└─┘
  prompt recording progress tracker
`

var (
	colorCyan    = lipgloss.Color("#00D7D7")
	colorYellow  = lipgloss.Color("#FFD700")
	colorRed     = lipgloss.Color("#FF5F5F")
	colorGreen   = lipgloss.Color("#5FFF87")
	colorMagenta = lipgloss.Color("#D75FD7")
	colorDim     = lipgloss.Color("#808080")

	cyanStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	yellowStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	redStyle     = lipgloss.NewStyle().Foreground(colorRed)
	greenStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	magentaStyle = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

var (
	out          io.Writer = os.Stdout
	colorEnabled           = IsTerminal(os.Stdout)
	quiet        bool
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Configure sets where output goes and how it looks. Quiet suppresses
// everything except errors.
func Configure(w io.Writer, color, silent bool) {
	out = w
	colorEnabled = color
	quiet = silent
}

func render(style lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return style.Render(text)
}

// Color functions for terminal output
func Cyan(text string) string    { return render(cyanStyle, text) }
func Yellow(text string) string  { return render(yellowStyle, text) }
func Red(text string) string     { return render(redStyle, text) }
func Green(text string) string   { return render(greenStyle, text) }
func Magenta(text string) string { return render(magentaStyle, text) }
func Dim(text string) string     { return render(dimStyle, text) }

// PrintBanner prints the banner with color
func PrintBanner() {
	if quiet {
		return
	}
	fmt.Fprint(out, Cyan(Banner))
}

// PrintError prints an error message in red. Errors are printed even when quiet.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(out, Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(out, Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	if quiet {
		return
	}
	fmt.Fprintln(out, Green(msg))
}

// PrintInfo prints a label and value
func PrintInfo(label string, value string) {
	if quiet {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if quiet {
		return
	}
	if len(args) > 0 {
		fmt.Fprintln(out, Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(out, Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	if quiet {
		return
	}
	fmt.Fprintln(out, Magenta(msg))
}

// PrintPlain prints text without styling, unless quiet
func PrintPlain(text string) {
	if quiet {
		return
	}
	fmt.Fprintln(out, text)
}
