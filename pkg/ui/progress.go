package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	ProgressBar   = "█"
	ProgressEmpty = "░"
	barWidth      = 30
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMagenta).
	Padding(0, 1)

// StatusView is what the status panel shows for an open project
type StatusView struct {
	Project    string
	Index      int
	Total      int
	PromptID   string
	PromptText string
	Recorded   bool
	Missing    int
	Source     string
	Complete   bool
}

// Bar returns a fixed-width progress bar for index out of total
func Bar(index, total, width int) string {
	if width <= 0 {
		width = barWidth
	}
	filled := 0
	if total > 0 {
		filled = index * width / total
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return Green(strings.Repeat(ProgressBar, filled)) + Dim(strings.Repeat(ProgressEmpty, width-filled))
}

// Position formats a zero-based index the way users count prompts
func Position(index, total int) string {
	if total == 0 {
		return "0/0"
	}
	shown := index + 1
	if shown > total {
		shown = total
	}
	return fmt.Sprintf("%d/%d", shown, total)
}

// RenderStatus draws the status panel
func RenderStatus(v StatusView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Cyan("Project:"), Yellow(v.Project))
	fmt.Fprintf(&b, "[%s] %s\n", Bar(v.Index, v.Total, barWidth), Position(v.Index, v.Total))

	switch {
	case v.Complete:
		b.WriteString(Green("All prompts passed"))
	case v.Total == 0:
		b.WriteString(Dim("Script has no prompts"))
	default:
		mark := Red("✗ not recorded")
		if v.Recorded {
			mark = Green("✓ recorded")
		}
		fmt.Fprintf(&b, "%s %s  %s\n", Cyan("Prompt:"), Yellow(v.PromptID), mark)
		b.WriteString(v.PromptText)
	}

	if v.Missing > 0 {
		fmt.Fprintf(&b, "\n%s %d", Cyan("Missing:"), v.Missing)
	}
	if v.Source != "" {
		fmt.Fprintf(&b, "\n%s", Dim("resumed from "+v.Source))
	}

	if !colorEnabled {
		return b.String()
	}
	return panelStyle.Render(b.String())
}

// PrintStatus prints the status panel
func PrintStatus(v StatusView) {
	if quiet {
		return
	}
	fmt.Fprintln(out, RenderStatus(v))
}
