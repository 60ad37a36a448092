// Package components holds small rendering helpers shared by CLI reports.
package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/essence/internal/ui/theme"
)

// ScoreBar renders a percentage as a horizontal bar.
type ScoreBar struct {
	Label      string
	Percentage int
	Width      int
}

// NewScoreBar creates a score bar of the given total width.
func NewScoreBar(label string, percentage, width int) ScoreBar {
	return ScoreBar{Label: label, Percentage: percentage, Width: width}
}

// View renders the bar, colouring the filled part by score band.
func (b ScoreBar) View() string {
	var out string
	if b.Label != "" {
		out = theme.Label.Render(b.Label) + "  "
	}

	pct := min(max(b.Percentage, 0), 100)
	suffix := fmt.Sprintf("  %3d%%", pct)

	barWidth := max(b.Width-lipgloss.Width(out)-len(suffix), 4)
	filled := barWidth * pct / 100

	fill := lipgloss.NewStyle().Background(bandColor(pct))
	rest := lipgloss.NewStyle().Background(theme.Border)

	out += fill.Render(strings.Repeat(" ", filled)) +
		rest.Render(strings.Repeat(" ", barWidth-filled)) +
		theme.ScoreStyle(pct).Render(suffix)
	return out
}

func bandColor(pct int) color.Color {
	switch {
	case pct >= 80:
		return theme.Success
	case pct < 50:
		return theme.Error
	default:
		return theme.Accent
	}
}
