package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/galton/internal/board"
	"github.com/san-kum/galton/internal/stats"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#663399")).
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7a7af4"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(12)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7af47a")).
			Bold(true)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	StatusDone    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7a7af4"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7a7af4")).Padding(1, 0)
)

func metric(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value) + "\n"
}

// RenderSummary formats run statistics next to the values an unclamped
// walk would give.
func RenderSummary(cfg board.Config, s stats.Summary, elapsed time.Duration) string {
	var b strings.Builder
	b.WriteString(Title.Render("GALTON BOARD") + "\n\n")
	b.WriteString(metric("Balls", fmt.Sprintf("%d", s.Total)))
	b.WriteString(metric("Board", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)))
	b.WriteString(metric("Walk", fmt.Sprintf("%d steps (%s)", cfg.WalkLength(), cfg.Walk)))
	b.WriteString(metric("Mean", fmt.Sprintf("%.2f (center %d)", s.Mean, cfg.Center())))
	b.WriteString(metric("StdDev", fmt.Sprintf("%.2f (expected %.2f)", s.StdDev, stats.ExpectedStdDev(cfg.WalkLength()))))
	if s.Total > 0 {
		b.WriteString(metric("Range", fmt.Sprintf("%d..%d", s.Min, s.Max)))
		b.WriteString(metric("Mode", fmt.Sprintf("%d (%d balls)", s.Mode, s.Peak)))
	}
	b.WriteString(metric("Occupied", fmt.Sprintf("%d/%d bins", s.Occupied, s.Bins)))
	if elapsed > 0 {
		b.WriteString(metric("Elapsed", elapsed.Round(time.Millisecond).String()))
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func progressBar(done, total, width int) string {
	if total <= 0 || width <= 0 {
		return "[" + strings.Repeat("=", max(width, 0)) + "]"
	}
	filled := done * width / total
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
