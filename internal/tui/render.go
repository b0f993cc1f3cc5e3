package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arcanaland/flashdeck/internal/config"
	"github.com/arcanaland/flashdeck/internal/view"
)

const (
	maxCardWidth = 72
	minCardWidth = 30
	stackDepth   = 2
)

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	lineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sourceStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2)
	exitCardStyle = cardStyle.BorderForeground(lipgloss.Color("238")).Faint(true)
	behindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	errorStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("203")).Foreground(lipgloss.Color("203")).Padding(1, 2)
)

const helpText = "←/h prev · →/l next · drag to swipe · r reload · q quit"

// Frame carries what the renderer needs besides the view model
type Frame struct {
	Style  string
	Width  int
	DragDX int
	Help   bool
}

// Render draws one frame of the view model
func Render(m view.Model, f Frame) string {
	width := cardWidth(f.Width)

	var b strings.Builder
	if m.Status != "" {
		b.WriteString(statusStyle.Render(m.Status))
		b.WriteString("\n\n")
	}

	switch {
	case m.Error != "":
		b.WriteString(errorStyle.Width(width).Render(m.Error))
	case m.HasCard:
		b.WriteString(renderCard(m, f, width))
	}

	if f.Help {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(helpText))
	}
	return b.String()
}

func cardWidth(termWidth int) int {
	w := termWidth - 4
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

func renderCard(m view.Model, f Frame, width int) string {
	// Inner width without border and padding
	inner := width - 6

	meta := metaStyle.Render(m.Category + " · " + m.Difficulty)
	progress := statusStyle.Render(m.Progress)
	gap := inner - lipgloss.Width(meta) - lipgloss.Width(progress)
	if gap < 1 {
		gap = 1
	}

	lines := []string{
		meta + strings.Repeat(" ", gap) + progress,
		"",
	}
	for _, l := range view.Wrap(m.Title, inner) {
		lines = append(lines, titleStyle.Render(l))
	}
	lines = append(lines, "")
	for _, content := range m.Lines {
		for i, l := range view.Wrap(content, inner-2) {
			prefix := "  "
			if i == 0 {
				prefix = "• "
			}
			lines = append(lines, lineStyle.Render(prefix+l))
		}
	}
	lines = append(lines, "", m.TimeText)
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(view.BarColor(m.TimeFraction)))
	lines = append(lines, bar.Render(view.Bar(inner, m.TimeFraction)))
	if m.Source != "" {
		lines = append(lines, sourceStyle.Render("source: "+m.Source))
	}

	style := cardStyle
	if m.Transitioning {
		style = exitCardStyle
	}
	box := style.Width(width).Render(strings.Join(lines, "\n"))

	switch f.Style {
	case config.StyleDrag:
		return dragged(box, f.DragDX, m.Transitioning)
	case config.StyleStack:
		return stacked(box, m.Behind, width)
	default:
		return box
	}
}

// dragged shifts the card with the pointer and tilts its label with the
// direction of travel.
func dragged(box string, dx int, exiting bool) string {
	base := 2
	offset := base + dx
	if offset < 0 {
		offset = 0
	}

	tilt := ""
	switch {
	case dx < 0:
		tilt = "↺ next"
	case dx > 0:
		tilt = "↻ prev"
	}
	if exiting {
		tilt = ""
	}

	out := lipgloss.NewStyle().MarginLeft(offset).Render(box)
	if tilt != "" {
		out = helpStyle.MarginLeft(offset).Render(tilt) + "\n" + out
	}
	return out
}

// stacked draws the following cards as edges peeking out below the current one
func stacked(box string, behind []string, width int) string {
	layers := []string{box}
	for i, title := range behind {
		if i >= stackDepth {
			break
		}
		indent := 2 * (i + 1)
		edgeWidth := width - 2*indent
		if edgeWidth < 4 {
			break
		}
		label := " " + title + " "
		fill := edgeWidth - 2 - lipgloss.Width(label)
		if fill < 0 {
			label = ""
			fill = edgeWidth - 2
		}
		edge := "╰" + label + strings.Repeat("─", fill) + "╯"
		layers = append(layers, strings.Repeat(" ", indent)+behindStyle.Render(edge))
	}
	return strings.Join(layers, "\n")
}
