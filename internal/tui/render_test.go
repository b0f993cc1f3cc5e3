package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/flashdeck/internal/config"
	"github.com/arcanaland/flashdeck/internal/view"
)

func sampleView() view.Model {
	return view.Model{
		Status:       "3 cards loaded",
		HasCard:      true,
		Title:        "TCP handshake",
		Category:     "networking",
		Difficulty:   "beginner",
		Source:       "RFC 793",
		Lines:        []string{"SYN", "SYN-ACK", "ACK"},
		TimeText:     "Time 9s left",
		TimeFraction: 0.9,
		Progress:     "1 / 3",
		Behind:       []string{"OSI model", "Subnetting"},
	}
}

func TestRender_swap(t *testing.T) {
	out := Render(sampleView(), Frame{Style: config.StyleSwap, Width: 80})

	for _, want := range []string{"3 cards loaded", "TCP handshake", "networking · beginner", "1 / 3", "• SYN-ACK", "Time 9s left", "source: RFC 793"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "OSI model")
	assert.NotContains(t, out, helpText)
}

func TestRender_error(t *testing.T) {
	m := view.Model{Status: view.StatusFailed, Error: "failed to fetch deck.json: status 404"}

	out := Render(m, Frame{Width: 80, Help: true})

	assert.Contains(t, out, view.StatusFailed)
	assert.Contains(t, out, "status 404")
	assert.Contains(t, out, helpText)
}

func TestRender_widthBounds(t *testing.T) {
	assert.Equal(t, minCardWidth, cardWidth(10))
	assert.Equal(t, maxCardWidth, cardWidth(300))
	assert.Equal(t, 56, cardWidth(60))
}

func TestRender_stack(t *testing.T) {
	out := Render(sampleView(), Frame{Style: config.StyleStack, Width: 80})

	lines := strings.Split(out, "\n")
	last := lines[len(lines)-1]
	assert.Contains(t, last, "Subnetting")
	assert.True(t, strings.HasPrefix(last, "    ╰"))
}

func TestRender_dragOffset(t *testing.T) {
	m := sampleView()

	still := Render(m, Frame{Style: config.StyleDrag, Width: 80})
	right := Render(m, Frame{Style: config.StyleDrag, Width: 80, DragDX: 5})
	farLeft := Render(m, Frame{Style: config.StyleDrag, Width: 80, DragDX: -50})

	assert.Greater(t, lipgloss.Width(right), lipgloss.Width(still))
	assert.Contains(t, right, "↻ prev")
	assert.Contains(t, farLeft, "↺ next")
	assert.NotContains(t, still, "↺")
}
