// Package view derives display strings from the deck controller. Renderers
// consume a Model and never touch the controller directly.
package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/flashdeck/internal/card"
	"github.com/arcanaland/flashdeck/internal/deck"
)

// Status texts
const (
	StatusLoading = "Loading cards..."
	StatusFailed  = "Failed to load cards"
)

// Model is everything a renderer needs for one frame.
type Model struct {
	Status string
	Error  string

	HasCard       bool
	Title         string
	Category      string
	Difficulty    string
	Source        string
	Lines         []string
	TimeText      string
	TimeFraction  float64
	Progress      string
	Transitioning bool

	// Titles of the cards behind the current one, nearest first
	Behind []string
}

// LoadedStatus is the status after a successful load
func LoadedStatus(n int) string {
	return fmt.Sprintf("%d cards loaded", n)
}

// Build derives the view model. A non-empty errMsg suppresses the card.
func Build(c *deck.Controller, status, errMsg string, behind int) Model {
	m := Model{Status: status, Error: errMsg}
	if errMsg != "" {
		return m
	}

	cur, ok := c.Current()
	if !ok {
		return m
	}

	m.HasCard = true
	m.Title = cur.Title
	m.Category = cur.Category
	m.Difficulty = cur.Difficulty
	m.Source = cur.Source
	m.Lines = cur.Content
	m.Progress = fmt.Sprintf("%d / %d", c.Index()+1, c.Len())
	m.Transitioning = c.State() == deck.Transitioning
	m.TimeText, m.TimeFraction = countdownText(cur, c.Timer())

	for i := 1; i <= behind && i < c.Len(); i++ {
		next, _ := c.Peek(i)
		m.Behind = append(m.Behind, next.Title)
	}
	return m
}

// FromCard derives a static view of one card, as shown before its timer runs
func FromCard(c card.Card, index, total int) Model {
	text, fraction := countdownText(c, nil)
	return Model{
		HasCard:      true,
		Title:        c.Title,
		Category:     c.Category,
		Difficulty:   c.Difficulty,
		Source:       c.Source,
		Lines:        c.Content,
		TimeText:     text,
		TimeFraction: fraction,
		Progress:     fmt.Sprintf("%d / %d", index+1, total),
	}
}

func countdownText(cur card.Card, timer *deck.Countdown) (string, float64) {
	if timer == nil {
		return fmt.Sprintf("Time %ss", strconv.FormatFloat(cur.ReadTimeSec, 'f', -1, 64)), 1
	}
	remaining := timer.Remaining()
	if remaining <= 0 {
		return "Time complete", 0
	}
	secs := int(math.Ceil(remaining.Seconds()))
	return fmt.Sprintf("Time %ds left", secs), timer.Fraction()
}

var (
	barFull  = colorful.Color{R: 0.25, G: 0.73, B: 0.31}
	barEmpty = colorful.Color{R: 0.97, G: 0.32, B: 0.29}
)

// BarColor is the hex colour of the countdown bar, green when full fading to
// red when empty.
func BarColor(fraction float64) string {
	fraction = clamp(fraction)
	return barEmpty.BlendHcl(barFull, fraction).Clamped().Hex()
}

// Bar draws the countdown bar scaled to width cells
func Bar(width int, fraction float64) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(clamp(fraction) * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func clamp(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Wrap breaks text into lines of at most width columns
func Wrap(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	var line string
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			result = append(result, line)
			line = word
		}
	}
	if line != "" {
		result = append(result, line)
	}
	return result
}
