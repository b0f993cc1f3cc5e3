package validator

import (
	"encoding/json"
	"fmt"

	"github.com/arcanaland/flashdeck/internal/card"
)

// Schema bounds for a card.
const (
	MaxReadTimeSec  = 60
	MinContentLines = 3
	MaxContentLines = 6
)

var requiredFields = []string{"id", "title", "category", "difficulty", "readTimeSec", "content"}

// Result is the outcome of validating one record. Card is only set when Valid.
type Result struct {
	Valid  bool
	Reason string
	Card   card.Card
}

// Options tune validation beyond the base schema.
type Options struct {
	// StrictReadTime also rejects a readTimeSec that is zero or negative.
	StrictReadTime bool
}

// Validator checks raw card records decoded from JSON.
type Validator struct {
	Options Options
}

// NewValidator creates a validator with the given options
func NewValidator(opts Options) *Validator {
	return &Validator{Options: opts}
}

// Validate checks one raw record against the schema and the ids already seen.
// It never mutates seen; the caller records the id of an accepted card.
func Validate(record any, seen map[card.ID]struct{}) Result {
	return (&Validator{}).Validate(record, seen)
}

// Validate checks one raw record against the schema and the ids already seen.
func (v *Validator) Validate(record any, seen map[card.ID]struct{}) Result {
	obj, ok := record.(map[string]any)
	if !ok || obj == nil {
		return reject("invalid object")
	}

	for _, key := range requiredFields {
		if _, ok := obj[key]; !ok {
			return reject("missing " + key)
		}
	}

	id, ok := parseID(obj["id"])
	if !ok {
		return reject("invalid id")
	}
	if _, dup := seen[id]; dup {
		return reject("duplicate id")
	}

	readTime, ok := number(obj["readTimeSec"])
	if !ok {
		return reject("readTimeSec must be a number")
	}
	if readTime > MaxReadTimeSec {
		return reject(fmt.Sprintf("readTimeSec > %d", MaxReadTimeSec))
	}
	if v.Options.StrictReadTime && readTime <= 0 {
		return reject("readTimeSec must be positive")
	}

	items, ok := obj["content"].([]any)
	if !ok {
		return reject("content must be a list")
	}
	if len(items) < MinContentLines || len(items) > MaxContentLines {
		return reject("content length out of bounds")
	}

	c := card.Card{
		ID:          id,
		Title:       text(obj["title"]),
		Category:    text(obj["category"]),
		Difficulty:  text(obj["difficulty"]),
		ReadTimeSec: readTime,
		Content:     make([]string, 0, len(items)),
	}
	for _, item := range items {
		c.Content = append(c.Content, text(item))
	}
	if src, ok := obj["source"]; ok && src != nil {
		c.Source = text(src)
	}

	return Result{Valid: true, Card: c}
}

// DescribeID returns a label for a record in warnings, "unknown" when it has none
func DescribeID(record any) string {
	obj, ok := record.(map[string]any)
	if !ok {
		return "unknown"
	}
	id, ok := parseID(obj["id"])
	if !ok || id.Value == "" || (id.Numeric && id.Value == "0") {
		return "unknown"
	}
	return id.Value
}

func reject(reason string) Result {
	return Result{Valid: false, Reason: reason}
}

func parseID(v any) (card.ID, bool) {
	switch id := v.(type) {
	case string:
		return card.StringID(id), true
	case json.Number, float64, int:
		f, ok := number(id)
		if !ok {
			return card.ID{}, false
		}
		return card.NumberID(f), true
	default:
		return card.ID{}, false
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// text renders a display value; non-strings fall back to their JSON form
func text(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprint(s)
		}
		return string(b)
	}
}
