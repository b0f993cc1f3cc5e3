package card

import "strconv"

// Card represents one validated flashcard
type Card struct {
	ID          ID       // Unique within a deck
	Title       string   // Display title
	Category    string   // Display category (e.g., networking)
	Difficulty  string   // Display difficulty (e.g., beginner)
	ReadTimeSec float64  // Read-time budget in seconds
	Content     []string // 3 to 6 content lines
	Source      string   // Optional attribution
}

// ID is a card identifier that was either a JSON string or a JSON number.
// It is comparable, so it can key the seen-id set during validation.
type ID struct {
	Value   string
	Numeric bool
}

// StringID returns a string identifier
func StringID(s string) ID {
	return ID{Value: s}
}

// NumberID returns a numeric identifier in canonical form, so 1 and 1.0 match
func NumberID(f float64) ID {
	return ID{Value: strconv.FormatFloat(f, 'g', -1, 64), Numeric: true}
}

func (id ID) String() string {
	return id.Value
}
