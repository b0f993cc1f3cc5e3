package deck

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/arcanaland/flashdeck/internal/card"
	"github.com/arcanaland/flashdeck/internal/validator"
)

// DefaultTransition is how long a card change stays in flight
const DefaultTransition = 220 * time.Millisecond

// State is the navigation state of a controller
type State int

const (
	Idle State = iota
	Transitioning
)

func (s State) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// Direction of an advance step
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// Report summarises one load cycle
type Report struct {
	LoadID   string
	Total    int
	Loaded   int
	Warnings []string
}

// Controller owns the deck, the current index and the countdown timer.
// It is not safe for concurrent use; all calls come from one event loop.
type Controller struct {
	cards []card.Card
	index int

	state   State
	pending int
	// seq identifies the transition in flight
	seq uint64

	timer      *Countdown
	generation uint64

	clock      clockwork.Clock
	transition time.Duration
	validator  *validator.Validator
	logger     *slog.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithClock sets the clock used by the countdown timer
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithTransition sets the transition delay. Zero completes moves immediately.
func WithTransition(d time.Duration) Option {
	return func(c *Controller) { c.transition = d }
}

// WithValidator sets the record validator
func WithValidator(v *validator.Validator) Option {
	return func(c *Controller) { c.validator = v }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates an empty controller
func NewController(opts ...Option) *Controller {
	c := &Controller{
		clock:      clockwork.NewRealClock(),
		transition: DefaultTransition,
		validator:  validator.NewValidator(validator.Options{}),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load validates the records in order and replaces the deck with the valid
// ones. It returns card.ErrEmptyDeck, leaving the current deck untouched,
// when no record passes.
func (c *Controller) Load(records []any) (Report, error) {
	report := Report{LoadID: uuid.NewString(), Total: len(records)}
	logger := c.logger.With(slog.String("load_id", report.LoadID))

	seen := make(map[card.ID]struct{}, len(records))
	valid := make([]card.Card, 0, len(records))
	for _, record := range records {
		res := c.validator.Validate(record, seen)
		if !res.Valid {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s: %s", validator.DescribeID(record), res.Reason))
			continue
		}
		seen[res.Card.ID] = struct{}{}
		valid = append(valid, res.Card)
	}
	report.Loaded = len(valid)

	if len(report.Warnings) > 0 {
		logger.Warn("invalid cards skipped",
			slog.Int("count", len(report.Warnings)),
			slog.Any("warnings", report.Warnings))
	}

	if len(valid) == 0 {
		logger.Error("load failed", slog.Int("records", report.Total))
		return report, card.ErrEmptyDeck
	}

	c.CancelTransition()
	c.StopTimer()
	c.cards = valid
	c.index = 0
	c.StartTimer(c.cards[0])

	logger.Info("cards loaded", slog.Int("loaded", report.Loaded), slog.Int("records", report.Total))
	return report, nil
}

// Cards returns the loaded deck
func (c *Controller) Cards() []card.Card {
	return c.cards
}

// Len is the number of cards in the deck
func (c *Controller) Len() int {
	return len(c.cards)
}

// Index is the position of the current card
func (c *Controller) Index() int {
	return c.index
}

// State is the navigation state
func (c *Controller) State() State {
	return c.state
}

// Current returns the card at the current index
func (c *Controller) Current() (card.Card, bool) {
	if len(c.cards) == 0 {
		return card.Card{}, false
	}
	return c.cards[c.index], true
}

// Peek returns the card offset positions away from the current one, wrapping
func (c *Controller) Peek(offset int) (card.Card, bool) {
	n := len(c.cards)
	if n == 0 {
		return card.Card{}, false
	}
	i := ((c.index+offset)%n + n) % n
	return c.cards[i], true
}

// Advance starts a move one card forward or back. It is dropped, returning
// false, while a transition is in flight or the deck is empty.
func (c *Controller) Advance(dir Direction) bool {
	n := len(c.cards)
	if n == 0 || c.state != Idle {
		return false
	}
	if dir != Next && dir != Previous {
		return false
	}

	c.pending = (c.index + int(dir) + n) % n
	c.state = Transitioning
	c.seq++
	c.StopTimer()

	if c.transition <= 0 {
		c.CompleteTransition()
	}
	return true
}

// Transition is the delay the caller should wait before CompleteTransition
func (c *Controller) Transition() time.Duration {
	return c.transition
}

// TransitionSeq identifies the latest transition. Completions for an older
// one must be dropped by the caller.
func (c *Controller) TransitionSeq() uint64 {
	return c.seq
}

// CancelTransition abandons the move in flight, staying on the current card
func (c *Controller) CancelTransition() {
	if c.state != Transitioning {
		return
	}
	c.state = Idle
	c.seq++
}

// CompleteTransition lands on the pending card and starts its timer
func (c *Controller) CompleteTransition() {
	if c.state != Transitioning {
		return
	}
	c.index = c.pending
	c.state = Idle
	c.StartTimer(c.cards[c.index])
}

// StartTimer replaces any running countdown with one for the given card
func (c *Controller) StartTimer(cd card.Card) *Countdown {
	c.StopTimer()
	c.generation++
	c.timer = newCountdown(c.clock, c.generation, cd.ReadTimeSec)
	return c.timer
}

// StopTimer cancels the running countdown. Safe to call without one.
func (c *Controller) StopTimer() {
	if c.timer == nil {
		return
	}
	c.timer.stop()
	c.timer = nil
}

// Timer is the current countdown, nil when none exists
func (c *Controller) Timer() *Countdown {
	return c.timer
}

// Tick advances the countdown with the given generation. Ticks for a
// superseded countdown are ignored. It reports whether ticking should go on.
func (c *Controller) Tick(generation uint64) bool {
	if c.timer == nil || c.timer.Generation != generation {
		return false
	}
	c.timer.Tick()
	return c.timer.Active()
}
