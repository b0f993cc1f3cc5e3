package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcanaland/flashdeck/internal/config"
	"github.com/arcanaland/flashdeck/internal/deck"
	"github.com/arcanaland/flashdeck/internal/gesture"
	"github.com/arcanaland/flashdeck/internal/view"
)

// Fetcher reads raw card records from a source
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]any, error)
}

// Options configure the viewer
type Options struct {
	Source        string
	Style         string
	TickInterval  time.Duration
	DragThreshold int
}

type loadedMsg struct {
	records []any
	err     error
}

type tickMsg struct {
	generation uint64
}

type transitionDoneMsg struct {
	seq uint64
}

// Model is the bubbletea model of the card viewer. All controller calls
// happen on the update loop.
type Model struct {
	ctrl    *deck.Controller
	fetcher Fetcher
	opts    Options
	drag    *gesture.Drag
	logger  *slog.Logger

	status string
	errMsg string
	width  int
}

// New creates a viewer around a controller
func New(ctrl *deck.Controller, fetcher Fetcher, opts Options, logger *slog.Logger) *Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 250 * time.Millisecond
	}
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = 6
	}
	if opts.Style == "" {
		opts.Style = config.StyleSwap
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		ctrl:    ctrl,
		fetcher: fetcher,
		opts:    opts,
		drag:    gesture.NewDrag(opts.DragThreshold),
		logger:  logger,
		status:  view.StatusLoading,
		width:   80,
	}
}

// Run starts the viewer and blocks until the user quits
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	m.ctrl.StopTimer()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	src := m.opts.Source
	fetcher := m.fetcher
	return func() tea.Msg {
		records, err := fetcher.Fetch(context.Background(), src)
		return loadedMsg{records: records, err: err}
	}
}

func (m *Model) tick() tea.Cmd {
	timer := m.ctrl.Timer()
	if timer == nil || !timer.Active() {
		return nil
	}
	gen := timer.Generation
	return tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{generation: gen}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return m, m.handleLoaded(msg)
	case tickMsg:
		if m.ctrl.Tick(msg.generation) {
			return m, m.tick()
		}
		return m, nil
	case transitionDoneMsg:
		if msg.seq != m.ctrl.TransitionSeq() || m.ctrl.State() != deck.Transitioning {
			return m, nil
		}
		m.ctrl.CompleteTransition()
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m *Model) handleLoaded(msg loadedMsg) tea.Cmd {
	err := msg.err
	if err == nil {
		_, err = m.ctrl.Load(msg.records)
	}
	if err != nil {
		m.logger.Error("load failed", slog.String("source", m.opts.Source), slog.String("error", err.Error()))
		m.status = view.StatusFailed
		m.errMsg = err.Error()
		return nil
	}

	m.status = view.LoadedStatus(m.ctrl.Len())
	m.errMsg = ""
	return m.tick()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.ctrl.StopTimer()
		return m, tea.Quit
	case "right", "l", "n":
		return m, m.advance(deck.Next)
	case "left", "h", "p":
		return m, m.advance(deck.Previous)
	case "r":
		m.ctrl.CancelTransition()
		m.ctrl.StopTimer()
		m.status = view.StatusLoading
		m.errMsg = ""
		return m, m.load()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag.Press(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		m.drag.Move(msg.X, msg.Y)
	case tea.MouseActionRelease:
		if dir := m.drag.Release(msg.X, msg.Y); dir != 0 {
			return m.advance(dir)
		}
	}
	return nil
}

func (m *Model) advance(dir deck.Direction) tea.Cmd {
	if m.errMsg != "" || !m.ctrl.Advance(dir) {
		return nil
	}
	if m.ctrl.State() == deck.Transitioning {
		seq := m.ctrl.TransitionSeq()
		return tea.Tick(m.ctrl.Transition(), func(time.Time) tea.Msg {
			return transitionDoneMsg{seq: seq}
		})
	}
	return m.tick()
}

// ViewModel is the current frame's view model
func (m *Model) ViewModel() view.Model {
	behind := 0
	if m.opts.Style == config.StyleStack {
		behind = stackDepth
	}
	return view.Build(m.ctrl, m.status, m.errMsg, behind)
}

func (m *Model) View() string {
	dx, _ := m.drag.Offset()
	return Render(m.ViewModel(), Frame{
		Style:  m.opts.Style,
		Width:  m.width,
		DragDX: dx,
		Help:   true,
	})
}
