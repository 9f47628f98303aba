package tui

import (
	"context"

	"coinpulse/internal/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Dashboard is the state the terminal view renders and mutates.
type Dashboard interface {
	Snapshot() domain.Snapshot
	Select(id string) error
	Add(coin domain.Coin) error
	Search(ctx context.Context, query string) []domain.Suggestion
	Subscribe() (<-chan domain.Event, func())
}

type focus int

const (
	focusCoins focus = iota
	focusSearch
)

type eventMsg domain.Event

type streamClosedMsg struct{}

// AppModel is the bubbletea model of one dashboard view.
type AppModel struct {
	ctx       context.Context
	dashboard Dashboard

	events      <-chan domain.Event
	unsubscribe func()

	snapshot domain.Snapshot
	input    textinput.Model
	focus    focus

	coinCursor       int
	suggestionCursor int

	width  int
	height int
}

// NewAppModel subscribes to dashboard events. The subscription is released
// when the model quits.
func NewAppModel(ctx context.Context, dashboard Dashboard) *AppModel {
	input := textinput.New()
	input.Placeholder = "search coins"
	input.Prompt = "/ "
	input.CharLimit = 64
	input.Width = 32

	events, unsubscribe := dashboard.Subscribe()
	snap := dashboard.Snapshot()

	m := &AppModel{
		ctx:         ctx,
		dashboard:   dashboard,
		events:      events,
		unsubscribe: unsubscribe,
		snapshot:    snap,
		input:       input,
		width:       80,
		height:      24,
	}
	m.coinCursor = m.activeIndex()
	return m
}

// SetSize updates the render dimensions.
func (m *AppModel) SetSize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
}

func (m *AppModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case eventMsg:
		m.refresh()
		return m, waitForEvent(m.events)

	case streamClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()
	case "tab", "shift+tab":
		m.toggleFocus()
		return m, nil
	}

	if m.focus == focusCoins {
		switch msg.String() {
		case "q":
			return m, m.quit()
		case "left", "h":
			if m.coinCursor > 0 {
				m.coinCursor--
			}
		case "right", "l":
			if m.coinCursor < len(m.snapshot.Coins)-1 {
				m.coinCursor++
			}
		case "enter", " ":
			if m.coinCursor < len(m.snapshot.Coins) {
				_ = m.dashboard.Select(m.snapshot.Coins[m.coinCursor].ID)
				m.refresh()
			}
		case "/":
			m.toggleFocus()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.input.SetValue("")
		m.suggestionCursor = 0
		return m, m.search("")
	case "up":
		if m.suggestionCursor > 0 {
			m.suggestionCursor--
		}
		return m, nil
	case "down":
		if m.suggestionCursor < len(m.snapshot.Suggestions)-1 {
			m.suggestionCursor++
		}
		return m, nil
	case "enter":
		m.addHighlighted()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.suggestionCursor = 0
		return m, tea.Batch(cmd, m.search(after))
	}
	return m, cmd
}

func (m *AppModel) toggleFocus() {
	if m.focus == focusCoins {
		m.focus = focusSearch
		m.input.Focus()
		return
	}
	m.focus = focusCoins
	m.input.Blur()
}

func (m *AppModel) addHighlighted() {
	suggestions := m.snapshot.Suggestions
	if m.suggestionCursor >= len(suggestions) {
		return
	}
	s := suggestions[m.suggestionCursor]
	if s.NotFound || s.Coin == nil {
		return
	}
	if err := m.dashboard.Add(*s.Coin); err != nil {
		return
	}
	m.input.SetValue("")
	m.suggestionCursor = 0
	m.refresh()
	m.coinCursor = m.activeIndex()
}

// search runs off the update loop; the resulting state change arrives as an
// event.
func (m *AppModel) search(query string) tea.Cmd {
	ctx, dashboard := m.ctx, m.dashboard
	return func() tea.Msg {
		dashboard.Search(ctx, query)
		return nil
	}
}

func (m *AppModel) quit() tea.Cmd {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return tea.Quit
}

func (m *AppModel) refresh() {
	m.snapshot = m.dashboard.Snapshot()
	if m.coinCursor >= len(m.snapshot.Coins) {
		m.coinCursor = m.activeIndex()
	}
	if m.suggestionCursor >= len(m.snapshot.Suggestions) {
		m.suggestionCursor = 0
	}
}

func (m *AppModel) activeIndex() int {
	for i, c := range m.snapshot.Coins {
		if c.ID == m.snapshot.ActiveID {
			return i
		}
	}
	return 0
}

func waitForEvent(events <-chan domain.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return eventMsg(ev)
	}
}
