// Package tui is the interactive terminal front end: a term-count input,
// play/stop and reset controls, the sequence list and the scaled bars.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/fibviz/internal/driver"
	"github.com/san-kum/fibviz/internal/logging"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// stateMsg wakes the model after the driver changed off the event loop.
type stateMsg struct{}

type Model struct {
	drv     *driver.Driver
	updates <-chan struct{}
	state   driver.State
	input   textinput.Model
	help    help.Model
	offset  int
	width   int
	height  int
	log     *logging.Logger
}

// New builds a model around drv. updates carries driver change
// notifications; it may be nil when nothing else mutates drv.
func New(drv *driver.Driver, updates <-chan struct{}, log *logging.Logger) Model {
	if log == nil {
		log = logging.NopLogger()
	}
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 2
	in.Width = 3
	in.Placeholder = "1-50"

	m := Model{
		drv:     drv,
		updates: updates,
		state:   drv.State(),
		input:   in,
		help:    help.New(),
		width:   defaultWidth,
		height:  defaultHeight,
		log:     log.With("component", "tui"),
	}
	m.input.SetValue(strconv.Itoa(m.state.Count))
	return m
}

func waitForState(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return waitForState(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil
	case stateMsg:
		m.sync()
		return m, waitForState(m.updates)
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.editKey(msg)
		}
		return m.key(msg)
	}
	return m, nil
}

func (m Model) key(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Toggle):
		m.drv.Toggle()
	case key.Matches(msg, keys.Reset):
		m.drv.Reset()
		m.offset = 0
	case key.Matches(msg, keys.Inc):
		m.drv.SetInput(strconv.Itoa(m.state.Count + 1))
	case key.Matches(msg, keys.Dec):
		m.drv.SetInput(strconv.Itoa(m.state.Count - 1))
	case key.Matches(msg, keys.Up):
		m.offset--
	case key.Matches(msg, keys.Down):
		m.offset++
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Edit):
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	m.sync()
	return m, nil
}

// editKey feeds the term input. Every edit is applied immediately; text
// the driver rejects (partial, out of range) changes nothing.
func (m Model) editKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, keys.Done):
		m.input.Blur()
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if !m.drv.SetInput(m.input.Value()) {
		m.log.Debug("term input ignored", "value", m.input.Value())
	}
	m.sync()
	return m, cmd
}

// sync pulls the latest driver state. The input keeps whatever the user
// typed while focused and mirrors the count otherwise.
func (m *Model) sync() {
	m.state = m.drv.State()
	if !m.input.Focused() {
		m.input.SetValue(strconv.Itoa(m.state.Count))
	}
	m.clampOffset()
}

func (m *Model) clampOffset() {
	maxOff := max(len(m.state.Sequence)-m.listRows(), 0)
	m.offset = max(0, min(m.offset, maxOff))
}

// State exposes the last driver snapshot the model rendered.
func (m Model) State() driver.State { return m.state }

// Editing reports whether the term input has focus.
func (m Model) Editing() bool { return m.input.Focused() }
