// Package tui implements the interactive parameter explorer: a Bubble Tea
// program that edits farm parameters and re-evaluates them on every change.
package tui

import (
	"context"
	"math"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/farm"
	listview "github.com/rshade/herdcarbon/internal/tui/list"
)

// ExplorerState represents the current state of the explorer.
type ExplorerState int

const (
	// ExplorerStateEditing is the normal browsing and editing state.
	ExplorerStateEditing ExplorerState = iota
	// ExplorerStateQuitting indicates the program is exiting.
	ExplorerStateQuitting
	// ExplorerStateError indicates an evaluation failed.
	ExplorerStateError
)

// Default dimensions before the first WindowSizeMsg.
const (
	explorerDefaultWidth  = 100
	explorerDefaultHeight = 30
)

// explorerChromeRows is the height taken by everything except parameter
// rows: header, table heading, scroll markers and help.
const explorerChromeRows = 10

// minVisibleRows is the fewest parameter rows shown on short terminals.
const minVisibleRows = 3

// stepPrecision removes float drift after repeated stepping.
const stepPrecision = 1e6

// Evaluator evaluates a parameter snapshot.
type Evaluator interface {
	Evaluate(ctx context.Context, p farm.Parameters) (*engine.Results, error)
}

// evaluatedMsg is sent when an evaluation completes.
type evaluatedMsg struct {
	params  farm.Parameters
	results *engine.Results
	err     error
}

// ExplorerModel is the Bubble Tea model for the parameter explorer.
type ExplorerModel struct {
	ctx  context.Context
	eval Evaluator

	fields     []Field
	original   farm.Parameters
	params     farm.Parameters
	focusedRow int

	editMode bool
	input    textinput.Model
	inputErr string

	baseline *engine.Results
	current  *engine.Results

	state   ExplorerState
	loading bool
	err     error

	width  int
	height int
}

// NewExplorerModel creates an explorer starting from params. baseline is the
// evaluation of params; when nil it is computed by Init.
func NewExplorerModel(ctx context.Context, eval Evaluator, params farm.Parameters, baseline *engine.Results) *ExplorerModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 16

	return &ExplorerModel{
		ctx:      ctx,
		eval:     eval,
		fields:   Fields(),
		original: params,
		params:   params,
		input:    ti,
		baseline: baseline,
		current:  baseline,
		state:    ExplorerStateEditing,
		width:    explorerDefaultWidth,
		height:   explorerDefaultHeight,
	}
}

// Init evaluates the starting parameters when no baseline was supplied.
func (m *ExplorerModel) Init() tea.Cmd {
	if m.baseline != nil {
		return nil
	}
	m.loading = true
	return m.evaluate(m.params)
}

// Update handles messages and updates the model state.
func (m *ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case evaluatedMsg:
		return m.handleEvaluated(msg)

	case tea.KeyMsg:
		if m.editMode {
			return m.handleEditModeKey(msg)
		}
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input while browsing.
//
//nolint:exhaustive // Only handling relevant key types for explorer navigation.
func (m *ExplorerModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = ExplorerStateQuitting
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = ExplorerStateQuitting
			return m, tea.Quit
		case "k":
			m.moveFocus(-1)
		case "j":
			m.moveFocus(1)
		case "h", "-":
			return m, m.step(-1)
		case "l", "+":
			return m, m.step(1)
		case "r":
			return m, m.reset()
		}
		return m, nil

	case tea.KeyUp:
		m.moveFocus(-1)
		return m, nil

	case tea.KeyDown:
		m.moveFocus(1)
		return m, nil

	case tea.KeyPgUp:
		m.focusedRow = listview.Page(m.focusedRow, m.visibleRows(), len(m.fields), -1)
		return m, nil

	case tea.KeyPgDown:
		m.focusedRow = listview.Page(m.focusedRow, m.visibleRows(), len(m.fields), 1)
		return m, nil

	case tea.KeyHome:
		m.focusedRow = 0
		return m, nil

	case tea.KeyEnd:
		m.focusedRow = listview.Clamp(len(m.fields)-1, len(m.fields))
		return m, nil

	case tea.KeyLeft:
		return m, m.step(-1)

	case tea.KeyRight:
		return m, m.step(1)

	case tea.KeyEnter:
		if len(m.fields) == 0 {
			return m, nil
		}
		m.editMode = true
		m.inputErr = ""
		m.input.SetValue(m.fields[m.focusedRow].Format(m.params))
		m.input.CursorEnd()
		return m, m.input.Focus()
	}

	return m, nil
}

// handleEditModeKey processes keyboard input while typing a value.
//
//nolint:exhaustive // Only the commit and cancel keys are special in edit mode.
func (m *ExplorerModel) handleEditModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = ExplorerStateQuitting
		return m, tea.Quit

	case tea.KeyEnter:
		f := m.fields[m.focusedRow]
		v, err := f.Parse(m.input.Value())
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.closeEditor()
		next := m.params
		f.Set(&next, v)
		return m, m.apply(next)

	case tea.KeyEsc:
		m.closeEditor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ExplorerModel) closeEditor() {
	m.editMode = false
	m.inputErr = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m *ExplorerModel) moveFocus(delta int) {
	m.focusedRow = listview.Clamp(m.focusedRow+delta, len(m.fields))
}

// visibleRows is the number of parameter rows that fit the terminal.
func (m *ExplorerModel) visibleRows() int {
	return max(minVisibleRows, m.height-explorerChromeRows)
}

// step moves the focused field by one step in direction dir.
func (m *ExplorerModel) step(dir float64) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	f := m.fields[m.focusedRow]
	next := m.params
	v := f.Value(next) + dir*f.Step
	f.Set(&next, math.Round(v*stepPrecision)/stepPrecision)
	if sameParams(next, m.params) {
		return nil
	}
	return m.apply(next)
}

// reset restores the starting parameters.
func (m *ExplorerModel) reset() tea.Cmd {
	if sameParams(m.params, m.original) {
		return nil
	}
	return m.apply(m.original)
}

func (m *ExplorerModel) apply(next farm.Parameters) tea.Cmd {
	m.params = next
	m.loading = true
	return m.evaluate(next)
}

// evaluate returns a command that evaluates p off the update loop.
func (m *ExplorerModel) evaluate(p farm.Parameters) tea.Cmd {
	ctx := m.ctx
	eval := m.eval
	return func() tea.Msg {
		r, err := eval.Evaluate(ctx, p)
		return evaluatedMsg{params: p, results: r, err: err}
	}
}

// handleEvaluated stores an evaluation. Results for parameters that have
// since changed are dropped.
func (m *ExplorerModel) handleEvaluated(msg evaluatedMsg) (tea.Model, tea.Cmd) {
	if !sameParams(msg.params, m.params) {
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		m.err = msg.err
		m.state = ExplorerStateError
		return m, nil
	}

	if m.baseline == nil {
		m.baseline = msg.results
	}
	m.current = msg.results
	return m, nil
}

// Params returns the parameters as currently edited.
func (m *ExplorerModel) Params() farm.Parameters {
	return m.params
}

// Results returns the latest evaluation, or nil before the first one.
func (m *ExplorerModel) Results() *engine.Results {
	return m.current
}

// Modified reports whether any parameter differs from the start.
func (m *ExplorerModel) Modified() bool {
	return !sameParams(m.params, m.original)
}

func sameParams(a, b farm.Parameters) bool {
	return a.Fingerprint() == b.Fingerprint()
}
