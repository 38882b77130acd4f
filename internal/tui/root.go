package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/kmodtui/kmodtui/internal/filter"
	"github.com/kmodtui/kmodtui/internal/kmod"
)

// Run starts the TUI in the alternate screen and blocks until it exits
func Run(src *kmod.Source, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(src, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// focusArea is which of the two lists receives navigation keys
type focusArea int

const (
	focusModules focusArea = iota
	focusParams
)

// statusKind classifies the transient status notice
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarn
	statusError
)

type statusNotice struct {
	kind statusKind
	text string
}

// Messages
type modulesLoadedMsg struct {
	names []string
}

type modelLoadedMsg struct {
	model kmod.ModuleModel
}

// writeDoneMsg is sent after a write attempt. On success the owning model is
// rebuilt; on failure the model is left as-is since the write took no effect.
type writeDoneMsg struct {
	module string
	name   string
	value  string
	err    error
}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	src    *kmod.Source
	logger *log.Logger
	keys   KeyMap

	// Search input
	search        textinput.Model
	searchFocused bool
	lastQuery     string

	// Module list
	allModules []string
	visible    []string
	moduleIdx  int

	// Parameter pane. modModel is only ever replaced wholesale: on module
	// selection and after a successful write.
	modModel  *kmod.ModuleModel
	paramIdx  int
	paramView viewport.Model

	focus focusArea

	// Edit dialog (nil when closed)
	edit      *editSession
	editInput textinput.Model

	status statusNotice
}

// NewModel creates the root model over a kmod source
func NewModel(src *kmod.Source, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	search := textinput.New()
	search.Placeholder = "Search module (fuzzy)…"
	search.Prompt = "/ "
	search.PromptStyle = InputPromptStyle
	search.CharLimit = 0
	search.Width = 40

	edit := textinput.New()
	edit.Prompt = "> "
	edit.PromptStyle = InputPromptStyle
	edit.CharLimit = 0
	edit.Width = 40

	return Model{
		src:       src,
		logger:    logger,
		keys:      DefaultKeyMap(),
		search:    search,
		editInput: edit,
		focus:     focusModules,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadModulesCmd())
}

// loadModulesCmd lists the loaded modules
func (m Model) loadModulesCmd() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		return modulesLoadedMsg{names: src.ListModules()}
	}
}

// loadModelCmd rebuilds the merged model for a module. Each call re-reads
// all three sources from scratch; nothing is cached across calls.
func (m Model) loadModelCmd(module string) tea.Cmd {
	src := m.src
	return func() tea.Msg {
		return modelLoadedMsg{model: src.BuildModel(module)}
	}
}

// writeParamCmd writes a new value to a parameter's sysfs file
func (m Model) writeParamCmd(module string, param kmod.ParameterRecord, value string) tea.Cmd {
	src := m.src
	return func() tea.Msg {
		err := src.WriteParameter(param.Path, value)
		return writeDoneMsg{module: module, name: param.Name, value: value, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refreshParamView()
		return m, nil

	case modulesLoadedMsg:
		m.allModules = msg.names
		cmd := m.applyFilter()
		return m, cmd

	case modelLoadedMsg:
		model := msg.model
		m.modModel = &model
		// Keep the cursor position across a rebuild when possible
		if m.paramIdx >= len(model.Params) {
			m.paramIdx = len(model.Params) - 1
		}
		if m.paramIdx < 0 {
			m.paramIdx = 0
		}
		m.refreshParamView()
		return m, nil

	case writeDoneMsg:
		if msg.err != nil {
			m.logger.Error("parameter write failed", "module", msg.module, "param", msg.name, "err", msg.err)
			m.status = statusNotice{kind: statusError, text: "Error: " + msg.err.Error()}
			return m, nil
		}
		m.logger.Info("parameter updated", "module", msg.module, "param", msg.name, "value", msg.value)
		m.status = statusNotice{kind: statusSuccess, text: fmt.Sprintf("Updated: %s = %s", msg.name, msg.value)}
		// The kernel may have normalized or silently rejected the value, so
		// the model is rebuilt from a fresh read rather than patched.
		return m, m.loadModelCmd(msg.module)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key presses by mode: edit dialog, search, browsing
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.edit != nil {
		return m.handleEditKey(msg)
	}
	if m.searchFocused {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		m.searchFocused = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		cmd := m.clearSearch()
		return m, cmd

	case key.Matches(msg, m.keys.Switch):
		if m.focus == focusModules {
			m.focus = focusParams
		} else {
			m.focus = focusModules
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		cmd := m.moveSelection(-1)
		return m, cmd

	case key.Matches(msg, m.keys.Down):
		cmd := m.moveSelection(1)
		return m, cmd

	case key.Matches(msg, m.keys.Home):
		cmd := m.moveSelection(-1 << 30)
		return m, cmd

	case key.Matches(msg, m.keys.End):
		cmd := m.moveSelection(1 << 30)
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		return m.openEditor()

	case key.Matches(msg, m.keys.Enter):
		if m.focus == focusParams {
			return m.openEditor()
		}
		if module, ok := m.selectedModule(); ok {
			return m, m.loadModelCmd(module)
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey handles keys while the search input is focused
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		cmd := m.clearSearch()
		return m, cmd

	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Switch):
		m.searchFocused = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Re-filter on every keystroke that changes the query
	if q := m.search.Value(); q != m.lastQuery {
		m.lastQuery = q
		filterCmd := m.applyFilter()
		return m, tea.Batch(cmd, filterCmd)
	}
	return m, cmd
}

// handleEditKey handles keys while the edit dialog is open. Exactly one of
// two outcomes closes it: save (enter) or cancel (esc).
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		// Cancel: model untouched
		m.edit = nil
		m.editInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		session := *m.edit
		value := m.editInput.Value()
		m.edit = nil
		m.editInput.Blur()
		return m, m.writeParamCmd(session.module, session.param, value)
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// openEditor validates the current selection and opens the edit dialog,
// pre-filled with the live value
func (m Model) openEditor() (tea.Model, tea.Cmd) {
	module, _ := m.selectedModule()
	session, err := beginEdit(module, m.selectedParam())
	if err != nil {
		m.status = statusNotice{kind: statusWarn, text: err.Error()}
		return m, nil
	}
	m.edit = session
	m.editInput.SetValue(session.param.Value)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	return m, textinput.Blink
}

// applyFilter recomputes the visible module list from the current query and
// selects its first entry
func (m *Model) applyFilter() tea.Cmd {
	m.visible = filter.Modules(m.search.Value(), m.allModules)
	m.moduleIdx = 0
	m.paramIdx = 0
	if module, ok := m.selectedModule(); ok {
		return m.loadModelCmd(module)
	}
	m.modModel = nil
	m.refreshParamView()
	return nil
}

// clearSearch resets the query and shows the full module list
func (m *Model) clearSearch() tea.Cmd {
	m.search.SetValue("")
	m.lastQuery = ""
	return m.applyFilter()
}

// moveSelection moves the cursor in the focused list
func (m *Model) moveSelection(delta int) tea.Cmd {
	if m.focus == focusModules {
		idx := clamp(m.moduleIdx+delta, 0, len(m.visible)-1)
		if idx == m.moduleIdx {
			return nil
		}
		m.moduleIdx = idx
		m.paramIdx = 0
		return m.loadModelCmd(m.visible[idx])
	}

	if m.modModel == nil {
		return nil
	}
	m.paramIdx = clamp(m.paramIdx+delta, 0, len(m.modModel.Params)-1)
	m.refreshParamView()
	return nil
}

// selectedModule returns the highlighted module name
func (m Model) selectedModule() (string, bool) {
	if m.moduleIdx < 0 || m.moduleIdx >= len(m.visible) {
		return "", false
	}
	return m.visible[m.moduleIdx], true
}

// selectedParam returns the highlighted parameter record, or nil
func (m Model) selectedParam() *kmod.ParameterRecord {
	if m.modModel == nil || m.paramIdx < 0 || m.paramIdx >= len(m.modModel.Params) {
		return nil
	}
	return &m.modModel.Params[m.paramIdx]
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
