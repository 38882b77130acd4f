package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmodtui/kmodtui/internal/kmod"
)

const minModulePaneWidth = 25

// layout recomputes pane dimensions from the terminal size
func (m *Model) layout() {
	// Header (2), search (3), status (1), help (1)
	bodyHeight := m.height - 7
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	moduleWidth := m.width * 35 / 100
	if moduleWidth < minModulePaneWidth {
		moduleWidth = minModulePaneWidth
	}
	paramWidth := m.width - moduleWidth - 4

	// Viewport sits inside the parameter pane borders and title
	m.paramView.Width = paramWidth - 4
	m.paramView.Height = bodyHeight - 3
	if m.paramView.Height < 1 {
		m.paramView.Height = 1
	}

	inputWidth := m.width - 8
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.search.Width = inputWidth
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.edit != nil {
		return m.editView()
	}
	return m.mainView()
}

// mainView renders the two-pane browser
func (m Model) mainView() string {
	header := m.renderHeader()
	search := m.renderSearch()

	bodyHeight := m.height - 7
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	moduleWidth := m.width * 35 / 100
	if moduleWidth < minModulePaneWidth {
		moduleWidth = minModulePaneWidth
	}
	paramWidth := m.width - moduleWidth - 4

	modules := m.renderModulePane(moduleWidth, bodyHeight)
	params := m.renderParamPane(paramWidth, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, modules, params)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		search,
		body,
		m.renderStatusBar(),
		m.renderHelp(),
	)
}

// renderHeader renders the title bar
func (m Model) renderHeader() string {
	title := HeaderStyle.Render("KMODTUI")
	subtitle := HeaderSubtitleStyle.Render("Kernel module parameter inspector")
	return lipgloss.NewStyle().
		Width(m.width).
		Render(title+"  "+subtitle) + "\n"
}

// renderSearch renders the fuzzy search input
func (m Model) renderSearch() string {
	style := InputStyle
	if m.searchFocused {
		style = style.BorderForeground(ColorBlue)
	}
	return style.Width(m.width - 2).Render(m.search.View())
}

// renderModulePane renders the module list with a scrolling window
func (m Model) renderModulePane(width, height int) string {
	style := PaneStyle
	if m.focus == focusModules {
		style = PaneFocusedStyle
	}

	title := PaneTitleStyle.Render(fmt.Sprintf("Modules (%d/%d)", len(m.visible), len(m.allModules)))

	rows := height - 3
	if rows < 1 {
		rows = 1
	}
	start := 0
	if m.moduleIdx >= rows {
		start = m.moduleIdx - rows + 1
	}
	end := start + rows
	if end > len(m.visible) {
		end = len(m.visible)
	}

	inner := width - 4
	lines := make([]string, 0, rows+1)
	lines = append(lines, title)
	for i := start; i < end; i++ {
		name := truncate(m.visible[i], inner)
		if i == m.moduleIdx {
			lines = append(lines, ModuleSelectedStyle.Width(inner).Render(name))
		} else {
			lines = append(lines, ModuleStyle.Render(name))
		}
	}
	if len(m.visible) == 0 {
		lines = append(lines, DimStyle.Render("No modules match"))
	}

	return style.Width(width - 2).Height(height).Render(strings.Join(lines, "\n"))
}

// renderParamPane renders the parameter viewport for the selected module
func (m Model) renderParamPane(width, height int) string {
	style := PaneStyle
	if m.focus == focusParams {
		style = PaneFocusedStyle
	}

	title := PaneTitleStyle.Render("Module: -")
	if m.modModel != nil {
		title = PaneTitleStyle.Render("Module: " + m.modModel.Module)
	}

	return style.Width(width - 2).Height(height).Render(title + "\n" + m.paramView.View())
}

// refreshParamView re-renders the parameter viewport content and keeps the
// selected record in view
func (m *Model) refreshParamView() {
	content, selStart, selLines := m.renderParamContent()
	m.paramView.SetContent(content)

	if m.paramView.Height <= 0 {
		return
	}
	if selStart < m.paramView.YOffset {
		m.paramView.SetYOffset(selStart)
	} else if bottom := selStart + selLines; bottom > m.paramView.YOffset+m.paramView.Height {
		m.paramView.SetYOffset(bottom - m.paramView.Height)
	}
}

// renderParamContent builds the full parameter listing. It also reports the
// first line and line count of the selected record for scroll tracking.
func (m Model) renderParamContent() (content string, selStart, selLines int) {
	if m.modModel == nil || len(m.modModel.Params) == 0 {
		return DimStyle.Render("No parameters available (or no sysfs params)."), 0, 1
	}

	var b strings.Builder
	line := 0
	for i := range m.modModel.Params {
		p := &m.modModel.Params[i]
		selected := i == m.paramIdx

		block := m.renderParamRecord(p, selected)
		n := strings.Count(block, "\n") + 1
		if selected {
			selStart = line
			selLines = n
		}
		b.WriteString(block)
		line += n
		if i < len(m.modModel.Params)-1 {
			b.WriteString("\n\n")
			line++
		}
	}
	return b.String(), selStart, selLines
}

// renderParamRecord renders one parameter: tag, name, value, description,
// and any persisted overrides
func (m Model) renderParamRecord(p *kmod.ParameterRecord, selected bool) string {
	tag := ReadOnlyTagStyle.Render("[RO] ")
	if p.Writable {
		tag = WritableTagStyle.Render("[RW] ")
	}

	nameStyle := ParamNameStyle
	if selected {
		nameStyle = ParamNameSelectedStyle
	}

	lines := []string{
		tag + nameStyle.Render(p.Name) + " = " + ParamValueStyle.Render(p.Value),
		"  " + ParamDescStyle.Render(p.Description),
	}
	for _, o := range p.Persisted {
		lines = append(lines, "  "+ParamPersistedStyle.Render("Persistent: "+o.File+" -> "+o.Line))
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar renders the transient status notice
func (m Model) renderStatusBar() string {
	if m.status.text == "" {
		return StatusBarStyle.Render("")
	}

	var style lipgloss.Style
	switch m.status.kind {
	case statusSuccess:
		style = SuccessStyle
	case statusWarn:
		style = WarningStyle
	case statusError:
		style = ErrorStyle
	default:
		style = DimStyle
	}
	return StatusBarStyle.Render(style.Render(m.status.text))
}

// renderHelp renders the footer key hints
func (m Model) renderHelp() string {
	parts := make([]string, 0, 8)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, HelpKeyStyle.Render(h.Key)+" "+HelpDescStyle.Render(h.Desc))
	}
	return StatusBarStyle.Render(strings.Join(parts, "  ·  "))
}

// editView renders the modal edit dialog centered on the screen
func (m Model) editView() string {
	p := m.edit.param

	dialog := DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		DialogTitleStyle.Render("Edit parameter: "+p.Name),
		"",
		DimStyle.Render("Current value: ")+ParamValueStyle.Render(p.Value),
		"",
		m.editInput.View(),
		"",
		HelpKeyStyle.Render("enter")+HelpDescStyle.Render(" save")+"   "+
			HelpKeyStyle.Render("esc")+HelpDescStyle.Render(" cancel"),
	))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

// truncate shortens a string to fit a width
func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
