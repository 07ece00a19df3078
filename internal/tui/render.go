package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/resumedesk/internal/keybinds"
)

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeRawJSON:
		return m.renderRawJSON()
	default:
		return m.renderMain()
	}
}

// renderMain renders the tab bar, the active panel and the status bar.
// Only the active panel is drawn; the hidden one keeps its state.
func (m *Model) renderMain() string {
	var body string
	switch {
	case m.mode == ModePicker:
		body = m.renderPicker()
	case m.activeTab == TabList:
		body = m.list.View(m.width-PanelPadding, m.mode == ModeSearch)
	default:
		body = m.upload.View(m.width - PanelPadding)
	}

	height := m.bodyHeight()
	panel := styleBox.
		Width(max(m.width-PanelPadding, MinContentWidth)).
		Height(height).
		MaxHeight(height + PanelPadding).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		panel,
		m.renderStatusBar(),
	)
}

func (m *Model) renderTabs() string {
	labels := []string{"1 Upload", "2 Resume List"}

	tabs := make([]string, len(labels))
	for i, label := range labels {
		if i == TabList && m.list.Loading() {
			label += " " + m.list.spinner.View()
		}
		if i == TabUpload && m.upload.InFlight() {
			label += " " + m.upload.spinner.View()
		}
		if i == m.activeTab {
			tabs[i] = styleTabActive.Render(label)
		} else {
			tabs[i] = styleTabInactive.Render(label)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	if m.baseURL != "" {
		spacing := m.width - lipgloss.Width(row) - lipgloss.Width(m.baseURL) - 1
		if spacing > 0 {
			row = lipgloss.JoinHorizontal(lipgloss.Bottom, row, strings.Repeat(" ", spacing), styleSubtle.Render(m.baseURL))
		}
	}
	return row
}

func (m *Model) renderPicker() string {
	var b strings.Builder
	title := "Select a resume"
	if m.pickerTarget == listPanelID {
		title = "Select a resume to upload"
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString(styleSubtle.Render("  " + m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	return b.String()
}

func (m *Model) renderStatusBar() string {
	var right string
	switch {
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	default:
		right = styleSubtle.Render(m.footerHints())
	}

	left := styleLabel.Render(m.modeLabel())
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return left + strings.Repeat(" ", spacing) + right
}

func (m *Model) modeLabel() string {
	switch m.mode {
	case ModePicker:
		return "PICK"
	case ModeSearch:
		return "FILTER"
	default:
		if m.activeTab == TabList {
			return "LIST"
		}
		return "UPLOAD"
	}
}

// footerHints lists the main keys of the current view, following user overrides
func (m *Model) footerHints() string {
	hint := func(ctx keybinds.Context, action keybinds.Action, label string) string {
		return m.keybinds.GetBindingString(ctx, action) + " " + label
	}

	var parts []string
	switch {
	case m.mode == ModePicker:
		parts = []string{"enter choose", hint(keybinds.ContextPicker, keybinds.ActionCloseModal, "cancel")}
	case m.mode == ModeSearch:
		parts = []string{
			hint(keybinds.ContextSearch, keybinds.ActionTextSubmit, "apply"),
			hint(keybinds.ContextSearch, keybinds.ActionTextCancel, "cancel"),
		}
	case m.activeTab == TabList:
		parts = []string{
			hint(keybinds.ContextList, keybinds.ActionRefresh, "refresh"),
			hint(keybinds.ContextList, keybinds.ActionUploadFromList, "upload"),
			hint(keybinds.ContextList, keybinds.ActionOpenSearch, "filter"),
		}
	default:
		parts = []string{
			hint(keybinds.ContextUpload, keybinds.ActionOpenPicker, "pick"),
			hint(keybinds.ContextUpload, keybinds.ActionSubmit, "upload"),
			hint(keybinds.ContextUpload, keybinds.ActionCopyAnalysis, "copy"),
			hint(keybinds.ContextUpload, keybinds.ActionToggleRaw, "json"),
		}
	}
	if m.mode == ModeNormal {
		parts = append(parts,
			hint(keybinds.ContextGlobal, keybinds.ActionNextTab, "switch"),
			hint(keybinds.ContextGlobal, keybinds.ActionOpenHelp, "help"),
			hint(keybinds.ContextGlobal, keybinds.ActionQuit, "quit"),
		)
	}
	return strings.Join(parts, " · ")
}

func (m *Model) renderRawJSON() string {
	header := styleTitle.Render("Analysis JSON")
	if f := m.upload.ResultFile(); f != nil {
		header += styleSubtle.Render("  " + f.Name)
	}
	box := styleBox.Width(max(m.width-PanelPadding, MinContentWidth)).Render(m.rawView.View())
	footer := styleSubtle.Render(fmt.Sprintf("%s close · %s copy · %3.f%%",
		m.keybinds.GetBindingString(keybinds.ContextViewer, keybinds.ActionCloseModal),
		m.keybinds.GetBindingString(keybinds.ContextViewer, keybinds.ActionCopyAnalysis),
		m.rawView.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, header, box, footer)
}

func (m *Model) renderHelp() string {
	box := styleBox.Width(max(m.width-PanelPadding, MinContentWidth)).Render(m.helpView.View())
	footer := styleSubtle.Render(m.keybinds.GetBindingString(keybinds.ContextHelp, keybinds.ActionCloseModal) + " close")
	return lipgloss.JoinVertical(lipgloss.Left, box, footer)
}

// updateHelpView builds the help text from the live keybindings
func (m *Model) updateHelpView() {
	sections := []struct {
		title string
		ctx   keybinds.Context
	}{
		{"GLOBAL", keybinds.ContextGlobal},
		{"UPLOAD TAB", keybinds.ContextUpload},
		{"RESUME LIST TAB", keybinds.ContextList},
		{"FILE PICKER", keybinds.ContextPicker},
		{"FILTER INPUT", keybinds.ContextSearch},
		{"JSON VIEWER", keybinds.ContextViewer},
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("resumedesk - Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styleLabel.Render(section.title))
		b.WriteString("\n")

		// group keys per action, keeping first-seen order
		var order []keybinds.Action
		keys := make(map[keybinds.Action][]string)
		for _, binding := range m.keybinds.ListBindings(section.ctx) {
			if binding.Context != section.ctx {
				continue
			}
			if _, seen := keys[binding.Action]; !seen {
				order = append(order, binding.Action)
			}
			keys[binding.Action] = append(keys[binding.Action], binding.Key)
		}
		for _, action := range order {
			info := keybinds.GetActionInfo(action)
			fmt.Fprintf(&b, "  %-16s %s\n", strings.Join(keys[action], "/"), info.Description)
		}
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("Overrides: ~/.resumedesk/keybinds.json"))
	b.WriteString("\n")

	m.helpView.SetContent(b.String())
}
