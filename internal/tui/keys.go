package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/resumedesk/internal/keybinds"
	"github.com/studiowebux/resumedesk/internal/types"
)

// handleKeyPress handles all keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c is reserved and works in every mode
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.mode {
	case ModePicker:
		return m.handlePickerKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeRawJSON:
		return m.handleViewerKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	return m.handleNormalKeys(msg)
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(m.activeContext(), msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit
	case keybinds.ActionNextTab:
		m.switchTab(m.activeTab + 1)
		return nil
	case keybinds.ActionPrevTab:
		m.switchTab(m.activeTab - 1)
		return nil
	case keybinds.ActionTabUpload:
		m.switchTab(TabUpload)
		return nil
	case keybinds.ActionTabList:
		m.switchTab(TabList)
		return nil
	case keybinds.ActionOpenHelp:
		m.updateHelpView()
		m.helpView.GotoTop()
		m.mode = ModeHelp
		return nil
	}

	if m.activeTab == TabList {
		return m.handleListAction(action)
	}
	return m.handleUploadAction(action)
}

func (m *Model) handleUploadAction(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionOpenPicker:
		return m.openPicker(uploadPanelID)

	case keybinds.ActionSubmit:
		return m.upload.Submit()

	case keybinds.ActionCopyAnalysis:
		return m.copyAnalysis()

	case keybinds.ActionToggleRaw:
		if m.upload.Analysis() == nil {
			return m.setErrorMessage("No analysis to show")
		}
		m.updateRawView()
		m.rawView.GotoTop()
		m.mode = ModeRawJSON
	}
	return nil
}

func (m *Model) handleListAction(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionRefresh:
		if m.list.Loading() {
			return m.setStatusMessage("Already loading")
		}
		return m.list.Refresh()

	case keybinds.ActionUploadFromList:
		if m.list.Loading() {
			return m.setStatusMessage("Wait for the current request to finish")
		}
		return m.openPicker(listPanelID)

	case keybinds.ActionOpenSearch:
		m.mode = ModeSearch
		return m.list.openSearch()

	case keybinds.ActionClearSearch:
		if m.list.Query() != "" {
			m.list.clearSearch()
			return m.setStatusMessage("Filter cleared")
		}

	case keybinds.ActionNavigateUp:
		m.list.Scroll(-1)
	case keybinds.ActionNavigateDown:
		m.list.Scroll(1)
	case keybinds.ActionPageUp:
		m.list.viewport.ViewUp()
	case keybinds.ActionPageDown:
		m.list.viewport.ViewDown()
	case keybinds.ActionGoToTop:
		m.list.viewport.GotoTop()
	case keybinds.ActionGoToBottom:
		m.list.viewport.GotoBottom()
	}
	return nil
}

// handlePickerKeys forwards keys to the file picker and applies its selection
func (m *Model) handlePickerKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.MatchLocal(keybinds.ContextPicker, msg.String()); ok && action == keybinds.ActionCloseModal {
		m.mode = ModeNormal
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		return tea.Batch(cmd, m.applySelection(path, false))
	}
	// Accepted types are advisory: a file outside them can still be chosen
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return tea.Batch(cmd, m.applySelection(path, true))
	}
	return cmd
}

// applySelection hands a picked path to the panel that opened the picker
func (m *Model) applySelection(path string, outsideAccepted bool) tea.Cmd {
	m.mode = ModeNormal
	m.startDir = m.picker.CurrentDirectory

	f, err := types.NewResumeFile(path)
	if err != nil {
		m.log.Warn().Err(err).Str("path", path).Msg("failed to open selected file")
		return m.setErrorMessage(fmt.Sprintf("Failed to open file: %v", err))
	}

	status := "Selected " + f.Name
	if outsideAccepted {
		status = fmt.Sprintf("%s is not one of %s, sending anyway", f.Name, strings.Join(m.pickerExtensions(), " "))
	}

	switch m.pickerTarget {
	case listPanelID:
		return tea.Batch(m.list.UploadAndRefresh(f), m.setStatusMessage(status))
	default:
		m.upload.SelectFile(f)
		if m.upload.InFlight() {
			status = f.Name + " will be selected when the current upload finishes"
		}
		return m.setStatusMessage(status)
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.MatchLocal(keybinds.ContextSearch, msg.String())
	if ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.list.commitSearch()
			m.mode = ModeNormal
			return nil
		case keybinds.ActionTextCancel:
			m.list.cancelSearch()
			m.mode = ModeNormal
			return nil
		}
	}
	return m.list.updateSearch(msg)
}

func (m *Model) handleViewerKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextViewer, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionCopyAnalysis:
		return m.copyAnalysis()
	case keybinds.ActionNavigateUp:
		m.rawView.LineUp(1)
	case keybinds.ActionNavigateDown:
		m.rawView.LineDown(1)
	case keybinds.ActionPageUp:
		m.rawView.ViewUp()
	case keybinds.ActionPageDown:
		m.rawView.ViewDown()
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit
	}
	return nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextHelp, msg.String())
	if partial || !ok {
		// Plain arrows scroll the help text
		switch msg.String() {
		case "up", "k":
			m.helpView.LineUp(1)
		case "down", "j":
			m.helpView.LineDown(1)
		}
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit
	}
	return nil
}
