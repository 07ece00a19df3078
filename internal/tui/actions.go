package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/types"
)

// uploadCmd uploads file once and reports back to panel
func uploadCmd(ctx context.Context, up backend.Uploader, panel panelID, file *types.ResumeFile) tea.Cmd {
	return func() tea.Msg {
		result, err := up.Upload(ctx, file)
		return uploadFinishedMsg{panel: panel, file: file, result: result, err: err}
	}
}

// fetchCmd loads the full resume list
func fetchCmd(ctx context.Context, lister backend.Lister) tea.Cmd {
	return func() tea.Msg {
		records, err := lister.ListResumes(ctx)
		return resumesLoadedMsg{records: records, err: err}
	}
}

// logFailure reports a failed request on the log; file is nil for list fetches
func logFailure(log zerolog.Logger, panel panelID, file *types.ResumeFile, err error, hint string) {
	ev := log.Error().
		Err(err).
		Str("panel", panel.String()).
		Int("status", backend.StatusOf(err)).
		Str("request_id", backend.RequestIDOf(err)).
		Str("hint", hint)

	if file == nil {
		ev.Msg("failed to fetch resumes")
		return
	}
	ev.Str("file", file.Name).Int64("size", file.Size).Msg("failed to upload resume")
}

// openPicker shows the file picker for target
func (m *Model) openPicker(target panelID) tea.Cmd {
	m.pickerTarget = target

	fp := filepicker.New()
	fp.CurrentDirectory = m.startDir
	fp.AllowedTypes = m.pickerExtensions()
	fp.AutoHeight = true
	fp, _ = fp.Update(m.pickerSizeMsg())

	m.picker = fp
	m.mode = ModePicker
	return m.picker.Init()
}

func (m *Model) pickerExtensions() []string {
	if m.pickerTarget == listPanelID {
		return types.ListPanelExtensions
	}
	return types.UploadPanelExtensions
}

// copyAnalysis copies the current analysis as plain text
func (m *Model) copyAnalysis() tea.Cmd {
	a := m.upload.Analysis()
	if a == nil {
		return m.setErrorMessage("No analysis to copy")
	}
	if err := m.copyToClipboard(analysisText(a)); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to copy to clipboard: %v", err))
	}
	return m.setStatusMessage("Analysis copied to clipboard")
}

// updateRawView fills the raw viewer with the highlighted analysis JSON
func (m *Model) updateRawView() {
	content, err := highlightJSON(m.upload.Analysis())
	if err != nil {
		m.rawView.SetContent(styleError.Render(err.Error()))
		return
	}
	m.rawView.SetContent(content)
}

// highlightJSON pretty-prints v and colors it for the terminal.
// If highlighting fails the plain indented JSON is returned.
func highlightJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(data), "json", "terminal256", "monokai"); err != nil {
		return string(data), nil
	}
	return buf.String(), nil
}
