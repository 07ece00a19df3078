package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/keybinds"
	"github.com/studiowebux/resumedesk/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModePicker
	ModeSearch
	ModeRawJSON
	ModeHelp
)

// Tab indices
const (
	TabUpload = iota
	TabList
	tabCount
)

// defaultStatusTimeout is how long status and error messages stay in the footer
const defaultStatusTimeout = 5 * time.Second

// Options wires a Model to its collaborators
type Options struct {
	Context context.Context

	// Uploader serves the Upload tab. ListUploader serves uploads started
	// from the list tab and defaults to Uploader.
	Uploader     backend.Uploader
	ListUploader backend.Uploader
	Lister       backend.Lister

	Keybinds *keybinds.Registry
	Logger   zerolog.Logger
	StartDir string
	BaseURL  string
}

// Model is the tab shell. It owns both panels for the program's lifetime
// and routes results to them by panel id, whichever tab is visible.
type Model struct {
	activeTab int
	upload    *UploadPanel
	list      *ResumeListPanel
	keybinds  *keybinds.Registry
	log       zerolog.Logger
	mode      Mode

	// File picker overlay
	picker       filepicker.Model
	pickerTarget panelID
	startDir     string

	rawView  viewport.Model
	helpView viewport.Model

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
	baseURL   string

	statusTimeout time.Duration // zero keeps messages until replaced

	copyToClipboard func(string) error
}

// New creates the tab shell
func New(opts Options) (*Model, error) {
	if opts.Uploader == nil {
		return nil, fmt.Errorf("an uploader is required")
	}
	if opts.Lister == nil {
		return nil, fmt.Errorf("a lister is required")
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	listUploader := opts.ListUploader
	if listUploader == nil {
		listUploader = opts.Uploader
	}
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}
	startDir := opts.StartDir
	if startDir == "" {
		startDir = "."
	}

	return &Model{
		activeTab:       TabUpload,
		upload:          NewUploadPanel(ctx, opts.Uploader, opts.Logger),
		list:            NewResumeListPanel(ctx, listUploader, opts.Lister, opts.Logger),
		keybinds:        registry,
		log:             opts.Logger,
		mode:            ModeNormal,
		startDir:        startDir,
		rawView:         viewport.New(80, 20),
		helpView:        viewport.New(80, 20),
		baseURL:         opts.BaseURL,
		statusTimeout:   defaultStatusTimeout,
		copyToClipboard: clipboard.WriteAll,
	}, nil
}

// Run starts the TUI and blocks until it exits
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}

	p := tea.NewProgram(m, programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Init fetches the resume list eagerly
func (m *Model) Init() tea.Cmd {
	return m.list.Activate()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.mode == ModePicker {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(m.pickerSizeMsg())
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case uploadFinishedMsg:
		return m, m.routeUploadFinished(msg)

	case resumesLoadedMsg:
		m.list.handleResumesLoaded(msg)
		if msg.err != nil {
			return m, m.setErrorMessage(listFetchError + ": " + m.list.hint)
		}
		return m, m.setStatusMessage(fmt.Sprintf("Loaded %d resumes", len(msg.records)))

	case spinner.TickMsg:
		return m, tea.Batch(m.upload.Update(msg), m.list.Update(msg))

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case clearErrorMsg:
		m.errorMsg = ""
		return m, nil
	}

	// Directory reads and cursor blinks belong to whichever overlay is open
	var cmd tea.Cmd
	switch m.mode {
	case ModePicker:
		m.picker, cmd = m.picker.Update(msg)
	case ModeSearch:
		cmd = m.list.updateSearch(msg)
	}
	return m, cmd
}

// routeUploadFinished hands a result to the panel that started the request
func (m *Model) routeUploadFinished(msg uploadFinishedMsg) tea.Cmd {
	switch msg.panel {
	case uploadPanelID:
		m.upload.handleUploadFinished(msg)
		if msg.err != nil || msg.result == nil || msg.result.Analysis == nil {
			return m.setErrorMessage(m.upload.hint)
		}
		return m.setStatusMessage("Analyzed " + msg.file.Name)

	case listPanelID:
		cmd := m.list.handleUploadFinished(msg)
		if msg.err != nil {
			return tea.Batch(cmd, m.setErrorMessage(m.list.hint))
		}
		return tea.Batch(cmd, m.setStatusMessage("Uploaded "+msg.file.Name))
	}
	return nil
}

// resize distributes the window to the panels and viewports
func (m *Model) resize() {
	body := m.bodyHeight()
	m.list.SetSize(m.width-PanelPadding-2, body-listHeaderRows)
	m.rawView.Width = max(m.width-PanelPadding, MinContentWidth)
	m.rawView.Height = max(m.height-StatusBarHeight-PanelPadding-1, MinContentHeight)
	m.helpView.Width = max(m.width-PanelPadding, MinContentWidth)
	m.helpView.Height = max(m.height-StatusBarHeight-PanelPadding-1, MinContentHeight)
}

// bodyHeight is the height left for the active panel
func (m *Model) bodyHeight() int {
	return max(m.height-TabBarHeight-StatusBarHeight-PanelPadding, MinContentHeight)
}

func (m *Model) pickerSizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  m.width,
		Height: max(m.bodyHeight()-PickerMargin+pickerAutoHeightMargin, MinContentHeight+pickerAutoHeightMargin),
	}
}

func (m *Model) switchTab(tab int) {
	if m.activeTab != tab {
		m.keybinds.ClearMultiKeyState(m.activeContext())
	}
	m.activeTab = (tab + tabCount) % tabCount
}

func (m *Model) activeContext() keybinds.Context {
	if m.activeTab == TabList {
		return keybinds.ContextList
	}
	return keybinds.ContextUpload
}

func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncate(msg, StatusMaxLength)
	m.errorMsg = ""
	if m.statusTimeout <= 0 {
		return nil
	}
	return tea.Tick(m.statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncate(msg, StatusMaxLength)
	if m.statusTimeout <= 0 {
		return nil
	}
	return tea.Tick(m.statusTimeout, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// truncate cuts s to n runes, the last three being "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

// panelID tags requests with the panel that started them
type panelID int

const (
	uploadPanelID panelID = iota
	listPanelID
)

func (p panelID) String() string {
	if p == listPanelID {
		return "list"
	}
	return "upload"
}

// Custom message types
type uploadFinishedMsg struct {
	panel  panelID
	file   *types.ResumeFile
	result *backend.UploadResult
	err    error
}

type resumesLoadedMsg struct {
	records []types.ResumeRecord
	err     error
}

type clearStatusMsg struct{}
type clearErrorMsg struct{}
