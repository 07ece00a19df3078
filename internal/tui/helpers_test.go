package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/types"
)

// fakeUploader returns a canned result and counts calls
type fakeUploader struct {
	mu     sync.Mutex
	calls  int
	files  []*types.ResumeFile
	result *backend.UploadResult
	err    error
}

func (f *fakeUploader) Upload(ctx context.Context, file *types.ResumeFile) (*backend.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.files = append(f.files, file)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeUploader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeLister serves successive responses; the last one repeats
type fakeLister struct {
	mu        sync.Mutex
	calls     int
	responses [][]types.ResumeRecord
	err       error
}

func (f *fakeLister) ListResumes(ctx context.Context) ([]types.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return []types.ResumeRecord{}, nil
	}
	i := min(f.calls, len(f.responses)) - 1
	return f.responses[i], nil
}

func (f *fakeLister) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// CreateTestModel creates a sized Model over fakes
func CreateTestModel(t *testing.T, up *fakeUploader, lister *fakeLister) *Model {
	t.Helper()

	m, err := New(Options{
		Context:  context.Background(),
		Uploader: up,
		Lister:   lister,
		Logger:   zerolog.Nop(),
		StartDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	m.copyToClipboard = func(string) error { return nil }
	m.statusTimeout = 0
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// runCmd executes cmd and feeds every resulting request message back into m,
// following chained commands. Timers and spinner ticks are dropped so the
// loop terminates.
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command chain did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case uploadFinishedMsg, resumesLoadedMsg:
			_, follow := m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// runPanelCmd is runCmd for a panel used on its own
func runPanelCmd(t *testing.T, cmd tea.Cmd, apply func(tea.Msg) tea.Cmd) {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command chain did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case uploadFinishedMsg, resumesLoadedMsg:
			queue = append(queue, apply(msg))
		}
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}
