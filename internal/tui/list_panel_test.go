package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/types"
)

func newTestListPanel(up backend.Uploader, lister backend.Lister) *ResumeListPanel {
	p := NewResumeListPanel(context.Background(), up, lister, zerolog.Nop())
	p.SetSize(100, 40)
	return p
}

// applyTo routes messages the way the shell does for the list panel
func applyTo(p *ResumeListPanel) func(tea.Msg) tea.Cmd {
	return func(msg tea.Msg) tea.Cmd {
		switch msg := msg.(type) {
		case uploadFinishedMsg:
			return p.handleUploadFinished(msg)
		case resumesLoadedMsg:
			p.handleResumesLoaded(msg)
		}
		return nil
	}
}

func record(id, filename string, a *types.AnalysisResult) types.ResumeRecord {
	return types.ResumeRecord{
		ID:         types.StringID(id),
		Filename:   filename,
		UploadedAt: types.ParseTimestamp("2024-03-01T10:00:00Z"),
		Analysis:   a,
	}
}

func TestResumeListPanel_ActivateFetchesOnce(t *testing.T) {
	lister := &fakeLister{responses: [][]types.ResumeRecord{{record("1", "a.pdf", nil)}}}
	p := newTestListPanel(&fakeUploader{}, lister)

	cmd := p.Activate()
	if !p.Loading() {
		t.Fatal("loading should be set before the fetch returns")
	}
	runPanelCmd(t, cmd, applyTo(p))

	if again := p.Activate(); again != nil {
		t.Error("second Activate should not fetch")
	}
	AssertModelField(t, "list calls", lister.Calls(), 1)
	AssertModelField(t, "phase", p.Phase(), types.ListLoaded)
	AssertModelField(t, "records", len(p.Records()), 1)
	AssertModelField(t, "loading", p.Loading(), false)
}

func TestResumeListPanel_EmptyList(t *testing.T) {
	lister := &fakeLister{responses: [][]types.ResumeRecord{{}}}
	p := newTestListPanel(&fakeUploader{}, lister)

	runPanelCmd(t, p.Refresh(), applyTo(p))

	AssertModelField(t, "phase", p.Phase(), types.ListLoaded)
	AssertModelField(t, "records", len(p.Records()), 0)
	AssertModelField(t, "error", p.ErrorText(), "")
	if !strings.Contains(p.View(100, false), "No resumes uploaded yet") {
		t.Error("empty list should say so")
	}
}

func TestResumeListPanel_FetchFailure(t *testing.T) {
	lister := &fakeLister{err: &backend.TransportError{Op: "list", Err: errors.New("connection refused")}}
	p := newTestListPanel(&fakeUploader{}, lister)

	runPanelCmd(t, p.Refresh(), applyTo(p))

	AssertModelField(t, "phase", p.Phase(), types.ListFailed)
	AssertModelField(t, "error", p.ErrorText(), listFetchError)
	AssertModelField(t, "loading", p.Loading(), false)
	if !strings.Contains(p.View(100, false), listFetchError) {
		t.Error("view should show the fetch error")
	}
}

func TestResumeListPanel_RefreshClearsStaleError(t *testing.T) {
	lister := &fakeLister{err: errors.New("boom")}
	p := newTestListPanel(&fakeUploader{}, lister)
	runPanelCmd(t, p.Refresh(), applyTo(p))

	lister.err = nil
	p.Refresh()
	AssertModelField(t, "error while loading", p.ErrorText(), "")
}

func TestResumeListPanel_UploadAndRefreshReplacesCollection(t *testing.T) {
	before := []types.ResumeRecord{record("1", "old.pdf", nil)}
	after := []types.ResumeRecord{record("2", "new.pdf", janeDoe()), record("3", "other.pdf", nil)}
	lister := &fakeLister{responses: [][]types.ResumeRecord{before, after}}
	up := &fakeUploader{result: &backend.UploadResult{Status: 200}}
	p := newTestListPanel(up, lister)

	runPanelCmd(t, p.Refresh(), applyTo(p))
	AssertModelField(t, "initial records", len(p.Records()), 1)

	runPanelCmd(t, p.UploadAndRefresh(types.NewResumeFileFromBytes("new.pdf", []byte("x"))), applyTo(p))

	AssertModelField(t, "upload calls", up.Calls(), 1)
	AssertModelField(t, "list calls", lister.Calls(), 2)
	AssertModelField(t, "records", len(p.Records()), 2)
	AssertModelField(t, "first record", p.Records()[0].Filename, "new.pdf")
	AssertModelField(t, "phase", p.Phase(), types.ListLoaded)
	AssertModelField(t, "loading", p.Loading(), false)
}

func TestResumeListPanel_UploadFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"backend detail", &backend.BackendError{Op: "upload", Status: 422, Detail: "Y"}, "Y"},
		{"message is not used by the list tab", &backend.BackendError{Op: "upload", Status: 500, Message: "X"}, listUploadFallback},
		{"transport error", &backend.TransportError{Op: "upload", Err: errors.New("reset")}, listUploadFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &fakeLister{}
			p := newTestListPanel(&fakeUploader{err: tt.err}, lister)

			runPanelCmd(t, p.UploadAndRefresh(types.NewResumeFileFromBytes("cv.pdf", []byte("x"))), applyTo(p))

			AssertModelField(t, "error", p.ErrorText(), tt.want)
			AssertModelField(t, "phase", p.Phase(), types.ListFailed)
			AssertModelField(t, "loading", p.Loading(), false)
			AssertModelField(t, "list calls", lister.Calls(), 0)
		})
	}
}

func TestRecordLines(t *testing.T) {
	rec := record("1", "cv.pdf", &types.AnalysisResult{
		Name:       types.StringPtr("Jane Doe"),
		CoreSkills: []string{"Go", "SQL"},
	})

	lines := strings.Join(recordLines(rec), "\n")
	for _, want := range []string{
		"Filename: cv.pdf",
		"Name: Jane Doe",
		"Email: N/A",
		"Core Skills: Go, SQL",
		"Soft Skills: ",
		"Rating: N/A",
		"Improvements: N/A",
		"Upskill Suggestions: N/A",
	} {
		if !strings.Contains(lines, want) {
			t.Errorf("record lines missing %q:\n%s", want, lines)
		}
	}
	if strings.Contains(lines, "Soft Skills: N/A") {
		t.Error("empty skills must not render as N/A")
	}

	bare := recordLines(record("2", "bare.pdf", nil))
	AssertModelField(t, "lines without analysis", len(bare), 2)
}

func TestResumeListPanel_FilterIsDisplayOnly(t *testing.T) {
	records := []types.ResumeRecord{
		record("1", "alice_resume.pdf", nil),
		record("2", "bob_cv.pdf", nil),
	}
	p := newTestListPanel(&fakeUploader{}, &fakeLister{responses: [][]types.ResumeRecord{records}})
	runPanelCmd(t, p.Refresh(), applyTo(p))

	p.openSearch()
	p.search.SetValue("alice")
	p.commitSearch()

	AssertModelField(t, "visible", len(p.visible()), 1)
	AssertModelField(t, "held", len(p.Records()), 2)

	p.clearSearch()
	AssertModelField(t, "visible after clear", len(p.visible()), 2)
}
