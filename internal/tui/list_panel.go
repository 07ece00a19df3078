package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/filter"
	"github.com/studiowebux/resumedesk/internal/types"
)

// ResumeListPanel owns the fetched resume collection and its loading state.
// It can also upload a document and refresh afterwards.
type ResumeListPanel struct {
	ctx      context.Context
	uploader backend.Uploader
	lister   backend.Lister
	log      zerolog.Logger

	phase   types.ListPhase
	records []types.ResumeRecord
	loading bool
	errText string
	hint    string
	started bool

	query    string
	search   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
}

// NewResumeListPanel creates an idle list panel; nothing is fetched until Activate
func NewResumeListPanel(ctx context.Context, up backend.Uploader, lister backend.Lister, log zerolog.Logger) *ResumeListPanel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleWarning

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by filename"
	ti.CharLimit = 256

	return &ResumeListPanel{
		ctx:      ctx,
		uploader: up,
		lister:   lister,
		log:      log,
		phase:    types.ListIdle,
		records:  []types.ResumeRecord{},
		search:   ti,
		spinner:  s,
		viewport: viewport.New(80, 20),
	}
}

// Phase returns the current lifecycle state
func (p *ResumeListPanel) Phase() types.ListPhase { return p.phase }

// Records returns the held collection, unfiltered
func (p *ResumeListPanel) Records() []types.ResumeRecord { return p.records }

// Loading reports whether a fetch or upload is outstanding
func (p *ResumeListPanel) Loading() bool { return p.loading }

// ErrorText returns the message shown on failure
func (p *ResumeListPanel) ErrorText() string { return p.errText }

// Query returns the active filename filter
func (p *ResumeListPanel) Query() string { return p.query }

// Activate performs the first fetch; later calls do nothing
func (p *ResumeListPanel) Activate() tea.Cmd {
	if p.started {
		return nil
	}
	p.started = true
	return p.Refresh()
}

// Refresh re-fetches the whole collection
func (p *ResumeListPanel) Refresh() tea.Cmd {
	p.started = true
	p.loading = true
	p.phase = types.ListLoading
	p.errText = ""
	p.hint = ""
	return tea.Batch(p.spinner.Tick, fetchCmd(p.ctx, p.lister))
}

// UploadAndRefresh uploads f and, on success, refreshes the list once.
// The analysis in the upload response is not used here.
func (p *ResumeListPanel) UploadAndRefresh(f *types.ResumeFile) tea.Cmd {
	if f == nil {
		return nil
	}
	p.loading = true
	p.phase = types.ListLoading
	p.errText = ""
	p.hint = ""
	return tea.Batch(p.spinner.Tick, uploadCmd(p.ctx, p.uploader, listPanelID, f))
}

func (p *ResumeListPanel) handleUploadFinished(msg uploadFinishedMsg) tea.Cmd {
	if msg.err != nil {
		p.loading = false
		p.phase = types.ListFailed
		p.errText = backend.DetailOr(msg.err, listUploadFallback)
		p.hint = categorizeError(msg.err)
		logFailure(p.log, listPanelID, msg.file, msg.err, p.hint)
		return nil
	}

	p.log.Info().
		Str("panel", listPanelID.String()).
		Str("file", msg.file.Name).
		Str("request_id", msg.result.RequestID).
		Msg("resume uploaded, refreshing list")
	return p.Refresh()
}

func (p *ResumeListPanel) handleResumesLoaded(msg resumesLoadedMsg) {
	p.loading = false
	if msg.err != nil {
		p.phase = types.ListFailed
		p.errText = listFetchError
		p.hint = categorizeError(msg.err)
		logFailure(p.log, listPanelID, nil, msg.err, p.hint)
		return
	}

	p.records = msg.records
	if p.records == nil {
		p.records = []types.ResumeRecord{}
	}
	p.phase = types.ListLoaded
	p.updateContent()
	p.viewport.GotoTop()
}

// Update advances the spinner while loading
func (p *ResumeListPanel) Update(msg tea.Msg) tea.Cmd {
	if !p.loading {
		return nil
	}
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return cmd
}

// SetSize resizes the scrollable record area
func (p *ResumeListPanel) SetSize(width, height int) {
	p.viewport.Width = max(width, MinContentWidth)
	p.viewport.Height = max(height, MinContentHeight)
	p.search.Width = max(width-4, MinContentWidth)
	p.updateContent()
}

// Scroll moves the record viewport for a navigation action
func (p *ResumeListPanel) Scroll(lines int) {
	if lines < 0 {
		p.viewport.LineUp(-lines)
	} else {
		p.viewport.LineDown(lines)
	}
}

// openSearch focuses the filename filter
func (p *ResumeListPanel) openSearch() tea.Cmd {
	p.search.SetValue(p.query)
	p.search.CursorEnd()
	return p.search.Focus()
}

// commitSearch applies the typed filter and leaves the input
func (p *ResumeListPanel) commitSearch() {
	p.query = strings.TrimSpace(p.search.Value())
	p.search.Blur()
	p.updateContent()
	p.viewport.GotoTop()
}

// cancelSearch leaves the input without changing the active filter
func (p *ResumeListPanel) cancelSearch() {
	p.search.Blur()
}

// clearSearch drops the filter
func (p *ResumeListPanel) clearSearch() {
	p.query = ""
	p.search.SetValue("")
	p.updateContent()
}

func (p *ResumeListPanel) updateSearch(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	return cmd
}

// visible returns the records matching the filter, without touching the collection
func (p *ResumeListPanel) visible() []types.ResumeRecord {
	if p.query == "" {
		return p.records
	}
	idx := filter.MatchRecords(p.records, p.query)
	out := make([]types.ResumeRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, p.records[i])
	}
	return out
}

func (p *ResumeListPanel) updateContent() {
	records := p.visible()
	if len(records) == 0 {
		if p.query != "" {
			p.viewport.SetContent(styleSubtle.Render(fmt.Sprintf("No resumes match %q", p.query)))
		} else {
			p.viewport.SetContent(styleSubtle.Render("No resumes uploaded yet"))
		}
		return
	}

	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString(styleSubtle.Render(strings.Repeat("─", max(p.viewport.Width-2, 10))))
			b.WriteString("\n")
		}
		for j, line := range recordLines(rec) {
			label, value, _ := strings.Cut(line, ": ")
			if j == 0 {
				b.WriteString(styleTitle.Render(value))
			} else {
				b.WriteString(styleLabel.Render(label+":") + " " + value)
			}
			b.WriteString("\n")
		}
	}
	p.viewport.SetContent(b.String())
}

// recordLines renders one record as "Label: value" lines. Scalars fall back
// to N/A; skills are comma-joined and stay empty when absent.
func recordLines(rec types.ResumeRecord) []string {
	lines := []string{
		"Filename: " + rec.Filename,
		"Uploaded: " + rec.UploadedAt.Format(),
	}
	if a := rec.Analysis; a != nil {
		lines = append(lines,
			"Name: "+types.OrNA(a.Name),
			"Email: "+types.OrNA(a.Email),
			"Core Skills: "+types.JoinSkills(a.CoreSkills),
			"Soft Skills: "+types.JoinSkills(a.SoftSkills),
			"Rating: "+types.OrNA(a.Rating),
			"Improvements: "+types.OrNA(a.Improvements),
			"Upskill Suggestions: "+types.OrNA(a.Upskill),
		)
	}
	return lines
}

// View renders the panel body
func (p *ResumeListPanel) View(width int, searching bool) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Uploaded Resumes"))
	if p.phase == types.ListLoaded || len(p.records) > 0 {
		shown := len(p.visible())
		if p.query != "" {
			b.WriteString(styleSubtle.Render(fmt.Sprintf("  %d of %d", shown, len(p.records))))
		} else {
			b.WriteString(styleSubtle.Render(fmt.Sprintf("  %d", len(p.records))))
		}
	}
	b.WriteString("\n")

	if p.loading {
		b.WriteString(p.spinner.View() + " " + styleWarning.Render("Loading..."))
		b.WriteString("\n")
	}

	if p.errText != "" {
		b.WriteString(styleErrorBox.Width(max(width-4, MinContentWidth)).Render(p.errText))
		b.WriteString("\n")
	}

	switch {
	case searching:
		b.WriteString(p.search.View())
		b.WriteString("\n")
	case p.query != "":
		b.WriteString(styleSubtle.Render("filter: " + p.query))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.viewport.View())

	return b.String()
}
