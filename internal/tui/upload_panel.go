package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/types"
)

// UploadPanel owns one selected document, the in-flight flag and the
// analysis of the last successful upload.
type UploadPanel struct {
	ctx      context.Context
	uploader backend.Uploader
	log      zerolog.Logger

	phase    types.UploadPhase
	file     *types.ResumeFile
	pending  *types.ResumeFile // chosen while a request was outstanding
	analysis *types.AnalysisResult
	analyzed *types.ResumeFile // the file the analysis or error belongs to
	last     *backend.UploadResult
	errText  string
	hint     string
	notice   string

	spinner spinner.Model
}

// NewUploadPanel creates an idle upload panel
func NewUploadPanel(ctx context.Context, up backend.Uploader, log zerolog.Logger) *UploadPanel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleWarning

	return &UploadPanel{
		ctx:      ctx,
		uploader: up,
		log:      log,
		phase:    types.UploadIdle,
		spinner:  s,
	}
}

// Phase returns the current lifecycle state
func (p *UploadPanel) Phase() types.UploadPhase { return p.phase }

// File returns the selected document, or nil
func (p *UploadPanel) File() *types.ResumeFile { return p.file }

// Analysis returns the analysis shown on success, or nil
func (p *UploadPanel) Analysis() *types.AnalysisResult { return p.analysis }

// ResultFile returns the file the shown analysis or error belongs to, or nil
func (p *UploadPanel) ResultFile() *types.ResumeFile { return p.analyzed }

// ErrorText returns the message shown on failure
func (p *UploadPanel) ErrorText() string { return p.errText }

// Notice returns the local warning, e.g. a submit without a file
func (p *UploadPanel) Notice() string { return p.notice }

// InFlight reports whether an upload is outstanding; submit is disabled meanwhile
func (p *UploadPanel) InFlight() bool { return p.phase == types.UploadInFlight }

// SelectFile stores f as the document to upload. While a request is
// outstanding the choice is parked and applied once the result arrives.
func (p *UploadPanel) SelectFile(f *types.ResumeFile) {
	if f == nil {
		return
	}
	if p.InFlight() {
		p.pending = f
		return
	}

	p.file = f
	p.phase = types.UploadSelected
	p.analysis = nil
	p.analyzed = nil
	p.errText = ""
	p.hint = ""
	p.notice = ""
}

// Submit starts the upload of the selected file
func (p *UploadPanel) Submit() tea.Cmd {
	if p.InFlight() {
		return nil
	}
	if p.file == nil {
		p.notice = noFileNotice
		return nil
	}

	p.phase = types.UploadInFlight
	p.analysis = nil
	p.analyzed = nil
	p.errText = ""
	p.hint = ""
	p.notice = ""

	return tea.Batch(p.spinner.Tick, uploadCmd(p.ctx, p.uploader, uploadPanelID, p.file))
}

func (p *UploadPanel) handleUploadFinished(msg uploadFinishedMsg) {
	p.analyzed = msg.file

	switch {
	case msg.err != nil:
		p.phase = types.UploadFailed
		p.analysis = nil
		p.errText = backend.MessageOr(msg.err, uploadFallbackError)
		p.hint = categorizeError(msg.err)
		logFailure(p.log, uploadPanelID, msg.file, msg.err, p.hint)

	case msg.result == nil || msg.result.Analysis == nil:
		p.phase = types.UploadFailed
		p.analysis = nil
		p.errText = uploadFallbackError
		p.hint = categorizeError(backend.ErrNoAnalysis)
		logFailure(p.log, uploadPanelID, msg.file, backend.ErrNoAnalysis, p.hint)

	default:
		p.phase = types.UploadSucceeded
		p.analysis = msg.result.Analysis
		p.last = msg.result
		p.log.Info().
			Str("panel", uploadPanelID.String()).
			Str("file", msg.file.Name).
			Str("request_id", msg.result.RequestID).
			Dur("duration", msg.result.Duration).
			Msg("resume analyzed")
	}

	if p.pending != nil {
		p.file = p.pending
		p.pending = nil
	}
}

// Update advances the spinner while a request is outstanding
func (p *UploadPanel) Update(msg tea.Msg) tea.Cmd {
	if !p.InFlight() {
		return nil
	}
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return cmd
}

// View renders the panel body
func (p *UploadPanel) View(width int) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Resume Analysis"))
	b.WriteString("\n\n")

	if p.file != nil {
		b.WriteString(styleLabel.Render("File: "))
		b.WriteString(p.file.Name)
		b.WriteString(styleSubtle.Render(fmt.Sprintf("  %s  %s", backend.FormatSize(p.file.Size), p.file.MediaType)))
		if p.pending != nil {
			b.WriteString(styleSubtle.Render(fmt.Sprintf("  (next: %s)", p.pending.Name)))
		}
	} else {
		b.WriteString(styleSubtle.Render("No file selected"))
	}
	b.WriteString("\n\n")

	if p.InFlight() {
		b.WriteString(styleButtonDisabled.Render(p.spinner.View() + " " + uploadingLabel))
	} else {
		b.WriteString(styleButton.Render(uploadLabel))
	}
	b.WriteString("\n")

	if p.notice != "" {
		b.WriteString("\n")
		b.WriteString(styleWarning.Render(p.notice))
		b.WriteString("\n")
	}

	if p.phase == types.UploadFailed && p.errText != "" {
		b.WriteString("\n")
		if p.analyzed != nil {
			b.WriteString(styleSubtle.Render("Upload of " + p.analyzed.Name + " failed"))
			b.WriteString("\n")
		}
		b.WriteString(styleErrorBox.Width(max(width-4, MinContentWidth)).Render(p.errText))
		b.WriteString("\n")
	}

	if p.phase == types.UploadSucceeded && p.analysis != nil {
		b.WriteString("\n")
		label := "Analysis"
		if p.analyzed != nil {
			label += " of " + p.analyzed.Name
		}
		b.WriteString(styleSuccess.Render(label))
		if p.last != nil {
			b.WriteString(styleSubtle.Render("  " + backend.FormatDuration(p.last.Duration)))
		}
		b.WriteString("\n")
		b.WriteString(renderAnalysis(p.analysis, width))
	}

	return b.String()
}

// analysisField is one labelled row of an analysis; Tags is set for skill lists
type analysisField struct {
	Label  string
	Value  string
	Tags   []string
	IsList bool
}

func analysisFields(a *types.AnalysisResult) []analysisField {
	return []analysisField{
		{Label: "Name", Value: types.OrNA(a.Name)},
		{Label: "Email", Value: types.OrNA(a.Email)},
		{Label: "Core Skills", Value: types.JoinSkills(a.CoreSkills), Tags: a.CoreSkills, IsList: true},
		{Label: "Soft Skills", Value: types.JoinSkills(a.SoftSkills), Tags: a.SoftSkills, IsList: true},
		{Label: "Resume Rating", Value: types.OrNA(a.Rating)},
		{Label: "Improvement Areas", Value: types.OrNA(a.Improvements)},
		{Label: "Upskill Suggestions", Value: types.OrNA(a.Upskill)},
	}
}

func renderAnalysis(a *types.AnalysisResult, width int) string {
	valueStyle := lipgloss.NewStyle().Width(max(width-4, MinContentWidth))

	var b strings.Builder
	for _, f := range analysisFields(a) {
		b.WriteString(styleLabel.Render(f.Label + ":"))
		b.WriteString("\n")
		if f.IsList {
			if tags := renderTags(f.Tags); tags != "" {
				b.WriteString(tags)
				b.WriteString("\n")
			}
		} else {
			b.WriteString(valueStyle.Render(f.Value))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderTags draws one chip per skill; no skills renders nothing
func renderTags(skills []string) string {
	if len(skills) == 0 {
		return ""
	}
	chips := make([]string, 0, len(skills))
	for _, s := range skills {
		chips = append(chips, styleTag.Render(s))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// analysisText is the plain-text form copied to the clipboard
func analysisText(a *types.AnalysisResult) string {
	var b strings.Builder
	for _, f := range analysisFields(a) {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	return b.String()
}
