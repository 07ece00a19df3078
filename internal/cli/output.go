package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/config"
	"github.com/studiowebux/resumedesk/internal/filter"
	"github.com/studiowebux/resumedesk/internal/types"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFailed = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

// render formats v. A query is applied to the JSON form first and its result
// is printed as JSON whatever the format.
func render(v any, format, query string, text func() string) (string, error) {
	if query != "" {
		if !filter.IsValidJMESPath(query) {
			return "", fmt.Errorf("invalid JMESPath query %q", query)
		}
		out, err := filter.ApplyValue(v, query)
		if err != nil {
			return "", fmt.Errorf("failed to apply query: %w", err)
		}
		return out + "\n", nil
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatText, "":
		return text(), nil

	default:
		return "", fmt.Errorf("unknown output format %q (use json, yaml or text)", format)
	}
}

// emit prints output, or writes it to SavePath
func emit(opts OutputOptions, output string) error {
	if opts.SavePath != "" {
		if err := os.WriteFile(opts.SavePath, []byte(output), config.FilePermissions); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Fprintf(opts.stderr(), "Output saved to %s\n", opts.SavePath)
		return nil
	}
	_, err := fmt.Fprint(opts.stdout(), output)
	return err
}

func outcomesText(outcomes []UploadOutcome) string {
	var sb strings.Builder
	for i, o := range outcomes {
		if i > 0 {
			sb.WriteString("\n")
		}
		if o.Failed() {
			sb.WriteString(styleFailed.Render("✗ " + o.File))
			if o.Status != 0 {
				sb.WriteString(styleDim.Render(fmt.Sprintf("  %d", o.Status)))
			}
			sb.WriteString("\n  " + o.Error + "\n")
			continue
		}

		sb.WriteString(styleOK.Render("✓ " + o.File))
		sb.WriteString(styleDim.Render(fmt.Sprintf("  %d  %s", o.Status, o.Duration)))
		sb.WriteString("\n")
		for _, line := range analysisLines(o.Analysis) {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

// analysisLines renders an analysis as "Label: value" lines; scalars fall back to N/A
func analysisLines(a *types.AnalysisResult) []string {
	return []string{
		"Name: " + types.OrNA(a.Name),
		"Email: " + types.OrNA(a.Email),
		"Core Skills: " + types.JoinSkills(a.CoreSkills),
		"Soft Skills: " + types.JoinSkills(a.SoftSkills),
		"Rating: " + types.OrNA(a.Rating),
		"Improvements: " + types.OrNA(a.Improvements),
		"Upskill Suggestions: " + types.OrNA(a.Upskill),
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
}

func recordsText(records []types.ResumeRecord) string {
	if len(records) == 0 {
		return "No resumes uploaded yet\n"
	}

	t := newTable("ID", "FILENAME", "UPLOADED", "NAME", "RATING", "CORE SKILLS")
	for _, r := range records {
		name, rating, skills := "", "", ""
		if r.Analysis != nil {
			name = types.OrNA(r.Analysis.Name)
			rating = types.OrNA(r.Analysis.Rating)
			skills = types.JoinSkills(r.Analysis.CoreSkills)
		}
		t.Row(r.ID.String(), r.Filename, r.UploadedAt.Format(), name, rating, skills)
	}
	return t.String() + "\n"
}

func journalText(entries []types.JournalEntry) string {
	if len(entries) == 0 {
		return "Journal is empty\n"
	}

	t := newTable("ID", "TIME", "SOURCE", "FILE", "SIZE", "STATUS", "ERROR")
	for _, e := range entries {
		status := ""
		if e.Status != 0 {
			status = strconv.Itoa(e.Status)
		}
		t.Row(
			strconv.FormatInt(e.ID, 10),
			types.ParseTimestamp(e.Timestamp).Format(),
			e.Source,
			e.Filename,
			backend.FormatSize(e.Size),
			status,
			e.Error,
		)
	}
	return t.String() + "\n"
}
