package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/types"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

// item is one candidate document
type item struct {
	path string
	name string
	size int64
}

func (i item) FilterValue() string { return i.name }

func (i item) Title() string {
	return fmt.Sprintf("%s (%s)", i.name, backend.FormatSize(i.size))
}

func (i item) Description() string { return "" }

type selectorModel struct {
	list     list.Model
	choices  []string
	quitting bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// typing a filter owns every key except ctrl+c
		if m.list.FilterState() == list.Filtering && msg.String() != "ctrl+c" {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.choices = nil
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(item); ok {
				m.choices = []string{i.path}
			}
			m.quitting = true
			return m, tea.Quit

		case "a", "A":
			// every visible document
			for _, li := range m.list.VisibleItems() {
				if i, ok := li.(item); ok {
					m.choices = append(m.choices, i.path)
				}
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • enter: upload • a: upload all • /: filter • q/ctrl+c: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// findResumes lists the files in dir whose extension is one of exts, by name
func findResumes(dir string, exts []string) ([]item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var items []item
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		f := types.ResumeFile{Name: e.Name()}
		if !f.HasExtension(exts) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, item{path: filepath.Join(dir, e.Name()), name: e.Name(), size: info.Size()})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].name < items[j].name })
	return items, nil
}

// PromptForResumes shows an interactive list of the resumes in dir and
// returns the chosen paths
func PromptForResumes(dir string) ([]string, error) {
	found, err := findResumes(dir, types.UploadPanelExtensions)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no %s files in %s", strings.Join(types.UploadPanelExtensions, "/"), dir)
	}

	items := make([]list.Item, 0, len(found))
	for _, f := range found {
		items = append(items, f)
	}

	const defaultWidth = 80
	const listHeight = 14

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = fmt.Sprintf("Select a resume to upload from %s", dir)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	p := tea.NewProgram(selectorModel{list: l})
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(selectorModel)
	if len(result.choices) == 0 {
		return nil, fmt.Errorf("selection cancelled")
	}
	return result.choices, nil
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
