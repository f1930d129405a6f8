// Package browse is an interactive terminal viewer over aggregated search
// results: a scrolling list with a full-detail pane per job.
package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 0, 0, 4)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 0, 0, 4)

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24")).
				Padding(0, 0, 0, 2)

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24")).
				Padding(0, 0, 0, 2)

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(14)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type browseModel struct {
	jobs     []model.Job
	cursor   int
	top      int // first visible list index
	width    int
	height   int
	view     viewState
	detail   viewport.Model
	ready    bool
	wantQuit bool
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail = viewport.New(msg.Width-4, msg.Height-6)
		if m.view == viewDetail {
			m.detail.SetContent(m.renderDetail())
		}
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.wantQuit = true
			return m, tea.Quit
		case "up", "k":
			if m.view == viewList && m.cursor > 0 {
				m.cursor--
				m.scrollIntoView()
			} else if m.view == viewDetail {
				m.detail.ScrollUp(1)
			}
		case "down", "j":
			if m.view == viewList && m.cursor < len(m.jobs)-1 {
				m.cursor++
				m.scrollIntoView()
			} else if m.view == viewDetail {
				m.detail.ScrollDown(1)
			}
		case "enter":
			if m.view == viewList && len(m.jobs) > 0 {
				m.view = viewDetail
				m.detail.SetContent(m.renderDetail())
				m.detail.GotoTop()
			}
		case "esc", "backspace":
			if m.view == viewDetail {
				m.view = viewList
			}
		}
	}
	return m, nil
}

// visibleRows returns how many list items fit in the current window.
func (m browseModel) visibleRows() int {
	rows := (m.height - 5) / jobItemHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *browseModel) scrollIntoView() {
	rows := m.visibleRows()
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+rows {
		m.top = m.cursor - rows + 1
	}
}

func (m browseModel) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.view == viewDetail {
		return titleBarStyle.Render("Job Detail") + "\n" +
			m.detail.View() + "\n" +
			hintStyle.Render("↑/↓ scroll  esc back  q quit")
	}

	var b strings.Builder
	b.WriteString(titleBarStyle.Render(fmt.Sprintf("Search Results (%d jobs)", len(m.jobs))))
	b.WriteString("\n")

	if len(m.jobs) == 0 {
		b.WriteString(jobSubtitleStyle.Render("no jobs matched the query") + "\n")
	}

	rows := m.visibleRows()
	end := m.top + rows
	if end > len(m.jobs) {
		end = len(m.jobs)
	}
	for i := m.top; i < end; i++ {
		j := m.jobs[i]
		title := j.Title
		subtitle := jobSubtitle(j)
		if i == m.cursor {
			b.WriteString(selectedTitleStyle.Render("> "+title) + "\n")
			b.WriteString(selectedSubtitleStyle.Render("  "+subtitle) + "\n\n")
		} else {
			b.WriteString(jobTitleStyle.Render(title) + "\n")
			b.WriteString(jobSubtitleStyle.Render(subtitle) + "\n\n")
		}
	}

	b.WriteString(hintStyle.Render("↑/↓/j/k navigate  enter detail  q quit"))
	return b.String()
}

func jobSubtitle(j model.Job) string {
	parts := []string{j.Company}
	if j.Location != "" {
		parts = append(parts, j.Location)
	}
	parts = append(parts, fmt.Sprintf("%s/%s", j.Type, j.Level))
	if j.Remote {
		parts = append(parts, "remote")
	}
	parts = append(parts, j.CreatedAt.Format("2006-01-02"), j.Source)
	return strings.Join(parts, "  ·  ")
}

func (m browseModel) renderDetail() string {
	j := m.jobs[m.cursor]

	row := func(label, value string) string {
		if value == "" {
			return ""
		}
		return detailLabelStyle.Render(label) + value + "\n"
	}

	var b strings.Builder
	b.WriteString(row("Title", j.Title))
	b.WriteString(row("Company", j.Company))
	b.WriteString(row("Location", j.Location))
	b.WriteString(row("Salary", j.Salary))
	b.WriteString(row("Type", string(j.Type)))
	b.WriteString(row("Level", string(j.Level)))
	b.WriteString(row("Remote", map[bool]string{true: "yes", false: "no"}[j.Remote]))
	b.WriteString(row("Tags", strings.Join(j.Tags, ", ")))
	b.WriteString(row("Posted", j.CreatedAt.Format(time.RFC1123)))
	b.WriteString(row("Source", j.Source))
	b.WriteString("\n" + j.Description + "\n")
	return b.String()
}

// Run shows the results browser and blocks until the user quits.
func Run(jobs []model.Job) error {
	m := browseModel{jobs: jobs}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
