// Package ui рисует прогресс `kaleido parse <dir> --ui` поверх событий driver.ParseDir.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"kaleido/internal/driver"
)

// maxRows ограничивает список файлов; остальные сворачиваются в "+N more".
const maxRows = 12

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	statusStyles = map[driver.FileStatus]lipgloss.Style{
		driver.FileQueued:  dimStyle,
		driver.FileParsing: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.FileDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.FileCached:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		driver.FileFailed:  errStyle,
	}
)

type fileRow struct {
	path   string
	status driver.FileStatus
	items  int
	errors uint
	err    error
}

func (r *fileRow) finished() bool {
	return r.status == driver.FileDone || r.status == driver.FileCached || r.status == driver.FileFailed
}

func (r *fileRow) detail() string {
	switch {
	case r.err != nil:
		return r.err.Error()
	case r.finished():
		return fmt.Sprintf("%d items, %d errors", r.items, r.errors)
	}
	return ""
}

type progressModel struct {
	title   string
	events  <-chan driver.FileEvent
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	done    bool
}

type eventMsg driver.FileEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file parse progress.
// The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.FileEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = statusStyles[driver.FileParsing]

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40

	rows := make([]fileRow, len(files))
	byPath := make(map[string]int, len(files))
	for i, file := range files {
		rows[i] = fileRow{path: file}
		byPath[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		byPath:  byPath,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.FileEvent(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = min(msg.Width-20, 60)
		}
	case tea.KeyMsg:
		// разбор идёт в фоне, UI только перестаёт рисовать
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

// next ждёт следующее событие; закрытый канал означает конец разбора.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.FileEvent) tea.Cmd {
	idx, ok := m.byPath[ev.Path]
	if !ok {
		return nil
	}
	row := &m.rows[idx]
	row.status = ev.Status
	row.items = ev.Items
	row.errors = ev.Errors
	row.err = ev.Err
	return m.bar.SetPercent(float64(m.finished()) / float64(len(m.rows)))
}

func (m *progressModel) finished() int {
	n := 0
	for i := range m.rows {
		if m.rows[i].finished() {
			n++
		}
	}
	return n
}

type totals struct {
	items  int
	errors uint
	cached int
	failed int
}

func (m *progressModel) totals() totals {
	var t totals
	for i := range m.rows {
		r := &m.rows[i]
		t.items += r.items
		t.errors += r.errors
		switch r.status {
		case driver.FileCached:
			t.cached++
		case driver.FileFailed:
			t.failed++
		}
	}
	return t
}

// visible выбирает строки для списка: незавершённые и упавшие файлы важнее
// успешно разобранных, порядок файлов сохраняется.
func (m *progressModel) visible() (rows []int, hidden int) {
	if len(m.rows) <= maxRows {
		rows = make([]int, len(m.rows))
		for i := range rows {
			rows[i] = i
		}
		return rows, 0
	}
	pick := make([]bool, len(m.rows))
	n := 0
	for pass := 0; pass < 2 && n < maxRows; pass++ {
		for i := range m.rows {
			if n == maxRows {
				break
			}
			r := &m.rows[i]
			urgent := !r.finished() || r.status == driver.FileFailed || r.errors > 0
			if !pick[i] && (pass == 1 || urgent) {
				pick[i] = true
				n++
			}
		}
	}
	for i, ok := range pick {
		if ok {
			rows = append(rows, i)
		}
	}
	return rows, len(m.rows) - n
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.rows))
	if m.done {
		b.WriteString(titleStyle.Render("done: " + header))
	} else {
		b.WriteString(m.spinner.View() + " " + titleStyle.Render(header))
	}
	b.WriteString("\n\n")

	nameWidth := max(m.width-12, 20)
	rows, hidden := m.visible()
	for _, i := range rows {
		r := &m.rows[i]
		status := statusStyles[r.status].Render(fmt.Sprintf("%8s", r.status))
		line := r.path
		if d := r.detail(); d != "" {
			line += "  " + d
		}
		line = truncate(line, nameWidth)
		if r.status == driver.FileFailed || r.errors > 0 {
			line = errStyle.Render(line)
		}
		fmt.Fprintf(&b, "  %s %s\n", status, line)
	}
	if hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %8s +%d more", "", hidden)))
		b.WriteString("\n")
	}

	t := m.totals()
	b.WriteString("\n  ")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	summary := fmt.Sprintf(" %d items, %d errors", t.items, t.errors)
	if t.cached > 0 {
		summary += fmt.Sprintf(", %d cached", t.cached)
	}
	if t.failed > 0 {
		summary += fmt.Sprintf(", %d unreadable", t.failed)
	}
	if t.errors > 0 || t.failed > 0 {
		summary = errStyle.Render(summary)
	}
	b.WriteString(summary)
	b.WriteString("\n")
	return b.String()
}

// truncate режет по ширине на экране, а не по байтам.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// ширина в Truncate уже включает хвост
	return runewidth.Truncate(value, width, "...")
}
