// Package tui is the interactive close-approach explorer: a scrolling view
// of the current query's matches with a live hazardous-filter toggle and,
// when watching is enabled, automatic reload on dataset changes.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/perigee/internal/database"
	"github.com/papapumpkin/perigee/internal/filter"
)

// MsgReload asks the model to rebuild the database from disk. It is sent by
// the watch bridge when a dataset file changes, and by the reload key.
type MsgReload struct{}

// msgReloaded carries the result of an asynchronous reload.
type msgReloaded struct {
	db  *database.Database
	err error
}

// Reloader rebuilds the database from the source files.
type Reloader func() (*database.Database, error)

// Model is the bubbletea model for the explorer.
type Model struct {
	db     *database.Database
	reload Reloader

	// hazardous cycles nil → true → false → nil on the toggle key.
	hazardous *bool

	keys     KeyMap
	viewport viewport.Model
	status   StatusBar
	width    int
	height   int
	ready    bool
	err      error
}

// NewModel creates an explorer over db. reload may be nil, in which case
// the reload key and watch events are ignored.
func NewModel(db *database.Database, reload Reloader) Model {
	m := Model{
		db:     db,
		reload: reload,
		keys:   DefaultKeyMap(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := 3 // status bar + header + footer
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Hazardous):
			m.cycleHazardous()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			return m, m.reloadCmd()
		}

	case MsgReload:
		return m, m.reloadCmd()

	case msgReloaded:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.db = msg.db
		m.err = nil
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.status.View())
	b.WriteString("\n")
	b.WriteString(styleHeader.Render(fmt.Sprintf("%-17s  %-22s  %12s  %10s", "time", "object", "distance", "velocity")))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styleHazardous.Render("reload failed: " + m.err.Error()))
	} else {
		b.WriteString(styleFooter.Render("↑/↓ scroll · h hazardous · r reload · q quit"))
	}
	return b.String()
}

// Hazardous returns the active hazardous filter; nil means unset.
func (m Model) Hazardous() *bool { return m.hazardous }

func (m *Model) cycleHazardous() {
	switch {
	case m.hazardous == nil:
		v := true
		m.hazardous = &v
	case *m.hazardous:
		v := false
		m.hazardous = &v
	default:
		m.hazardous = nil
	}
}

func (m *Model) reloadCmd() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	reload := m.reload
	return func() tea.Msg {
		db, err := reload()
		return msgReloaded{db: db, err: err}
	}
}

// refresh reruns the query against the current database and rebuilds the
// viewport content and status bar.
func (m *Model) refresh() {
	preds := filter.Build(filter.Criteria{Hazardous: m.hazardous})

	var rows []string
	matches := 0
	for ca, err := range m.db.Query(preds) {
		if err != nil {
			m.err = err
			break
		}
		matches++
		line := fmt.Sprintf("%-17s  %-22s  %9.4f au  %7.2f km/s",
			ca.TimeStr(), truncate(ca.NEO.Fullname(), 22), ca.Distance, ca.Velocity)
		if ca.NEO.Hazardous {
			line = styleHazardous.Render(line)
		}
		rows = append(rows, line)
	}

	m.status = StatusBar{
		NEOCount:      m.db.Len(),
		ApproachCount: len(m.db.Approaches()),
		Matches:       matches,
		Hazardous:     m.hazardous,
		Width:         m.width,
	}

	if m.ready {
		m.viewport.SetContent(strings.Join(rows, "\n"))
		m.viewport.GotoTop()
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
