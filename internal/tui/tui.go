package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/perigee/internal/database"
	"github.com/papapumpkin/perigee/internal/watch"
)

// Program is an alias for tea.Program, exposed so callers don't need to
// import bubbletea directly.
type Program = tea.Program

// NewProgram creates a bubbletea program for the explorer. The program uses
// the alternate screen buffer.
func NewProgram(db *database.Database, reload Reloader, opts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{tea.WithAltScreen()}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(NewModel(db, reload), allOpts...)
}

// Run starts the explorer and blocks until it exits. If w is non-nil, its
// reload events are forwarded to the model so the view tracks the dataset
// on disk.
func Run(db *database.Database, reload Reloader, w *watch.Watcher) error {
	p := NewProgram(db, reload)

	if w != nil {
		go func() {
			for range w.Reloads {
				p.Send(MsgReload{})
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explorer: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs output to the given
// writer. Useful for testing.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
