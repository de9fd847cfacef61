package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/glossgraph/internal/datasource"
	"github.com/vanderheijden86/glossgraph/pkg/debug"
)

// saveTimeout bounds one session write.
const saveTimeout = 2 * time.Second

// SessionStore persists UI preferences between runs.
type SessionStore interface {
	LoadSession(ctx context.Context) (datasource.Session, error)
	SaveSession(ctx context.Context, s datasource.Session) error
}

// sessionSavedMsg reports the outcome of a background save.
type sessionSavedMsg struct{ err error }

// saveSessionCmd writes s off the update loop.
func saveSessionCmd(store SessionStore, s datasource.Session) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		err := store.SaveSession(ctx, s)
		if err != nil {
			debug.Log("session save failed: %v", err)
		}
		return sessionSavedMsg{err: err}
	}
}
