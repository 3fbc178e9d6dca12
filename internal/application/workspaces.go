package application

import (
	"context"
	"sync"
	"time"

	"github.com/risinglab/jewelpanel/internal/domain/model"
)

// Workspace is the dashboard state owned by one signed-in session.
type Workspace struct {
	Session model.Session
	Store   *Store
	Dialog  *JewelleryDialog
	Menu    *AccountMenu
}

// Workspaces maps session token IDs to their workspace.
type Workspaces struct {
	dialogs     *DialogServices
	signOuter   SignOuter
	callbackURL string
	delay       time.Duration

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewWorkspaces creates an empty registry. callbackURL and delay configure
// every account menu.
func NewWorkspaces(dialogs *DialogServices, signOuter SignOuter, callbackURL string, delay time.Duration) *Workspaces {
	return &Workspaces{
		dialogs:     dialogs,
		signOuter:   signOuter,
		callbackURL: callbackURL,
		delay:       delay,
		items:       make(map[string]*Workspace),
	}
}

// Get returns the workspace of session, creating it on first use.
func (w *Workspaces) Get(session model.Session) *Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ws, ok := w.items[session.TokenID]; ok {
		return ws
	}

	store := NewStore()
	ws := &Workspace{
		Session: session,
		Store:   store,
		Dialog:  NewJewelleryDialog(w.dialogs, store, session.Email),
		Menu:    NewAccountMenu(w.signOuter, w.callbackURL, w.delay),
	}
	w.items[session.TokenID] = ws
	return ws
}

// Drop removes the workspace of tokenID and closes its dialog, cancelling
// any in-flight submission.
func (w *Workspaces) Drop(tokenID string) {
	w.mu.Lock()
	ws, ok := w.items[tokenID]
	delete(w.items, tokenID)
	w.mu.Unlock()

	if ok {
		ws.Dialog.Close()
	}
}

// EvictExpired drops every workspace whose session expired before now and
// returns how many were dropped.
func (w *Workspaces) EvictExpired(now time.Time) int {
	w.mu.Lock()
	var expired []*Workspace
	for id, ws := range w.items {
		if !ws.Session.ExpiresAt.IsZero() && !now.Before(ws.Session.ExpiresAt) {
			expired = append(expired, ws)
			delete(w.items, id)
		}
	}
	w.mu.Unlock()

	for _, ws := range expired {
		ws.Dialog.Close()
	}
	return len(expired)
}

// StartSweep evicts expired workspaces every interval. It blocks until ctx
// is cancelled.
func (w *Workspaces) StartSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.dialogs.logger.Info("workspace sweep stopped")
			return
		case now := <-ticker.C:
			if n := w.EvictExpired(now); n > 0 {
				w.dialogs.logger.Debug("evicted expired workspaces", "count", n)
			}
		}
	}
}

// Len returns the number of live workspaces.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}
