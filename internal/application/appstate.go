// Package application contains use-case orchestration services.
package application

import (
	"fmt"
	"slices"
	"sync"

	"github.com/risinglab/jewelpanel/internal/domain/model"
)

// FetchStatus tracks the category request lifecycle.
type FetchStatus string

const (
	FetchIdle     FetchStatus = "idle"
	FetchPending  FetchStatus = "pending"
	FetchSettled  FetchStatus = "settled"
	FetchRejected FetchStatus = "rejected"
)

// State is the shared, per-session dashboard state. Values are copied out of
// the Store; mutating a State has no effect on the Store.
type State struct {
	Categories       []model.Category
	CategoriesStatus FetchStatus
	CategoriesError  string
	JewelleryLoading bool
	LastMutation     string // Action type of the last settled mutation.
	MutationError    string
}

// Action is a described state change. Only the action types declared in this
// package implement it.
type Action interface {
	// Type returns the action tag, e.g. "category/fetchAll/fulfilled".
	Type() string
	apply(State) State
}

// CategoriesRequested marks a category fetch as outstanding.
type CategoriesRequested struct{}

func (CategoriesRequested) Type() string { return "category/fetchAll/pending" }

func (CategoriesRequested) apply(s State) State {
	s.CategoriesStatus = FetchPending
	s.CategoriesError = ""
	return s
}

// CategoriesFetched stores the fetched category list.
type CategoriesFetched struct {
	Categories []model.Category
}

func (CategoriesFetched) Type() string { return "category/fetchAll/fulfilled" }

func (a CategoriesFetched) apply(s State) State {
	s.Categories = slices.Clone(a.Categories)
	s.CategoriesStatus = FetchSettled
	s.CategoriesError = ""
	return s
}

// CategoriesFailed records a failed category fetch. Previously fetched
// categories are kept.
type CategoriesFailed struct {
	Err error
}

func (CategoriesFailed) Type() string { return "category/fetchAll/rejected" }

func (a CategoriesFailed) apply(s State) State {
	s.CategoriesStatus = FetchRejected
	s.CategoriesError = errorText(a.Err)
	return s
}

// MutationStarted marks a jewellery create or update as outstanding.
type MutationStarted struct {
	Kind model.MutationKind
}

func (a MutationStarted) Type() string { return mutationActionType(a.Kind, "pending") }

func (MutationStarted) apply(s State) State {
	s.JewelleryLoading = true
	s.MutationError = ""
	return s
}

// MutationSettled records the terminal outcome of a jewellery mutation.
type MutationSettled struct {
	Kind    model.MutationKind
	Outcome model.Outcome
	Err     error
}

func (a MutationSettled) Type() string { return mutationActionType(a.Kind, string(a.Outcome)) }

func (a MutationSettled) apply(s State) State {
	s.JewelleryLoading = false
	s.LastMutation = a.Type()
	s.MutationError = errorText(a.Err)
	return s
}

func mutationActionType(kind model.MutationKind, phase string) string {
	return fmt.Sprintf("jewellery/%s/%s", kind, phase)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Store holds a State and applies Actions to it. Subscribers are notified
// synchronously after every dispatch, outside the lock.
type Store struct {
	mu          sync.RWMutex
	state       State
	nextID      int
	subscribers map[int]func(State)
}

// NewStore creates a Store with an idle initial state.
func NewStore() *Store {
	return &Store{
		state:       State{CategoriesStatus: FetchIdle},
		subscribers: make(map[int]func(State)),
	}
}

// Dispatch applies the action and notifies subscribers with the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = a.apply(s.state)
	next := s.snapshotLocked()
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	st := s.state
	st.Categories = slices.Clone(s.state.Categories)
	return st
}

// Subscribe registers fn for state changes and returns a function that
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}
