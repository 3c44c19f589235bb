// Package view holds the presentation-side state (filter and search) and
// forwards user intents into a tasks.Store. Renderers read Snapshot and
// never keep a copy of the list of their own.
package view

import (
	"github.com/Makepad-fr/dayplan/internal/model"
	"github.com/Makepad-fr/dayplan/internal/tasks"
)

// EmptyTextHint is set on the snapshot when a blank task is submitted.
const EmptyTextHint = "Task text cannot be empty"

// Intents are the raw user actions a renderer forwards.
type Intents interface {
	OnSubmitNewTask(text string)
	OnToggle(id int64)
	OnDelete(id int64)
	OnFilterChange(f model.Filter)
	OnSearchChange(term string)
}

// Snapshot is everything needed to draw one frame.
type Snapshot struct {
	Tasks   []model.Task
	Counts  model.Counts
	Filter  model.Filter
	Search  string
	Hint    string
	SaveErr error
}

var _ Intents = (*Session)(nil)

type Session struct {
	store  *tasks.Store
	filter model.Filter
	search string
	hint   string
	snap   Snapshot
	render func(Snapshot)
	cancel func()
}

// NewSession subscribes to store. render, if non-nil, is called with a
// fresh snapshot after every store mutation and filter/search change.
func NewSession(store *tasks.Store, render func(Snapshot)) *Session {
	s := &Session{store: store, render: render}
	s.cancel = store.Subscribe(s.refresh)
	s.snap = s.compute()
	return s
}

// Close stops listening to the store.
func (s *Session) Close() { s.cancel() }

func (s *Session) Snapshot() Snapshot { return s.snap }

func (s *Session) OnSubmitNewTask(text string) {
	if _, ok := s.store.Add(text); !ok {
		s.hint = EmptyTextHint
		s.refresh()
	}
}

func (s *Session) OnToggle(id int64) { s.store.Toggle(id) }

func (s *Session) OnDelete(id int64) { s.store.Delete(id) }

func (s *Session) OnFilterChange(f model.Filter) {
	s.filter = f
	s.refresh()
}

func (s *Session) OnSearchChange(term string) {
	s.search = term
	s.refresh()
}

// ClearHint drops a pending validation hint.
func (s *Session) ClearHint() {
	if s.snap.Hint != "" {
		s.refresh()
	}
}

func (s *Session) refresh() {
	s.snap = s.compute()
	// a hint is shown until the next refresh
	s.hint = ""
	if s.render != nil {
		s.render(s.snap)
	}
}

func (s *Session) compute() Snapshot {
	return Snapshot{
		Tasks:   s.store.List(s.filter, s.search),
		Counts:  s.store.Counts(),
		Filter:  s.filter,
		Search:  s.search,
		Hint:    s.hint,
		SaveErr: s.store.SaveErr(),
	}
}
