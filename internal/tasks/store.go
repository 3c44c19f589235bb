// Package tasks owns the canonical task list.
//
// Every mutation is written through the Persister and then announced to
// subscribers, which re-read List and Counts. A failed write is logged and
// remembered (SaveErr) but never rolls back the in-memory list.
package tasks

import (
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Makepad-fr/dayplan/internal/model"
)

// Persister loads and saves the full list. persist.Adapter implements it.
type Persister interface {
	Load() []model.Task
	Save(tasks []model.Task) error
}

type Store struct {
	tasks   []model.Task
	p       Persister
	ids     idGen
	subs    map[int]func()
	nextSub int
	saveErr error
	log     *log.Helper
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the id source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids.now = now }
}

func WithLogger(l log.Logger) Option {
	return func(s *Store) {
		s.log = log.NewHelper(log.With(l, "module", "tasks"))
	}
}

// New hydrates a Store from p.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		p:    p,
		ids:  idGen{now: time.Now},
		subs: make(map[int]func()),
		log:  log.NewHelper(log.With(log.GetLogger(), "module", "tasks")),
	}
	for _, o := range opts {
		o(s)
	}
	s.hydrate(p.Load())
	return s
}

// hydrate keeps loaded records in order and as stored. Records with blank
// text are dropped; a record repeating an earlier id gets a fresh one so
// it survives the next save.
func (s *Store) hydrate(loaded []model.Task) {
	s.tasks = make([]model.Task, 0, len(loaded))
	for _, t := range loaded {
		if strings.TrimSpace(t.Text) == "" {
			s.log.Warnf("dropping stored task %d with empty text", t.ID)
			continue
		}
		s.ids.observe(t.ID)
		s.tasks = append(s.tasks, t)
	}

	seen := make(map[int64]struct{}, len(s.tasks))
	for i := range s.tasks {
		id := s.tasks[i].ID
		if _, dup := seen[id]; dup {
			s.tasks[i].ID = s.ids.next()
			s.log.Warnf("stored task %q repeats id %d, renumbered to %d", s.tasks[i].Text, id, s.tasks[i].ID)
		}
		seen[s.tasks[i].ID] = struct{}{}
	}
	s.log.Debugf("hydrated %d tasks", len(s.tasks))
}

// Add appends a pending task with the trimmed text. Blank text is ignored
// and reported as ok=false.
func (s *Store) Add(text string) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}
	t := model.Task{ID: s.ids.next(), Text: text}
	s.tasks = append(s.tasks, t)
	s.commit()
	return t, true
}

// Toggle flips the completed flag of task id. It reports whether the task
// exists; a miss changes nothing.
func (s *Store) Toggle(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.commit()
	return true
}

// Delete removes task id, keeping the order of the rest.
func (s *Store) Delete(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.commit()
	return true
}

// List returns, in list order, the tasks passing filter whose text
// contains search (case-insensitive).
func (s *Store) List(filter model.Filter, search string) []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Matches(t) && model.MatchesSearch(t.Text, search) {
			out = append(out, t)
		}
	}
	return out
}

// Tasks returns a copy of the full list.
func (s *Store) Tasks() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

func (s *Store) Counts() model.Counts {
	return model.CountTasks(s.tasks)
}

func (s *Store) Get(id int64) (model.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Subscribe registers fn to run after every mutation. The returned func
// removes it.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// SaveErr is the error from the most recent write, nil once a write succeeds.
func (s *Store) SaveErr() error { return s.saveErr }

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) commit() {
	s.saveErr = s.p.Save(s.Tasks())
	if s.saveErr != nil {
		s.log.Errorf("save failed, changes kept in memory only: %v", s.saveErr)
	}
	// observers added during notification wait for the next commit
	n := s.nextSub
	for i := 0; i < n; i++ {
		if fn, ok := s.subs[i]; ok {
			fn()
		}
	}
}
