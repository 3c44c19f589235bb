package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/dayplan/internal/model"
	"github.com/Makepad-fr/dayplan/internal/persist"
	"github.com/Makepad-fr/dayplan/internal/store/memstore"
	"github.com/Makepad-fr/dayplan/internal/tasks"
	"github.com/Makepad-fr/dayplan/internal/view"
)

func newModel(t *testing.T) (*Model, *tasks.Store, *memstore.Store) {
	t.Helper()
	kv := memstore.New()
	st := tasks.New(persist.NewAdapter(kv), tasks.WithClock(func() time.Time { return time.UnixMilli(1) }))
	m := New(st, log.DefaultLogger)
	t.Cleanup(m.Close)
	return m, st, kv
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func TestAddFlow(t *testing.T) {
	m, st, _ := newModel(t)

	press(m, "a", "Buy milk", "enter")
	assert.Equal(t, modeNormal, m.mode)
	require.Len(t, st.Tasks(), 1)
	assert.Equal(t, "Buy milk", st.Tasks()[0].Text)
	assert.Len(t, m.list.Items(), 1)
	assert.Contains(t, m.View(), "Buy milk")
}

func TestAddFlow_EmptyTextShowsHint(t *testing.T) {
	m, st, _ := newModel(t)

	press(m, "a", "   ", "enter")
	assert.Equal(t, modeAdding, m.mode, "stays in the add box")
	assert.Equal(t, view.EmptyTextHint, m.snap.Hint)
	assert.Contains(t, m.View(), view.EmptyTextHint)
	assert.Empty(t, st.Tasks())

	press(m, "esc")
	assert.Equal(t, modeNormal, m.mode)
	assert.Empty(t, m.snap.Hint)
}

func TestAddFlow_QIsTextNotQuit(t *testing.T) {
	m, st, _ := newModel(t)

	press(m, "a", "q")
	assert.Equal(t, modeAdding, m.mode)
	press(m, "enter")
	require.Len(t, st.Tasks(), 1)
	assert.Equal(t, "q", st.Tasks()[0].Text)
}

func TestToggleAndDeleteSelected(t *testing.T) {
	m, st, _ := newModel(t)
	st.Add("first")
	st.Add("second")
	require.Len(t, m.list.Items(), 2, "store changes reach the view")

	press(m, "down", " ")
	second := st.Tasks()[1]
	assert.True(t, second.Completed)
	assert.False(t, st.Tasks()[0].Completed)

	press(m, "d")
	require.Len(t, st.Tasks(), 1)
	assert.Equal(t, "first", st.Tasks()[0].Text)
	assert.Equal(t, model.Counts{Total: 1, Pending: 1}, m.snap.Counts)
}

func TestFilterCycle(t *testing.T) {
	m, st, _ := newModel(t)
	done, _ := st.Add("done")
	st.Add("open")
	st.Toggle(done.ID)

	press(m, "f")
	assert.Equal(t, model.FilterCompleted, m.snap.Filter)
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "done", m.list.Items()[0].FilterValue())

	press(m, "f")
	assert.Equal(t, model.FilterPending, m.snap.Filter)
	assert.Equal(t, "open", m.list.Items()[0].FilterValue())

	press(m, "f")
	assert.Equal(t, model.FilterAll, m.snap.Filter)
	assert.Len(t, m.list.Items(), 2)
}

func TestSearchIsLive(t *testing.T) {
	m, st, _ := newModel(t)
	st.Add("Buy Milk")
	st.Add("Walk dog")

	press(m, "/", "MI")
	assert.Equal(t, modeSearching, m.mode)
	assert.Equal(t, "MI", m.snap.Search)
	require.Len(t, m.list.Items(), 1)

	press(m, "enter")
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "MI", m.snap.Search, "enter keeps the term")

	press(m, "/", "x")
	assert.Empty(t, m.list.Items())
	assert.Contains(t, m.View(), "Try a different search term")

	press(m, "esc")
	assert.Empty(t, m.snap.Search)
	assert.Len(t, m.list.Items(), 2)
}

func TestClearSearch(t *testing.T) {
	m, st, _ := newModel(t)
	st.Add("a")
	press(m, "/", "zzz", "enter")
	assert.Empty(t, m.list.Items())

	press(m, "c")
	assert.Len(t, m.list.Items(), 1)
}

func TestSaveErrorShown(t *testing.T) {
	m, _, kv := newModel(t)
	kv.PutErr = errors.New("disk full")

	press(m, "a", "x", "enter")
	assert.Contains(t, m.View(), "not saved: ")
	assert.Len(t, m.list.Items(), 1)
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
