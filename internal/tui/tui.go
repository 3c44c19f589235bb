package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Makepad-fr/dayplan/internal/model"
	"github.com/Makepad-fr/dayplan/internal/tasks"
	"github.com/Makepad-fr/dayplan/internal/ui"
	"github.com/Makepad-fr/dayplan/internal/view"
)

// listItem adapts model.Task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) FilterValue() string { return i.task.Text }

type mode int

const (
	modeNormal mode = iota
	modeAdding
	modeSearching
)

// Model is the Bubble Tea model. It owns no task data: every frame is
// drawn from the latest view.Snapshot, refreshed by the session whenever
// the store changes.
type Model struct {
	session *view.Session
	snap    view.Snapshot

	list   list.Model
	input  textinput.Model // inline add
	search textinput.Model
	mode   mode

	width, height int
	log           *log.Helper
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.task.Text
	if it.task.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	filterBind = key.NewBinding(key.WithKeys("f", "tab"), key.WithHelp("f", "filter"))
	searchBind = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	clearBind  = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear search"))
	quitBind   = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit"))
)

// New builds the model over store and subscribes it.
func New(store *tasks.Store, logger log.Logger) *Model {
	if logger == nil {
		logger = log.GetLogger()
	}
	m := &Model{
		width:  80,
		height: 24,
		log:    log.NewHelper(log.With(logger, "module", "tui")),
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("task", "tasks")
	l.KeyMap.Quit.SetEnabled(false)
	extra := func() []key.Binding {
		return []key.Binding{addBind, toggleBind, deleteBind, filterBind, searchBind, clearBind, quitBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra
	m.list = l

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "Add a new task..."
	m.input.CharLimit = 200

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search tasks..."

	m.session = view.NewSession(store, m.apply)
	m.apply(m.session.Snapshot())
	m.resize()
	return m
}

// Close unsubscribes from the store.
func (m *Model) Close() { m.session.Close() }

// Run starts the program on the alternate screen. Changes are saved by
// the store as they happen, so quitting needs no final write.
func Run(store *tasks.Store, logger log.Logger) error {
	m := New(store, logger)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// apply is the session's render callback.
func (m *Model) apply(s view.Snapshot) {
	m.snap = s
	items := make([]list.Item, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		items = append(items, listItem{task: t})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("My Tasks"),
		successStyle.Render("✔"), s.Counts.Completed,
		pendingStyle.Render("•"), s.Counts.Pending,
		accentStyle.Render("Total"), s.Counts.Total,
	)
	if s.SaveErr != nil {
		m.log.Warnf("showing unsaved state: %v", s.SaveErr)
	}
}

func (m *Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.task, ok
}

// Update and View implement Bubble Tea's Model
func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	switch m.mode {
	case modeAdding:
		return m.updateAdding(msg)
	case modeSearching:
		return m.updateSearching(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, quitBind):
			return m, tea.Quit
		case key.Matches(k, addBind):
			m.mode = modeAdding
			m.input.SetValue("")
			m.resize()
			return m, m.input.Focus()
		case key.Matches(k, toggleBind):
			if t, ok := m.selected(); ok {
				m.session.OnToggle(t.ID)
			}
			return m, nil
		case key.Matches(k, deleteBind):
			if t, ok := m.selected(); ok {
				m.session.OnDelete(t.ID)
			}
			return m, nil
		case key.Matches(k, filterBind):
			m.session.OnFilterChange(m.snap.Filter.Next())
			return m, nil
		case key.Matches(k, searchBind):
			m.mode = modeSearching
			m.search.SetValue(m.snap.Search)
			m.search.CursorEnd()
			m.resize()
			return m, m.search.Focus()
		case key.Matches(k, clearBind):
			m.session.OnSearchChange("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			m.session.OnSubmitNewTask(m.input.Value())
			if m.snap.Hint != "" {
				return m, nil
			}
			m.input.SetValue("")
			m.leaveInput()
			// keep the new task in sight
			if n := len(m.list.Items()); n > 0 {
				m.list.Select(n - 1)
			}
			return m, nil
		case tea.KeyEsc:
			m.input.SetValue("")
			m.session.ClearHint()
			m.leaveInput()
			return m, nil
		}
		m.session.ClearHint()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateSearching(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			m.leaveInput()
			return m, nil
		case tea.KeyEsc:
			m.search.SetValue("")
			m.session.OnSearchChange("")
			m.leaveInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.snap.Search {
		m.session.OnSearchChange(v)
	}
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.search.Blur()
	m.resize()
}

// chrome is the number of lines drawn around the list.
func (m *Model) chrome() int {
	n := 6 // borders, tabs, progress, status
	if m.mode != modeNormal {
		n += 4
	}
	return n
}

func (m *Model) resize() {
	w, h := m.width-4, m.height-m.chrome()
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.list.SetSize(w, h)
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(ui.ProgressBar(m.snap.Counts.Completed, m.snap.Counts.Total, 28)))
	b.WriteString("\n")

	if len(m.snap.Tasks) == 0 {
		b.WriteString(titleStyle.Render(m.list.Title))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("No tasks found"))
		if m.snap.Search != "" {
			b.WriteString("\n" + mutedStyle.Render("Try a different search term"))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
	}

	switch m.mode {
	case modeAdding:
		title := "Add new task"
		if m.snap.Hint != "" {
			title += " " + errorStyle.Render(m.snap.Hint)
		}
		b.WriteString("\n" + inputBox(title+"\n"+m.input.View()))
	case modeSearching:
		b.WriteString("\n" + inputBox("Search\n"+m.search.View()))
	}

	if m.snap.SaveErr != nil {
		b.WriteString("\n" + errorStyle.Render("✖ not saved: "+m.snap.SaveErr.Error()))
	}
	return panelString(b.String())
}

func (m *Model) tabs() string {
	tabs := make([]string, 0, 4)
	for _, f := range model.Filters() {
		style := tabStyle
		if f == m.snap.Filter {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(f.String()))
	}
	if m.snap.Search != "" && m.mode != modeSearching {
		tabs = append(tabs, mutedStyle.Render(fmt.Sprintf("  search: %q", m.snap.Search)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func inputBox(inner string) string {
	bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	return bar.Render(inner)
}
