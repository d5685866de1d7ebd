package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/stefanpenner/dayplan/pkg/clock"
	"github.com/stefanpenner/dayplan/pkg/store"
)

// StorageChangedMsg is sent when the watcher sees the data files change
// behind our back.
type StorageChangedMsg struct{}

// Model is the Bubble Tea model for the day-view TUI.
type Model struct {
	store *store.Store
	keys  KeyMap

	width  int
	height int

	// Selected day, derived on refresh
	dayTasks     []store.Task // sorted by start time
	rows         []TimelineRow
	categories   []store.Category
	cursor       int // index into dayTasks
	focusedPane  int // 0 = timeline, 1 = details
	detailScroll int

	// Task form (nil when closed)
	form *taskForm

	// Delete confirmation
	showDeleteConfirm bool
	deleteTarget      store.Task

	// Category manager
	isCategoryMode bool
	catCursor      int
	catForm        *categoryForm

	showHelpModal bool

	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model over an initialized store.
func NewModel(s *store.Store) Model {
	m := Model{
		store: s,
		keys:  DefaultKeyMap(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		rightWidth := msg.Width - (msg.Width / 2) - 1
		if rightWidth < 20 {
			rightWidth = 20
		}
		m.getGlamourRenderer(rightWidth)
		return m, tea.ClearScreen

	case StorageChangedMsg:
		if err := m.store.InitializeFromStorage(); err != nil {
			m.setStatus("Reload error: " + err.Error())
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.handleFormKey(msg)
	}

	if m.catForm != nil {
		return m.handleCategoryFormKey(msg)
	}

	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	if m.showDeleteConfirm {
		switch msg.String() {
		case "y", "Y":
			m.store.DeleteTask(m.deleteTarget.ID)
			m.setStatus("Deleted: " + m.deleteTarget.Title)
			m.refresh()
			m.showDeleteConfirm = false
		case "n", "N", "esc":
			m.showDeleteConfirm = false
		}
		return m, nil
	}

	if m.isCategoryMode {
		return m.handleCategoryMode(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.focusedPane == 1 {
			if m.detailScroll > 0 {
				m.detailScroll--
			}
		} else if m.cursor > 0 {
			m.cursor--
			m.detailScroll = 0
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedPane == 1 {
			m.detailScroll++
		} else if m.cursor < len(m.dayTasks)-1 {
			m.cursor++
			m.detailScroll = 0
		}

	case key.Matches(msg, m.keys.PrevDay):
		m.store.SetSelectedDate(clock.PrevDay(m.store.SelectedDate()))
		m.refresh()

	case key.Matches(msg, m.keys.NextDay):
		m.store.SetSelectedDate(clock.NextDay(m.store.SelectedDate()))
		m.refresh()

	case key.Matches(msg, m.keys.Today):
		m.store.SetSelectedDate(clock.Today())
		m.refresh()

	case key.Matches(msg, m.keys.Add):
		m.store.ClearError()
		m.form = newTaskForm(nil, m.store.SelectedDate(), m.categories)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if m.cursor < len(m.dayTasks) {
			task := m.dayTasks[m.cursor]
			m.store.ClearError()
			m.form = newTaskForm(&task, task.Date, m.categories)
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.dayTasks) {
			m.deleteTarget = m.dayTasks[m.cursor]
			m.showDeleteConfirm = true
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(m.dayTasks) {
			m.store.ToggleTaskCompletion(m.dayTasks[m.cursor].ID)
			m.refresh()
		}

	case key.Matches(msg, m.keys.Categories):
		m.isCategoryMode = true
		m.catCursor = 0

	case key.Matches(msg, m.keys.Tab):
		m.focusedPane = (m.focusedPane + 1) % 2

	case key.Matches(msg, m.keys.Reload):
		if err := m.store.InitializeFromStorage(); err != nil {
			m.setStatus("Reload error: " + err.Error())
		} else {
			m.setStatus("Reloaded")
		}
		m.refresh()

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

func (m Model) handleCategoryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, msg.String() == "q", msg.String() == "c":
		m.isCategoryMode = false

	case key.Matches(msg, m.keys.Up):
		if m.catCursor > 0 {
			m.catCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.catCursor < len(m.categories)-1 {
			m.catCursor++
		}

	case msg.String() == "a":
		m.catForm = newCategoryForm(nil)
		return m, textinput.Blink

	case msg.String() == "e", msg.String() == "r":
		if m.catCursor < len(m.categories) {
			c := m.categories[m.catCursor]
			m.catForm = newCategoryForm(&c)
			return m, textinput.Blink
		}

	case msg.String() == "d":
		if m.catCursor < len(m.categories) {
			c := m.categories[m.catCursor]
			m.store.DeleteCategory(c.ID)
			m.setStatus("Deleted category: " + c.Name + " (tasks keep their label)")
			m.refresh()
		}
	}

	return m, nil
}

// refresh re-derives the day view from store state: filter the collection to
// the selected date, sort by start time, rebuild the timeline rows.
func (m *Model) refresh() {
	m.categories = m.store.Categories()
	m.dayTasks = store.SortByStart(store.FilterByDate(m.store.Tasks(), m.store.SelectedDate()))
	m.rows = BuildTimeline(m.dayTasks)

	if m.cursor >= len(m.dayTasks) {
		m.cursor = len(m.dayTasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.catCursor >= len(m.categories) && m.catCursor > 0 {
		m.catCursor = len(m.categories) - 1
	}
}

// selectTask moves the cursor to the task starting at start on date, when
// that date is the day on screen.
func (m *Model) selectTask(date, start string) {
	if date != m.store.SelectedDate() {
		return
	}
	for i, t := range m.dayTasks {
		if t.StartTime == start {
			m.cursor = i
			return
		}
	}
}

// getGlamourRenderer returns a cached glamour renderer, creating one if
// needed or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}
