package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefanpenner/dayplan/pkg/clock"
	"github.com/stefanpenner/dayplan/pkg/store"
)

// Task form field order.
const (
	fieldTitle = iota
	fieldDate
	fieldStart
	fieldEnd
	fieldCategory
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Date", "Start", "End", "Category", "Description"}

// taskForm is the add/edit dialog state. The category field is a cycling
// selector, not a text input, so its slot in inputs stays unused.
type taskForm struct {
	editing   bool
	taskID    string
	completed bool // carried through an edit untouched
	inputs    [fieldCount]textinput.Model
	choices   []store.Category
	catIndex  int
	focus     int
}

// newTaskForm builds a form prefilled from task (edit) or from defaults on
// the given date (add).
func newTaskForm(task *store.Task, date string, categories []store.Category) *taskForm {
	f := &taskForm{choices: categories}

	for i := range f.inputs {
		f.inputs[i] = textinput.New()
	}
	f.inputs[fieldTitle].Placeholder = "what are you doing?"
	f.inputs[fieldTitle].CharLimit = 80
	f.inputs[fieldDate].Placeholder = clock.DateLayout
	f.inputs[fieldDate].CharLimit = 10
	f.inputs[fieldStart].Placeholder = "09:00"
	f.inputs[fieldStart].CharLimit = 5
	f.inputs[fieldEnd].Placeholder = "10:00"
	f.inputs[fieldEnd].CharLimit = 5
	f.inputs[fieldDescription].Placeholder = "notes (markdown)"

	if task != nil {
		f.editing = true
		f.taskID = task.ID
		f.completed = task.Completed
		f.inputs[fieldTitle].SetValue(task.Title)
		f.inputs[fieldDate].SetValue(task.Date)
		f.inputs[fieldStart].SetValue(task.StartTime)
		f.inputs[fieldEnd].SetValue(task.EndTime)
		f.inputs[fieldDescription].SetValue(task.Description)
		for i, c := range categories {
			if c.ID == task.Category {
				f.catIndex = i
				break
			}
		}
	} else {
		f.inputs[fieldDate].SetValue(date)
	}

	f.inputs[fieldTitle].Focus()
	return f
}

func (f *taskForm) setFocus(field int) {
	f.focus = field
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	if field != fieldCategory {
		f.inputs[field].Focus()
	}
}

func (f *taskForm) nextField() { f.setFocus((f.focus + 1) % fieldCount) }
func (f *taskForm) prevField() { f.setFocus((f.focus + fieldCount - 1) % fieldCount) }

func (f *taskForm) cycleCategory(delta int) {
	if len(f.choices) == 0 {
		return
	}
	f.catIndex = (f.catIndex + delta + len(f.choices)) % len(f.choices)
}

// candidate assembles the task the form describes. Validation happens in
// submitTaskForm before this reaches the store.
func (f *taskForm) candidate() store.Task {
	t := store.Task{
		ID:          f.taskID,
		Title:       strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Description: f.inputs[fieldDescription].Value(),
		Date:        strings.TrimSpace(f.inputs[fieldDate].Value()),
		StartTime:   strings.TrimSpace(f.inputs[fieldStart].Value()),
		EndTime:     strings.TrimSpace(f.inputs[fieldEnd].Value()),
		Completed:   f.completed,
	}
	if len(f.choices) > 0 {
		t.Category = f.choices[f.catIndex].ID
	}
	return t
}

// handleFormKey routes keys while the task form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.Type {
	case tea.KeyEsc:
		m.form = nil
		m.store.ClearError()
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		f.nextField()
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		f.prevField()
		return m, nil

	case tea.KeyEnter:
		if f.focus < fieldDescription {
			f.nextField()
			return m, nil
		}
		m.submitTaskForm()
		return m, nil

	case tea.KeyCtrlS:
		m.submitTaskForm()
		return m, nil
	}

	if f.focus == fieldCategory {
		switch msg.String() {
		case "left", "h":
			f.cycleCategory(-1)
		case "right", "l":
			f.cycleCategory(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

// submitTaskForm runs the renderer-side precondition checks the store does
// not perform (title presence, date/time shape, end after start), then hands
// the candidate to the guarded commit. On rejection the form stays open with
// the store's error in the banner.
func (m *Model) submitTaskForm() {
	f := m.form
	candidate := f.candidate()

	switch {
	case candidate.Title == "":
		m.store.SetError("title is required")
		return
	case !clock.IsValidDate(candidate.Date):
		m.store.SetError("date must be " + clock.DateLayout)
		return
	case !clock.IsValidTime(candidate.StartTime) || !clock.IsValidTime(candidate.EndTime):
		m.store.SetError("times must be HH:MM (24-hour)")
		return
	case clock.Duration(candidate.StartTime, candidate.EndTime) <= 0:
		m.store.SetError("end time must be after start time")
		return
	}

	var ok bool
	if f.editing {
		ok = m.store.EditTask(candidate)
	} else {
		ok = m.store.AddTask(candidate)
	}
	if !ok {
		return
	}

	if f.editing {
		m.setStatus("Updated: " + candidate.Title)
	} else {
		m.setStatus("Added: " + candidate.Title)
	}
	m.form = nil
	m.refresh()
	m.selectTask(candidate.Date, candidate.StartTime)
}

// Category editor stages.
const (
	catStageName = iota
	catStageColor
)

// categoryForm is the two-step (name, then color) category editor.
type categoryForm struct {
	editingID string
	name      string
	stage     int
	input     textinput.Model
}

func newCategoryForm(existing *store.Category) *categoryForm {
	f := &categoryForm{input: textinput.New()}
	f.input.Placeholder = "category name"
	f.input.CharLimit = 32
	if existing != nil {
		f.editingID = existing.ID
		f.input.SetValue(existing.Name)
	}
	f.input.Focus()
	return f
}

// handleCategoryFormKey routes keys while the category editor is open.
func (m Model) handleCategoryFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.catForm

	switch msg.Type {
	case tea.KeyEsc:
		m.catForm = nil
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(f.input.Value())
		if f.stage == catStageName {
			if value == "" {
				return m, nil
			}
			f.name = value
			f.stage = catStageColor
			f.input.SetValue(m.categoryFormColorDefault())
			f.input.Placeholder = "#RRGGBB"
			f.input.CharLimit = 7
			return m, nil
		}

		c := store.Category{ID: f.editingID, Name: f.name, Color: value}
		if f.editingID == "" {
			m.store.AddCategory(c)
			m.setStatus("Added category: " + c.Name)
		} else {
			m.store.EditCategory(c)
			m.setStatus("Updated category: " + c.Name)
		}
		m.catForm = nil
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return m, cmd
}

// categoryFormColorDefault prefills the color stage: the current color when
// editing, otherwise a palette color the existing categories don't use yet.
func (m Model) categoryFormColorDefault() string {
	if m.catForm.editingID != "" {
		if c, ok := m.store.CategoryByID(m.catForm.editingID); ok {
			return c.Color
		}
	}
	palette := []string{"#4285F4", "#25A065", "#E05252", "#E5C07B", "#C678DD", "#56B6C2", "#D19A66"}
	used := make(map[string]bool)
	for _, c := range m.categories {
		used[c.Color] = true
	}
	for _, color := range palette {
		if !used[color] {
			return color
		}
	}
	return palette[0]
}
