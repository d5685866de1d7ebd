// Package store holds the scheduler state: the task collection, categories,
// the selected date, and the last rejection message. Every mutation runs a
// conflict-guarded commit: a candidate task is checked against all other
// tasks on the same day and rejected if its time interval overlaps one.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/stefanpenner/dayplan/pkg/clock"
	"github.com/stefanpenner/dayplan/pkg/storage"
)

// Persistence keys.
const (
	KeyTasks      = "tasks"
	KeyCategories = "categories"
)

// Store owns the scheduler state and persists it through an injected backend
// after every successful mutation. One mutex guards each operation; the
// conflict scan and commit are a read-then-write that must not interleave.
type Store struct {
	mu           sync.Mutex
	backend      storage.Backend
	tasks        []Task
	categories   []Category
	selectedDate string
	lastErr      string
	loading      bool
}

// NewStore creates a store bound to the given backend with the selected date
// set to today. Call InitializeFromStorage before first use.
func NewStore(backend storage.Backend) *Store {
	return &Store{
		backend:      backend,
		categories:   DefaultCategories(),
		selectedDate: clock.Today(),
		loading:      true,
	}
}

// InitializeFromStorage loads tasks and categories from the backend, falling
// back to an empty collection and the default category set. Unparseable
// stored data also degrades to the fallback rather than failing. Re-invoking
// re-synchronizes from the backend, discarding unpersisted in-memory state.
func (s *Store) InitializeFromStorage() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	if data, err := s.backend.Load(KeyTasks); err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	} else if data != nil {
		var tasks []Task
		if err := json.Unmarshal(data, &tasks); err == nil {
			s.tasks = tasks
		}
	}

	s.categories = DefaultCategories()
	if data, err := s.backend.Load(KeyCategories); err != nil {
		return fmt.Errorf("loading categories: %w", err)
	} else if data != nil {
		var categories []Category
		if err := json.Unmarshal(data, &categories); err == nil {
			s.categories = categories
		}
	}

	s.loading = false
	return nil
}

// AddTask runs the guarded commit for a new task: assigns an ID, defaults the
// date to the selected date and Completed to false, scans the stored tasks
// for a same-day overlap, and either appends and persists or rejects with the
// conflicting task's title in the error field. Returns true on commit.
func (s *Store) AddTask(candidate Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate.ID = uuid.NewString()
	candidate.Completed = false
	if candidate.Date == "" {
		candidate.Date = s.selectedDate
	}

	if conflict, found := s.findConflict(candidate, ""); found {
		s.lastErr = fmt.Sprintf("time conflict with %q (%s–%s)",
			conflict.Title, conflict.StartTime, conflict.EndTime)
		return false
	}

	s.tasks = append(s.tasks, candidate)
	s.lastErr = ""
	s.persistTasks()
	return true
}

// EditTask replaces the stored task carrying candidate.ID in place. The
// conflict scan excludes the task being replaced; all fields are taken from
// the candidate (full replace, not a patch). Editing an unknown ID is a
// no-op that still reports success.
func (s *Store) EditTask(candidate Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conflict, found := s.findConflict(candidate, candidate.ID); found {
		s.lastErr = fmt.Sprintf("time conflict with %q (%s–%s)",
			conflict.Title, conflict.StartTime, conflict.EndTime)
		return false
	}

	for i := range s.tasks {
		if s.tasks[i].ID == candidate.ID {
			s.tasks[i] = candidate
			break
		}
	}
	s.lastErr = ""
	s.persistTasks()
	return true
}

// DeleteTask removes the task with the given ID, a no-op if absent. The
// error field is cleared either way.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.lastErr = ""
	s.persistTasks()
}

// ToggleTaskCompletion flips the Completed flag on the task with the given
// ID (no-op if absent) and persists. The error field is left untouched.
func (s *Store) ToggleTaskCompletion(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			break
		}
	}
	s.persistTasks()
}

// AddCategory appends a category, assigning an ID when absent. No conflict
// checking applies to categories.
func (s *Store) AddCategory(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.categories = append(s.categories, c)
	s.persistCategories()
}

// EditCategory replaces the category carrying c.ID, a no-op if absent.
func (s *Store) EditCategory(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = c
			break
		}
	}
	s.persistCategories()
}

// DeleteCategory removes the category with the given ID. Tasks referencing
// it keep their now-dangling reference; display fallback is the renderer's
// concern.
func (s *Store) DeleteCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.persistCategories()
}

// SetSelectedDate replaces the selected date. The task collection is not
// filtered or touched; date filtering is a read-side concern.
func (s *Store) SetSelectedDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDate = date
}

// SetError records a caller-originated validation message, e.g. "end time
// must be after start time" from a form precondition check.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// ClearError resets the error field.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// Tasks returns a copy of the task collection in insertion order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Categories returns a copy of the category collection.
func (s *Store) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CategoryByID looks a category up by ID.
func (s *Store) CategoryByID(id string) (Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// SelectedDate returns the currently selected date.
func (s *Store) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDate
}

// Err returns the last rejection or validation message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Loading reports whether InitializeFromStorage has not yet completed.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// findConflict scans the stored tasks for one overlapping the candidate,
// skipping the task with excludeID (the task being replaced during an edit).
func (s *Store) findConflict(candidate Task, excludeID string) (Task, bool) {
	for _, t := range s.tasks {
		if excludeID != "" && t.ID == excludeID {
			continue
		}
		if t.ConflictsWith(candidate) {
			return t, true
		}
	}
	return Task{}, false
}

// persistTasks writes the task collection through the backend. Best-effort:
// a failed write is not rolled back, the in-memory state stays committed.
func (s *Store) persistTasks() {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return
	}
	s.backend.Save(KeyTasks, data)
}

func (s *Store) persistCategories() {
	data, err := json.Marshal(s.categories)
	if err != nil {
		return
	}
	s.backend.Save(KeyCategories, data)
}
