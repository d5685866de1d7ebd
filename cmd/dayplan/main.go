package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefanpenner/dayplan/pkg/clock"
	"github.com/stefanpenner/dayplan/pkg/config"
	"github.com/stefanpenner/dayplan/pkg/store"
	"github.com/stefanpenner/dayplan/pkg/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(getDirFlag())
	if err != nil {
		return err
	}

	backend, err := cfg.OpenBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	s := store.NewStore(backend)
	if err := s.InitializeFromStorage(); err != nil {
		return err
	}

	args := os.Args[1:]
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")
	args = removeValueFlag(args, "--dir")

	if len(args) == 0 {
		return runTUI(cfg, s)
	}

	switch args[0] {
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: dayplan add <start-end> <title> [--date YYYY-MM-DD] [--cat id]")
		}
		date, rest := takeValueFlag(args[1:], "--date")
		cat, rest := takeValueFlag(rest, "--cat")
		if len(rest) < 2 {
			return fmt.Errorf("usage: dayplan add <start-end> <title> [--date YYYY-MM-DD] [--cat id]")
		}
		return cmdAdd(s, rest[0], strings.Join(rest[1:], " "), date, cat, jsonOutput)
	case "list":
		date, _ := takeValueFlag(args[1:], "--date")
		return cmdList(s, date, jsonOutput)
	case "today":
		return cmdList(s, clock.Today(), jsonOutput)
	case "edit":
		if len(args) < 2 {
			return fmt.Errorf("usage: dayplan edit <task-id> [--time start-end] [--title t] [--date YYYY-MM-DD] [--cat id]")
		}
		return cmdEdit(s, args[1], args[2:], jsonOutput)
	case "move":
		if len(args) < 3 {
			return fmt.Errorf("usage: dayplan move <task-id> <start-end>")
		}
		return cmdMove(s, args[1], args[2], jsonOutput)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: dayplan delete <task-id>")
		}
		return cmdDelete(s, args[1], jsonOutput)
	case "done":
		if len(args) < 2 {
			return fmt.Errorf("usage: dayplan done <task-id>")
		}
		return cmdDone(s, args[1], jsonOutput)
	case "categories":
		return cmdCategories(s, args[1:], jsonOutput)
	case "slots":
		return cmdSlots(jsonOutput)
	default:
		return fmt.Errorf("unknown command: %s\nUsage: dayplan [add|list|today|edit|move|delete|done|categories|slots]", args[0])
	}
}

// getDirFlag scans the raw arguments for --dir; config.Load applies the
// DAYPLAN_DIR env var and OS-default fallbacks on top.
func getDirFlag() string {
	for i, a := range os.Args {
		if a == "--dir" && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

// takeValueFlag extracts "--flag value" from args, returning the value and
// the remaining arguments.
func takeValueFlag(args []string, flag string) (string, []string) {
	var value string
	var rest []string
	for i := 0; i < len(args); i++ {
		if args[i] == flag && i+1 < len(args) {
			value = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return value, rest
}

func removeValueFlag(args []string, flag string) []string {
	_, rest := takeValueFlag(args, flag)
	return rest
}

func runTUI(cfg *config.Config, s *store.Store) error {
	m := tui.NewModel(s)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// External-change reload only makes sense for the file backend
	if cfg.Storage == config.StorageFile {
		cleanup, err := tui.StartWatcher(cfg.DataDir, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
		} else {
			defer cleanup()
		}
	}

	_, err := p.Run()
	return err
}

// parseTimeRange splits "09:00-10:30" and validates both halves plus the
// ordering the store itself does not check.
func parseTimeRange(s string) (start, end string, err error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok || !clock.IsValidTime(start) || !clock.IsValidTime(end) {
		return "", "", fmt.Errorf("invalid time range %q (want HH:MM-HH:MM)", s)
	}
	if clock.Duration(start, end) <= 0 {
		return "", "", fmt.Errorf("end time must be after start time")
	}
	return start, end, nil
}

// findTask resolves an ID or unique ID prefix to a task.
func findTask(s *store.Store, idPrefix string) (store.Task, error) {
	var matches []store.Task
	for _, t := range s.Tasks() {
		if strings.HasPrefix(t.ID, idPrefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return store.Task{}, fmt.Errorf("no task matches %q", idPrefix)
	case 1:
		return matches[0], nil
	default:
		return store.Task{}, fmt.Errorf("%q is ambiguous (%d matches)", idPrefix, len(matches))
	}
}

// CLI Commands

func cmdAdd(s *store.Store, timeRange, title, date, category string, jsonOut bool) error {
	start, end, err := parseTimeRange(timeRange)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if date != "" && !clock.IsValidDate(date) {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}

	if !s.AddTask(store.Task{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Date:      date,
		Category:  category,
	}) {
		return fmt.Errorf("%s", s.Err())
	}

	added := s.Tasks()[len(s.Tasks())-1]
	if jsonOut {
		return outputJSON(added)
	}
	fmt.Printf("Added: %s %s–%s %s\n", added.Date, added.StartTime, added.EndTime, added.Title)
	return nil
}

func cmdList(s *store.Store, date string, jsonOut bool) error {
	if date == "" {
		date = s.SelectedDate()
	}
	tasks := store.SortByStart(store.FilterByDate(s.Tasks(), date))

	if jsonOut {
		return outputJSON(tasks)
	}

	if len(tasks) == 0 {
		fmt.Printf("Nothing scheduled on %s.\n", date)
		return nil
	}

	fmt.Println(date)
	for _, t := range tasks {
		status := "○"
		if t.Completed {
			status = "✓"
		}
		fmt.Printf("  %s %s–%s %s (%s)  [%s]\n",
			status, t.StartTime, t.EndTime, t.Title,
			clock.FormatDuration(t.DurationMinutes()), shortID(t.ID))
	}
	return nil
}

func cmdEdit(s *store.Store, idPrefix string, flags []string, jsonOut bool) error {
	task, err := findTask(s, idPrefix)
	if err != nil {
		return err
	}

	timeRange, flags := takeValueFlag(flags, "--time")
	title, flags := takeValueFlag(flags, "--title")
	date, flags := takeValueFlag(flags, "--date")
	cat, flags := takeValueFlag(flags, "--cat")
	if len(flags) > 0 {
		return fmt.Errorf("unexpected argument: %s", flags[0])
	}
	if timeRange == "" && title == "" && date == "" && cat == "" {
		return fmt.Errorf("nothing to change")
	}

	if timeRange != "" {
		start, end, err := parseTimeRange(timeRange)
		if err != nil {
			return err
		}
		task.StartTime = start
		task.EndTime = end
	}
	if title != "" {
		task.Title = title
	}
	if date != "" {
		if !clock.IsValidDate(date) {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
		}
		task.Date = date
	}
	if cat != "" {
		task.Category = cat
	}

	if !s.EditTask(task) {
		return fmt.Errorf("%s", s.Err())
	}

	if jsonOut {
		return outputJSON(task)
	}
	fmt.Printf("Updated: %s\n", task.Title)
	return nil
}

func cmdMove(s *store.Store, idPrefix, timeRange string, jsonOut bool) error {
	start, end, err := parseTimeRange(timeRange)
	if err != nil {
		return err
	}

	task, err := findTask(s, idPrefix)
	if err != nil {
		return err
	}

	task.StartTime = start
	task.EndTime = end
	if !s.EditTask(task) {
		return fmt.Errorf("%s", s.Err())
	}

	if jsonOut {
		return outputJSON(task)
	}
	fmt.Printf("Moved: %s → %s–%s\n", task.Title, start, end)
	return nil
}

func cmdDelete(s *store.Store, idPrefix string, jsonOut bool) error {
	task, err := findTask(s, idPrefix)
	if err != nil {
		return err
	}

	s.DeleteTask(task.ID)
	if jsonOut {
		return outputJSON(map[string]string{"deleted": task.ID})
	}
	fmt.Printf("Deleted: %s\n", task.Title)
	return nil
}

func cmdDone(s *store.Store, idPrefix string, jsonOut bool) error {
	task, err := findTask(s, idPrefix)
	if err != nil {
		return err
	}

	s.ToggleTaskCompletion(task.ID)
	task, _ = findTask(s, task.ID)
	if jsonOut {
		return outputJSON(task)
	}
	if task.Completed {
		fmt.Printf("Done: %s\n", task.Title)
	} else {
		fmt.Printf("Reopened: %s\n", task.Title)
	}
	return nil
}

func cmdCategories(s *store.Store, args []string, jsonOut bool) error {
	if len(args) == 0 || args[0] == "list" {
		if jsonOut {
			return outputJSON(s.Categories())
		}
		for _, c := range s.Categories() {
			fmt.Printf("%-12s %s (%s)\n", c.ID, c.Name, c.Color)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: dayplan categories add <name> <color>")
		}
		s.AddCategory(store.Category{Name: args[1], Color: args[2]})
		fmt.Printf("Added category: %s\n", args[1])
		return nil
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: dayplan categories rm <id>")
		}
		s.DeleteCategory(args[1])
		fmt.Printf("Deleted category: %s (tasks keep their label)\n", args[1])
		return nil
	default:
		return fmt.Errorf("unknown subcommand: categories %s", args[0])
	}
}

func cmdSlots(jsonOut bool) error {
	slots := clock.HourSlots()
	if jsonOut {
		return outputJSON(slots)
	}
	for _, slot := range slots {
		fmt.Println(slot)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// JSON helpers

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
