package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/dayplan/pkg/clock"
	"github.com/stefanpenner/dayplan/pkg/store"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}
	if m.showDeleteConfirm {
		return placeOverlay(m.renderDeleteModal(), w, h)
	}
	if m.catForm != nil {
		return placeOverlay(m.renderCategoryFormModal(), w, h)
	}
	if m.form != nil {
		return placeOverlay(m.renderTaskFormModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 2
	footerLines := 2
	contentHeight := h - headerLines - footerLines

	if m.isCategoryMode {
		b.WriteString(m.renderCategoryPanel(w, contentHeight))
	} else {
		// Two-panel layout: timeline │ details
		leftWidth := w / 2
		rightWidth := w - leftWidth - 1
		if leftWidth < 20 {
			leftWidth = 20
		}
		if rightWidth < 20 {
			rightWidth = 20
		}

		leftPanel := m.renderTimelinePanel(leftWidth, contentHeight)
		rightPanel := m.renderDetailPanel(rightWidth, contentHeight)

		sepColor := ColorGrayDim
		if m.focusedPane == 1 {
			sepColor = ColorPurple
		}
		sep := lipgloss.NewStyle().Foreground(sepColor).Render("│")
		for i := 0; i < contentHeight; i++ {
			b.WriteString(getLine(leftPanel, i, leftWidth))
			b.WriteString(sep)
			b.WriteString(getLine(rightPanel, i, rightWidth))
			b.WriteString("\n")
		}
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Dayplan")

	date := m.store.SelectedDate()
	dateLabel := DateStyle.Render(date)
	if clock.IsToday(date) {
		dateLabel += " " + TodayBadgeStyle.Render("today")
	}

	done := 0
	for _, t := range m.dayTasks {
		if t.Completed {
			done++
		}
	}
	stats := HeaderCountStyle.Render(fmt.Sprintf("%d/%d done", done, len(m.dayTasks)))

	// Store rejections outrank transient status messages
	notice := ""
	if errMsg := m.store.Err(); errMsg != "" {
		notice = "  " + ErrorStyle.Render(errMsg)
	} else if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		notice = "  " + StatusStyle.Render(m.statusMsg)
	}

	left := title + "  " + dateLabel + notice
	gap := width - lipgloss.Width(left) - lipgloss.Width(stats)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + stats
}

func (m Model) renderTimelinePanel(width, height int) string {
	if len(m.rows) == 0 {
		return FooterStyle.Render("No timeline")
	}

	// Scrolling window centered on the selected task's row (or the work-day
	// morning when the day is empty)
	focusRow := 8
	if len(m.dayTasks) > 0 {
		focusRow = RowForTask(m.rows, m.cursor)
	}

	startIdx := 0
	endIdx := len(m.rows)
	if len(m.rows) > height {
		startIdx = focusRow - height/2
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + height
		if endIdx > len(m.rows) {
			endIdx = len(m.rows)
			startIdx = endIdx - height
		}
	}

	var lines []string
	for i := startIdx; i < endIdx; i++ {
		row := m.rows[i]
		if row.IsGridline() {
			lines = append(lines, m.renderGridline(row.HourLabel, width))
			continue
		}
		lines = append(lines, m.renderTaskRow(row, row.TaskIndex == m.cursor, width))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderGridline(hour string, width int) string {
	label := HourLabelStyle.Render(hour + " ")
	remaining := width - lipgloss.Width(label)
	if remaining < 0 {
		remaining = 0
	}
	return label + GridlineStyle.Render(strings.Repeat("┄", remaining))
}

func (m Model) renderTaskRow(row TimelineRow, isSelected bool, width int) string {
	task := row.Task

	swatch := lipgloss.NewStyle().
		Foreground(m.categoryColor(task.Category)).
		Render(IconSwatch)

	status := IconIncomplete
	if task.Completed {
		status = IconComplete
	}

	times := TaskTimeStyle.Render(task.StartTime + "–" + task.EndTime)
	duration := DurationStyle.Render(" " + clock.FormatDuration(task.DurationMinutes()))

	title := task.Title
	if task.Completed && !isSelected {
		title = CompletedStyle.Render(title)
	}

	line := DepthIndent + swatch + " " + status + " " + times + " " + title + duration

	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		line += strings.Repeat(" ", width-lineWidth)
	}
	if isSelected {
		line = SelectedStyle.Render(line)
	}
	return line
}

func (m Model) renderDetailPanel(width, height int) string {
	if len(m.dayTasks) == 0 {
		return FooterStyle.Render(" Nothing scheduled. Press 'a' to add a task.")
	}
	if m.cursor >= len(m.dayTasks) {
		return FooterStyle.Render(" Select a task to view details")
	}
	task := m.dayTasks[m.cursor]

	md := m.renderTaskHeader(task)
	if task.Description != "" {
		md += task.Description
		if !strings.HasSuffix(task.Description, "\n") {
			md += "\n"
		}
	}

	rendered := md
	if m.glamourRenderer != nil {
		if out, err := m.glamourRenderer.Render(md); err == nil {
			rendered = out
		}
	}

	rendered = strings.TrimRight(rendered, "\n ")
	lines := strings.Split(rendered, "\n")

	scroll := m.detailScroll
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	lines = lines[scroll:]

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderTaskHeader builds the markdown header (title + schedule metadata)
// for the detail pane.
func (m Model) renderTaskHeader(task store.Task) string {
	var md strings.Builder

	md.WriteString("# " + task.Title + "\n\n")

	meta := []string{
		"**When:** " + task.StartTime + "–" + task.EndTime +
			" (" + clock.FormatDuration(task.DurationMinutes()) + ")",
	}
	if name := m.categoryName(task.Category); name != "" {
		meta = append(meta, "**Category:** "+name)
	}
	if task.Completed {
		meta = append(meta, "**Status:** done")
	}
	md.WriteString(strings.Join(meta, " | ") + "\n\n")

	return md.String()
}

func (m Model) renderCategoryPanel(width, height int) string {
	var lines []string
	lines = append(lines, ModalTitleStyle.Render("Categories"))
	lines = append(lines, "")

	for i, c := range m.categories {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(IconSwatch)
		line := DepthIndent + swatch + " " + c.Name + "  " + DurationStyle.Render(c.Color)
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			line += strings.Repeat(" ", width-lineWidth)
		}
		if i == m.catCursor {
			line = SelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	if len(m.categories) == 0 {
		lines = append(lines, FooterStyle.Render("No categories. Press 'a' to add one."))
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

func (m Model) renderFooter(width int) string {
	help := m.keys.ShortHelp()
	if m.form != nil || m.catForm != nil {
		help = "tab/↑↓ fields  enter next/submit  ctrl+s submit  esc cancel"
	} else if m.isCategoryMode {
		help = "↑↓ nav  a add  e edit  d delete  esc back"
	} else if m.focusedPane == 1 {
		help = "↑↓ scroll details  tab timeline  e edit  ? help"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderTaskFormModal() string {
	f := m.form

	var b strings.Builder
	if f.editing {
		b.WriteString(ModalTitleStyle.Render("Edit Task"))
	} else {
		b.WriteString(ModalTitleStyle.Render("New Task"))
	}
	b.WriteString("\n\n")

	for field := 0; field < fieldCount; field++ {
		label := FieldLabelStyle
		if f.focus == field {
			label = FieldFocusedStyle
		}
		b.WriteString(label.Render(fieldLabels[field]))

		if field == fieldCategory {
			b.WriteString(m.renderCategorySelector(f))
		} else {
			b.WriteString(f.inputs[field].View())
		}
		b.WriteString("\n")
	}

	if errMsg := m.store.Err(); errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("enter next field  ctrl+s save  esc cancel"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderCategorySelector(f *taskForm) string {
	if len(f.choices) == 0 {
		return FooterStyle.Render("(no categories)")
	}
	c := f.choices[f.catIndex]
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(IconSwatch)
	arrows := ""
	if f.focus == fieldCategory {
		arrows = FooterStyle.Render("  ←/→ change")
	}
	return swatch + " " + c.Name + arrows
}

func (m Model) renderCategoryFormModal() string {
	f := m.catForm

	var b strings.Builder
	if f.editingID == "" {
		b.WriteString(ModalTitleStyle.Render("New Category"))
	} else {
		b.WriteString(ModalTitleStyle.Render("Edit Category"))
	}
	b.WriteString("\n\n")

	if f.stage == catStageName {
		b.WriteString(FieldFocusedStyle.Render("Name"))
	} else {
		b.WriteString(FieldLabelStyle.Render("Name") + f.name + "\n")
		b.WriteString(FieldFocusedStyle.Render("Color"))
	}
	b.WriteString(f.input.View())
	b.WriteString("\n\n")
	b.WriteString(FooterStyle.Render("enter confirm  esc cancel"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderDeleteModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Delete Task"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Delete '%s' (%s–%s)?\n\n",
		m.deleteTarget.Title, m.deleteTarget.StartTime, m.deleteTarget.EndTime))
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

// categoryColor resolves a task's category reference to its display color,
// falling back to gray when the reference dangles.
func (m Model) categoryColor(categoryID string) lipgloss.Color {
	for _, c := range m.categories {
		if c.ID == categoryID {
			return lipgloss.Color(c.Color)
		}
	}
	return FallbackCategoryColor
}

func (m Model) categoryName(categoryID string) string {
	for _, c := range m.categories {
		if c.ID == categoryID {
			return c.Name
		}
	}
	return ""
}

// Helper functions

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
