package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
)

// Header and footer styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	TodayBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorGreen).
			Padding(0, 1)

	DateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Timeline styles
var (
	GridlineStyle = lipgloss.NewStyle().
			Foreground(ColorGrayDim)

	HourLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorSelectionBg)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Strikethrough(true)

	TaskTimeStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	DurationStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// FallbackCategoryColor is used when a task references a deleted category.
var FallbackCategoryColor = ColorGray

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)
)

// Input styles
var (
	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(13)

	FieldFocusedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPurple).
				Width(13)
)

// Status icons
const (
	IconComplete   = "✓"
	IconIncomplete = "○"
	IconSwatch     = "█"
	DepthIndent    = "  "
)
