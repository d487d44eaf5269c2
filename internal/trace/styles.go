package trace

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorHeader = lipgloss.Color("12") // bright blue
	colorMuted  = lipgloss.Color("8")  // dim
	colorDone   = lipgloss.Color("2")  // green
	colorCursor = lipgloss.Color("6")  // cyan
	colorBar    = lipgloss.Color("3")  // yellow

	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader)

	subheaderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Underline(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(colorDone).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorCursor).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(colorBar)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
