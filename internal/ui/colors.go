package ui

import "github.com/charmbracelet/lipgloss"

// Palette used by the interactive shell. Values are 24-bit colors; lipgloss
// degrades them to what the terminal supports.
const (
	ColorGray        = lipgloss.Color("#969696")
	ColorDarkGray    = lipgloss.Color("#646464")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorLightRed    = lipgloss.Color("#FF9696")
	ColorRed         = lipgloss.Color("#FF0000")
	ColorLightGreen  = lipgloss.Color("#96FF96")
	ColorGreen       = lipgloss.Color("#00FF00")
	ColorLightYellow = lipgloss.Color("#FFFF96")
	ColorYellow      = lipgloss.Color("#FFFF00")
	ColorLightBlue   = lipgloss.Color("#9696FF")
	ColorLightPurple = lipgloss.Color("#C896FF")
	ColorLightOrange = lipgloss.Color("#FFC896")
	ColorOrange      = lipgloss.Color("#FFA500")
)

// styles holds every style the shell renders with. Without color all of them are
// plain, so output stays byte-for-byte predictable.
type styles struct {
	success   lipgloss.Style
	warning   lipgloss.Style
	errorMark lipgloss.Style
	errorText lipgloss.Style
	info      lipgloss.Style
	prompt    lipgloss.Style
	document  lipgloss.Style
	id        lipgloss.Style
	title     lipgloss.Style
	nodeType  lipgloss.Style
	interval  lipgloss.Style
	branch    lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	correct   lipgloss.Style
}

func newStyles(useColor bool) styles {
	if !useColor {
		plain := lipgloss.NewStyle()
		return styles{
			success: plain, warning: plain, errorMark: plain, errorText: plain, info: plain,
			prompt: plain, document: plain, id: plain, title: plain, nodeType: plain,
			interval: plain, branch: plain, header: plain, label: plain, correct: plain,
		}
	}
	return styles{
		success:   lipgloss.NewStyle().Foreground(ColorLightGreen),
		warning:   lipgloss.NewStyle().Foreground(ColorLightYellow),
		errorMark: lipgloss.NewStyle().Foreground(ColorRed).Bold(true),
		errorText: lipgloss.NewStyle().Foreground(ColorLightOrange),
		info:      lipgloss.NewStyle().Foreground(ColorGray),
		prompt:    lipgloss.NewStyle().Foreground(ColorGreen),
		document:  lipgloss.NewStyle().Foreground(ColorLightPurple),
		id:        lipgloss.NewStyle().Foreground(ColorOrange),
		title:     lipgloss.NewStyle().Foreground(ColorWhite).Bold(true),
		nodeType:  lipgloss.NewStyle().Foreground(ColorLightBlue),
		interval:  lipgloss.NewStyle().Foreground(ColorYellow),
		branch:    lipgloss.NewStyle().Foreground(ColorDarkGray),
		header:    lipgloss.NewStyle().Foreground(ColorLightPurple).Bold(true).Underline(true),
		label:     lipgloss.NewStyle().Foreground(ColorGray),
		correct:   lipgloss.NewStyle().Foreground(ColorGreen),
	}
}
