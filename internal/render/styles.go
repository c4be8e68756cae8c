package render

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorDim    = lipgloss.Color("#6272a4")
	colorOrange = lipgloss.Color("#ffb86c")
)

// palette holds the styles a Printer renders with.
type palette struct {
	heading lipgloss.Style
	ok      lipgloss.Style
	issue   lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
	key     lipgloss.Style
	accent  lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	return palette{
		heading: r.NewStyle().Foreground(colorBlue).Bold(true),
		ok:      r.NewStyle().Foreground(colorGreen),
		issue:   r.NewStyle().Foreground(colorRed).Bold(true),
		warning: r.NewStyle().Foreground(colorOrange),
		info:    r.NewStyle().Foreground(colorPurple),
		dim:     r.NewStyle().Foreground(colorDim),
		key:     r.NewStyle().Foreground(colorYellow).Bold(true),
		accent:  r.NewStyle().Foreground(colorPurple).Bold(true),
	}
}
