package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha for dark mode, Latte for light mode.
type palette struct {
	text    lipgloss.Color
	subtext lipgloss.Color
	surface lipgloss.Color
	accent  lipgloss.Color
	focus   lipgloss.Color
	success lipgloss.Color
	errorC  lipgloss.Color
	warning lipgloss.Color
	info    lipgloss.Color
}

var (
	mocha = palette{
		text:    "#cdd6f4",
		subtext: "#a6adc8",
		surface: "#45475a",
		accent:  "#f5c2e7",
		focus:   "#b4befe",
		success: "#a6e3a1",
		errorC:  "#f38ba8",
		warning: "#f9e2af",
		info:    "#94e2d5",
	}
	latte = palette{
		text:    "#4c4f69",
		subtext: "#6c6f85",
		surface: "#bcc0cc",
		accent:  "#ea76cb",
		focus:   "#7287fd",
		success: "#40a02b",
		errorC:  "#d20f39",
		warning: "#df8e1d",
		info:    "#179299",
	}
)

type styles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	income    lipgloss.Style
	expense   lipgloss.Style
	dim       lipgloss.Style
	cursor    lipgloss.Style
	status    lipgloss.Style
	box       lipgloss.Style
	kind      map[string]lipgloss.Style
}

func newStyles(dark bool) styles {
	p := latte
	if dark {
		p = mocha
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		tab:       lipgloss.NewStyle().Foreground(p.subtext).Padding(0, 1),
		activeTab: lipgloss.NewStyle().Bold(true).Foreground(p.focus).Underline(true).Padding(0, 1),
		label:     lipgloss.NewStyle().Foreground(p.subtext),
		value:     lipgloss.NewStyle().Bold(true).Foreground(p.text),
		income:    lipgloss.NewStyle().Foreground(p.success),
		expense:   lipgloss.NewStyle().Foreground(p.errorC),
		dim:       lipgloss.NewStyle().Foreground(p.subtext).Faint(true),
		cursor:    lipgloss.NewStyle().Bold(true).Foreground(p.focus),
		status:    lipgloss.NewStyle().Italic(true).Foreground(p.info),
		box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.surface).Padding(0, 1),
		kind: map[string]lipgloss.Style{
			"tip":            lipgloss.NewStyle().Bold(true).Foreground(p.success),
			"alert":          lipgloss.NewStyle().Bold(true).Foreground(p.errorC),
			"trend":          lipgloss.NewStyle().Bold(true).Foreground(p.info),
			"recommendation": lipgloss.NewStyle().Bold(true).Foreground(p.warning),
		},
	}
}
