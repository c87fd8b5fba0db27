package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/showfinder/internal/repositories"
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	accent lipgloss.Style
	label  lipgloss.Style
	frame  lipgloss.Style
}

func NewPalette(t, s, e, w, h, a string) *Palette {
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		ok:     NewBold(s),
		err:    NewBold(e),
		warn:   NewStyle(w),
		help:   NewEm(h),
		accent: NewBold(a),
		label:  NewBold(t),
		frame:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t)).Padding(0, 1),
	}
}

// PaletteFor returns the stylesheet for a persisted theme.
func PaletteFor(theme repositories.Theme) *Palette {
	if theme == repositories.ThemeLight {
		return NewPalette("#5A3FD1", "#027A48", "#C0392B", "#B45309", "#6B7280", "#B7791F")
	}
	return NewPalette("#7D56F4", "#04B575", "#FF5F87", "#FFA500", "#626262", "#F5C518")
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
