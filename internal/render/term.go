// internal/render/term.go
//
// Terminal rendering of rows with lipgloss. Colors follow the element
// stylesheet defaults: green correct, orange present, dark gray absent,
// gray outlines for unevaluated and placeholder tiles.

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle-elements/internal/row"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

var (
	colorCorrect = lipgloss.Color("#008000")
	colorPresent = lipgloss.Color("#FFA500")
	colorAbsent  = lipgloss.Color("#A9A9A9")
	colorEmpty   = lipgloss.Color("#808080")
	colorText    = lipgloss.Color("#FFFFFF")
)

// Theme holds one style per display state.
type Theme struct {
	Placeholder lipgloss.Style
	Current     lipgloss.Style
	Unevaluated lipgloss.Style
	Correct     lipgloss.Style
	Present     lipgloss.Style
	Absent      lipgloss.Style
}

// DefaultTheme mirrors the browser stylesheet.
func DefaultTheme() Theme {
	base := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Width(3).
		Align(lipgloss.Center).
		Bold(true)
	filled := func(c lipgloss.Color) lipgloss.Style {
		return base.BorderForeground(c).Background(c).Foreground(colorText)
	}
	return Theme{
		Placeholder: base.BorderForeground(lipgloss.Color("#A9A9A9")),
		Current:     base.Border(lipgloss.ThickBorder()).BorderForeground(colorEmpty),
		Unevaluated: base.BorderForeground(colorEmpty).Foreground(colorEmpty),
		Correct:     filled(colorCorrect),
		Present:     filled(colorPresent),
		Absent:      filled(colorAbsent),
	}
}

func (th Theme) style(f tile.Flags) lipgloss.Style {
	switch {
	case f.Has(tile.FlagCorrect):
		return th.Correct
	case f.Has(tile.FlagPresent):
		return th.Present
	case f.Has(tile.FlagAbsent):
		return th.Absent
	case f.Has(tile.FlagCurrent):
		return th.Current
	case f.Has(tile.FlagUnevaluated):
		return th.Unevaluated
	default:
		return th.Placeholder
	}
}

// Terminal renders r as a single line of boxed tiles.
func Terminal(r *row.Row, th Theme) string {
	cells := make([]string, 0, r.Length())
	for _, t := range r.Tiles() {
		letter := strings.ToUpper(t.Letter())
		if letter == "" {
			letter = " "
		}
		cells = append(cells, th.style(t.Flags()).Render(letter))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// TerminalBoard stacks rows under an optional title.
func TerminalBoard(title string, rows []*row.Row, th Theme) string {
	blocks := make([]string, 0, len(rows)+1)
	if title != "" {
		blocks = append(blocks, lipgloss.NewStyle().Bold(true).Render(title))
	}
	for _, r := range rows {
		blocks = append(blocks, Terminal(r, th))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
