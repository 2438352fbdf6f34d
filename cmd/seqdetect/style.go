package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPattern = lipgloss.Color("#06b6d4")
	colorCount   = lipgloss.Color("#22c55e")
	colorDimmed  = lipgloss.Color("#6b7280")
	colorError   = lipgloss.Color("#dc2626")
	colorTitle   = lipgloss.Color("#a855f7")
)

type styles struct {
	pattern lipgloss.Style
	count   lipgloss.Style
	dimmed  lipgloss.Style
	error   lipgloss.Style
	title   lipgloss.Style
}

// newStyles binds the palette to out so colors are only emitted when out
// is a terminal.
func newStyles(out io.Writer) styles {
	renderer := lipgloss.NewRenderer(out)
	return styles{
		pattern: renderer.NewStyle().Foreground(colorPattern),
		count:   renderer.NewStyle().Foreground(colorCount).Bold(true),
		dimmed:  renderer.NewStyle().Foreground(colorDimmed),
		error:   renderer.NewStyle().Foreground(colorError),
		title:   renderer.NewStyle().Foreground(colorTitle).Bold(true),
	}
}

// counts renders "pattern:count" pairs joined by " | ".
func (s styles) counts(patterns []string, counts []uint64) string {
	parts := make([]string, 0, len(patterns))
	for i, pattern := range patterns {
		parts = append(parts, s.pattern.Render(pattern)+":"+s.count.Render(fmt.Sprint(counts[i])))
	}
	return strings.Join(parts, " "+s.dimmed.Render("|")+" ")
}
