// Package render applies colored spans to a buffer as ANSI-styled
// terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/slices"

	"github.com/tagtint/tagtint/internal/engine"
	"github.com/tagtint/tagtint/internal/palette"
)

type styleKey struct {
	color   int
	channel engine.Channel
}

// Document renders text with its colored spans applied: name spans at the
// palette's full strength, delimiter spans dimmed. Uncolored text passes
// through untouched, so stripping the styles always yields the input.
func Document(text string, spans []engine.ColoredSpan, pal palette.Palette) string {
	if len(spans) == 0 {
		return text
	}

	// Callers may hand spans back regrouped by color; restore document order.
	ordered := slices.Clone(spans)
	slices.SortStableFunc(ordered, func(a, b engine.ColoredSpan) int {
		return a.Start - b.Start
	})

	styles := buildStyles(pal)

	var sb strings.Builder
	pos := 0

	for _, sp := range ordered {
		if sp.Start < pos || sp.End > len(text) {
			continue
		}

		sb.WriteString(text[pos:sp.Start])
		sb.WriteString(styles[styleKey{sp.Color, sp.Channel}].Render(text[sp.Start:sp.End]))
		pos = sp.End
	}

	sb.WriteString(text[pos:])

	return sb.String()
}

func buildStyles(pal palette.Palette) map[styleKey]lipgloss.Style {
	styles := make(map[styleKey]lipgloss.Style, pal.Size()*2)

	for i := 0; i < pal.Size(); i++ {
		styles[styleKey{i, engine.ChannelName}] = lipgloss.NewStyle().
			Foreground(lipgloss.Color(pal.Hex(i)))
		styles[styleKey{i, engine.ChannelDelimiter}] = lipgloss.NewStyle().
			Foreground(lipgloss.Color(pal.DimHex(i)))
	}

	return styles
}
