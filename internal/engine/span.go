package engine

import "github.com/tagtint/tagtint/internal/scanner"

// Channel is the visual role of a span. Both channels share one palette;
// the renderer shows names at full strength and delimiters reduced.
type Channel int

const (
	ChannelDelimiter Channel = iota
	ChannelName
)

func (c Channel) String() string {
	switch c {
	case ChannelDelimiter:
		return "delimiter"
	case ChannelName:
		return "name"
	}

	return "<unknown>"
}

// ColoredSpan is one highlighted sub-range of the buffer: a tag delimiter
// or a tag name, with the palette index assigned to its tag.
type ColoredSpan struct {
	// Start and End are half-open byte offsets into the buffer.
	Start, End int

	Color   int
	Channel Channel
}

// appendTagSpans decomposes one tag into its delimiter and name spans:
// the '<', the '/' of a closing tag, the name, the '/' of a self-closing
// tag, and the '>'. Attributes and content are left untouched.
func appendTagSpans(spans []ColoredSpan, m scanner.TagMatch, color int) []ColoredSpan {
	spans = append(spans, ColoredSpan{
		Start:   m.Start,
		End:     m.Start + 1,
		Color:   color,
		Channel: ChannelDelimiter,
	})

	if m.Closing {
		spans = append(spans, ColoredSpan{
			Start:   m.Start + 1,
			End:     m.Start + 2,
			Color:   color,
			Channel: ChannelDelimiter,
		})
	}

	spans = append(spans, ColoredSpan{
		Start:   m.NameStart,
		End:     m.NameEnd,
		Color:   color,
		Channel: ChannelName,
	})

	if m.SelfClosingSyntax {
		spans = append(spans, ColoredSpan{
			Start:   m.End - 2,
			End:     m.End - 1,
			Color:   color,
			Channel: ChannelDelimiter,
		})
	}

	spans = append(spans, ColoredSpan{
		Start:   m.End - 1,
		End:     m.End,
		Color:   color,
		Channel: ChannelDelimiter,
	})

	return spans
}

// GroupByColor buckets spans by palette index so a rendering layer can
// apply each color in one batch. Relative order within a bucket is the
// document order.
func GroupByColor(spans []ColoredSpan) map[int][]ColoredSpan {
	groups := make(map[int][]ColoredSpan)

	for _, sp := range spans {
		groups[sp.Color] = append(groups[sp.Color], sp)
	}

	return groups
}
