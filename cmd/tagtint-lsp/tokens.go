package main

import (
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"golang.org/x/exp/slices"

	"github.com/tagtint/tagtint/internal/engine"
)

// encodeTokens turns colored spans into the LSP semantic-token wire
// format: five integers per token, with line and start column delta
// encoded against the previous token. Token type is the palette index and
// the modifier bit is the span's channel.
func encodeTokens(content string, spans []engine.ColoredSpan) []protocol.UInteger {
	ordered := slices.Clone(spans)
	slices.SortStableFunc(ordered, func(a, b engine.ColoredSpan) int {
		return a.Start - b.Start
	})

	starts := lineStarts(content)

	data := make([]protocol.UInteger, 0, len(ordered)*5)

	prevLine, prevChar := 0, 0
	for _, sp := range ordered {
		line, char := positionFor(starts, sp.Start)

		deltaLine := line - prevLine
		deltaChar := char
		if deltaLine == 0 {
			deltaChar = char - prevChar
		}

		data = append(data,
			protocol.UInteger(deltaLine),
			protocol.UInteger(deltaChar),
			protocol.UInteger(sp.End-sp.Start),
			protocol.UInteger(sp.Color),
			protocol.UInteger(1)<<uint(sp.Channel),
		)

		prevLine, prevChar = line, char
	}

	return data
}

func lineStarts(text string) []int {
	starts := []int{0}

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

func positionFor(starts []int, offset int) (line, char int) {
	line = sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	return line, offset - starts[line]
}
