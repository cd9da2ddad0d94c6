// Package engine assigns palette indices to tag pairs and emits the
// colored spans a renderer applies. Sibling tags rotate through the
// palette, a child never shares its immediate parent's color, and a
// closing tag always takes its opener's color.
package engine

import "github.com/tagtint/tagtint/internal/scanner"

// stackEntry records one open, non-void, non-self-closing element.
type stackEntry struct {
	name  string
	color int
}

// ScanState is the engine's whole memory for one scan: the open-element
// ancestry and, per depth, the next palette index to offer a sibling.
// Both slices are truncated on close rather than rebuilt, so a scan does
// not allocate per element.
//
// Invariant between tag events: len(nextAt) == len(stack)+1.
type ScanState struct {
	n      int
	stack  []stackEntry
	nextAt []int
}

// NewScanState returns a fresh state for a palette of paletteSize colors.
// State never survives a scan; there is no cross-scan memory.
func NewScanState(paletteSize int) *ScanState {
	s := &ScanState{
		n:      paletteSize,
		stack:  make([]stackEntry, 0, 16),
		nextAt: make([]int, 1, 17),
	}

	return s
}

// Open assigns a palette index to an opening tag and, unless the element
// is self-closing, pushes it and seeds the child rotation just past the
// assigned color.
func (s *ScanState) Open(m scanner.TagMatch) int {
	d := len(s.stack)

	assigned := s.nextAt[d]
	if d > 0 && assigned == s.stack[d-1].color {
		// Matching the immediate parent is the only forbidden adjacency.
		assigned = (assigned + 1) % s.n
	}

	s.nextAt[d] = (assigned + 1) % s.n

	if !m.SelfClosing() {
		s.stack = append(s.stack, stackEntry{name: m.Name, color: assigned})
		s.nextAt = append(s.nextAt, (assigned+1)%s.n)
	}

	return assigned
}

// Close matches a closing tag against the nearest open element with the
// same name and returns that element's color, truncating the stack there.
// Anything opened above the match is implicitly closed with it: that is
// the recovery policy for malformed nesting. An orphan closing tag leaves
// the stack alone and takes the best-effort rotation color for the
// current depth.
func (s *ScanState) Close(name string) int {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].name != name {
			continue
		}

		color := s.stack[i].color
		s.stack = s.stack[:i]
		s.nextAt = s.nextAt[:i+1]
		return color
	}

	return s.nextAt[len(s.stack)]
}

// Depth returns the number of currently open elements.
func (s *ScanState) Depth() int {
	return len(s.stack)
}

// Scan is the full pipeline: extract segments, lex tags, assign colors,
// emit spans. It is a pure function of its inputs; identical calls yield
// identical span slices. Each segment gets a fresh ScanState, since
// host-language segments are self-contained fragments and markup-native
// buffers only ever produce one segment.
func Scan(text string, kind scanner.ContentKind, paletteSize int) []ColoredSpan {
	if paletteSize < 1 {
		return nil
	}

	var spans []ColoredSpan

	for _, seg := range scanner.ExtractSegments(text, kind) {
		state := NewScanState(paletteSize)

		for _, m := range scanner.NewLexer(text, seg).Collect() {
			var color int
			if m.Closing {
				color = state.Close(m.Name)
			} else {
				color = state.Open(m)
			}

			spans = appendTagSpans(spans, m, color)
		}
	}

	return spans
}
