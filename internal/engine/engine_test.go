package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tagtint/tagtint/internal/scanner"
)

// tagColors scans text and returns one color per tag, in document order.
// Every emitted tag carries exactly one name-channel span.
func tagColors(text string, kind scanner.ContentKind, n int) []int {
	var colors []int
	for _, sp := range Scan(text, kind, n) {
		if sp.Channel == ChannelName {
			colors = append(colors, sp.Color)
		}
	}

	return colors
}

func markupColors(text string) []int {
	return tagColors(text, scanner.KindMarkup, 6)
}

func TestNestedPair(t *testing.T) {
	// div c0, span c1, /span c1, /div c0.
	require.Equal(t, []int{0, 1, 1, 0}, markupColors("<div><span></span></div>"))
}

func TestSameNameNesting(t *testing.T) {
	// The first close matches the innermost open div.
	require.Equal(t, []int{0, 1, 1, 0}, markupColors("<div><div></div></div>"))
}

func TestMismatchedNestingTruncates(t *testing.T) {
	// </a> matches at depth 0 and implicitly closes b; the stack is empty
	// afterwards, so c starts from the depth-0 rotation counter.
	require.Equal(t, []int{0, 1, 0, 1}, markupColors("<a><b></a><c>"))
}

func TestVoidElement(t *testing.T) {
	colors := markupColors(`<img src="x"><p></p>`)
	require.Equal(t, []int{0, 1, 1}, colors)
}

func TestVoidDoesNotNest(t *testing.T) {
	// img advances the sibling rotation but never opens a scope.
	require.Equal(t, []int{0, 1, 2, 3, 3, 0}, markupColors("<div><img><img><span></span></div>"))
}

func TestSelfClosingSyntax(t *testing.T) {
	require.Equal(t, []int{0, 1}, markupColors("<foo/><bar/>"))
}

func TestOrphanClose(t *testing.T) {
	require.Equal(t, []int{0}, markupColors("</div>"))
}

func TestOrphanCloseInsideElement(t *testing.T) {
	// </b> has no opener: it takes the rotation counter at the current
	// depth and leaves the stack alone, so </a> still matches.
	require.Equal(t, []int{0, 1, 0}, markupColors("<a></b></a>"))
}

func TestSiblingRotationSkipsParent(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<a>")
	for _, c := range []string{"b", "c", "d", "e", "f", "g", "h"} {
		sb.WriteString("<" + c + "></" + c + ">")
	}
	sb.WriteString("</a>")

	colors := markupColors(sb.String())

	var opens []int
	for i := 1; i < len(colors)-1; i += 2 {
		opens = append(opens, colors[i])
	}

	// Sibling rotation wraps past the parent's color 0.
	require.Equal(t, []int{1, 2, 3, 4, 5, 1, 2}, opens)
}

func TestSinglePalette(t *testing.T) {
	require.Equal(t, []int{0, 0, 0, 0}, tagColors("<a><b></b></a>", scanner.KindMarkup, 1))
}

func TestChildScopeRestartsPerSibling(t *testing.T) {
	// Each subtree reseeds its child counter just past its own color, no
	// matter what an earlier sibling's subtree counted up to.
	text := "<a><b><c></c><d></d></b><e><f></f></e></a>"
	// a=0; b=1; c=2; d=3; e=2; f=3.
	require.Equal(t, []int{0, 1, 2, 2, 3, 3, 1, 2, 3, 3, 2, 0}, markupColors(text))
}

func TestRawTextIsolation(t *testing.T) {
	text := `<p><script> if (1<2) { alert("<b>") } </script></p>`

	openEnd := strings.Index(text, "<script>") + len("<script>")
	closeStart := strings.Index(text, "</script")

	for _, sp := range Scan(text, scanner.KindMarkup, 6) {
		outside := sp.End <= openEnd || sp.Start >= closeStart
		require.True(t, outside, "span [%d,%d) inside raw-text body", sp.Start, sp.End)
	}
}

func TestRawTextCloseSharesOpenerColor(t *testing.T) {
	require.Equal(t, []int{0, 1, 1, 0}, markupColors("<div><style>a>b{}</style></div>"))
}

func TestHostSegmentsGetFreshState(t *testing.T) {
	text := "a = html`<div></div>`; b = html`<p></p>`;"

	require.Equal(t, []int{0, 0, 0, 0}, tagColors(text, scanner.KindHostLanguage, 6))
}

func TestDeterminism(t *testing.T) {
	text := "<div><span><em>x</em></span><p>y</p></div>"

	first := Scan(text, scanner.KindMarkup, 6)
	second := Scan(text, scanner.KindMarkup, 6)

	require.Equal(t, first, second)
}

func TestEmittedSpansForClosingTag(t *testing.T) {
	spans := Scan("<div></div>", scanner.KindMarkup, 6)

	require.Equal(t, []ColoredSpan{
		{Start: 0, End: 1, Color: 0, Channel: ChannelDelimiter},
		{Start: 1, End: 4, Color: 0, Channel: ChannelName},
		{Start: 4, End: 5, Color: 0, Channel: ChannelDelimiter},
		{Start: 5, End: 6, Color: 0, Channel: ChannelDelimiter},
		{Start: 6, End: 7, Color: 0, Channel: ChannelDelimiter},
		{Start: 7, End: 10, Color: 0, Channel: ChannelName},
		{Start: 10, End: 11, Color: 0, Channel: ChannelDelimiter},
	}, spans)
}

func TestEmittedSpansForSelfClosingTag(t *testing.T) {
	spans := Scan("<br/>", scanner.KindMarkup, 6)

	require.Equal(t, []ColoredSpan{
		{Start: 0, End: 1, Color: 0, Channel: ChannelDelimiter},
		{Start: 1, End: 3, Color: 0, Channel: ChannelName},
		{Start: 3, End: 4, Color: 0, Channel: ChannelDelimiter},
		{Start: 4, End: 5, Color: 0, Channel: ChannelDelimiter},
	}, spans)
}

func TestGroupByColor(t *testing.T) {
	groups := GroupByColor(Scan("<a><b></b></a>", scanner.KindMarkup, 6))

	require.Len(t, groups, 2)
	require.Len(t, groups[0], 7) // <a> and </a>
	require.Len(t, groups[1], 7) // <b> and </b>
}

// treeNode is a generated well-formed element for the property tests.
type treeNode struct {
	name string
	kids []treeNode
}

var tagNames = rapid.SampledFrom([]string{"div", "span", "p", "section", "ul", "li", "em"})

func genTree(t *rapid.T, depth int) treeNode {
	n := treeNode{name: tagNames.Draw(t, "name")}

	if depth < 3 {
		count := rapid.IntRange(0, 3).Draw(t, "kids")
		for i := 0; i < count; i++ {
			n.kids = append(n.kids, genTree(t, depth+1))
		}
	}

	return n
}

// tagEvent mirrors one generated tag so scan output can be checked
// against the structure we know we serialized.
type tagEvent struct {
	open   bool
	pair   int
	parent int
}

func serialize(sb *strings.Builder, events *[]tagEvent, nextPair *int, n treeNode, parent int) {
	id := *nextPair
	*nextPair++

	*events = append(*events, tagEvent{open: true, pair: id, parent: parent})
	sb.WriteString("<" + n.name + ">")

	for _, k := range n.kids {
		serialize(sb, events, nextPair, k, id)
	}

	sb.WriteString("</" + n.name + ">")
	*events = append(*events, tagEvent{open: false, pair: id, parent: parent})
}

func TestPropertyWellFormedMarkup(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 6).Draw(t, "paletteSize")

		var sb strings.Builder
		var events []tagEvent
		nextPair := 0

		rootCount := rapid.IntRange(1, 3).Draw(t, "roots")
		for i := 0; i < rootCount; i++ {
			serialize(&sb, &events, &nextPair, genTree(t, 0), -1)
		}

		text := sb.String()
		colors := tagColors(text, scanner.KindMarkup, n)
		require.Len(t, colors, len(events))

		openColor := make(map[int]int)
		closeColor := make(map[int]int)
		for i, ev := range events {
			if ev.open {
				openColor[ev.pair] = colors[i]
			} else {
				closeColor[ev.pair] = colors[i]
			}
		}

		for pair, oc := range openColor {
			// Matching open and close tags always share one color.
			require.Equal(t, oc, closeColor[pair], "pair %d", pair)

			require.GreaterOrEqual(t, oc, 0)
			require.Less(t, oc, n)

			// A child never shares its immediate parent's color.
			for _, ev := range events {
				if ev.open && ev.pair == pair && ev.parent >= 0 {
					require.NotEqual(t, openColor[ev.parent], oc, "pair %d vs parent %d", pair, ev.parent)
				}
			}
		}

		// Determinism: an identical scan yields identical spans.
		require.Equal(t, Scan(text, scanner.KindMarkup, n), Scan(text, scanner.KindMarkup, n))
	})
}

func TestPropertySiblingRotation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 6).Draw(t, "paletteSize")
		count := rapid.IntRange(1, 12).Draw(t, "siblings")

		var sb strings.Builder
		sb.WriteString("<root>")
		for i := 0; i < count; i++ {
			sb.WriteString("<li></li>")
		}
		sb.WriteString("</root>")

		colors := tagColors(sb.String(), scanner.KindMarkup, n)

		parent := colors[0]
		require.Equal(t, 0, parent)

		expected := (parent + 1) % n
		for i := 0; i < count; i++ {
			if expected == parent {
				expected = (expected + 1) % n
			}

			open := colors[1+i*2]
			require.Equal(t, expected, open, "sibling %d", i)

			expected = (open + 1) % n
		}
	})
}
