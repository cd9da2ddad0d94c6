package render

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tagtint/tagtint/internal/engine"
	"github.com/tagtint/tagtint/internal/palette"
	"github.com/tagtint/tagtint/internal/scanner"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestDocumentPreservesText(t *testing.T) {
	text := `<div class="a"><span>hi</span><br/></div>`
	spans := engine.Scan(text, scanner.KindMarkup, 6)

	out := Document(text, spans, palette.Default())

	require.Equal(t, text, ansiRe.ReplaceAllString(out, ""))
}

func TestDocumentWithoutSpans(t *testing.T) {
	require.Equal(t, "plain text", Document("plain text", nil, palette.Default()))
}

func TestDocumentAcceptsRegroupedSpans(t *testing.T) {
	text := "<a><b></b></a>"
	spans := engine.Scan(text, scanner.KindMarkup, 6)

	var regrouped []engine.ColoredSpan
	for _, group := range engine.GroupByColor(spans) {
		regrouped = append(regrouped, group...)
	}

	out := Document(text, regrouped, palette.Default())

	require.Equal(t, text, ansiRe.ReplaceAllString(out, ""))
}

func TestDocumentIsDeterministic(t *testing.T) {
	text := "<ul><li>one</li><li>two</li></ul>"
	spans := engine.Scan(text, scanner.KindMarkup, 6)
	pal := palette.Default()

	require.Equal(t, Document(text, spans, pal), Document(text, spans, pal))
}
