package scanner

import "regexp"

// ContentKind tells the segment extractor where markup lives in a buffer.
type ContentKind int

const (
	// KindMarkup is a markup-native buffer (HTML, XML): the whole buffer
	// is scanned.
	KindMarkup ContentKind = iota

	// KindHostLanguage is a JS/TS-like buffer where markup only appears
	// inside html`...` tagged template literals.
	KindHostLanguage

	// KindMarkupExpr is a JSX/TSX-like buffer: markup is embedded
	// structurally, so the whole buffer is scanned.
	KindMarkupExpr
)

func (k ContentKind) String() string {
	switch k {
	case KindMarkup:
		return "markup"
	case KindHostLanguage:
		return "host-language"
	case KindMarkupExpr:
		return "markup-with-embedded-expressions"
	}

	return "<unknown>"
}

// Segment is a half-open [Start, End) byte range of the buffer that is
// eligible for tag scanning. Segments never overlap and are produced in
// document order.
type Segment struct {
	Start, End int
}

// TagMatch is one successfully bounded and named <...> span.
type TagMatch struct {
	// Start and End delimit the whole tag, '<' through '>', half-open.
	Start, End int

	// Name is the tag name, lower-cased.
	Name string

	// NameStart and NameEnd delimit the name as written in the buffer.
	NameStart, NameEnd int

	Closing           bool // span starts with </
	SelfClosingSyntax bool // span ends with />
	Void              bool // name is a void element
}

// SelfClosing reports whether the element can never receive a closing tag.
func (m *TagMatch) SelfClosing() bool {
	return m.SelfClosingSyntax || m.Void
}

// tagNameRe matches the tag name right after the opening '<': an optional
// slash, one ASCII letter, then ASCII letters/digits/':'/'-'.
var tagNameRe = regexp.MustCompile(`^(/?)([a-zA-Z][a-zA-Z0-9:-]*)`)

var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}
