package scanner

import "strings"

// Lexer walks one segment of the buffer and collects tag matches in a
// single forward pass. Malformed constructs are absorbed or skipped,
// never reported: an editor buffer mid-edit is not expected to be
// well-formed.
type Lexer struct {
	src string
	pos int
	end int

	matches []TagMatch
}

type stateFunc func() stateFunc

func NewLexer(src string, seg Segment) *Lexer {
	return &Lexer{
		src: src,
		pos: seg.Start,
		end: seg.End,
	}
}

// Collect runs the lexer to the end of its segment and returns every tag
// match in document order.
func (l *Lexer) Collect() []TagMatch {
	state := l.lexText
	for state != nil {
		state = state()
	}

	return l.matches
}

func (l *Lexer) lexText() stateFunc {
	for l.pos < l.end {
		if l.src[l.pos] != '<' {
			l.pos++
			continue
		}

		rest := l.src[l.pos:l.end]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			return l.lexComment

		case strings.HasPrefix(rest, "<!DOCTYPE"):
			return l.lexDoctype

		default:
			return l.lexTag
		}
	}

	return nil
}

func (l *Lexer) lexComment() stateFunc {
	idx := strings.Index(l.src[l.pos+4:l.end], "-->")
	if idx < 0 {
		// Unterminated comments swallow the rest of the segment.
		l.pos = l.end
		return nil
	}

	l.pos += 4 + idx + 3
	return l.lexText
}

func (l *Lexer) lexDoctype() stateFunc {
	i := l.pos + len("<!DOCTYPE")

	for i < l.end {
		switch l.src[i] {
		case '\\':
			i += 2

		case '>':
			l.pos = i + 1
			return l.lexText

		default:
			i++
		}
	}

	l.pos = l.end
	return nil
}

func (l *Lexer) lexTag() stateFunc {
	gt, ok := l.findTagEnd(l.pos + 1)
	if !ok {
		// No terminator before the segment ends: the '<' is plain text.
		l.pos++
		return l.lexText
	}

	span := l.src[l.pos : gt+1]

	// Processing instructions and non-doctype declarations are not tags.
	if strings.HasPrefix(span, "<?") || strings.HasPrefix(span, "<!") {
		l.pos = gt + 1
		return l.lexText
	}

	loc := tagNameRe.FindStringSubmatchIndex(span[1:])
	if loc == nil {
		// Unparseable name: the whole span is plain text.
		l.pos = gt + 1
		return l.lexText
	}

	name := strings.ToLower(span[1+loc[4] : 1+loc[5]])
	m := TagMatch{
		Start:             l.pos,
		End:               gt + 1,
		Name:              name,
		NameStart:         l.pos + 1 + loc[4],
		NameEnd:           l.pos + 1 + loc[5],
		Closing:           loc[3] > loc[2],
		SelfClosingSyntax: strings.HasSuffix(span, "/>"),
		Void:              voidElements[name],
	}

	l.matches = append(l.matches, m)
	l.pos = m.End

	if !m.Closing && !m.SelfClosing() && (name == "script" || name == "style") {
		return l.lexRawText(name)
	}

	return l.lexText
}

// lexRawText skips the body of a script or style element without scanning
// it: the next lexer event is the literal closing sequence, or nothing at
// all if the element is never closed in this segment.
func (l *Lexer) lexRawText(name string) stateFunc {
	return func() stateFunc {
		idx := strings.Index(l.src[l.pos:l.end], "</"+name)
		if idx < 0 {
			l.pos = l.end
			return nil
		}

		l.pos += idx
		return l.lexTag
	}
}

// findTagEnd locates the '>' terminating a tag whose '<' sits just before
// i. Quoted attribute values are tracked with backslash escapes, and ${...}
// placeholders are consumed balanced regardless of quote state. Bare {...}
// expressions get no such treatment.
func (l *Lexer) findTagEnd(i int) (gt int, ok bool) {
	var quote byte

	for i < l.end {
		c := l.src[i]

		if c == '$' && i+1 < l.end && l.src[i+1] == '{' {
			i = skipExpression(l.src, i+2, l.end)
			continue
		}

		if quote != 0 {
			switch c {
			case '\\':
				i += 2
			case quote:
				quote = 0
				i++
			default:
				i++
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
			i++

		case '\\':
			i += 2

		case '>':
			return i, true

		default:
			i++
		}
	}

	return 0, false
}
