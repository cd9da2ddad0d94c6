package scanner

import "strings"

// ExtractSegments returns the sub-ranges of text that contain markup to
// scan. Markup-native buffers are a single whole-buffer segment; host
// language buffers contribute one segment per html`...` tagged template
// literal body.
func ExtractSegments(text string, kind ContentKind) []Segment {
	if kind != KindHostLanguage {
		return []Segment{{Start: 0, End: len(text)}}
	}

	var segs []Segment

	i := 0
	for i < len(text) {
		c := text[i]

		if !isIdentStart(c) {
			// A digit-led run can't open an identifier, so consume it
			// whole to avoid matching "html" inside e.g. "0html".
			if isIdentPart(c) {
				for i < len(text) && isIdentPart(text[i]) {
					i++
				}
			} else {
				i++
			}
			continue
		}

		start := i
		for i < len(text) && isIdentPart(text[i]) {
			i++
		}

		if text[start:i] != "html" {
			continue
		}

		j := skipLiteralGap(text, i)
		if j >= len(text) || text[j] != '`' {
			continue
		}

		bodyStart := j + 1
		bodyEnd, ok := findTemplateEnd(text, bodyStart)
		if !ok {
			// No closing delimiter: drop the literal and resume right
			// after the opening one.
			i = bodyStart
			continue
		}

		segs = append(segs, Segment{Start: bodyStart, End: bodyEnd})
		i = bodyEnd + 1
	}

	return segs
}

// skipLiteralGap advances past spaces, tabs and an inline block comment
// between the html identifier and its template literal. A newline ends the
// search: the tag and the literal must share a line.
func skipLiteralGap(text string, i int) int {
	for i < len(text) {
		switch {
		case text[i] == ' ' || text[i] == '\t':
			i++

		case strings.HasPrefix(text[i:], "/*"):
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return len(text)
			}
			i += 2 + end + 2

		default:
			return i
		}
	}

	return i
}

// findTemplateEnd scans a template literal body starting right after the
// opening backtick and returns the index of the closing backtick.
// Expression placeholders are skipped with full balanced tracking.
func findTemplateEnd(text string, i int) (end int, ok bool) {
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2

		case '`':
			return i, true

		case '$':
			if i+1 < len(text) && text[i+1] == '{' {
				i = skipExpression(text, i+2, len(text))
			} else {
				i++
			}

		default:
			i++
		}
	}

	return 0, false
}

// skipExpression consumes a ${...} placeholder body. i points just past the
// opening "${"; the return value points just past the matching '}', or end
// if the expression never closes. Nested braces, quoted strings and nested
// template literals are balanced on the way.
func skipExpression(text string, i, end int) int {
	depth := 1

	for i < end {
		switch c := text[i]; c {
		case '\\':
			i += 2

		case '{':
			depth++
			i++

		case '}':
			depth--
			i++
			if depth == 0 {
				return i
			}

		case '\'', '"':
			i = skipQuoted(text, i+1, end, c)

		case '`':
			i = skipNestedTemplate(text, i+1, end)

		default:
			i++
		}
	}

	return end
}

// skipQuoted consumes a quoted string body; i points just past the opening
// quote. Backslash escapes the following character.
func skipQuoted(text string, i, end int, quote byte) int {
	for i < end {
		switch text[i] {
		case '\\':
			i += 2

		case quote:
			return i + 1

		default:
			i++
		}
	}

	return end
}

// skipNestedTemplate consumes a backtick literal found inside an
// expression, recursing into its own placeholders.
func skipNestedTemplate(text string, i, end int) int {
	for i < end {
		switch text[i] {
		case '\\':
			i += 2

		case '`':
			return i + 1

		case '$':
			if i+1 < end && text[i+1] == '{' {
				i = skipExpression(text, i+2, end)
			} else {
				i++
			}

		default:
			i++
		}
	}

	return end
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
