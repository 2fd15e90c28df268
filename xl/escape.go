package xl

import "strings"

// EscapeXML replaces the five XML special characters with their named
// entities. The part generators never build markup by concatenation, so
// this is for callers that embed package text in their own XML.
func EscapeXML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// xmlSafe drops runes that XML 1.0 cannot carry at all, even escaped.
func xmlSafe(s string) string {
	ok := true
	for _, c := range s {
		if !isXMLChar(c) {
			ok = false
			break
		}
	}
	if ok {
		return s
	}
	return strings.Map(func(c rune) rune {
		if isXMLChar(c) {
			return c
		}
		return -1
	}, s)
}

func isXMLChar(c rune) bool {
	return c == 0x09 || c == 0x0A || c == 0x0D ||
		(c >= 0x20 && c <= 0xD7FF) ||
		(c >= 0xE000 && c <= 0xFFFD) ||
		(c >= 0x10000 && c <= 0x10FFFF)
}
