package analysis

import "strings"

var controlReplacer = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")

// Sanitize repairs the formatting defects models most often produce in a JSON
// candidate: raw newlines/tabs, stray backslashes and unescaped quotes inside
// string values. Each pass leaves well-formed JSON semantically unchanged.
func Sanitize(candidate string) string {
	s := controlReplacer.Replace(candidate)
	s = escapeStrayBackslashes(s)
	return escapeInteriorQuotes(s)
}

func isEscapeChar(c byte) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	}
	return false
}

// escapeStrayBackslashes doubles every backslash that does not start a valid
// JSON escape. Valid pairs are copied as a unit so `\\d` stays `\\d`.
func escapeStrayBackslashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(s) && isEscapeChar(s[i+1]) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteString(`\\`)
	}
	return b.String()
}

// escapeInteriorQuotes walks string literals and escapes any bare quote that
// cannot be the closing delimiter. Whether a quote closes depends on what the
// string is: a key closes before ':', an object value before '}' or before ','
// that starts the next key, an array element before ']' or ',' and a value.
func escapeInteriorQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var stack []byte // open containers, '{' or '['
	expectKey := false
	inString, isKey := false, false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				b.WriteByte(c)
				if i+1 < len(s) {
					b.WriteByte(s[i+1])
					i++
				}
			case '"':
				if closesString(s, i+1, isKey, top(stack)) {
					inString = false
					b.WriteByte(c)
				} else {
					b.WriteString(`\"`)
				}
			default:
				b.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			isKey = expectKey && top(stack) == '{'
		case '{':
			stack = append(stack, c)
			expectKey = true
		case '[':
			stack = append(stack, c)
			expectKey = false
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			expectKey = false
		case ':':
			expectKey = false
		case ',':
			expectKey = top(stack) == '{'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func top(stack []byte) byte {
	if len(stack) == 0 {
		return 0
	}
	return stack[len(stack)-1]
}

// closesString reports whether the quote just before s[from] can end the
// current string literal given what follows it.
func closesString(s string, from int, isKey bool, container byte) bool {
	j := skipSpaces(s, from)
	if j == len(s) {
		return true
	}
	if isKey {
		return s[j] == ':'
	}
	switch container {
	case '{':
		switch s[j] {
		case '}':
			return true
		case ',':
			return startsKey(s, j+1)
		}
	case '[':
		switch s[j] {
		case ']':
			return true
		case ',':
			return startsValue(s, j+1)
		}
	}
	return false
}

// startsKey reports whether s[from:] begins with a quoted string followed by ':'.
func startsKey(s string, from int) bool {
	j := skipSpaces(s, from)
	if j == len(s) || s[j] != '"' {
		return false
	}
	for j++; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			k := skipSpaces(s, j+1)
			return k < len(s) && s[k] == ':'
		}
	}
	return false
}

func startsValue(s string, from int) bool {
	j := skipSpaces(s, from)
	if j == len(s) {
		return false
	}
	switch c := s[j]; {
	case c == '"', c == '{', c == '[', c == '-', c == 't', c == 'f', c == 'n':
		return true
	default:
		return c >= '0' && c <= '9'
	}
}

func skipSpaces(s string, from int) int {
	for from < len(s) {
		switch s[from] {
		case ' ', '\n', '\r', '\t':
			from++
		default:
			return from
		}
	}
	return from
}
