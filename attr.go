package flattable

import (
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// TagName is the name of the opening and closing tag of a flat table.
const TagName = "flattable"

const (
	whitespaceToken = iota + 1
	assignToken
	quotedToken
)

var (
	whitespaceMatcher = parsly.NewToken(whitespaceToken, "whitespace", matcher.NewWhiteSpace())
	assignMatcher     = parsly.NewToken(assignToken, "=", matcher.NewTerminator('=', true))
	quotedMatcher     = parsly.NewToken(quotedToken, `" .... "`, matcher.NewQuote('"', '\\'))
)

// Attr is one key=value[=default] attribute of an opening tag.
type Attr struct {
	Key        string
	Value      string
	Default    string
	HasDefault bool
}

// ParseTag tokenizes a complete opening tag such as
// `<flattable key=Name c=a,b>`. The tag name and brackets are optional.
func ParseTag(tag string) []Attr {
	s := strings.TrimSpace(tag)
	if rest, ok := strings.CutPrefix(s, "<"+TagName); ok {
		s = rest
	}
	if rest, ok := strings.CutSuffix(s, ">"); ok {
		s = strings.TrimSuffix(rest, "/")
	}
	return ParseAttrs(s)
}

// ParseAttrs tokenizes a bare attribute string in arrival order.
// Text that does not fit the attribute grammar is skipped.
func ParseAttrs(s string) []Attr {
	var attrs []Attr
	cursor := parsly.NewCursor("", []byte(s), 0)
	for cursor.Pos < len(cursor.Input) {
		match := cursor.MatchAfterOptional(whitespaceMatcher, assignMatcher)
		if match.Code != assignToken {
			break
		}
		text := match.Text(cursor)
		key := attrKey(text[:len(text)-1])

		attr := Attr{Key: key}
		attr.Value = matchValue(cursor, true)
		if cursor.Pos < len(cursor.Input) && cursor.Input[cursor.Pos] == '=' {
			cursor.Pos++
			attr.Default = matchValue(cursor, false)
			attr.HasDefault = true
		}
		if key == "" {
			continue
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// attrKey keeps the part after the last whitespace and drops leading
// non-word characters, so a key always begins on a word boundary.
func attrKey(s string) string {
	if i := strings.LastIndexAny(s, " \t\r\n"); i != -1 {
		s = s[i+1:]
	}
	return strings.TrimLeftFunc(s, func(r rune) bool { return !isWordRune(r) })
}

func isWordRune(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// matchValue reads a quoted or bare token at the cursor. Bare values stop at
// whitespace, and also at '=' when stopAtAssign is set.
func matchValue(cursor *parsly.Cursor, stopAtAssign bool) string {
	input := cursor.Input
	if cursor.Pos < len(input) && input[cursor.Pos] == '"' {
		if match := cursor.MatchAny(quotedMatcher); match.Code == quotedToken {
			text := match.Text(cursor)
			return unescape(text[1 : len(text)-1])
		}
	}
	start := cursor.Pos
	end := start
	for end < len(input) {
		c := input[end]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || (stopAtAssign && c == '=') {
			break
		}
		end++
	}
	cursor.Pos = end
	return string(input[start:end])
}

// unescape collapses backslash sequences: `\x` becomes `x`.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			if i == len(s) {
				break
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
