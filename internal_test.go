package flattable

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errInternalWrite = errors.New("write failed")

type errWriterInternal struct{}

func (e *errWriterInternal) Write([]byte) (int, error) {
	return 0, errInternalWrite
}

func TestAttrKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "x", attrKey("junk @x"))
	assert.Equal(t, "a", attrKey("\n\ta"))
	assert.Equal(t, "cell_on", attrKey("cell_on"))
	assert.Equal(t, "", attrKey("-"))
}

func TestUnescape(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "plain", unescape("plain"))
	assert.Equal(t, `say "hi"`, unescape(`say \"hi\"`))
	assert.Equal(t, `\`, unescape(`\\`))
	assert.Equal(t, "n", unescape(`\n`))
	// A lone trailing backslash is dropped.
	assert.Equal(t, "a", unescape(`a\`))
}

func TestLegacyClassify(t *testing.T) {
	t.Parallel()
	s := legacyScanner{cellOn: "<tablecell>", cellOff: "</tablecell>", delim: "=", marker: "_"}
	tests := map[string]struct {
		text      string
		capturing bool
		want      line
	}{
		"key":               {text: "_Row", want: line{kind: lineKey, key: "Row"}},
		"field":             {text: "x=1", want: line{kind: lineField, name: "x", value: "1"}},
		"value keeps delim": {text: "x=a=b", want: line{kind: lineField, name: "x", value: "a=b"}},
		"closed span": {
			text: "x=pre<tablecell>a</tablecell>post",
			want: line{kind: lineField, name: "x", value: "a"},
		},
		"open span": {
			text: "x=<tablecell>a",
			want: line{kind: lineField, name: "x", value: "a", open: true},
		},
		"free text":      {text: "free text", want: line{kind: lineIgnore}},
		"span closes":    {text: "b</tablecell>c", capturing: true, want: line{kind: lineContinue, value: "b", close: true}},
		"marker in span": {text: "_R", capturing: true, want: line{kind: lineContinue, value: "_R"}},
		"field in span":  {text: "y=1", capturing: true, want: line{kind: lineContinue, value: "y=1"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.classify(tt.text, tt.capturing))
		})
	}
}

func TestLegacyClassifyEmptyMarkers(t *testing.T) {
	t.Parallel()
	noMarker := legacyScanner{delim: "="}
	assert.Equal(t, lineIgnore, noMarker.classify("_R", false).kind)
	assert.Equal(t, line{kind: lineField, name: "_R", value: "1"}, noMarker.classify("_R=1", false))

	noDelim := legacyScanner{marker: "_"}
	assert.Equal(t, lineIgnore, noDelim.classify("x=1", false).kind)

	noCell := legacyScanner{delim: "=", marker: "_"}
	assert.Equal(t, line{kind: lineField, name: "x", value: "<tablecell>a"}, noCell.classify("x=<tablecell>a", false))
}

func TestFlatClassify(t *testing.T) {
	t.Parallel()
	var s flatScanner
	active := flatState{field: "a", indent: "  ", active: true}
	tests := map[string]struct {
		text string
		st   flatState
		want line
	}{
		"key":             {text: "Alice:", want: line{kind: lineKey, key: "Alice"}},
		"key with spaces": {text: "Mr Smith: \t", want: line{kind: lineKey, key: "Mr Smith"}},
		"indented field":  {text: "  @a: v", want: line{kind: lineField, indent: "  ", name: "a", value: "v"}},
		"field wins over continuation": {
			text: "  @b: w",
			st:   active,
			want: line{kind: lineField, indent: "  ", name: "b", value: "w"},
		},
		"continuation":       {text: "  more", st: active, want: line{kind: lineContinue, value: "more"}},
		"short indent":       {text: " more", st: active, want: line{kind: lineIgnore}},
		"inactive":           {text: "  more", want: line{kind: lineIgnore}},
		"indented key":       {text: "  S:", want: line{kind: lineIgnore}},
		"field name with at": {text: "  @a@b: v", want: line{kind: lineIgnore}},
		"unindented text":    {text: "more", want: line{kind: lineIgnore}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.classify(tt.text, tt.st))
		})
	}
}

func TestAccumulatorWithoutRecord(t *testing.T) {
	t.Parallel()
	var got []Record
	acc := &accumulator{yield: func(r Record) bool {
		got = append(got, r)
		return true
	}}
	acc.set("a", "1")
	acc.extend("a", "2")
	acc.flush()
	assert.Empty(t, got)

	acc.key("K")
	acc.extend("a", "x")
	acc.flush()
	acc.flush()
	assert.Equal(t, []Record{{Key: "K", Fields: map[string]string{"a": " x"}}}, got)
}

func TestSplitLines(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "b", ""}, splitLines("a\r\nb\n"))
	assert.Equal(t, []string{""}, splitLines(""))
}

func TestParseRow(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []htmlCell{
		{head: true, text: "a", span: 2},
		{head: true, text: "b", span: 1},
	}, parseRow("^ a ^^ b |"))
	assert.Equal(t, []htmlCell{
		{text: "x", span: 1},
		{head: true, text: "", span: 1},
	}, parseRow("| x ^ |"))
	assert.Nil(t, parseRow("| unterminated"))
}

func TestIndexOpenTag(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, indexOpenTag("a<flattable>"))
	assert.Equal(t, 0, indexOpenTag("<flattable/>"))
	assert.Equal(t, 13, indexOpenTag("<flattables x<flattable\tk=v>"))
	assert.Equal(t, -1, indexOpenTag("</flattable>"))
	assert.Equal(t, -1, indexOpenTag(""))
}

func TestOpenTagEnd(t *testing.T) {
	t.Parallel()
	from := len(openTag)
	assert.Equal(t, 19, openTagEnd(`<flattable a="x>y">`, from))
	assert.Equal(t, 21, openTagEnd(`<flattable a="x\">y">z`, from))
	// Quotes only open a value right after '='.
	assert.Equal(t, 14, openTagEnd(`<flattable "a>b">`, from))
	assert.Equal(t, -1, openTagEnd(`<flattable a="x>`, from))
	assert.Equal(t, -1, openTagEnd(`<flattable a=1`, from))
}

func TestIndentLines(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "  a\n  b\n", indentLines("a\nb\n", "  "))
	assert.Equal(t, "  a\n  b", indentLines("a\nb", "  "))
	assert.Equal(t, "", indentLines("", "  "))
}

func TestWrapCellWideCharSafety(t *testing.T) {
	t.Parallel()
	// "你" is two columns wide and never fits width 1; wrapping still
	// advances one rune per line.
	assert.Equal(t, []string{"你", "好"}, wrapCell("你好", 1))
}

func TestWrapCell(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"hi"}, wrapCell("hi", 0))
	assert.Equal(t, []string{"hi"}, wrapCell("hi", 5))
	assert.Equal(t, []string{"Hel", "lo"}, wrapCell("Hello", 3))
}

func TestFormatTextCell(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab...", formatTextCell("abcdefg", 5))
	assert.Equal(t, "abc", formatTextCell("abcdefg", 3))
	assert.Equal(t, "ab  ", formatTextCell("ab", 4))
}

func TestTableInnerWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 7, tableInnerWidth([]int{1, 1}))
	assert.Equal(t, 5, tableInnerWidth([]int{3}))
	assert.Equal(t, 0, tableInnerWidth(nil))
}

func TestCenterCell(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "  T  ", centerCell("T", 5))
	assert.Equal(t, " ab  ", centerCell("ab", 5))
	assert.Equal(t, "long", centerCell("long", 2))
}

func TestWriteCSVRowSuccess(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := writeCSVRow(&buf, []string{"a", "b,c"})
	assert.NoError(t, err)
	assert.Equal(t, "a,\"b,c\"\n", buf.String())
}

func TestWriteCSVRowError(t *testing.T) {
	t.Parallel()
	err := writeCSVRow(&errWriterInternal{}, []string{"a", "b"})
	assert.ErrorIs(t, err, errInternalWrite)
}

func TestWriteCSVRowLargeDataError(t *testing.T) {
	t.Parallel()
	// More than the 4096-byte bufio buffer makes cw.Write itself fail.
	err := writeCSVRow(&errWriterInternal{}, []string{strings.Repeat("x", 5000)})
	assert.Error(t, err)
}

func TestWriteTSVRowEscapes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.NoError(t, writeTSVRow(&buf, []string{"a\tb", "c\nd"}))
	assert.Equal(t, "a b\tc d\n", buf.String())
}
