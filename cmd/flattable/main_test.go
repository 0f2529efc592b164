package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bjaus/flattable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = "<flattable key=K a=A>\nr:\n@a: 1\n</flattable>\n"

func newProgram(cfg Config, stdin string) (*program, *bytes.Buffer) {
	var out bytes.Buffer
	return &program{
		cfg:    cfg,
		log:    slog.New(slog.DiscardHandler),
		stdin:  strings.NewReader(stdin),
		stdout: &out,
	}, &out
}

func TestRunStdin(t *testing.T) {
	t.Parallel()
	p, out := newProgram(Config{}, page)
	require.NoError(t, p.run(nil))
	assert.Equal(t, "^ K ^ A ^\n| r | 1 |\n\n", out.String())
}

func TestRunFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(first, []byte("one\n"+page), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("two\n"), 0o600))

	p, out := newProgram(Config{Format: "csv"}, "")
	require.NoError(t, p.run([]string{first, second}))
	assert.Equal(t, "one\nK,A\nr,1\n\ntwo\n", out.String())
}

func TestRunMissingFile(t *testing.T) {
	t.Parallel()
	p, _ := newProgram(Config{}, "")
	assert.Error(t, p.run([]string{filepath.Join(t.TempDir(), "missing")}))
}

func TestRunHTML(t *testing.T) {
	t.Parallel()
	p, out := newProgram(Config{HTML: true}, "<flattable key=K twidth=50%>\nr:\n</flattable>\n")
	require.NoError(t, p.run(nil))
	assert.Contains(t, out.String(), "<table width='50%'>")
}

func TestProcessorDefaults(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		cfg     Config
		tty     bool
		want    flattable.Format
		wantErr error
	}{
		"pipe":           {want: flattable.Wiki},
		"terminal":       {tty: true, want: flattable.Text},
		"explicit":       {cfg: Config{Format: "json"}, tty: true, want: flattable.JSON},
		"html":           {cfg: Config{HTML: true}, tty: true, want: flattable.Markdown},
		"html markdown":  {cfg: Config{HTML: true, Format: "markdown"}, want: flattable.Markdown},
		"html other":     {cfg: Config{HTML: true, Format: "csv"}, wantErr: errHTMLFormat},
		"unknown format": {cfg: Config{Format: "xml"}, wantErr: flattable.ErrUnsupportedFormat},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p, _ := newProgram(tt.cfg, "")
			p.tty = tt.tty
			proc, err := p.processor()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, proc.Format)
		})
	}
}

func TestProcessorEnv(t *testing.T) {
	t.Parallel()
	p, _ := newProgram(Config{Sortable: true, Border: "ascii", Wrap: 10}, "")
	proc, err := p.processor()
	require.NoError(t, err)
	assert.Equal(t, flattable.Env{Sortable: true, Border: flattable.BorderASCII, Wrap: 10}, proc.Env)

	p.cfg.Border = "dotted"
	_, err = p.processor()
	assert.Error(t, err)
}

func TestRunReportsDocumentName(t *testing.T) {
	t.Parallel()
	p, _ := newProgram(Config{Format: "go-template={{"}, page)
	err := p.run(nil)
	assert.ErrorIs(t, err, flattable.ErrInvalidTemplate)
	assert.ErrorContains(t, err, "<stdin>: table at offset 0")
}
