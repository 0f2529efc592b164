// Command flattable expands <flattable> blocks of wiki pages.
//
//	flattable [flags] [FILE...]
//
// Files are read in order, or stdin when none are given, and the expanded
// documents are written to stdout or to --output.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bjaus/flattable"
	"github.com/mattn/go-isatty"
	"gopkg.in/alecthomas/kingpin.v2"
)

var errHTMLFormat = errors.New("--html needs the markdown format")

func main() {
	app := kingpin.New("flattable", "Expand <flattable> blocks of wiki pages into tables.")
	app.HelpFlag.Short('h')

	var flags Config
	app.Flag("format", "Output format: wiki, html, markdown, text, csv, tsv, json, jsonl, yaml or go-template=TMPL.").
		Short('f').PlaceHolder("FORMAT").StringVar(&flags.Format)
	app.Flag("sortable", "Wrap tables for a sortable-table extension.").BoolVar(&flags.Sortable)
	app.Flag("html", "Render markdown output to HTML.").BoolVar(&flags.HTML)
	app.Flag("border", "Border style of the text format.").
		EnumVar(&flags.Border, "rounded", "none", "ascii", "heavy", "double")
	app.Flag("wrap", "Wrap text cells wider than N columns.").PlaceHolder("N").IntVar(&flags.Wrap)
	configPath := app.Flag("config", "YAML config file; flags override it.").Short('c').ExistingFile()
	verbose := app.Flag("verbose", "Log every expanded table.").Short('v').Bool()
	output := app.Flag("output", "Write to FILE instead of stdout.").Short('o').PlaceHolder("FILE").String()
	files := app.Arg("file", "Documents to expand.").ExistingFiles()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := flags
	if *configPath != "" {
		fileCfg, err := LoadConfig(*configPath)
		if err != nil {
			app.Fatalf("%s", err)
		}
		cfg = fileCfg.Override(flags)
	}

	p := &program{cfg: cfg, log: log, stdin: os.Stdin, stdout: os.Stdout}
	if *output == "" {
		fd := os.Stdout.Fd()
		p.tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	} else {
		f, err := os.Create(*output)
		if err != nil {
			app.Fatalf("%s", err)
		}
		p.stdout = f
		err = p.run(*files)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			app.Fatalf("%s", err)
		}
		return
	}
	if err := p.run(*files); err != nil {
		app.Fatalf("%s", err)
	}
}

type program struct {
	cfg    Config
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer

	// tty reports that stdout is a terminal; the default format is then text.
	tty bool
}

func (p *program) processor() (*flattable.Processor, error) {
	name := p.cfg.Format
	switch {
	case p.cfg.HTML && name == "":
		name = string(flattable.Markdown)
	case p.cfg.HTML && name != string(flattable.Markdown):
		return nil, fmt.Errorf("%w, got %q", errHTMLFormat, name)
	case name == "" && p.tty:
		name = string(flattable.Text)
	case name == "":
		name = string(flattable.Wiki)
	}
	format, err := flattable.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	border, err := flattable.ParseBorder(p.cfg.Border)
	if err != nil {
		return nil, err
	}
	return &flattable.Processor{
		Format: format,
		Env: flattable.Env{
			Sortable: p.cfg.Sortable,
			Border:   border,
			Wrap:     p.cfg.Wrap,
		},
		Logger: p.log,
	}, nil
}

// run expands each file, or stdin when files is empty.
func (p *program) run(files []string) error {
	proc, err := p.processor()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return p.expand(proc, "<stdin>", p.stdin)
	}
	for _, name := range files {
		if err := p.expandFile(proc, name); err != nil {
			return err
		}
	}
	return nil
}

func (p *program) expandFile(proc *flattable.Processor, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.expand(proc, name, f)
}

func (p *program) expand(proc *flattable.Processor, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	out, err := proc.Expand(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if p.cfg.HTML {
		if out, err = flattable.MarkdownToHTML(out); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	p.log.Debug("expanded document", slog.String("name", name), slog.Int("bytes", len(out)))
	_, err = io.WriteString(p.stdout, out)
	return err
}
