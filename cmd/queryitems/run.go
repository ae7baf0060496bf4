package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/tomasbasham/queryitems"
	"github.com/tomasbasham/queryitems/source"
)

type format int

const (
	formatJSON format = iota
	formatYAML
)

func parseFormat(s string) (format, error) {
	switch strings.ToLower(s) {
	case "json", "j":
		return formatJSON, nil
	case "yaml", "yml", "y":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("unknown format %q", s)
	}
}

// formatFor picks the input format of file, preferring an explicit one.
func formatFor(explicit, file string) (format, error) {
	if explicit != "" {
		return parseFormat(explicit)
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return formatJSON, nil
	}
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Color && cfg.NoColor {
		return fmt.Errorf("%w: cannot specify both -color and -no-color", cli.ErrUsage)
	}
	if cfg.Format != "" {
		if _, err := parseFormat(cfg.Format); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}

	if cfg.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer l.Sync()
		queryitems.SetLogger(l)
		defer queryitems.SetLogger(nil)
	}

	p := newPrinter(cfg, cc.Out)
	if len(args) == 0 {
		return p.encodeFile(cc.In, "-")
	}
	for _, file := range args {
		if err := p.encodePath(file); err != nil {
			return err
		}
	}
	return nil
}

type printer struct {
	cfg  *Config
	w    io.Writer
	name *color.Color
	docs int
}

func newPrinter(cfg *Config, w io.Writer) *printer {
	p := &printer{cfg: cfg, w: w}
	if useColor(cfg, w) {
		p.name = color.New(color.FgCyan)
		p.name.EnableColor()
	}
	return p
}

func useColor(cfg *Config, w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (p *printer) encodePath(file string) error {
	if file == "-" {
		return p.encodeFile(os.Stdin, file)
	}
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", file, err)
	}
	defer f.Close()
	return p.encodeFile(f, file)
}

func (p *printer) encodeFile(r io.Reader, file string) error {
	fm, err := formatFor(p.cfg.Format, file)
	if err != nil {
		return err
	}

	var docs []queryitems.Marshaler
	switch fm {
	case formatYAML:
		docs, err = source.YAMLReader(r)
	default:
		docs, err = source.JSONReader(r)
	}
	if err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}

	for i, doc := range docs {
		items, err := queryitems.Encode(doc, queryitems.StrictPaths(p.cfg.Strict))
		if err != nil {
			return fmt.Errorf("error encoding document %d of %s: %w", i, file, err)
		}
		if err := p.write(items); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) write(items queryitems.Items) error {
	if p.docs > 0 {
		if _, err := io.WriteString(p.w, "---\n"); err != nil {
			return err
		}
	}
	p.docs++

	if p.name == nil {
		return queryitems.NewEncoder(p.w).WriteItems(items)
	}
	for _, it := range items {
		if _, err := fmt.Fprintf(p.w, "%s=%s\n", p.name.Sprint(it.Name), it.Value); err != nil {
			return err
		}
	}
	return nil
}
