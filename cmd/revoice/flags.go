package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps flag parsing failures.
var ErrInvalidFlags = errors.New("invalid flags")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	logLevel  string
	logFormat string
	quiet     bool
	verbose   bool
}

// outputFlags decide where files are written and how they are named.
type outputFlags struct {
	destination  string
	name         string
	nomenclature string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	format      string
	orientation string
	margin      string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common      commonFlags
	output      outputFlags
	page        pageFlags
	template    string
	templateDir string
	locale      string
	timeout     string
	workers     int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log pipeline stages (same as --log-level debug)")
}

// addOutputFlags adds output location flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.destination, "output", "o", "", "output directory")
	fs.StringVar(&f.name, "name", "", "output file name without extension")
	fs.StringVar(&f.nomenclature, "nomenclature", "", "naming strategy when --name is empty: hash")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "paper format: A3, A4, A5, Letter, Legal, Tabloid")
	fs.StringVar(&f.orientation, "orientation", "", "orientation: portrait, landscape")
	fs.StringVar(&f.margin, "margin", "", "page margin with unit: mm, cm, in, px")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, usage io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVarP(&f.template, "template", "t", "", "bundled template name or template file path")
	fs.StringVar(&f.templateDir, "template-dir", "", "directory whose templates override bundled ones")
	fs.StringVar(&f.locale, "locale", "", "locale for amounts without a currency, e.g. fr-FR")
	fs.StringVar(&f.timeout, "timeout", "", "per-invoice PDF timeout, e.g. 30s, 2m")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel invoices (0 = auto)")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addPageFlags(fs, &f.page)

	if err := parse(fs, args, usage, printGenerateUsage); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseValidateFlags parses validate command flags and returns positional args.
func parseValidateFlags(args []string, usage io.Writer) (*commonFlags, []string, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	f := &commonFlags{}

	addCommonFlags(fs, f)

	if err := parse(fs, args, usage, printValidateUsage); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parse runs fs.Parse with errors routed to usage. flag.ErrHelp is returned
// unwrapped so callers can exit successfully after --help.
func parse(fs *flag.FlagSet, args []string, usage io.Writer, printUsage func(io.Writer)) error {
	fs.SetOutput(usage)
	fs.Usage = func() { printUsage(usage) }

	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}
