package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	revoice "github.com/alnah/go-revoice"
	"github.com/alnah/go-revoice/internal/config"
	"github.com/alnah/go-revoice/internal/decode"
	"github.com/alnah/go-revoice/internal/logging"
)

// Command names.
const (
	cmdGenerate = "generate"
	cmdValidate = "validate"
	cmdVersion  = "version"
	cmdHelp     = "help"
)

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no data file specified")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrInvalidLocale  = errors.New("invalid locale")
)

// batchError reports partial failure of a command over several files.
// It unwraps to the first failure so exit codes and hints follow it.
type batchError struct {
	failed, total int
	first         error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d invoices failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error { return e.first }

// runMain dispatches args (without the program name) and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case cmdGenerate:
		err = runGenerate(ctx, rest, env)
	case cmdValidate:
		err = runValidate(rest, env)
	case cmdVersion, "--version":
		fmt.Fprintf(env.Stdout, "revoice %s\n", Version)
	case cmdHelp, "-h", "--help":
		err = runHelp(rest, env.Stdout)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		if errors.Is(err, ErrUnknownCommand) || errors.Is(err, ErrInvalidFlags) {
			fmt.Fprintln(env.Stderr)
			printUsage(env.Stderr)
		}
	}
	return exitCodeFor(err)
}

// runGenerate renders every data file and prints the resulting PDF paths.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, files, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	logger, err := newLogger(&flags.common, cfg, env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	genOpts, err := generatorOptions(flags, cfg, logger)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return ErrNoInput
	}

	opts := mergeOptions(flags, cfg)
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Name != "" && len(files) > 1 {
		return fmt.Errorf("%w: --name needs a single data file, got %d", revoice.ErrInvalidName, len(files))
	}

	invoices, err := readInvoices(files)
	if err != nil {
		return err
	}

	gen, err := env.NewGenerator(genOpts...)
	if err != nil {
		return err
	}

	jobs := make([]revoice.Job, len(invoices))
	for i, data := range invoices {
		jobs[i] = revoice.Job{Data: data, Options: opts}
	}

	workers := flags.workers
	if workers == 0 {
		workers = cfg.Workers
	}
	logger.Debug("generating invoices",
		zap.Int("count", len(jobs)),
		zap.Int("workers", revoice.ResolveWorkers(workers)))

	results := gen.GenerateBatch(ctx, jobs, workers)

	var failed int
	var first error
	for _, r := range results {
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
			fmt.Fprintf(env.Stderr, "%s: %v\n", files[r.Index], r.Err)
			continue
		}
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout, r.Result.PDFPath)
		}
	}

	if failed > 0 {
		return &batchError{failed: failed, total: len(results), first: first}
	}
	return nil
}

// runValidate checks each data file and prints one line per violation.
func runValidate(args []string, env *Environment) error {
	flags, files, err := parseValidateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrNoInput
	}

	var failed int
	var first error
	for _, path := range files {
		err := validateFile(path)
		if err == nil {
			if !flags.quiet {
				fmt.Fprintf(env.Stdout, "%s: ok\n", path)
			}
			continue
		}

		failed++
		if first == nil {
			first = err
		}

		var verr *revoice.ValidationError
		if errors.As(err, &verr) {
			for _, reason := range verr.Reasons {
				fmt.Fprintf(env.Stdout, "%s: %s\n", path, reason)
			}
			continue
		}
		fmt.Fprintf(env.Stderr, "%s: %v\n", path, err)
	}

	if failed > 0 {
		return &batchError{failed: failed, total: len(files), first: first}
	}
	return nil
}

func validateFile(path string) error {
	var data map[string]any
	if err := decode.File(path, &data); err != nil {
		return err
	}
	if err := revoice.Validate(data); err != nil {
		return fmt.Errorf("%w: %w", revoice.ErrInvalidDataObject, err)
	}
	return nil
}

// readInvoices decodes every data file; the first failure aborts.
func readInvoices(files []string) ([]revoice.InvoiceData, error) {
	invoices := make([]revoice.InvoiceData, 0, len(files))
	for _, path := range files {
		var data map[string]any
		if err := decode.File(path, &data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		invoices = append(invoices, data)
	}
	return invoices, nil
}

// loadConfig returns the named config, or an empty one when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, &configError{name: name, err: err}
	}
	return cfg, nil
}

// configError remembers the requested name so the hint can list the
// locations searched.
type configError struct {
	name string
	err  error
}

func (e *configError) Error() string { return e.err.Error() }

func (e *configError) Unwrap() error { return e.err }

// newLogger builds the zap logger. Flags win over config; --verbose and
// --quiet win over both.
func newLogger(f *commonFlags, cfg *config.Config, env *Environment) (*zap.Logger, error) {
	lc := logging.Config{
		Level:  firstNonEmpty(f.logLevel, cfg.Log.Level),
		Format: firstNonEmpty(f.logFormat, cfg.Log.Format, logging.FormatConsole),
	}
	switch {
	case f.verbose:
		lc.Level = "debug"
	case f.quiet:
		lc.Level = "error"
	}
	return logging.New(lc, env.Stderr)
}

// generatorOptions maps flags and config to generator-level options.
func generatorOptions(f *generateFlags, cfg *config.Config, logger *zap.Logger) ([]revoice.Option, error) {
	opts := []revoice.Option{revoice.WithLogger(logger)}

	if raw := firstNonEmpty(f.timeout, cfg.Timeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q (use a positive Go duration like 30s)", ErrInvalidTimeout, raw)
		}
		opts = append(opts, revoice.WithTimeout(d))
	}

	if dir := firstNonEmpty(f.templateDir, cfg.TemplateDir); dir != "" {
		opts = append(opts, revoice.WithTemplateDir(dir))
	}

	if raw := firstNonEmpty(f.locale, cfg.Locale); raw != "" {
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, raw, err)
		}
		opts = append(opts, revoice.WithLocale(tag))
	}

	return opts, nil
}

// mergeOptions builds per-invoice options. Flags win over config; empty
// fields are left to the library defaults.
func mergeOptions(f *generateFlags, cfg *config.Config) revoice.Options {
	return revoice.Options{
		Template:     firstNonEmpty(f.template, cfg.Template),
		Destination:  firstNonEmpty(f.output.destination, cfg.Output.Destination),
		Name:         firstNonEmpty(f.output.name, cfg.Output.Name),
		Nomenclature: firstNonEmpty(f.output.nomenclature, cfg.Output.Nomenclature),
		Format:       firstNonEmpty(f.page.format, cfg.Page.Format),
		Orientation:  firstNonEmpty(f.page.orientation, cfg.Page.Orientation),
		Margin:       firstNonEmpty(f.page.margin, cfg.Page.Margin),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
