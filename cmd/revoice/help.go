package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: revoice <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Render invoice data files to HTML and PDF")
	fmt.Fprintln(w, "  validate   Check invoice data files against the invoice schema")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'revoice help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: revoice generate <data-file>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each invoice data file (.json, .yaml, .yml) and print the PDF paths.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: $TMPDIR/revoice)")
	fmt.Fprintln(w, "      --name <s>              File name without extension")
	fmt.Fprintln(w, "      --nomenclature <s>      Naming when --name is empty: hash")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel invoices (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "  -t, --template <s>          Bundled name (default, minimal) or file path")
	fmt.Fprintln(w, "      --template-dir <dir>    Directory overriding bundled templates by name")
	fmt.Fprintln(w, "      --locale <tag>          Locale for amounts without a currency (e.g. fr-FR)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -f, --format <s>            Paper format: A3, A4, A5, Letter, Legal, Tabloid")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <s>            Margin with unit: 10mm, 1cm, 0.5in, 48px")
	fmt.Fprintln(w, "      --timeout <d>           PDF timeout per invoice (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN             Chrome/Chromium binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1            Disable the Chrome sandbox (containers)")
}

// printValidateUsage prints usage for the validate command.
func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: revoice validate <data-file>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report every schema violation of each invoice data file.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --log-level <s>         Log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>        Log format: console, json")
	fmt.Fprintln(w, "  -q, --quiet                 Only print errors")
	fmt.Fprintln(w, "  -v, --verbose               Log pipeline stages")
}

// runHelp prints help for the named command, or the main usage.
func runHelp(args []string, w io.Writer) error {
	if len(args) == 0 {
		printUsage(w)
		return nil
	}

	switch args[0] {
	case cmdGenerate:
		printGenerateUsage(w)
	case cmdValidate:
		printValidateUsage(w)
	case cmdVersion:
		fmt.Fprintln(w, "Usage: revoice version")
	case cmdHelp:
		fmt.Fprintln(w, "Usage: revoice help [command]")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	return nil
}
