// Package cli implements the buildstamp command line.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/buildstamp/buildstamp/internal/config"
	"github.com/buildstamp/buildstamp/internal/expand"
	"github.com/buildstamp/buildstamp/internal/facts"
	"github.com/buildstamp/buildstamp/internal/generate"
	"github.com/buildstamp/buildstamp/pkg/version"
)

// Exit codes: 0 success, 1 fatal expansion diagnostic, 2 usage or
// environment error.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// Execute is the entrypoint for the CLI. Returns process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "ops":
			return runOpsCommand(args[1:], stdout, stderr)
		case "print":
			return runPrintCommand(args[1:], stdout, stderr)
		case "ldflags":
			return runLdflagsCommand(args[1:], stdout, stderr)
		}
	}
	return runGenerate(args, stdout, stderr)
}

func runGenerate(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("buildstamp", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.String("config", "", "Path to buildstamp configuration file (default: probe "+config.DefaultPath+")")
	out := flags.String("out", "", "Output file for the generated source (default "+generate.DefaultOutput+")")
	pkg := flags.String("package", "", "Package clause of the generated file (default "+generate.DefaultPackage+")")
	prefix := flags.String("prefix", "", "Identifier prefix applied to every generated declaration")
	ops := flags.StringSlice("op", nil, "Operation to expand (repeatable; default: all)")
	verbose := flags.Bool("verbose", false, "Log generator progress to stderr")
	showVersion := flags.Bool("version", false, "Print buildstamp version and exit")

	if err := flags.Parse(args); err != nil {
		printError(stderr, "argument", err)
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}
	if flags.NArg() > 0 {
		fmt.Fprintln(stderr, "Usage: buildstamp [flags] | buildstamp ops|print|ldflags [flags]")
		return exitUsage
	}

	log := newLogger(stderr, *verbose)
	cfgPath := *configPath
	if cfgPath == "" {
		if _, err := os.Stat(config.DefaultPath); err == nil {
			cfgPath = config.DefaultPath
			log.Debug().Str("config", cfgPath).Msg("using default configuration file")
		}
	}

	result, err := generate.Run(generate.Options{
		ConfigPath: cfgPath,
		Output:     *out,
		Package:    *pkg,
		Prefix:     *prefix,
		Operations: *ops,
		Facts:      facts.New(facts.Options{}),
	})
	if err != nil {
		return reportExpansionError(stderr, err)
	}
	log.Debug().
		Str("path", result.Path).
		Str("package", result.Package).
		Int("operations", len(result.Operations)).
		Int("bytes", result.Bytes).
		Msg("wrote build stamp")
	fmt.Fprintf(stdout, "wrote %s (%d operations)\n", result.Path, len(result.Operations))
	return exitOK
}

func runOpsCommand(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("ops", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.String("format", "table", "Output format: table|json")
	if err := flags.Parse(args); err != nil {
		printError(stderr, "argument", err)
		return exitUsage
	}
	ops := expand.Registry()
	switch strings.ToLower(*format) {
	case "", "table":
		if err := renderOpsTable(ops, stdout); err != nil {
			printError(stderr, "output", err)
			return exitUsage
		}
		return exitOK
	case "json":
		metas := make([]expand.Metadata, 0, len(ops))
		for _, op := range ops {
			metas = append(metas, op.Metadata)
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(metas); err != nil {
			printError(stderr, "output", err)
			return exitUsage
		}
		return exitOK
	default:
		printError(stderr, "format", fmt.Errorf("unsupported format %q", *format))
		return exitUsage
	}
}

func runPrintCommand(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("print", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.Bool("verbose", false, "Log generator progress to stderr")
	if err := flags.Parse(args); err != nil {
		printError(stderr, "argument", err)
		return exitUsage
	}
	names := flags.Args()
	if len(names) == 0 {
		names = expand.Names()
	}
	if err := config.ValidateOperations(names); err != nil {
		printError(stderr, "operation", err)
		return exitUsage
	}
	log := newLogger(stderr, *verbose)
	f := facts.New(facts.Options{})
	log.Debug().Time("moment", f.Moment()).Msg("captured build instant")
	for _, name := range names {
		op, _ := expand.Lookup(name)
		lit, err := op.Expand(f)
		if err != nil {
			return reportExpansionError(stderr, err)
		}
		if len(names) == 1 {
			fmt.Fprintln(stdout, lit.Value)
		} else {
			fmt.Fprintf(stdout, "%s = %s\n", name, lit.Value)
		}
	}
	return exitOK
}

func runLdflagsCommand(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("ldflags", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	pkg := flags.String("package", "main", "Import path of the package holding the injected variables")
	vars := flags.StringSlice("var", []string{"BuildDate=datetime_str", "GoVersion=version_str"}, "Variable=operation pair to inject (repeatable)")
	if err := flags.Parse(args); err != nil {
		printError(stderr, "argument", err)
		return exitUsage
	}
	f := facts.New(facts.Options{})
	parts := make([]string, 0, len(*vars))
	for _, pair := range *vars {
		name, opName, ok := strings.Cut(pair, "=")
		if !ok || name == "" || opName == "" {
			printError(stderr, "argument", fmt.Errorf("malformed --var %q, want Name=operation", pair))
			return exitUsage
		}
		op, found := expand.Lookup(opName)
		if !found {
			printError(stderr, "operation", fmt.Errorf("unknown operation %q (known: %s)", opName, strings.Join(expand.Names(), ", ")))
			return exitUsage
		}
		lit, err := op.Expand(f)
		if err != nil {
			return reportExpansionError(stderr, err)
		}
		parts = append(parts, fmt.Sprintf("-X '%s.%s=%s'", *pkg, name, lit.Value))
	}
	fmt.Fprintln(stdout, strings.Join(parts, " "))
	return exitOK
}

func renderOpsTable(ops []expand.Operation, w io.Writer) error {
	headers := []string{"Name", "Family", "Result", "Identifier", "Description"}
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		entry := []string{
			op.Metadata.Name,
			string(op.Metadata.Family),
			op.Metadata.Result,
			op.Ident,
			op.Metadata.Description,
		}
		rows = append(rows, entry)
		for i, cell := range entry {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	separator := make([]string, len(widths))
	for i, width := range widths {
		separator[i] = strings.Repeat("-", width+2)
	}
	line := func(values []string) string {
		var b strings.Builder
		b.WriteString("|")
		for i, width := range widths {
			fmt.Fprintf(&b, " %-*s ", width, values[i])
			b.WriteString("|")
		}
		b.WriteString("\n")
		return b.String()
	}
	if _, err := fmt.Fprintln(w, "+"+strings.Join(separator, "+")+"+"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, line(headers)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "+"+strings.Join(separator, "+")+"+"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := io.WriteString(w, line(row)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "+"+strings.Join(separator, "+")+"+"); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d operations\n", len(rows))
	return err
}

func newLogger(stderr io.Writer, verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
}

// reportExpansionError distinguishes the compilation-halting toolchain
// diagnostic from ordinary usage and environment errors.
func reportExpansionError(stderr io.Writer, err error) int {
	var fatal *expand.Fatal
	if errors.As(err, &fatal) {
		printError(stderr, "fatal", fatal)
		return exitFatal
	}
	printError(stderr, "generate", err)
	return exitUsage
}

func printError(w io.Writer, stage string, err error) {
	fmt.Fprintf(w, "[ERROR] %-10s %v\n", strings.ToUpper(stage), err)
}
