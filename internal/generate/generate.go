// Package generate orchestrates one buildstamp run: resolve configuration,
// expand the selected operations against the fact caches, and write the
// generated source file.
package generate

import (
	"fmt"
	"os"

	"github.com/buildstamp/buildstamp/internal/config"
	"github.com/buildstamp/buildstamp/internal/emit"
	"github.com/buildstamp/buildstamp/internal/expand"
	"github.com/buildstamp/buildstamp/internal/facts"
)

// DefaultOutput is the generated file name when neither flag nor config
// chooses one.
const DefaultOutput = "zz_buildstamp.go"

// DefaultPackage is the generated package clause when none is chosen.
const DefaultPackage = "main"

// Options configures a run. Non-zero fields override config file values.
type Options struct {
	ConfigPath string
	Output     string
	Package    string
	Prefix     string
	Operations []string
	Facts      *facts.Facts
}

// Result reports what a run produced.
type Result struct {
	Path       string
	Package    string
	Operations []string
	Bytes      int
}

// Expand resolves options against the config file and expands the selected
// operations. A toolchain-query failure surfaces as *expand.Fatal.
func Expand(opts Options) (emit.File, Options, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return emit.File{}, opts, err
	}
	resolved := merge(opts, cfg)
	if err := config.ValidateOperations(resolved.Operations); err != nil {
		return emit.File{}, resolved, err
	}
	f := resolved.Facts
	if f == nil {
		f = facts.New(facts.Options{})
		resolved.Facts = f
	}
	literals := make([]expand.Literal, 0, len(resolved.Operations))
	for _, name := range resolved.Operations {
		op, _ := expand.Lookup(name)
		lit, err := op.Expand(f)
		if err != nil {
			return emit.File{}, resolved, err
		}
		lit.Ident = resolved.Prefix + lit.Ident
		literals = append(literals, lit)
	}
	file := emit.File{Package: resolved.Package, Literals: literals}
	return file, resolved, nil
}

// Run expands and writes the generated file.
func Run(opts Options) (Result, error) {
	file, resolved, err := Expand(opts)
	if err != nil {
		return Result{}, err
	}
	src, err := emit.Render(file)
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(resolved.Output, src, 0o644); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", resolved.Output, err)
	}
	return Result{
		Path:       resolved.Output,
		Package:    resolved.Package,
		Operations: resolved.Operations,
		Bytes:      len(src),
	}, nil
}

func merge(opts Options, cfg config.Config) Options {
	out := opts
	if out.Output == "" {
		out.Output = cfg.Output
	}
	if out.Output == "" {
		out.Output = DefaultOutput
	}
	if out.Package == "" {
		out.Package = cfg.Package
	}
	if out.Package == "" {
		out.Package = DefaultPackage
	}
	if out.Prefix == "" {
		out.Prefix = cfg.Prefix
	}
	if len(out.Operations) == 0 {
		out.Operations = cfg.Operations
	}
	if len(out.Operations) == 0 {
		out.Operations = expand.Names()
	}
	return out
}
