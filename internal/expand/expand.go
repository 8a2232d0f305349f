// Package expand defines the expansion operations. Each operation is a pure
// projection from one of the two cached facts into a Literal: a Go
// expression a generated file embeds, plus the rendered value it denotes.
package expand

import (
	"fmt"

	"github.com/buildstamp/buildstamp/internal/facts"
)

// StampImport is the import path generated code needs for stamp values.
const StampImport = "github.com/buildstamp/buildstamp/pkg/stamp"

// SemverImport is the import path generated code needs for version values.
const SemverImport = "github.com/Masterminds/semver/v3"

// Decl selects the declaration form of an emitted literal.
type Decl string

const (
	DeclConst Decl = "const"
	DeclVar   Decl = "var"
)

// Family groups operations by the fact they project.
type Family string

const (
	FamilyDateTime Family = "datetime"
	FamilyVersion  Family = "version"
)

// Metadata describes an operation for listings and reports.
type Metadata struct {
	Name        string `json:"name"`
	Family      Family `json:"family"`
	Result      string `json:"result"`
	Description string `json:"description"`
}

// Literal is the product of one expansion: a declaration the emitter writes
// verbatim into the generated file.
type Literal struct {
	Metadata Metadata
	// Ident is the exported identifier, before any configured prefix.
	Ident string
	// Decl is const where the expression is a Go constant, var otherwise.
	Decl Decl
	// Type is an explicit type for the declaration, empty for inferred.
	Type string
	// Expr is the Go expression producing the value.
	Expr string
	// Value is the rendered value, for print and ldflags output.
	Value string
	// Imports lists import paths Expr depends on.
	Imports []string
}

// Operation is a named expansion.
type Operation struct {
	Metadata Metadata
	Ident    string
	Expand   func(*facts.Facts) (Literal, error)
}

// Fatal is the compilation-halting diagnostic raised when a version
// operation finds the toolchain query failed. It carries the query's error
// verbatim and is never produced by date/time operations.
type Fatal struct {
	Op  string
	Err error
}

func (f *Fatal) Error() string {
	return fmt.Sprintf("%s: toolchain version unavailable: %v", f.Op, f.Err)
}

func (f *Fatal) Unwrap() error { return f.Err }

// Registry returns all operations in emission order.
func Registry() []Operation {
	return []Operation{
		opDate(),
		opDateString(),
		opTime(),
		opTimeString(),
		opDateTime(),
		opDateTimeString(),
		opUnix(),
		opVersion(),
		opVersionString(),
		opVersionMajor(),
		opVersionMinor(),
		opVersionPatch(),
		opVersionPre(),
		opVersionBuild(),
	}
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range Registry() {
		if op.Metadata.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Names returns all operation names in emission order.
func Names() []string {
	ops := Registry()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Metadata.Name)
	}
	return names
}
