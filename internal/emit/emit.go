// Package emit renders expanded literals into a generated Go source file.
package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/buildstamp/buildstamp/internal/expand"
)

// File describes one generated source file.
type File struct {
	// Package is the package clause of the generated file.
	Package string
	// Literals are emitted in the order given.
	Literals []expand.Literal
}

const fileTemplate = `// Code generated by buildstamp; DO NOT EDIT.

package {{ .Package }}
{{- if .Imports }}

import (
{{- range .Imports }}
	{{ . | quote }}
{{- end }}
)
{{- end }}
{{ range .Literals }}
// {{ .Ident }}: {{ .Metadata.Description | trim }}.
{{ .Decl }} {{ .Ident }}{{ with .Type }} {{ . }}{{ end }} = {{ .Expr }}
{{ end }}`

type templateData struct {
	Package  string
	Imports  []string
	Literals []expand.Literal
}

// Render produces gofmt-formatted source for the file.
func Render(f File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("emit: package name is required")
	}
	if len(f.Literals) == 0 {
		return nil, fmt.Errorf("emit: nothing to emit")
	}
	tmpl, err := template.New("buildstamp").Funcs(sprig.TxtFuncMap()).Parse(fileTemplate)
	if err != nil {
		return nil, fmt.Errorf("emit: parse template: %w", err)
	}
	data := templateData{
		Package:  f.Package,
		Imports:  collectImports(f.Literals),
		Literals: f.Literals,
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("emit: render: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("emit: format generated source: %w", err)
	}
	return src, nil
}

func collectImports(literals []expand.Literal) []string {
	seen := map[string]bool{}
	var paths []string
	for _, lit := range literals {
		for _, path := range lit.Imports {
			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}
	sort.Strings(paths)
	return paths
}
