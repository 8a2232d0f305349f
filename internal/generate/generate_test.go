package generate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/buildstamp/buildstamp/internal/expand"
	"github.com/buildstamp/buildstamp/internal/facts"
)

func scenarioFacts() *facts.Facts {
	return facts.New(facts.Options{
		Now: func() time.Time {
			return time.Date(2024, time.March, 15, 9, 7, 22, 0, time.UTC)
		},
		Query: func() (*semver.Version, error) {
			return semver.MustParse("1.75.0"), nil
		},
	})
}

func TestRunWritesGeneratedFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "zz_buildstamp.go")
	result, err := Run(Options{
		Output:     out,
		Package:    "buildinfo",
		Operations: []string{"date_str", "unix", "version_str"},
		Facts:      scenarioFacts(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Path != out || result.Bytes == 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"package buildinfo",
		`const CompileDateString = "2024-03-15"`,
		"const CompileUnix int64 = 1710493642",
		`const ToolchainVersionString = "1.75.0"`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunDefaultsToAllOperations(t *testing.T) {
	out := filepath.Join(t.TempDir(), "zz_buildstamp.go")
	result, err := Run(Options{Output: out, Facts: scenarioFacts()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Operations) != len(expand.Names()) {
		t.Fatalf("expected all operations, got %v", result.Operations)
	}
	if result.Package != DefaultPackage {
		t.Fatalf("expected default package, got %q", result.Package)
	}
}

func TestRunAppliesPrefix(t *testing.T) {
	out := filepath.Join(t.TempDir(), "zz_buildstamp.go")
	if _, err := Run(Options{
		Output:     out,
		Package:    "buildinfo",
		Prefix:     "App",
		Operations: []string{"date_str"},
		Facts:      scenarioFacts(),
	}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "AppCompileDateString") {
		t.Fatalf("expected prefixed identifier:\n%s", data)
	}
}

func TestRunMergesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "buildstamp.yaml")
	outPath := filepath.Join(dir, "stamped.go")
	content := "output: " + outPath + "\npackage: buildinfo\noperations:\n  - datetime_str\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	result, err := Run(Options{ConfigPath: cfgPath, Facts: scenarioFacts()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Path != outPath {
		t.Fatalf("expected config output path, got %q", result.Path)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"2024-03-15T09:07:22Z"`) {
		t.Fatalf("expected datetime literal:\n%s", data)
	}
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "buildstamp.yaml")
	if err := os.WriteFile(cfgPath, []byte("package: fromconfig\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out := filepath.Join(dir, "zz_buildstamp.go")
	result, err := Run(Options{
		ConfigPath: cfgPath,
		Output:     out,
		Package:    "fromflag",
		Operations: []string{"unix"},
		Facts:      scenarioFacts(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Package != "fromflag" {
		t.Fatalf("expected flag to win, got %q", result.Package)
	}
}

func TestRunSurfacesFatalDiagnostic(t *testing.T) {
	f := facts.New(facts.Options{
		Now:   time.Now,
		Query: func() (*semver.Version, error) { return nil, errors.New("not found") },
	})
	out := filepath.Join(t.TempDir(), "zz_buildstamp.go")
	_, err := Run(Options{Output: out, Operations: []string{"version_str"}, Facts: f})
	if err == nil {
		t.Fatalf("expected fatal diagnostic")
	}
	var fatal *expand.Fatal
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *expand.Fatal, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("diagnostic lost query message: %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("no file should be written on fatal diagnostic")
	}
}

func TestRunDateOpsUnaffectedByQueryFailure(t *testing.T) {
	f := facts.New(facts.Options{
		Now:   func() time.Time { return time.Date(2024, time.March, 15, 9, 7, 22, 0, time.UTC) },
		Query: func() (*semver.Version, error) { return nil, errors.New("not found") },
	})
	out := filepath.Join(t.TempDir(), "zz_buildstamp.go")
	if _, err := Run(Options{Output: out, Operations: []string{"date_str", "time_str", "unix"}, Facts: f}); err != nil {
		t.Fatalf("date/time operations must not depend on the toolchain query: %v", err)
	}
}

func TestRunRejectsUnknownOperation(t *testing.T) {
	_, err := Run(Options{Operations: []string{"bogus"}, Facts: scenarioFacts()})
	if err == nil {
		t.Fatalf("expected unknown operation error")
	}
	var fatal *expand.Fatal
	if errors.As(err, &fatal) {
		t.Fatalf("usage errors must not be fatal diagnostics")
	}
}
