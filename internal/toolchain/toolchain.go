// Package toolchain queries the Go toolchain for its self-reported version
// and decodes it into a semantic version.
package toolchain

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// QueryFunc is the external version query. It is invoked at most once per
// process by the fact cache.
type QueryFunc func() (*semver.Version, error)

// goVersionPattern matches the release forms the toolchain reports:
// go1.22, go1.22.3, go1.23rc1, go1.24beta2.
var goVersionPattern = regexp.MustCompile(`^go(\d+)\.(\d+)(?:\.(\d+))?(?:(beta|rc)(\d+))?$`)

// Query runs `go env GOVERSION` and decodes the result. The returned error
// describes either the failed invocation or an unrecognized self-report.
func Query() (*semver.Version, error) {
	out, err := exec.Command("go", "env", "GOVERSION").Output()
	if err != nil {
		return nil, fmt.Errorf("toolchain: run go env GOVERSION: %w", err)
	}
	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return nil, fmt.Errorf("toolchain: go env GOVERSION reported nothing")
	}
	return Parse(raw)
}

// Parse decodes a GOVERSION token such as "go1.22.3" into a semantic
// version. Pre-release suffixes map to semver pre-release identifiers, so
// "go1.23rc1" becomes "1.23.0-rc1".
func Parse(raw string) (*semver.Version, error) {
	m := goVersionPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return nil, fmt.Errorf("toolchain: unrecognized Go version %q", raw)
	}
	major, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("toolchain: decode major in %q: %w", raw, err)
	}
	minor, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("toolchain: decode minor in %q: %w", raw, err)
	}
	var patch uint64
	if m[3] != "" {
		patch, err = strconv.ParseUint(m[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("toolchain: decode patch in %q: %w", raw, err)
		}
	}
	v := semver.New(major, minor, patch, "", "")
	if m[4] != "" {
		withPre, err := v.SetPrerelease(m[4] + m[5])
		if err != nil {
			return nil, fmt.Errorf("toolchain: decode pre-release in %q: %w", raw, err)
		}
		v = &withPre
	}
	return v, nil
}
