// Package facts owns the two write-once caches every expansion operation
// reads: the instant the generator process first observed, and the Go
// toolchain's semantic version. Each cache is computed exactly once per
// process, even under concurrent first access, and never mutated after.
package facts

import (
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/buildstamp/buildstamp/internal/toolchain"
)

// Options configures a Facts instance. Zero values select the real clock
// and the real toolchain query.
type Options struct {
	// Now supplies the current instant. Defaults to time.Now.
	Now func() time.Time
	// Query supplies the toolchain version. Defaults to toolchain.Query.
	Query toolchain.QueryFunc
}

// Facts holds the cached compile-moment and toolchain-version facts.
type Facts struct {
	now   func() time.Time
	query toolchain.QueryFunc

	momentOnce sync.Once
	moment     time.Time

	versionOnce sync.Once
	version     *semver.Version
	versionErr  error
}

// New constructs a Facts cache.
func New(opts Options) *Facts {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	query := opts.Query
	if query == nil {
		query = toolchain.Query
	}
	return &Facts{now: now, query: query}
}

// Moment returns the captured instant, truncated to whole seconds and
// expressed in UTC. The first call captures it; every call returns the
// identical value.
func (f *Facts) Moment() time.Time {
	f.momentOnce.Do(func() {
		f.moment = f.now().UTC().Truncate(time.Second)
	})
	return f.moment
}

// Version returns the toolchain's semantic version. The first call runs the
// external query; every call replays the same outcome, including failure.
func (f *Facts) Version() (*semver.Version, error) {
	f.versionOnce.Do(func() {
		f.version, f.versionErr = f.query()
	})
	return f.version, f.versionErr
}
