// Package model holds the value types shared between the build workflow and
// its reporting.
package model

import "github.com/prefdoctor/prefbuild/platform"

// Outcome is the result of one platform's build attempt. Size is best-effort:
// it is populated only when the build succeeded and the artifact could be
// stat'ed afterwards, so a successful Outcome may still carry Size == nil.
type Outcome struct {
	// Platform that was built. Nil for the bare fallback build, which has
	// no catalog entry.
	Platform *platform.Descriptor `json:"platform,omitempty"`
	// Path of the artifact the build wrote (or attempted to write).
	Artifact string `json:"artifact"`
	// Whether the compiler reported success.
	Success bool `json:"success"`
	// Artifact size in bytes, when known.
	Size *uint64 `json:"size,omitempty"`
	// Error detail for failed builds.
	Err error `json:"-"`
}

// Summary aggregates the outcomes of a multi-platform run.
type Summary struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
}

// Record folds one outcome into the summary.
func (s *Summary) Record(o Outcome) {
	s.Attempted++
	if o.Success {
		s.Succeeded++
	}
}

// AllSucceeded reports whether every attempted build succeeded.
func (s Summary) AllSucceeded() bool {
	return s.Succeeded == s.Attempted
}
