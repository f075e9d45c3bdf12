package wfcheck

import "github.com/wfcheck/wfcheck/pkg/wftype"

// Options bounds and tunes the checker passes. It mirrors
// internal/config.CheckerConfig field-for-field; the CLI builds one from a
// loaded config.Manager, and everything in this package that needs a bound
// or a strictness default falls back to DefaultOptions when the caller
// doesn't have one to thread through.
type Options struct {
	// StrictMode selects which assignability pass CheckLinkMerge attempts
	// first. True (the default) reproduces the warn-then-except ladder:
	// try strict, fall back to non-strict as a warning, otherwise except.
	// False collapses the ladder to a single non-strict attempt: anything
	// non-strict-assignable passes outright, with no warning.
	StrictMode bool

	// MaxTypeDepth bounds wftype.AssignDepth's recursion over nested
	// array/record/union types.
	MaxTypeDepth int

	// MaxCycleDepth bounds the step-dependency DFS's traversal path
	// length before CycleCheckDepth gives up rather than looping forever
	// on a pathological graph.
	MaxCycleDepth int
}

// DefaultOptions mirrors config.DefaultConfig()'s Checker section, and is
// what every exported entry point in this package uses when the caller
// doesn't supply its own Options.
func DefaultOptions() Options {
	return Options{
		StrictMode:    true,
		MaxTypeDepth:  wftype.DefaultMaxDepth,
		MaxCycleDepth: DefaultMaxCycleDepth,
	}
}
