package wfcheck

import (
	"errors"

	"github.com/wfcheck/wfcheck/pkg/wftype"
)

// ErrUnknownLinkMerge is raised independently of the validation exception
// stream, matching the reference implementation raising a distinct
// WorkflowException for an unrecognized linkMerge enum value.
var ErrUnknownLinkMerge = errors.New("wfcheck: unrecognized linkMerge value")

// Verdict is the outcome of the link-merge adapter.
type Verdict int

const (
	Pass Verdict = iota
	Warning
	Exception
)

func (v Verdict) String() string {
	switch v {
	case Pass:
		return "pass"
	case Warning:
		return "warning"
	default:
		return "exception"
	}
}

// CheckLinkMerge wraps the assignability oracle to account for linkMerge,
// valueFrom and pickValue semantics, using DefaultOptions. See
// CheckLinkMergeWithOptions for the full decision procedure.
func CheckLinkMerge(src, sink wftype.T, linkMerge LinkMerge, hasLinkMerge bool, valueFrom *ValueFromExpr) (Verdict, error) {
	return CheckLinkMergeWithOptions(src, sink, linkMerge, hasLinkMerge, valueFrom, DefaultOptions())
}

// CheckLinkMergeWithOptions implements the decision procedure of spec.md
// §4.C, bounded and tuned by opts:
//
//   - valueFrom present: pass unconditionally, the expression may
//     transform the value.
//   - no linkMerge: Assign(opts.StrictMode) -> pass; if opts.StrictMode,
//     fall back to non-strict Assign -> warning; otherwise -> exception.
//     With StrictMode off, the ladder collapses to the single non-strict
//     attempt, so a non-strict-only match passes outright instead of
//     warning.
//   - merge_nested: recurse with src wrapped in an array and sink
//     unchanged, no linkMerge. The source code this is grounded on
//     normalizes both sides through a helper that is a no-op for
//     already-structured types (array/record/enum) — so the sink is
//     compared as declared, never unwrapped a layer.
//   - merge_flattened: recurse with src flatten-merged and sink
//     unchanged, no linkMerge.
//   - anything else: ErrUnknownLinkMerge.
func CheckLinkMergeWithOptions(src, sink wftype.T, linkMerge LinkMerge, hasLinkMerge bool, valueFrom *ValueFromExpr, opts Options) (Verdict, error) {
	if valueFrom != nil {
		return Pass, nil
	}

	if !hasLinkMerge {
		ok, err := wftype.AssignDepth(src, sink, opts.StrictMode, opts.MaxTypeDepth)
		if err != nil {
			return Exception, err
		}
		if ok {
			return Pass, nil
		}
		if opts.StrictMode {
			ok, err := wftype.AssignDepth(src, sink, false, opts.MaxTypeDepth)
			if err != nil {
				return Exception, err
			}
			if ok {
				return Warning, nil
			}
		}
		return Exception, nil
	}

	switch linkMerge {
	case MergeNested:
		return CheckLinkMergeWithOptions(wftype.Array(src), sink, LinkMergeNone, false, nil, opts)
	case MergeFlattened:
		return CheckLinkMergeWithOptions(wftype.FlattenMerge(src), sink, LinkMergeNone, false, nil, opts)
	default:
		return Exception, ErrUnknownLinkMerge
	}
}
