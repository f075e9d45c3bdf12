package wfcheck

import "github.com/cppforlife/go-patch/patch"

// promotionEnvelope is the alternative to in-place type mutation described
// in spec.md §9 ("Alternatively, precompute a 'promotion envelope' in a
// first pass... then read the effective type through a pure function
// during checking"). Instead of mutating a shared Parameter.Type field,
// Enumerate records, per source id, which context rewrites apply — and
// represents that recording as a sequence of go-patch replace operations
// against a small marker document, so that resolving the envelope for an
// id is itself a pure, idempotent patch application rather than a
// stateful write.
type promotionEnvelope struct {
	ops map[string]patch.Ops
}

func newPromotionEnvelope() *promotionEnvelope {
	return &promotionEnvelope{ops: map[string]patch.Ops{}}
}

var nullWidenPath = patch.MustNewPointerFromString("/null_widen")
var arrayWrapPath = patch.MustNewPointerFromString("/array_wrap")

// markNullWiden records that id's conditional-step source should have its
// type prefixed with null. Recording it twice is harmless: both ops
// replace the same path with the same value.
func (e *promotionEnvelope) markNullWiden(id string) {
	e.ops[id] = append(e.ops[id], patch.ReplaceOp{Path: nullWidenPath, Value: true})
}

// markArrayWrap records that id's all_iterations loop-step source should
// have its type wrapped in an array.
func (e *promotionEnvelope) markArrayWrap(id string) {
	e.ops[id] = append(e.ops[id], patch.ReplaceOp{Path: arrayWrapPath, Value: true})
}

// markers resolves the recorded ops for id against a fresh marker
// document. Because every recorded op is a pure replace against the same
// base document, resolving twice for the same id yields the same answer
// — the idempotence spec.md §5 requires of in-place promotion.
func (e *promotionEnvelope) markers(id string) (nullWiden, arrayWrap bool) {
	ops, ok := e.ops[id]
	if !ok {
		return false, false
	}
	doc := map[string]interface{}{"null_widen": false, "array_wrap": false}
	result, err := ops.Apply(doc)
	if err != nil {
		return false, false
	}
	m, ok := result.(map[string]interface{})
	if !ok {
		return false, false
	}
	nullWiden, _ = m["null_widen"].(bool)
	arrayWrap, _ = m["array_wrap"].(bool)
	return nullWiden, arrayWrap
}
