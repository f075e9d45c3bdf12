package wftype

import "errors"

// ErrMaxDepthExceeded guards against pathological type nesting; Assign
// returns it distinctly rather than recursing without bound.
var ErrMaxDepthExceeded = errors.New("wftype: max type recursion depth exceeded")

// DefaultMaxDepth is the recursion guard used by Assign when called
// through the package-level helper; callers that need a different bound
// should use AssignDepth directly.
const DefaultMaxDepth = 250

// Assign reports whether src can be assigned to sink under the given
// strictness, using DefaultMaxDepth as the recursion guard. A depth
// overrun is reported as false; use AssignDepth to distinguish that case
// from an ordinary mismatch.
func Assign(src, sink T, strict bool) bool {
	ok, err := AssignDepth(src, sink, strict, DefaultMaxDepth)
	return err == nil && ok
}

// AssignDepth is the recursive structural compatibility check described by
// the assignability oracle. Decision order matters; the first matching
// rule wins:
//
//  1. Either side is Any: accept.
//  2. Both sides are structured (array/record/file): recurse structurally.
//  3. src is a union: strict requires every non-depth-limited branch to be
//     assignable; non-strict requires at least one non-null branch. Either
//     way the per-branch recursion drops to non-strict, matching
//     can_assign_src_to_sink's bare recursive calls through a union, which
//     never forward the caller's strict flag.
//  4. sink is a union: accept iff some branch accepts src, again recursing
//     non-strict.
//  5. Scalar fallback: tag equality.
func AssignDepth(src, sink T, strict bool, depth int) (bool, error) {
	if depth <= 0 {
		return false, ErrMaxDepthExceeded
	}
	next := depth - 1

	if src.Kind == KAny || sink.Kind == KAny {
		return true, nil
	}

	if isDictLike(src) && isDictLike(sink) {
		return assignStructured(src, sink, strict, next)
	}

	if src.Kind == KUnion {
		if strict {
			for _, s := range src.Branches {
				ok, err := AssignDepth(s, sink, false, next)
				if err != nil {
					return false, err
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		}
		for _, s := range src.Branches {
			if s.IsNull() {
				continue
			}
			ok, err := AssignDepth(s, sink, false, next)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	if sink.Kind == KUnion {
		for _, sk := range sink.Branches {
			ok, err := AssignDepth(src, sk, false, next)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	return scalarEqual(src, sink), nil
}

// isDictLike reports whether t is represented as a structural mapping in
// the loader's loose form (array, record, enum, File, or an unrecognized
// tag) as opposed to a bare scalar primitive. Only this set is eligible
// for the sink.not_connected gate and the array/record/File special
// cases; everything else falls straight to the scalar fallback.
func isDictLike(t T) bool {
	switch t.Kind {
	case KArray, KRecord, KEnum, KFile, KOther:
		return true
	default:
		return false
	}
}

func assignStructured(src, sink T, strict bool, depth int) (bool, error) {
	if strict && sink.NotConnected {
		return false, nil
	}

	if src.Kind == KArray && sink.Kind == KArray {
		srcItems, sinkItems := T{Kind: KNull}, T{Kind: KNull}
		if src.Items != nil {
			srcItems = *src.Items
		}
		if sink.Items != nil {
			sinkItems = *sink.Items
		}
		return AssignDepth(srcItems, sinkItems, strict, depth)
	}

	if src.Kind == KRecord && sink.Kind == KRecord {
		return CompareRecords(src, sink, strict, depth)
	}

	if src.Kind == KFile && sink.Kind == KFile {
		if strict {
			for _, sinksf := range sink.Secondary {
				found := false
				for _, srcsf := range src.Secondary {
					if srcsf == sinksf {
						found = true
						break
					}
				}
				if !found {
					return false, nil
				}
			}
		}
		return true, nil
	}

	// Any other combination (enum vs enum, an unrecognized tag, or two
	// mismatched structural kinds) recurses on the bare kind tag, exactly
	// as the grounded reference recurses on src["type"]/sink["type"] once
	// neither side matches array/record/File: an enum's symbols and a
	// record's field list are not inspected here, only its tag.
	return scalarEqual(src, sink), nil
}

func scalarEqual(a, b T) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KOther {
		return a.Other == b.Other
	}
	return true
}

// CompareRecords implements _compare_records: for every field the sink
// declares, the corresponding src field (or null, if absent) must be
// assignable to it under the same strictness. Fields present in src but
// missing from sink are ignored — sink-side width subtyping. Field names
// are compared under ShortName normalization, since record fields are
// declared relative to a workflow step.
func CompareRecords(src, sink T, strict bool, depth int) (bool, error) {
	if depth <= 0 {
		return false, ErrMaxDepthExceeded
	}

	srcFields := map[string]T{}
	for _, f := range src.Fields {
		srcFields[ShortName(f.Name)] = f.Type
	}

	for _, f := range sink.Fields {
		key := ShortName(f.Name)
		srcType, ok := srcFields[key]
		if !ok {
			srcType = Primitive(KNull)
		}
		assignable, err := AssignDepth(srcType, f.Type, strict, depth-1)
		if err != nil {
			return false, err
		}
		if !assignable {
			return false, nil
		}
	}
	return true, nil
}
