package wfcheck

import (
	"testing"

	"github.com/wfcheck/wfcheck/pkg/wftype"
)

func TestCheckLinkMergeValueFromAlwaysPasses(t *testing.T) {
	v, err := CheckLinkMerge(wftype.Primitive(wftype.KString), wftype.Primitive(wftype.KInt),
		LinkMergeNone, false, &ValueFromExpr{Raw: "self"})
	if err != nil || v != Pass {
		t.Fatalf("valueFrom should unconditionally pass, got %v/%v", v, err)
	}
}

func TestCheckLinkMergeNoMergePlainTypes(t *testing.T) {
	v, err := CheckLinkMerge(wftype.Primitive(wftype.KInt), wftype.Primitive(wftype.KInt), LinkMergeNone, false, nil)
	if err != nil || v != Pass {
		t.Fatalf("identical scalar types should pass, got %v/%v", v, err)
	}
}

func TestCheckLinkMergeMergeNestedIntoArray(t *testing.T) {
	v, err := CheckLinkMerge(wftype.Primitive(wftype.KInt), wftype.Array(wftype.Primitive(wftype.KInt)),
		MergeNested, true, nil)
	if err != nil || v != Pass {
		t.Fatalf("merge_nested of int into array<int> should pass, got %v/%v", v, err)
	}
}

func TestCheckLinkMergeMergeNestedIntoScalarExcepts(t *testing.T) {
	v, err := CheckLinkMerge(wftype.Primitive(wftype.KInt), wftype.Primitive(wftype.KInt), MergeNested, true, nil)
	if err != nil || v != Exception {
		t.Fatalf("merge_nested of int into plain int should except, got %v/%v", v, err)
	}
}

func TestCheckLinkMergeMergeFlattenedOfArrayIntoArray(t *testing.T) {
	v, err := CheckLinkMerge(wftype.Array(wftype.Primitive(wftype.KString)), wftype.Array(wftype.Primitive(wftype.KString)),
		MergeFlattened, true, nil)
	if err != nil || v != Pass {
		t.Fatalf("merge_flattened of array<string> into array<string> should pass (already flat), got %v/%v", v, err)
	}
}

func TestCheckLinkMergeMergeFlattenedWrapsScalar(t *testing.T) {
	v, err := CheckLinkMerge(wftype.Primitive(wftype.KString), wftype.Array(wftype.Primitive(wftype.KString)),
		MergeFlattened, true, nil)
	if err != nil || v != Pass {
		t.Fatalf("merge_flattened of a scalar source should wrap it into array<string>, got %v/%v", v, err)
	}
}

func TestCheckLinkMergeUnknownValue(t *testing.T) {
	_, err := CheckLinkMerge(wftype.Primitive(wftype.KInt), wftype.Primitive(wftype.KInt), LinkMergeUnknown, true, nil)
	if err != ErrUnknownLinkMerge {
		t.Fatalf("expected ErrUnknownLinkMerge, got %v", err)
	}
}

func TestCheckLinkMergeNonStrictWarning(t *testing.T) {
	src := wftype.Union(wftype.Primitive(wftype.KInt), wftype.Primitive(wftype.KString))
	v, err := CheckLinkMerge(src, wftype.Primitive(wftype.KInt), LinkMergeNone, false, nil)
	if err != nil || v != Warning {
		t.Fatalf("partially-assignable union should warn, got %v/%v", v, err)
	}
}

func TestCheckLinkMergeNoMatchExcepts(t *testing.T) {
	v, err := CheckLinkMerge(wftype.Primitive(wftype.KString), wftype.Primitive(wftype.KInt), LinkMergeNone, false, nil)
	if err != nil || v != Exception {
		t.Fatalf("incompatible scalars should except, got %v/%v", v, err)
	}
}

func TestCheckLinkMergeNonStrictOptionCollapsesWarningToPass(t *testing.T) {
	src := wftype.Union(wftype.Primitive(wftype.KInt), wftype.Primitive(wftype.KString))
	opts := Options{StrictMode: false, MaxTypeDepth: wftype.DefaultMaxDepth}
	v, err := CheckLinkMergeWithOptions(src, wftype.Primitive(wftype.KInt), LinkMergeNone, false, nil, opts)
	if err != nil || v != Pass {
		t.Fatalf("with StrictMode off, a non-strict-assignable union should pass outright, got %v/%v", v, err)
	}
}

func TestCheckLinkMergeRespectsMaxTypeDepth(t *testing.T) {
	deep := wftype.Primitive(wftype.KInt)
	for i := 0; i < 5; i++ {
		deep = wftype.Array(deep)
	}
	opts := Options{StrictMode: true, MaxTypeDepth: 2}
	_, err := CheckLinkMergeWithOptions(deep, deep, LinkMergeNone, false, nil, opts)
	if err != wftype.ErrMaxDepthExceeded {
		t.Fatalf("expected ErrMaxDepthExceeded with a shallow MaxTypeDepth, got %v", err)
	}
}
