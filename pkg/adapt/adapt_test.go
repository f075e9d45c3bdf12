package adapt

import (
	"testing"

	"github.com/wfcheck/wfcheck/pkg/wfcheck"
	"github.com/wfcheck/wfcheck/pkg/wftype"
)

func TestParseTypePrimitive(t *testing.T) {
	ty, err := ParseType("int")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.Kind != wftype.KInt {
		t.Errorf("expected KInt, got %v", ty.Kind)
	}
}

func TestParseTypeUnrecognizedTagBecomesOther(t *testing.T) {
	ty, err := ParseType("org.example.CustomType")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.Kind != wftype.KOther || ty.Other != "org.example.CustomType" {
		t.Errorf("expected Other(%q), got %+v", "org.example.CustomType", ty)
	}
}

func TestParseTypeUnion(t *testing.T) {
	ty, err := ParseType([]interface{}{"null", "int"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.Kind != wftype.KUnion || len(ty.Branches) != 2 {
		t.Fatalf("expected a 2-branch union, got %+v", ty)
	}
	if !ty.HasNull() {
		t.Error("expected union to carry null")
	}
}

func TestParseTypeArray(t *testing.T) {
	raw := Map{"type": "array", "items": "string"}
	ty, err := ParseType(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.Kind != wftype.KArray || ty.Items.Kind != wftype.KString {
		t.Fatalf("expected array<string>, got %+v", ty)
	}
}

func TestParseTypeRecordShortFieldNames(t *testing.T) {
	raw := Map{
		"type": "record",
		"name": "Pair",
		"fields": []interface{}{
			Map{"name": "step1/out/left", "type": "int"},
			Map{"name": "right", "type": "string"},
		},
	}
	ty, err := ParseType(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ty.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(ty.Fields))
	}
	if ty.Fields[0].Name != "step1/out/left" {
		t.Errorf("field name should be preserved verbatim, short-naming happens at compare time, got %q", ty.Fields[0].Name)
	}
}

func TestParseTypeFileWithSecondaryFiles(t *testing.T) {
	raw := Map{
		"type": "File",
		"secondaryFiles": []interface{}{
			".bai",
			Map{"pattern": ".tbi", "required": false},
		},
	}
	ty, err := ParseType(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ty.Secondary) != 2 {
		t.Fatalf("expected 2 secondary file patterns, got %d", len(ty.Secondary))
	}
	if !ty.Secondary[0].Required {
		t.Errorf("a bare string secondaryFiles entry should default to required=true")
	}
	if ty.Secondary[1].Required {
		t.Errorf("explicit required=false should be honored")
	}
}

func TestParseSourceIDsScalarAndSequence(t *testing.T) {
	if got := ParseSourceIDs("wf#in1"); len(got) != 1 || got[0] != "wf#in1" {
		t.Errorf("expected single-element slice, got %v", got)
	}
	if got := ParseSourceIDs([]interface{}{"wf#in1", "wf#in2"}); len(got) != 2 {
		t.Errorf("expected two-element slice, got %v", got)
	}
	if got := ParseSourceIDs(nil); got != nil {
		t.Errorf("expected nil for absent source, got %v", got)
	}
}

func TestParseValueFromRejectsMalformedExpression(t *testing.T) {
	if _, err := ParseValueFrom("self + "); err == nil {
		t.Fatal("expected a malformed valueFrom expression to fail syntax validation")
	}
}

func TestParseValueFromAcceptsWellFormedExpression(t *testing.T) {
	vf, err := ParseValueFrom("self + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vf.Raw != "self + 1" || vf.Parsed == nil {
		t.Errorf("expected parsed expression to be retained, got %+v", vf)
	}
}

func TestParseLinkMergeUnknownValue(t *testing.T) {
	merge, has := ParseLinkMerge("merge_exploded")
	if !has {
		t.Fatal("expected an unrecognized non-empty linkMerge to still be flagged as present")
	}
	_ = merge
}

func TestParseParameterWiresSourceAndType(t *testing.T) {
	raw := Map{"type": "int", "source": "wf#in1"}
	p, err := ParseParameter("wf#step1/in", raw, "source", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Type.Kind != wftype.KInt {
		t.Errorf("expected int type, got %v", p.Type.Kind)
	}
	if len(p.Source) != 1 || p.Source[0] != "wf#in1" {
		t.Errorf("expected source wired to wf#in1, got %v", p.Source)
	}
	if p.SourceField != "source" {
		t.Errorf("expected SourceField to record 'source', got %q", p.SourceField)
	}
}

func TestParseStepLinksInputsBack(t *testing.T) {
	in := &wfcheck.Parameter{ID: "wf#step1/in"}
	raw := Map{"run": "tool.cwl", "when": "true"}
	step := ParseStep("wf#step1", raw, []*wfcheck.Parameter{in}, nil)
	if step.Run != "tool.cwl" {
		t.Errorf("expected run 'tool.cwl', got %q", step.Run)
	}
	if !step.IsConditional() {
		t.Error("expected step with a when clause to be conditional")
	}
	if in.OwningStep != step {
		t.Error("expected ParseStep to back-link its inputs' OwningStep")
	}
}
