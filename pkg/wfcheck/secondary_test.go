package wfcheck

import (
	"strings"
	"testing"

	"github.com/wfcheck/wfcheck/pkg/wftype"
)

func TestFormatWarningMissingSecondaryFiles(t *testing.T) {
	src := param("wf#in1", wftype.File(wftype.SecondaryFile{Pattern: ".fai", Required: true}))
	sink := param("wf#step1/in", wftype.File(
		wftype.SecondaryFile{Pattern: ".bai", Required: true},
		wftype.SecondaryFile{Pattern: ".fai", Required: true},
	))

	msg := formatWarning(edge{src: src, sink: sink})
	if !strings.Contains(msg, "requires secondaryFiles") {
		t.Fatalf("expected a secondaryFiles diagnostic, got %q", msg)
	}
	if !strings.Contains(msg, "'.bai'") {
		t.Fatalf("expected missing '.bai' to be named, got %q", msg)
	}
	if strings.Contains(msg, "'.fai'") {
		t.Fatalf(".fai is provided by the source and should not be listed as missing, got %q", msg)
	}
}

func TestFormatWarningNotConnectedSuppressedWhenUsedByStep(t *testing.T) {
	sinkType := wftype.Primitive(wftype.KInt)
	sinkType.NotConnected = true
	src := param("wf#in1", wftype.Primitive(wftype.KInt))
	sink := param("wf#step1/in", sinkType)
	sink.UsedByStep = true

	msg := formatWarning(edge{src: src, sink: sink})
	if msg != "" {
		t.Fatalf("expected suppressed message for used_by_step not_connected sink, got %q", msg)
	}
}

func TestFormatWarningNotConnectedNamesSiblings(t *testing.T) {
	sinkType := wftype.Primitive(wftype.KInt)
	sinkType.NotConnected = true
	connected := &Parameter{ID: "wf#step1/other", Type: wftype.Primitive(wftype.KInt), Ref: NullSourceRef{}}
	step := &Step{ID: "wf#step1", Run: "tool.cwl", Inputs: []*Parameter{connected}}

	src := param("wf#in1", wftype.Primitive(wftype.KInt))
	sink := param("wf#step1/in", sinkType)
	sink.OwningStep = step

	msg := formatWarning(edge{src: src, sink: sink})
	if !strings.Contains(msg, "not an input parameter of") {
		t.Fatalf("expected not_connected message, got %q", msg)
	}
	if !strings.Contains(msg, "other") {
		t.Fatalf("expected sibling name 'other' in expected list, got %q", msg)
	}
}

func TestFormatWarningGenericIncompatible(t *testing.T) {
	src := param("wf#in1", wftype.Primitive(wftype.KString))
	sink := param("wf#step1/in", wftype.Primitive(wftype.KInt))

	msg := formatWarning(edge{src: src, sink: sink, hasLinkMerge: true, linkMerge: MergeNested})
	if !strings.Contains(msg, "may be incompatible") {
		t.Fatalf("expected generic incompatible message, got %q", msg)
	}
	if !strings.Contains(msg, "merge_nested") {
		t.Fatalf("expected linkMerge context, got %q", msg)
	}
}
