// Package wfcheck implements the static checker: the assignability oracle
// wired up to edge enumeration, secondary-file checking, cycle detection
// and loop-compatibility checking over a workflow's step graph.
package wfcheck

import "github.com/wfcheck/wfcheck/pkg/wftype"

// LinkMerge selects how multiple sources feeding one sink are combined.
type LinkMerge int

const (
	// LinkMergeNone means no linkMerge method is set.
	LinkMergeNone LinkMerge = iota
	MergeNested
	MergeFlattened
	// LinkMergeUnknown is any value the adapter didn't recognize; routing
	// one to the checker surfaces ErrUnknownLinkMerge.
	LinkMergeUnknown
)

// PickValue is the post-merge selector applied after linkMerge combines
// sources into one sink value.
type PickValue int

const (
	PickValueNone PickValue = iota
	FirstNonNull
	TheOnlyNonNull
	AllNonNull
)

// SourceRef is an opaque capability attached to every Parameter and Step
// at adapter time. The checker never interprets location information
// itself; it only asks a SourceRef to render a message.
type SourceRef interface {
	// Format renders message as an error/warning line anchored at this
	// node, optionally narrowing to a specific field (e.g. "type",
	// "secondaryFiles"). field may be empty.
	Format(message string, field string) string
}

// NullSourceRef is a SourceRef that renders no position information; it
// is the zero value used by tests and by adapter fallbacks.
type NullSourceRef struct{}

// Format implements SourceRef.
func (NullSourceRef) Format(message string, _ string) string { return message }

// ValueFromExpr wraps an opaque valueFrom expression. Only its presence
// matters to the checker; Parsed is populated by the adapter purely to
// catch malformed expressions at load time and is never evaluated here.
type ValueFromExpr struct {
	Raw    string
	Parsed interface{}
}

// Parameter is a node on either side of an edge: a workflow input, a step
// input (sink), a step output, or a workflow output (sink).
type Parameter struct {
	ID   string
	Type wftype.T

	// Source is the sink's wiring to one or more source ids. A workflow
	// output uses OutputSource instead; callers normalize both into this
	// field before calling Enumerate, naming which field held it so
	// diagnostics can say "source" or "outputSource".
	Source       []string
	SourceField  string // "source" or "outputSource", for diagnostics
	LinkMerge    LinkMerge
	HasLinkMerge bool // distinguishes "not set" from LinkMergeNone
	PickValue    PickValue
	HasPickValue bool
	ValueFrom    *ValueFromExpr
	HasDefault   bool

	// ToolEntry anchors secondaryFiles remediation text at the tool
	// definition rather than the step, when present.
	ToolEntry SourceRef
	// UsedByStep, when true, suppresses the "not an input parameter of"
	// diagnostic for a not_connected sink.
	UsedByStep bool

	// OwningStep is the step this parameter belongs to, used only to
	// render the NotConnectedSink diagnostic's sibling-input list; it is
	// not consulted by any compatibility decision.
	OwningStep *Step

	Ref SourceRef
}

// ShortName is the parameter id's final '/'-segment, used throughout
// diagnostics.
func (p Parameter) ShortName() string { return wftype.ShortName(p.ID) }

// Step is a workflow step, keyed by step id in ParamToStep.
type Step struct {
	ID           string
	When         interface{} // any non-nil value marks the step conditional
	Loop         interface{}
	OutputMethod string // "last_iteration" or "all_iterations"
	Scatter      interface{}
	Inputs       []*Parameter
	Run          string // run-id, used in NotConnectedSink diagnostics
	Ref          SourceRef
}

// IsConditional reports whether the step carries a when clause.
func (s *Step) IsConditional() bool { return s != nil && s.When != nil }

// IsAllIterationsLoop reports whether the step has a loop directive with
// outputMethod == all_iterations.
func (s *Step) IsAllIterationsLoop() bool {
	return s != nil && s.Loop != nil && s.OutputMethod == "all_iterations"
}
