package wfcheck

import (
	"fmt"

	"github.com/wfcheck/wfcheck/pkg/wftype"
)

// edge is one candidate (source, sink) connection awaiting a diagnostic
// decision — the Go analogue of the reference implementation's
// _SrcSink tuple.
type edge struct {
	src          *Parameter
	sink         *Parameter
	linkMerge    LinkMerge
	hasLinkMerge bool
	message      string
}

// buildSourceIndex builds the source parameter index (workflow inputs
// plus step outputs) that sinks resolve their source ids against.
func buildSourceIndex(workflowInputs, stepOutputs []*Parameter) map[string]*Parameter {
	idx := make(map[string]*Parameter, len(workflowInputs)+len(stepOutputs))
	for _, p := range workflowInputs {
		idx[p.ID] = p
	}
	for _, p := range stepOutputs {
		idx[p.ID] = p
	}
	return idx
}

// Enumerate walks sinks (step inputs or workflow outputs), resolving each
// one's declared source id(s) against srcDict, applying the context
// rewrites of spec.md §4.D (conditional-step nullability, all_iterations
// array wrap) through the promotion envelope, and invoking the link-merge
// adapter per edge. It returns the accumulated warning- and
// exception-bucket edges. A source id that fails to resolve is a
// MissingSource failure, surfaced immediately rather than accumulated.
func Enumerate(srcDict map[string]*Parameter, sinks []*Parameter, paramToStep map[string]*Step, env *promotionEnvelope) (warnings, exceptions []edge, err error) {
	return EnumerateWithOptions(srcDict, sinks, paramToStep, env, DefaultOptions())
}

// EnumerateWithOptions is Enumerate bounded and tuned by opts; see
// CheckLinkMergeWithOptions for what StrictMode/MaxTypeDepth change.
func EnumerateWithOptions(srcDict map[string]*Parameter, sinks []*Parameter, paramToStep map[string]*Step, env *promotionEnvelope, opts Options) (warnings, exceptions []edge, err error) {
	for _, sink := range sinks {
		if len(sink.Source) == 0 {
			continue
		}

		var extraMessage string
		if sink.HasPickValue {
			extraMessage = "pickValue is: " + pickValueString(sink.PickValue)
		}

		var linkMerge LinkMerge
		hasLinkMerge := false
		srcsOfSink := make([]*Parameter, 0, len(sink.Source))

		if len(sink.Source) > 1 {
			linkMerge = MergeNested
			hasLinkMerge = true
			if sink.HasLinkMerge {
				linkMerge = sink.LinkMerge
			}
			if sink.PickValue == FirstNonNull || sink.PickValue == TheOnlyNonNull {
				hasLinkMerge = false
			}

			for _, id := range sink.Source {
				src, ok := srcDict[id]
				if !ok {
					return nil, nil, missingSourceErr(sink, id)
				}
				srcsOfSink = append(srcsOfSink, src)

				step := paramToStep[id]
				if step.IsConditional() && !sink.HasPickValue {
					warnings = append(warnings, edge{src, sink, linkMerge, hasLinkMerge,
						"Source is from conditional step, but pickValue is not used"})
				}
				if step.IsAllIterationsLoop() {
					env.markArrayWrap(id)
				}
			}
		} else {
			id := sink.Source[0]
			src, ok := srcDict[id]
			if !ok {
				return nil, nil, missingSourceErr(sink, id)
			}
			srcsOfSink = append(srcsOfSink, src)
			hasLinkMerge = false

			if sink.HasPickValue {
				warnings = append(warnings, edge{src, sink, linkMerge, hasLinkMerge,
					"pickValue is used but only a single input source is declared"})
			}

			step := paramToStep[id]
			if step.IsConditional() {
				env.markNullWiden(id)
				if !sink.Type.HasNull() {
					warnings = append(warnings, edge{src, sink, linkMerge, hasLinkMerge,
						"Source is from conditional step and may produce null"})
				}
			}
			if step.IsAllIterationsLoop() {
				env.markArrayWrap(id)
			}
		}

		for _, src := range srcsOfSink {
			effSrcType := effectiveType(env, src)
			verdict, lmErr := CheckLinkMergeWithOptions(effSrcType, sink.Type, linkMerge, hasLinkMerge, sink.ValueFrom, opts)
			if lmErr != nil {
				return nil, nil, lmErr
			}
			switch verdict {
			case Warning:
				warnings = append(warnings, edge{src, sink, linkMerge, hasLinkMerge, extraMessage})
			case Exception:
				exceptions = append(exceptions, edge{src, sink, linkMerge, hasLinkMerge, extraMessage})
			}
		}
	}

	return warnings, exceptions, nil
}

// effectiveType reads src's promoted type through the envelope: a pure
// function of the envelope's recorded markers, never a mutation of
// src.Type itself.
func effectiveType(env *promotionEnvelope, src *Parameter) wftype.T {
	t := src.Type
	nullWiden, arrayWrap := env.markers(src.ID)
	if nullWiden {
		t = wftype.WithNullPrefix(t)
	}
	if arrayWrap {
		t = wftype.Array(t)
	}
	return t
}

func missingSourceErr(sink *Parameter, id string) error {
	return fmt.Errorf("%s not found: %s", sink.SourceField, id)
}

func pickValueString(p PickValue) string {
	switch p {
	case FirstNonNull:
		return "first_non_null"
	case TheOnlyNonNull:
		return "the_only_non_null"
	case AllNonNull:
		return "all_non_null"
	default:
		return ""
	}
}

// RequiredParameterSweep implements the required-parameter sweep of
// spec.md §4.D: every step input whose declared type does not include
// null and that has neither source, default, nor valueFrom is a
// MissingRequiredParameter exception.
func RequiredParameterSweep(stepInputs []*Parameter) []string {
	var msgs []string
	for _, sink := range stepInputs {
		if sink.Type.HasNull() {
			continue
		}
		if len(sink.Source) > 0 || sink.HasDefault || sink.ValueFrom != nil {
			continue
		}
		msgs = append(msgs, sink.ref().Format(
			fmt.Sprintf("Required parameter '%s' does not have source, default, or valueFrom expression", sink.ShortName()),
			""))
	}
	return msgs
}

func (p *Parameter) ref() SourceRef {
	if p.Ref != nil {
		return p.Ref
	}
	return NullSourceRef{}
}
