// Package adapt converts the loosely-typed maps a document loader
// produces (YAML/JSON unmarshaled into map[string]interface{}) into the
// closed wftype/wfcheck representation the checker operates on. It is the
// one place in the module that tolerates "stringly typed" input; once a
// document passes through here, every downstream component works with
// wftype.T and wfcheck.Parameter/Step values only.
package adapt

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/wfcheck/wfcheck/pkg/wfcheck"
	"github.com/wfcheck/wfcheck/pkg/wftype"
)

// Map is the loader's native shape for an object node.
type Map = map[string]interface{}

// ParseType converts a loader-produced type expression into a wftype.T.
// Recognized string tags map to the corresponding primitive Kind; an
// object node is dispatched on its "type" field to array/record/enum/File; a
// sequence is a union. An unrecognized tag becomes wftype.Other(name), kept
// total rather than silently passed through — an unrecognized linkMerge
// downstream stays reachable instead of masked by a dropped type. An object
// node without a "type" tag, or a value of any other Go type, is an error.
func ParseType(raw interface{}) (wftype.T, error) {
	switch v := raw.(type) {
	case nil:
		return wftype.Primitive(wftype.KNull), nil
	case string:
		return primitiveOrOther(v), nil
	case []interface{}:
		branches := make([]wftype.T, 0, len(v))
		for _, b := range v {
			t, err := ParseType(b)
			if err != nil {
				return wftype.T{}, err
			}
			branches = append(branches, t)
		}
		return wftype.Union(branches...), nil
	case Map:
		return parseTypeMap(v)
	default:
		return wftype.T{}, fmt.Errorf("adapt: unrecognized type expression of Go type %T", raw)
	}
}

func primitiveOrOther(tag string) wftype.T {
	switch tag {
	case "null":
		return wftype.Primitive(wftype.KNull)
	case "boolean":
		return wftype.Primitive(wftype.KBoolean)
	case "int":
		return wftype.Primitive(wftype.KInt)
	case "long":
		return wftype.Primitive(wftype.KLong)
	case "float":
		return wftype.Primitive(wftype.KFloat)
	case "double":
		return wftype.Primitive(wftype.KDouble)
	case "string":
		return wftype.Primitive(wftype.KString)
	case "File":
		return wftype.File()
	case "Directory":
		return wftype.Primitive(wftype.KDirectory)
	case "Any":
		return wftype.Primitive(wftype.KAny)
	default:
		return wftype.Other(tag)
	}
}

func parseTypeMap(v Map) (wftype.T, error) {
	tag, _ := v["type"].(string)
	switch tag {
	case "array":
		items, err := ParseType(v["items"])
		if err != nil {
			return wftype.T{}, err
		}
		t := wftype.Array(items)
		if nc, ok := v["not_connected"].(bool); ok {
			t.NotConnected = nc
		}
		return t, nil
	case "record":
		fields, err := parseFields(v["fields"])
		if err != nil {
			return wftype.T{}, err
		}
		name, _ := v["name"].(string)
		return wftype.Record(name, fields...), nil
	case "enum":
		name, _ := v["name"].(string)
		symbols := parseStringSlice(v["symbols"])
		return wftype.Enum(name, symbols...), nil
	case "File":
		sf, err := parseSecondaryFiles(v["secondaryFiles"])
		if err != nil {
			return wftype.T{}, err
		}
		t := wftype.File(sf...)
		if nc, ok := v["not_connected"].(bool); ok {
			t.NotConnected = nc
		}
		return t, nil
	case "":
		return wftype.T{}, fmt.Errorf("adapt: type object missing a 'type' tag")
	default:
		return primitiveOrOther(tag), nil
	}
}

func parseFields(raw interface{}) ([]wftype.Field, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}
	fields := make([]wftype.Field, 0, len(list))
	for _, item := range list {
		fm, ok := item.(Map)
		if !ok {
			continue
		}
		name, _ := fm["name"].(string)
		ft, err := ParseType(fm["type"])
		if err != nil {
			return nil, fmt.Errorf("adapt: field %q: %w", name, err)
		}
		fields = append(fields, wftype.Field{Name: name, Type: ft})
	}
	return fields, nil
}

func parseStringSlice(raw interface{}) []string {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func parseSecondaryFiles(raw interface{}) ([]wftype.SecondaryFile, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}
	out := make([]wftype.SecondaryFile, 0, len(list))
	for _, item := range list {
		switch sf := item.(type) {
		case string:
			out = append(out, wftype.SecondaryFile{Pattern: sf, Required: true})
		case Map:
			pattern, _ := sf["pattern"].(string)
			required := true
			if r, ok := sf["required"].(bool); ok {
				required = r
			}
			out = append(out, wftype.SecondaryFile{Pattern: pattern, Required: required})
		default:
			return nil, fmt.Errorf("adapt: unrecognized secondaryFiles entry of Go type %T", item)
		}
	}
	return out, nil
}

// ParseSourceIDs normalizes a sink's "source"/"outputSource" field, which
// the loader may hand back as either a bare string or a sequence of
// strings, into an ordered id slice.
func ParseSourceIDs(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// ParseValueFrom validates a valueFrom expression's syntax via govaluate
// and wraps it opaquely; the expression is never evaluated by this
// module, matching spec.md's explicit non-goal. A syntactically invalid
// expression is a load-time error, not a checker-time one.
func ParseValueFrom(raw string) (*wfcheck.ValueFromExpr, error) {
	expr, err := govaluate.NewEvaluableExpression(raw)
	if err != nil {
		return &wfcheck.ValueFromExpr{Raw: raw}, fmt.Errorf("adapt: malformed valueFrom expression %q: %w", raw, err)
	}
	return &wfcheck.ValueFromExpr{Raw: raw, Parsed: expr}, nil
}

// ParseLinkMerge maps the loader's linkMerge string onto the closed enum.
// An unrecognized non-empty value becomes LinkMergeUnknown so that
// wfcheck.ErrUnknownLinkMerge stays reachable rather than silently
// defaulting to "no linkMerge".
func ParseLinkMerge(raw string) (merge wfcheck.LinkMerge, has bool) {
	switch raw {
	case "":
		return wfcheck.LinkMergeNone, false
	case "merge_nested":
		return wfcheck.MergeNested, true
	case "merge_flattened":
		return wfcheck.MergeFlattened, true
	default:
		return wfcheck.LinkMergeUnknown, true
	}
}

// ParsePickValue maps the loader's pickValue string onto the closed enum.
func ParsePickValue(raw string) (pick wfcheck.PickValue, has bool) {
	switch raw {
	case "":
		return wfcheck.PickValueNone, false
	case "first_non_null":
		return wfcheck.FirstNonNull, true
	case "the_only_non_null":
		return wfcheck.TheOnlyNonNull, true
	case "all_non_null":
		return wfcheck.AllNonNull, true
	default:
		return wfcheck.PickValueNone, true
	}
}

// ParseParameter converts one loader parameter object (a workflow input,
// step input, step output, or workflow output) into a wfcheck.Parameter.
// sourceField names which field ("source" or "outputSource") this
// document uses for wiring, so diagnostics can say the right thing.
func ParseParameter(id string, raw Map, sourceField string, ref wfcheck.SourceRef) (*wfcheck.Parameter, error) {
	t, err := ParseType(raw["type"])
	if err != nil {
		return nil, fmt.Errorf("adapt: parameter %q: %w", id, err)
	}

	p := &wfcheck.Parameter{
		ID:          id,
		Type:        t,
		Source:      ParseSourceIDs(raw[sourceField]),
		SourceField: sourceField,
		Ref:         ref,
	}

	if lm, ok := raw["linkMerge"].(string); ok {
		p.LinkMerge, p.HasLinkMerge = ParseLinkMerge(lm)
	}
	if pv, ok := raw["pickValue"].(string); ok {
		p.PickValue, p.HasPickValue = ParsePickValue(pv)
	}
	if vf, ok := raw["valueFrom"].(string); ok {
		parsed, err := ParseValueFrom(vf)
		if err != nil {
			return nil, err
		}
		p.ValueFrom = parsed
	}
	if _, ok := raw["default"]; ok {
		p.HasDefault = true
	}
	if uc, ok := raw["used_by_step"].(bool); ok {
		p.UsedByStep = uc
	}

	return p, nil
}

// ParseStep converts one loader step object into a wfcheck.Step. inputs
// are the already-parsed Parameters belonging to this step, supplied by
// the caller since they are built by ParseParameter against the step's
// own id namespace.
func ParseStep(id string, raw Map, inputs []*wfcheck.Parameter, ref wfcheck.SourceRef) *wfcheck.Step {
	s := &wfcheck.Step{
		ID:     id,
		When:   raw["when"],
		Loop:   raw["loop"],
		Scatter: raw["scatter"],
		Inputs: inputs,
		Ref:    ref,
	}
	if run, ok := raw["run"].(string); ok {
		s.Run = run
	}
	if om, ok := raw["outputMethod"].(string); ok {
		s.OutputMethod = om
	}
	for _, in := range inputs {
		in.OwningStep = s
	}
	return s
}
