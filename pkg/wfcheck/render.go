package wfcheck

import (
	"strings"

	"github.com/wfcheck/wfcheck/pkg/wftype"
)

// describeType renders a type expression compactly for diagnostics, e.g.
// "array<int>", "[null, string]", "File". It is display-only and never
// consulted by the oracle.
func describeType(t wftype.T) string {
	switch t.Kind {
	case wftype.KArray:
		items := "null"
		if t.Items != nil {
			items = describeType(*t.Items)
		}
		return "array<" + items + ">"
	case wftype.KRecord:
		names := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			names[i] = f.Name + ": " + describeType(f.Type)
		}
		n := t.Name
		if n == "" {
			n = "record"
		}
		return n + "{" + strings.Join(names, ", ") + "}"
	case wftype.KEnum:
		n := t.Name
		if n == "" {
			n = "enum"
		}
		return n
	case wftype.KUnion:
		parts := make([]string, len(t.Branches))
		for i, b := range t.Branches {
			parts[i] = describeType(b)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case wftype.KOther:
		return t.Other
	default:
		return t.Kind.String()
	}
}
