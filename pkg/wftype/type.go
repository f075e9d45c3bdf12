// Package wftype defines the canonical workflow type grammar: the closed
// algebraic form that primitives, arrays, records, enums, unions and
// file-with-secondary-files are normalized into before any compatibility
// check runs.
package wftype

// Kind tags the shape of a type expression.
type Kind int

const (
	KNull Kind = iota
	KBoolean
	KInt
	KLong
	KFloat
	KDouble
	KString
	KFile
	KDirectory
	KAny
	KArray
	KRecord
	KEnum
	KUnion
	// KOther carries forward any tag the loader produced that this grammar
	// doesn't recognize, rather than silently passing it through.
	KOther
)

func (k Kind) String() string {
	switch k {
	case KNull:
		return "null"
	case KBoolean:
		return "boolean"
	case KInt:
		return "int"
	case KLong:
		return "long"
	case KFloat:
		return "float"
	case KDouble:
		return "double"
	case KString:
		return "string"
	case KFile:
		return "File"
	case KDirectory:
		return "Directory"
	case KAny:
		return "Any"
	case KArray:
		return "array"
	case KRecord:
		return "record"
	case KEnum:
		return "enum"
	case KUnion:
		return "union"
	default:
		return "other"
	}
}

// SecondaryFile describes one auxiliary file pattern a File sink or source
// may require or provide.
type SecondaryFile struct {
	Pattern  string
	Required bool
}

// Field is one named member of a record type.
type Field struct {
	Name string
	Type T
}

// T is a type expression: the recursive, tagged value described in the
// workflow type grammar. Exactly one of Items, Fields/Name/Symbols,
// Branches is populated, selected by Kind.
type T struct {
	Kind Kind

	// KArray
	Items *T

	// KRecord, KEnum
	Name    string
	Fields  []Field
	Symbols []string

	// KUnion: ordered, may itself contain nested unions before
	// NormalizeUnions is applied.
	Branches []T

	// KFile
	Secondary []SecondaryFile

	// KOther
	Other string

	// NotConnected marks a sink type that exists in a step definition but
	// was never wired to a source by the graph builder. It is set only on
	// the top-level type of a sink Parameter, never propagated into
	// Items/Fields, matching the upstream representation where this
	// marker lives on the parameter, not on nested type fragments.
	NotConnected bool
}

// Primitive builds a scalar T of the given kind.
func Primitive(k Kind) T { return T{Kind: k} }

// Array builds an array type wrapping items.
func Array(items T) T { return T{Kind: KArray, Items: &items} }

// Record builds a record type.
func Record(name string, fields ...Field) T {
	return T{Kind: KRecord, Name: name, Fields: fields}
}

// Enum builds an enum type.
func Enum(name string, symbols ...string) T {
	return T{Kind: KEnum, Name: name, Symbols: symbols}
}

// Union builds a union of branches, flattening any branch that is itself a
// union one level, per the "normalize nested unions on entry" design note.
func Union(branches ...T) T {
	return T{Kind: KUnion, Branches: NormalizeUnions(branches)}
}

// File builds a File type, optionally with required/optional secondaries.
func File(secondary ...SecondaryFile) T {
	return T{Kind: KFile, Secondary: secondary}
}

// Other builds a KOther placeholder for an unrecognized loader tag.
func Other(tag string) T { return T{Kind: KOther, Other: tag} }

// IsNull reports whether t is the null primitive.
func (t T) IsNull() bool { return t.Kind == KNull }

// HasNull reports whether t is null, or a union containing a null branch.
func (t T) HasNull() bool {
	if t.Kind == KNull {
		return true
	}
	if t.Kind == KUnion {
		for _, b := range t.Branches {
			if b.IsNull() {
				return true
			}
		}
	}
	return false
}

// NormalizeUnions flattens one level of nested unions within branches, so
// that the assignability oracle's recursion depth tracks type nesting
// rather than how the union happened to be declared.
func NormalizeUnions(branches []T) []T {
	out := make([]T, 0, len(branches))
	for _, b := range branches {
		if b.Kind == KUnion {
			out = append(out, b.Branches...)
		} else {
			out = append(out, b)
		}
	}
	return out
}

// WithNullPrefix returns a union of null followed by t's own branches (or
// just t, if t isn't already a union), used by the conditional-step
// nullability promotion. It is idempotent: prefixing null onto a type that
// already has it as its first branch returns an equivalent type.
func WithNullPrefix(t T) T {
	if t.HasNull() {
		return t
	}
	if t.Kind == KUnion {
		return T{Kind: KUnion, Branches: append([]T{Primitive(KNull)}, t.Branches...)}
	}
	return T{Kind: KUnion, Branches: []T{Primitive(KNull), t}}
}
