// Package types defines the value types of the P language.
//
// Types are structured values: a primitive scalar, or an array built from
// a scalar element and an ordered list of dimension sizes. The canonical
// textual form ("integer", "real [2][3]") is only a rendering used in
// diagnostics and symbol-table dumps; comparisons are structural.
package types

import (
	"fmt"
	"strings"
)

// Type is the interface implemented by all P types.
type Type interface {
	// String returns the canonical textual form of the type.
	String() string

	// TypeKind returns a stable tag identifying the kind of type.
	TypeKind() string

	// Equals reports structural equality with another type.
	Equals(other Type) bool
}

// BasicType represents a primitive type.
type BasicType struct {
	name string
	kind string
}

// Primitive type singletons. Comparing against these with == is valid for
// scalars obtained from this package.
var (
	INTEGER = &BasicType{name: "integer", kind: "INTEGER"}
	REAL    = &BasicType{name: "real", kind: "REAL"}
	BOOLEAN = &BasicType{name: "boolean", kind: "BOOLEAN"}
	STRING  = &BasicType{name: "string", kind: "STRING"}
	VOID    = &BasicType{name: "void", kind: "VOID"}
)

func (b *BasicType) String() string   { return b.name }
func (b *BasicType) TypeKind() string { return b.kind }

func (b *BasicType) Equals(other Type) bool {
	o, ok := other.(*BasicType)
	return ok && b.kind == o.kind
}

// ArrayType represents a multi-dimensional array of a primitive element
// type. Dims holds the declared dimension sizes in source order and is
// never empty. Non-positive sizes are representable so the analyzer can
// diagnose them while still inserting the declaration.
type ArrayType struct {
	Element *BasicType
	Dims    []int
}

// NewArrayType builds an array type over element with the given dims.
func NewArrayType(element *BasicType, dims []int) *ArrayType {
	return &ArrayType{Element: element, Dims: dims}
}

func (a *ArrayType) String() string {
	var sb strings.Builder
	sb.WriteString(a.Element.String())
	sb.WriteString(" ")
	for _, d := range a.Dims {
		fmt.Fprintf(&sb, "[%d]", d)
	}
	return sb.String()
}

func (a *ArrayType) TypeKind() string { return "ARRAY" }

func (a *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	if !ok || !a.Element.Equals(o.Element) || len(a.Dims) != len(o.Dims) {
		return false
	}
	for i, d := range a.Dims {
		if d != o.Dims[i] {
			return false
		}
	}
	return true
}

// Rank returns the number of dimensions of t: 0 for scalars.
func Rank(t Type) int {
	if a, ok := t.(*ArrayType); ok {
		return len(a.Dims)
	}
	return 0
}

// Element returns the scalar element type of t, or t itself for scalars.
func Element(t Type) *BasicType {
	switch t := t.(type) {
	case *ArrayType:
		return t.Element
	case *BasicType:
		return t
	}
	return nil
}

// Index returns the type of t after applying k subscripts: the trailing
// dimensions survive, and a full application yields the scalar element.
// Index panics if k exceeds the rank; callers check rank first.
func Index(t Type, k int) Type {
	if k == 0 {
		return t
	}
	a, ok := t.(*ArrayType)
	if !ok || k > len(a.Dims) {
		panic(fmt.Sprintf("types: cannot apply %d subscripts to '%s'", k, t))
	}
	if k == len(a.Dims) {
		return a.Element
	}
	rest := make([]int, len(a.Dims)-k)
	copy(rest, a.Dims[k:])
	return &ArrayType{Element: a.Element, Dims: rest}
}

// IsScalar reports whether t is a usable primitive value type
// (integer, real, boolean or string — not void, not an array).
func IsScalar(t Type) bool {
	b, ok := t.(*BasicType)
	return ok && b != VOID
}

// IsArithmetic reports whether t is integer or real.
func IsArithmetic(t Type) bool {
	return t == INTEGER || t == REAL
}

// AssignableTo reports whether a value of type from may be assigned to a
// target of type to: exact structural match, or the single implicit
// widening integer -> real. Used for assignment, return and argument
// passing alike.
func AssignableTo(from, to Type) bool {
	if from == nil || to == nil {
		return false
	}
	if to.Equals(from) {
		return true
	}
	return to == REAL && from == INTEGER
}
