package semantic

import (
	"fmt"
	"io"
	"strings"

	"github.com/plang-dev/go-plang/internal/types"
	"github.com/plang-dev/go-plang/pkg/token"
)

// SymbolKind classifies a symbol entry. The first six kinds appear in
// symbol tables; Propagate marks synthesized expression attributes, and
// ForLoop and CompoundStatement appear only on the context stack.
type SymbolKind int

const (
	KindProgram SymbolKind = iota
	KindFunction
	KindParameter
	KindVariable
	KindLoopVariable
	KindConstant

	KindPropagate
	KindForLoop
	KindCompoundStatement
)

// String returns the kind word used in symbol-table dumps.
func (k SymbolKind) String() string {
	switch k {
	case KindProgram:
		return "program"
	case KindFunction:
		return "function"
	case KindParameter:
		return "parameter"
	case KindVariable:
		return "variable"
	case KindLoopVariable:
		return "loop_var"
	case KindConstant:
		return "constant"
	}
	return ""
}

// SymbolEntry is one symbol in a scope table, or a synthetic entry on
// the context stack.
//
// Attribute depends on the kind: the literal text for constants, the
// rendered parameter-type list for functions, and the poison marker
// "error" for declarations that failed validation. Params carries the
// structured parameter types of a function; Attribute is only its
// rendering.
type SymbolEntry struct {
	Name      string
	Kind      SymbolKind
	Level     int
	Type      types.Type
	Params    []types.Type
	Attribute string
	Pos       token.Position
}

// TypeText returns the canonical type text for dumps and diagnostics.
func (e *SymbolEntry) TypeText() string {
	if e.Type == nil {
		return ""
	}
	return e.Type.String()
}

// SymbolTable is the symbol table of one scope. Entries keep insertion
// order; names are unique within one table.
type SymbolTable struct {
	entries []*SymbolEntry
}

// NewSymbolTable creates an empty scope table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Insert adds entry to the table. It fails without modifying the table
// when the name is already present.
func (st *SymbolTable) Insert(entry *SymbolEntry) bool {
	for _, e := range st.entries {
		if e.Name == entry.Name {
			return false
		}
	}
	st.entries = append(st.entries, entry)
	return true
}

// Lookup returns the entry with the given name, or nil.
func (st *SymbolTable) Lookup(name string) *SymbolEntry {
	for _, e := range st.entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

const dumpWidth = 110

// Dump writes the table in the fixed-width dump format: a 110-char
// demarcation, the column header, one row per entry in insertion order,
// and a closing demarcation.
func (st *SymbolTable) Dump(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", dumpWidth))
	fmt.Fprintf(w, "%-33s%-11s%-11s%-17s%-11s\n", "Name", "Kind", "Level", "Type", "Attribute")
	fmt.Fprintln(w, strings.Repeat("-", dumpWidth))

	for _, e := range st.entries {
		scope := "(local)"
		if e.Level == 0 {
			scope = "(global)"
		}

		attr := e.Attribute
		if e.Kind != KindConstant && attr == "error" {
			attr = ""
		}

		fmt.Fprintf(w, "%-33s%-11s%d%-10s%-17s%-11s\n",
			e.Name, e.Kind, e.Level, scope, e.TypeText(), attr)
	}

	fmt.Fprintln(w, strings.Repeat("-", dumpWidth))
}
