// Package semantic implements the semantic analyzer for the P language.
//
// The analyzer walks the AST once, maintaining a stack of scope tables,
// a stack of enclosing contexts, and a registry of the loop variables
// currently in force. Expression analysis synthesizes one attribute per
// expression node, returned to the enclosing node; statement analysis
// returns nothing. Diagnostics accumulate in discovery order and are
// drained by the caller after analysis.
package semantic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/plang-dev/go-plang/internal/ast"
	"github.com/plang-dev/go-plang/internal/errors"
	"github.com/plang-dev/go-plang/internal/types"
	"github.com/plang-dev/go-plang/pkg/token"
)

// NoErrorBanner is printed to standard output by the driver when a
// program analyzes without any diagnostic.
const NoErrorBanner = `
|---------------------------------------------------|
|  There is no syntactic error and semantic error!  |
|---------------------------------------------------|
`

// Attribute is the synthesized attribute of one expression node: its
// type, its literal value when known from a constant, and the symbol
// kind it inherits when it references a declared name directly.
//
// Value holds the poison marker "error" when the expression is
// ill-typed; an attribute is erroneous when Value is "error" and Kind
// is not KindConstant, and enclosing nodes propagate it silently.
type Attribute struct {
	Name  string
	Kind  SymbolKind
	Type  types.Type
	Value string
	Pos   token.Position
}

// Erroneous reports whether the attribute carries the poison marker.
func (a *Attribute) Erroneous() bool {
	return a.Kind != KindConstant && a.Value == "error"
}

// TypeText returns the canonical type text, empty for poisoned types.
func (a *Attribute) TypeText() string {
	if a.Type == nil {
		return ""
	}
	return a.Type.String()
}

// Analyzer performs semantic analysis on a P program. It validates
// name resolution, types and usage rules, dumps each scope's symbol
// table as the scope is popped, and accumulates located diagnostics.
type Analyzer struct {
	scopes      []*SymbolTable
	contexts    []*SymbolEntry
	loopVars    []*SymbolEntry
	sourceLines []string
	diagnostics []*errors.CompilerError
	dumpWriter  io.Writer
	dumpTables  bool
}

// NewAnalyzer creates a new analyzer with symbol-table dumping enabled
// and dumps directed to standard output.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		dumpTables: true,
		dumpWriter: os.Stdout,
	}
}

// SetDumpSymbolTables toggles symbol-table dumping on scope pops.
func (a *Analyzer) SetDumpSymbolTables(dump bool) {
	a.dumpTables = dump
}

// SetDumpWriter redirects symbol-table dumps.
func (a *Analyzer) SetDumpWriter(w io.Writer) {
	a.dumpWriter = w
}

// SetSourceLines provides the 1-indexed line mapping used to quote
// offending source lines in diagnostics. A missing line maps to empty.
func (a *Analyzer) SetSourceLines(lines []string) {
	a.sourceLines = lines
}

// Diagnostics returns the accumulated diagnostics in discovery order.
func (a *Analyzer) Diagnostics() []*errors.CompilerError {
	return a.diagnostics
}

// Errors returns the accumulated diagnostics as formatted strings.
func (a *Analyzer) Errors() []string {
	out := make([]string, len(a.diagnostics))
	for i, d := range a.diagnostics {
		out[i] = d.Format(false)
	}
	return out
}

// AnalysisError reports that analysis produced diagnostics.
type AnalysisError struct {
	Errors []string
}

// Error returns a formatted message containing all diagnostics.
func (e *AnalysisError) Error() string {
	if len(e.Errors) == 0 {
		return "semantic analysis failed"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "semantic analysis failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString(err)
	}
	return sb.String()
}

// Analyze performs semantic analysis of a program. It returns nil when
// no diagnostic was produced, and an *AnalysisError otherwise.
func (a *Analyzer) Analyze(program *ast.Program) error {
	if program == nil {
		return fmt.Errorf("cannot analyze nil program")
	}

	a.pushScope()

	entry := &SymbolEntry{
		Name: program.Name,
		Kind: KindProgram,
		Type: types.VOID,
		Pos:  program.Pos(),
	}
	a.insert(entry)
	a.pushContext(entry)

	for _, d := range program.Decls {
		a.analyzeDecl(d)
	}
	for _, f := range program.Functions {
		a.analyzeFunction(f)
	}
	if program.Body != nil {
		a.analyzeCompound(program.Body)
	}

	a.popContext()
	a.popScope()

	if len(a.diagnostics) > 0 {
		return &AnalysisError{Errors: a.Errors()}
	}
	return nil
}

// ============================================================================
// Scope, context and diagnostic plumbing
// ============================================================================

func (a *Analyzer) pushScope() {
	a.scopes = append(a.scopes, NewSymbolTable())
}

// popScope dumps the innermost scope's table (when dumping is enabled)
// and discards it.
func (a *Analyzer) popScope() {
	top := a.scopes[len(a.scopes)-1]
	if a.dumpTables {
		top.Dump(a.dumpWriter)
	}
	a.scopes = a.scopes[:len(a.scopes)-1]
}

// scopeLevel returns the current scope depth: 0 is the program scope.
func (a *Analyzer) scopeLevel() int {
	return len(a.scopes) - 1
}

func (a *Analyzer) pushContext(entry *SymbolEntry) {
	a.contexts = append(a.contexts, entry)
}

func (a *Analyzer) popContext() {
	a.contexts = a.contexts[:len(a.contexts)-1]
}

// currentContext returns the innermost enclosing context entry.
func (a *Analyzer) currentContext() *SymbolEntry {
	return a.contexts[len(a.contexts)-1]
}

// insert adds entry to the innermost scope. Insertion fails with a
// redeclaration diagnostic when the name duplicates any active loop
// variable, at any depth, or an entry of the innermost scope.
func (a *Analyzer) insert(entry *SymbolEntry) bool {
	for _, lv := range a.loopVars {
		if lv.Name == entry.Name {
			a.listError(entry.Pos, "symbol '%s' is redeclared", entry.Name)
			return false
		}
	}
	if !a.scopes[len(a.scopes)-1].Insert(entry) {
		a.listError(entry.Pos, "symbol '%s' is redeclared", entry.Name)
		return false
	}
	return true
}

// lookup resolves name against the scope stack, innermost first. A miss
// emits an undeclared-symbol diagnostic at pos and returns nil; callers
// synthesize an erroneous attribute instead of a placeholder entry.
func (a *Analyzer) lookup(name string, pos token.Position) *SymbolEntry {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if e := a.scopes[i].Lookup(name); e != nil {
			return e
		}
	}
	a.listError(pos, "use of undeclared symbol '%s'", name)
	return nil
}

// listError appends a diagnostic at pos, quoting the offending source
// line.
func (a *Analyzer) listError(pos token.Position, format string, args ...any) {
	line := ""
	if pos.Line >= 0 && pos.Line < len(a.sourceLines) {
		line = a.sourceLines[pos.Line]
	}
	a.diagnostics = append(a.diagnostics,
		errors.NewCompilerError(pos, fmt.Sprintf(format, args...), line))
}
