package semantic

import (
	"strings"

	"github.com/plang-dev/go-plang/internal/ast"
	"github.com/plang-dev/go-plang/internal/types"
)

// analyzeDecl analyzes one declaration group. The group itself is
// transparent; each declared name is handled on its own.
func (a *Analyzer) analyzeDecl(d *ast.DeclNode) {
	for _, v := range d.Variables {
		a.analyzeVariable(v)
	}
}

// analyzeVariable builds and inserts the symbol entry for one declared
// name. A literal initializer makes the name a constant; otherwise the
// innermost context classifies it (for-loop header -> loop variable,
// function -> parameter, anything else -> variable).
//
// Array dimensions must be strictly positive. A violating declaration
// is still inserted, with its attribute poisoned, so later references
// resolve and propagate silently instead of cascading.
func (a *Analyzer) analyzeVariable(v *ast.VariableNode) {
	entry := &SymbolEntry{
		Name:  v.Name,
		Level: a.scopeLevel(),
		Type:  v.DeclaredType,
		Pos:   v.Pos(),
	}

	if v.Initializer != nil {
		init := a.analyzeExpression(v.Initializer)
		entry.Kind = KindConstant
		entry.Attribute = init.Value
	} else {
		switch a.currentContext().Kind {
		case KindForLoop:
			entry.Kind = KindLoopVariable
		case KindFunction:
			entry.Kind = KindParameter
		default:
			entry.Kind = KindVariable
		}
	}

	if arr, ok := v.DeclaredType.(*types.ArrayType); ok {
		for _, dim := range arr.Dims {
			if dim <= 0 {
				entry.Attribute = "error"
				a.listError(entry.Pos,
					"'%s' declared as an array with an index that is not greater than 0", entry.Name)
				break
			}
		}
	}

	a.insert(entry)
	if entry.Kind == KindLoopVariable {
		a.loopVars = append(a.loopVars, entry)
	}
}

// analyzeFunction inserts the function's entry in the enclosing scope,
// then analyzes parameters and body in one shared scope.
func (a *Analyzer) analyzeFunction(f *ast.FunctionNode) {
	params := f.ParameterTypes()
	rendered := make([]string, len(params))
	for i, p := range params {
		rendered[i] = p.String()
	}

	entry := &SymbolEntry{
		Name:      f.Name,
		Kind:      KindFunction,
		Level:     a.scopeLevel(),
		Type:      f.ReturnType,
		Params:    params,
		Attribute: strings.Join(rendered, ", "),
		Pos:       f.Pos(),
	}
	a.insert(entry)

	a.pushScope()
	a.pushContext(entry)

	for _, p := range f.Parameters {
		a.analyzeDecl(p)
	}
	if f.Body != nil {
		a.analyzeCompound(f.Body)
	}

	a.popContext()
	a.popScope()
}
