package semantic

import (
	"strconv"

	"github.com/plang-dev/go-plang/internal/ast"
	"github.com/plang-dev/go-plang/internal/types"
)

// analyzeStatement dispatches on the statement shape. Statement analysis
// synthesizes nothing; expression attributes produced inside are
// consumed here.
func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case *ast.CompoundStatement:
		a.analyzeCompound(stmt)
	case *ast.DeclNode:
		a.analyzeDecl(stmt)
	case *ast.AssignmentNode:
		a.analyzeAssignment(stmt)
	case *ast.PrintNode:
		a.analyzePrint(stmt)
	case *ast.ReadNode:
		a.analyzeRead(stmt)
	case *ast.IfNode:
		a.analyzeIf(stmt)
	case *ast.WhileNode:
		a.analyzeWhile(stmt)
	case *ast.ForNode:
		a.analyzeFor(stmt)
	case *ast.ReturnNode:
		a.analyzeReturn(stmt)
	case *ast.CallStatement:
		a.analyzeFunctionInvocation(stmt.Call)
	}
}

// analyzeCompound analyzes a begin/end block. A block directly under a
// function reuses the scope the function pushed, so parameters and
// top-level locals share one table; any other block forms its own
// scope.
func (a *Analyzer) analyzeCompound(c *ast.CompoundStatement) {
	addScope := a.currentContext().Kind != KindFunction
	if addScope {
		a.pushScope()
	}

	a.pushContext(&SymbolEntry{
		Kind:  KindCompoundStatement,
		Level: a.scopeLevel(),
		Type:  types.VOID,
	})

	for _, d := range c.Decls {
		a.analyzeDecl(d)
	}
	for _, s := range c.Statements {
		a.analyzeStatement(s)
	}

	a.popContext()
	if addScope {
		a.popScope()
	}
}

// analyzeAssignment checks the target first, then the value. The first
// failing target check stops target checking; the value was already
// analyzed, so its own diagnostics stand.
func (a *Analyzer) analyzeAssignment(s *ast.AssignmentNode) {
	lhs := a.analyzeVariableReference(s.Lvalue)
	rhs := a.analyzeExpression(s.Expr)

	if lhs.Erroneous() {
		return
	}
	if !types.IsScalar(lhs.Type) {
		a.listError(lhs.Pos, "array assignment is not allowed")
		return
	}
	if lhs.Kind == KindConstant {
		a.listError(lhs.Pos, "cannot assign to variable '%s' which is a constant", lhs.Name)
		return
	}
	if lhs.Kind == KindLoopVariable && a.currentContext().Kind != KindForLoop {
		a.listError(lhs.Pos, "the value of loop variable cannot be modified inside the loop body")
		return
	}

	if rhs.Erroneous() {
		return
	}
	if !types.IsScalar(rhs.Type) {
		a.listError(rhs.Pos, "array assignment is not allowed")
	} else if !types.AssignableTo(rhs.Type, lhs.Type) {
		a.listError(s.Pos(), "assigning to '%s' from incompatible type '%s'",
			lhs.TypeText(), rhs.TypeText())
	}

	// The for-header's initializing assignment records the lower bound
	// on the loop variable for the bound-order check.
	if a.currentContext().Kind == KindForLoop && len(a.loopVars) > 0 {
		a.loopVars[len(a.loopVars)-1].Attribute = rhs.Value
	}
}

func (a *Analyzer) analyzePrint(s *ast.PrintNode) {
	attr := a.analyzeExpression(s.Expr)
	if attr.Erroneous() {
		return
	}
	if !types.IsScalar(attr.Type) {
		a.listError(attr.Pos, "expression of print statement must be scalar type")
	}
}

func (a *Analyzer) analyzeRead(s *ast.ReadNode) {
	attr := a.analyzeVariableReference(s.Target)
	if attr.Erroneous() {
		return
	}
	if !types.IsScalar(attr.Type) {
		a.listError(attr.Pos, "variable reference of read statement must be scalar type")
	} else if attr.Kind == KindConstant || attr.Kind == KindLoopVariable {
		a.listError(attr.Pos, "variable reference of read statement cannot be a constant or loop variable")
	}
}

// analyzeIf checks branches first, then the condition's synthesized
// type, so diagnostics keep source discovery order. A propagated
// erroneous condition stays silent.
func (a *Analyzer) analyzeIf(s *ast.IfNode) {
	cond := a.analyzeExpression(s.Condition)
	a.analyzeCompound(s.Then)
	if s.Else != nil {
		a.analyzeCompound(s.Else)
	}

	if cond.Erroneous() {
		return
	}
	if cond.Type != types.BOOLEAN {
		a.listError(cond.Pos, "the expression of condition must be boolean type")
	}
}

func (a *Analyzer) analyzeWhile(s *ast.WhileNode) {
	cond := a.analyzeExpression(s.Condition)
	a.analyzeCompound(s.Body)

	if cond.Erroneous() {
		return
	}
	if cond.Type != types.BOOLEAN {
		a.listError(cond.Pos, "the expression of condition must be boolean type")
	}
}

// analyzeFor forms the loop's scope, declares and initializes the loop
// variable, evaluates the upper bound, analyzes the body, then enforces
// that the bounds are in incremental order.
func (a *Analyzer) analyzeFor(s *ast.ForNode) {
	a.pushScope()
	a.pushContext(&SymbolEntry{
		Kind:  KindForLoop,
		Level: a.scopeLevel(),
		Type:  types.VOID,
	})

	a.analyzeDecl(s.Decl)
	a.analyzeAssignment(s.Init)
	upper := a.analyzeExpression(s.Upper)
	a.analyzeCompound(s.Body)

	a.popContext()

	loopVar := a.loopVars[len(a.loopVars)-1]
	a.loopVars = a.loopVars[:len(a.loopVars)-1]

	// Bounds are integer literals by contract; anything else skips the
	// ordering check.
	lo, loErr := strconv.Atoi(loopVar.Attribute)
	hi, hiErr := strconv.Atoi(upper.Value)
	if loErr == nil && hiErr == nil && lo > hi {
		a.listError(s.Pos(),
			"the lower bound and upper bound of iteration count must be in the incremental order")
	}

	a.popScope()
}

// analyzeReturn verifies the statement sits in a value-returning
// function and that the returned type is compatible with the declared
// return type.
func (a *Analyzer) analyzeReturn(s *ast.ReturnNode) {
	attr := a.analyzeExpression(s.Expr)

	var fn *SymbolEntry
	for i := len(a.contexts) - 1; i >= 0; i-- {
		c := a.contexts[i]
		if c.Kind == KindFunction && c.Type != types.VOID {
			fn = c
			break
		}
	}
	if fn == nil {
		a.listError(s.Pos(), "program/procedure should not return a value")
		return
	}

	if attr.Erroneous() {
		return
	}
	if !types.AssignableTo(attr.Type, fn.Type) {
		a.listError(attr.Pos, "return '%s' from a function with return type '%s'",
			attr.TypeText(), fn.TypeText())
	}
}
