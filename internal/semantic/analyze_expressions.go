package semantic

import (
	"github.com/plang-dev/go-plang/internal/ast"
	"github.com/plang-dev/go-plang/internal/types"
)

// analyzeExpression synthesizes the attribute of one expression node.
// Every expression yields exactly one attribute; an ill-typed expression
// yields a poisoned one after its diagnostic has been emitted, so
// enclosing nodes stay silent.
func (a *Analyzer) analyzeExpression(expr ast.Expression) *Attribute {
	switch expr := expr.(type) {
	case *ast.ConstantValue:
		return a.analyzeConstantValue(expr)
	case *ast.BinaryExpression:
		return a.analyzeBinaryExpression(expr)
	case *ast.UnaryExpression:
		return a.analyzeUnaryExpression(expr)
	case *ast.VariableReference:
		return a.analyzeVariableReference(expr)
	case *ast.FunctionInvocation:
		return a.analyzeFunctionInvocation(expr)
	}
	// Unreachable with a well-formed AST.
	return &Attribute{Kind: KindPropagate, Value: "error"}
}

// analyzeConstantValue synthesizes a literal's attribute: its primitive
// type and the literal rendered as text.
func (a *Analyzer) analyzeConstantValue(c *ast.ConstantValue) *Attribute {
	return &Attribute{
		Kind:  KindPropagate,
		Type:  c.ValueType,
		Value: c.ValueText(),
		Pos:   c.Pos(),
	}
}

func (a *Analyzer) analyzeBinaryExpression(b *ast.BinaryExpression) *Attribute {
	left := a.analyzeExpression(b.Left)
	right := a.analyzeExpression(b.Right)

	result := &Attribute{Kind: KindPropagate, Pos: b.Pos()}

	if left.Erroneous() || right.Erroneous() {
		result.Value = "error"
		return result
	}

	switch b.Op {
	case "+", "-", "*", "/":
		switch {
		case left.Type == types.INTEGER && right.Type == types.INTEGER:
			result.Type = types.INTEGER
		case types.IsArithmetic(left.Type) && types.IsArithmetic(right.Type):
			result.Type = types.REAL
		case b.Op == "+" && left.Type == types.STRING && right.Type == types.STRING:
			result.Type = types.STRING
		}
	case "mod":
		if left.Type == types.INTEGER && right.Type == types.INTEGER {
			result.Type = types.INTEGER
		}
	case "and", "or":
		if left.Type == types.BOOLEAN && right.Type == types.BOOLEAN {
			result.Type = types.BOOLEAN
		}
	default: // relational: < <= = <> >= >
		if types.IsArithmetic(left.Type) && types.IsArithmetic(right.Type) {
			result.Type = types.BOOLEAN
		}
	}

	if result.Type == nil {
		result.Value = "error"
		a.listError(result.Pos, "invalid operands to binary operator '%s' ('%s' and '%s')",
			b.Op, left.TypeText(), right.TypeText())
	}
	return result
}

func (a *Analyzer) analyzeUnaryExpression(u *ast.UnaryExpression) *Attribute {
	operand := a.analyzeExpression(u.Operand)

	result := &Attribute{Kind: KindPropagate, Pos: u.Pos()}

	if operand.Erroneous() {
		result.Value = "error"
		return result
	}

	switch u.Op {
	case "neg":
		if types.IsArithmetic(operand.Type) {
			result.Type = operand.Type
		}
	case "not":
		if operand.Type == types.BOOLEAN {
			result.Type = types.BOOLEAN
		}
	}

	if result.Type == nil {
		result.Value = "error"
		a.listError(result.Pos, "invalid operand to unary operator '%s' ('%s')",
			u.Op, operand.TypeText())
	}
	return result
}

// analyzeVariableReference resolves a (possibly subscripted) name. The
// synthesized attribute preserves the referenced symbol's kind so
// assignment and read rules can detect constants and loop variables.
func (a *Analyzer) analyzeVariableReference(ref *ast.VariableReference) *Attribute {
	indices := make([]*Attribute, len(ref.Indices))
	for i, idx := range ref.Indices {
		indices[i] = a.analyzeExpression(idx)
	}

	result := &Attribute{Name: ref.Name, Kind: KindVariable, Pos: ref.Pos()}

	entry := a.lookup(ref.Name, ref.Pos())
	if entry == nil {
		result.Value = "error"
		return result
	}

	result.Kind = entry.Kind
	result.Type = entry.Type

	switch entry.Kind {
	case KindParameter, KindVariable, KindLoopVariable, KindConstant:
	default:
		a.listError(ref.Pos(), "use of non-variable symbol '%s'", ref.Name)
		result.Value = "error"
		return result
	}

	// A reference to a declaration that failed validation propagates
	// silently.
	if entry.Kind != KindConstant && entry.Attribute == "error" {
		result.Value = "error"
		return result
	}

	if entry.Kind == KindConstant {
		result.Value = entry.Attribute
	}

	// A subscript that already reported its own error poisons the
	// reference silently.
	for _, idx := range indices {
		if idx.Erroneous() {
			result.Value = "error"
			return result
		}
	}

	var badIndex *Attribute
	for _, idx := range indices {
		if idx.Type != types.INTEGER {
			badIndex = idx
			break
		}
	}
	if badIndex != nil {
		a.listError(badIndex.Pos, "index of array reference must be an integer")
		result.Value = "error"
		return result
	}

	rank := types.Rank(entry.Type)
	if len(ref.Indices) > rank {
		a.listError(ref.Pos(), "there is an over array subscript on '%s'", ref.Name)
		result.Value = "error"
		return result
	}

	result.Type = types.Index(entry.Type, len(ref.Indices))
	return result
}

// analyzeFunctionInvocation checks a call's callee, arity and argument
// types, and synthesizes an attribute carrying the return type.
func (a *Analyzer) analyzeFunctionInvocation(call *ast.FunctionInvocation) *Attribute {
	args := make([]*Attribute, len(call.Arguments))
	for i, arg := range call.Arguments {
		args[i] = a.analyzeExpression(arg)
	}

	result := &Attribute{Name: call.Name, Kind: KindPropagate, Pos: call.Pos()}

	entry := a.lookup(call.Name, call.Pos())
	if entry == nil {
		result.Value = "error"
		return result
	}

	if entry.Kind != KindFunction {
		a.listError(call.Pos(), "call of non-function symbol '%s'", call.Name)
		result.Value = "error"
		return result
	}

	result.Type = entry.Type

	if len(args) != len(entry.Params) {
		a.listError(call.Pos(), "too few/much arguments provided for function '%s'", call.Name)
		result.Value = "error"
		return result
	}

	reported := false
	for i, arg := range args {
		if arg.Erroneous() {
			result.Value = "error"
			continue
		}
		if !types.AssignableTo(arg.Type, entry.Params[i]) {
			if !reported {
				a.listError(arg.Pos, "incompatible type passing '%s' to parameter of type '%s'",
					arg.TypeText(), entry.Params[i].String())
				reported = true
			}
			result.Value = "error"
		}
	}
	return result
}
