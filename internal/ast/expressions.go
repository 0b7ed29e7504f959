package ast

import (
	"bytes"
	"strings"

	"github.com/plang-dev/go-plang/internal/types"
	"github.com/plang-dev/go-plang/pkg/token"
)

// ConstantValue represents a literal value (integer, real, boolean or
// string). ValueType is the literal's primitive type; the literal text
// is the token literal as written in the source.
type ConstantValue struct {
	Token     token.Token
	ValueType *types.BasicType
}

func (c *ConstantValue) expressionNode()      {}
func (c *ConstantValue) TokenLiteral() string { return c.Token.Literal }
func (c *ConstantValue) Pos() token.Position  { return c.Token.Pos }

func (c *ConstantValue) String() string {
	if c.ValueType == types.STRING {
		return "\"" + c.Token.Literal + "\""
	}
	return c.Token.Literal
}

// ValueText returns the literal rendered as text, as carried in symbol
// attributes and the table dump.
func (c *ConstantValue) ValueText() string { return c.Token.Literal }

// BinaryExpression represents a binary operation (e.g. a + b, x < y).
// Op is the operator mnemonic: + - * / mod and or < <= = <> >= >.
type BinaryExpression struct {
	Token token.Token // the operator token
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Token.Pos }

func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// UnaryExpression represents a unary operation. Op is the operator
// mnemonic: "neg" for unary minus, "not" for boolean negation.
type UnaryExpression struct {
	Token   token.Token // the operator token
	Op      string
	Operand Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position  { return u.Token.Pos }

func (u *UnaryExpression) String() string {
	return "(" + u.Op + " " + u.Operand.String() + ")"
}

// VariableReference references a declared name, optionally subscripted.
type VariableReference struct {
	Token   token.Token // the IDENT token
	Name    string
	Indices []Expression
}

func (v *VariableReference) expressionNode()      {}
func (v *VariableReference) TokenLiteral() string { return v.Token.Literal }
func (v *VariableReference) Pos() token.Position  { return v.Token.Pos }

func (v *VariableReference) String() string {
	var out bytes.Buffer
	out.WriteString(v.Name)
	for _, idx := range v.Indices {
		out.WriteString("[")
		out.WriteString(idx.String())
		out.WriteString("]")
	}
	return out.String()
}

// FunctionInvocation calls a function by name with argument expressions.
type FunctionInvocation struct {
	Token     token.Token // the IDENT token of the callee
	Name      string
	Arguments []Expression
}

func (f *FunctionInvocation) expressionNode()      {}
func (f *FunctionInvocation) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionInvocation) Pos() token.Position  { return f.Token.Pos }

func (f *FunctionInvocation) String() string {
	args := make([]string, len(f.Arguments))
	for i, a := range f.Arguments {
		args[i] = a.String()
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")"
}
