package ast

import (
	"bytes"

	"github.com/plang-dev/go-plang/pkg/token"
)

// IfNode is a conditional with an optional else branch.
type IfNode struct {
	Token     token.Token // the IF token
	Condition Expression
	Then      *CompoundStatement
	Else      *CompoundStatement
}

func (i *IfNode) statementNode()       {}
func (i *IfNode) TokenLiteral() string { return i.Token.Literal }
func (i *IfNode) Pos() token.Position  { return i.Token.Pos }

func (i *IfNode) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(i.Condition.String())
	out.WriteString(" then\n")
	out.WriteString(i.Then.String())
	if i.Else != nil {
		out.WriteString("else\n")
		out.WriteString(i.Else.String())
	}
	return out.String()
}

// WhileNode loops while the condition holds.
type WhileNode struct {
	Token     token.Token // the WHILE token
	Condition Expression
	Body      *CompoundStatement
}

func (w *WhileNode) statementNode()       {}
func (w *WhileNode) TokenLiteral() string { return w.Token.Literal }
func (w *WhileNode) Pos() token.Position  { return w.Token.Pos }

func (w *WhileNode) String() string {
	return "while " + w.Condition.String() + " do\n" + w.Body.String()
}

// ForNode iterates a loop variable over an inclusive integer range. The
// parser desugars the header into a declaration of the loop variable, an
// initializing assignment from the lower bound, and the upper-bound
// literal.
type ForNode struct {
	Token token.Token // the FOR token
	Decl  *DeclNode
	Init  *AssignmentNode
	Upper *ConstantValue
	Body  *CompoundStatement
}

func (f *ForNode) statementNode()       {}
func (f *ForNode) TokenLiteral() string { return f.Token.Literal }
func (f *ForNode) Pos() token.Position  { return f.Token.Pos }

func (f *ForNode) String() string {
	var out bytes.Buffer
	out.WriteString("for ")
	out.WriteString(f.Init.Lvalue.String())
	out.WriteString(" := ")
	out.WriteString(f.Init.Expr.String())
	out.WriteString(" to ")
	out.WriteString(f.Upper.String())
	out.WriteString(" do\n")
	out.WriteString(f.Body.String())
	return out.String()
}
