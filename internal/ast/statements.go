package ast

import (
	"bytes"

	"github.com/plang-dev/go-plang/pkg/token"
)

// CompoundStatement is a begin/end block with local declarations
// followed by statements.
type CompoundStatement struct {
	Token      token.Token // the BEGIN token
	Decls      []*DeclNode
	Statements []Statement
}

func (c *CompoundStatement) statementNode()       {}
func (c *CompoundStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CompoundStatement) Pos() token.Position  { return c.Token.Pos }

func (c *CompoundStatement) String() string {
	var out bytes.Buffer
	out.WriteString("begin\n")
	for _, d := range c.Decls {
		out.WriteString(d.String())
	}
	for _, s := range c.Statements {
		out.WriteString(s.String())
	}
	out.WriteString("end\n")
	return out.String()
}

// AssignmentNode assigns the value of Expr to the variable reference
// Lvalue. Its position is the := token.
type AssignmentNode struct {
	Token  token.Token // the := token
	Lvalue *VariableReference
	Expr   Expression
}

func (a *AssignmentNode) statementNode()       {}
func (a *AssignmentNode) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentNode) Pos() token.Position  { return a.Token.Pos }

func (a *AssignmentNode) String() string {
	return a.Lvalue.String() + " := " + a.Expr.String() + ";\n"
}

// PrintNode writes one scalar expression.
type PrintNode struct {
	Token token.Token // the PRINT token
	Expr  Expression
}

func (p *PrintNode) statementNode()       {}
func (p *PrintNode) TokenLiteral() string { return p.Token.Literal }
func (p *PrintNode) Pos() token.Position  { return p.Token.Pos }

func (p *PrintNode) String() string {
	return "print " + p.Expr.String() + ";\n"
}

// ReadNode reads into one variable reference.
type ReadNode struct {
	Token  token.Token // the READ token
	Target *VariableReference
}

func (r *ReadNode) statementNode()       {}
func (r *ReadNode) TokenLiteral() string { return r.Token.Literal }
func (r *ReadNode) Pos() token.Position  { return r.Token.Pos }

func (r *ReadNode) String() string {
	return "read " + r.Target.String() + ";\n"
}

// ReturnNode returns the value of Expr from the enclosing function.
type ReturnNode struct {
	Token token.Token // the RETURN token
	Expr  Expression
}

func (r *ReturnNode) statementNode()       {}
func (r *ReturnNode) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnNode) Pos() token.Position  { return r.Token.Pos }

func (r *ReturnNode) String() string {
	return "return " + r.Expr.String() + ";\n"
}

// CallStatement invokes a function for effect, discarding its value.
type CallStatement struct {
	Token token.Token // the IDENT token of the callee
	Call  *FunctionInvocation
}

func (c *CallStatement) statementNode()       {}
func (c *CallStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CallStatement) Pos() token.Position  { return c.Token.Pos }

func (c *CallStatement) String() string {
	return c.Call.String() + ";\n"
}
