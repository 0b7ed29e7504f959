// Package ast defines the Abstract Syntax Tree node types for the P
// language.
package ast

import (
	"bytes"

	"github.com/plang-dev/go-plang/pkg/token"
)

// Node is the base interface for all AST nodes.
// Every node must be able to provide its token literal, position
// information, and a string representation for debugging.
type Node interface {
	// TokenLiteral returns the literal value of the token this node is
	// associated with.
	TokenLiteral() string

	// String returns a string representation of the node for debugging
	// and testing.
	String() string

	// Pos returns the position of the node in the source code for error
	// reporting.
	Pos() token.Position
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action but doesn't
// produce a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node of the AST. A P program has a name, a group
// of global declarations, a list of function definitions, and a body.
type Program struct {
	Token     token.Token // the program-name IDENT token
	Name      string
	Decls     []*DeclNode
	Functions []*FunctionNode
	Body      *CompoundStatement
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) Pos() token.Position  { return p.Token.Pos }

func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString(p.Name)
	out.WriteString(";\n")
	for _, d := range p.Decls {
		out.WriteString(d.String())
	}
	for _, f := range p.Functions {
		out.WriteString(f.String())
	}
	if p.Body != nil {
		out.WriteString(p.Body.String())
	}
	return out.String()
}
