package ast

import (
	"bytes"
	"strings"

	"github.com/plang-dev/go-plang/internal/types"
	"github.com/plang-dev/go-plang/pkg/token"
)

// DeclNode groups the variables introduced by a single `var` declaration
// (or one parameter group of a function). It is transparent to analysis:
// each child VariableNode carries its own name, type and location.
type DeclNode struct {
	Token     token.Token // the VAR token, or the first name of a parameter group
	Variables []*VariableNode
}

func (d *DeclNode) statementNode()       {}
func (d *DeclNode) TokenLiteral() string { return d.Token.Literal }
func (d *DeclNode) Pos() token.Position  { return d.Token.Pos }

func (d *DeclNode) String() string {
	var out bytes.Buffer
	out.WriteString("var ")
	names := make([]string, len(d.Variables))
	for i, v := range d.Variables {
		names[i] = v.Name
	}
	out.WriteString(strings.Join(names, ", "))
	if len(d.Variables) > 0 {
		if init := d.Variables[0].Initializer; init != nil {
			out.WriteString(" = ")
			out.WriteString(init.String())
		} else {
			out.WriteString(": ")
			out.WriteString(d.Variables[0].DeclaredType.String())
		}
	}
	out.WriteString(";\n")
	return out.String()
}

// VariableNode declares a single name. DeclaredType is the structured
// type from the declaration; Initializer is non-nil when the declaration
// carries a literal initializer, which makes the name a constant.
type VariableNode struct {
	Token        token.Token // the IDENT token of the name
	Name         string
	DeclaredType types.Type
	Initializer  *ConstantValue
}

func (v *VariableNode) statementNode()       {}
func (v *VariableNode) TokenLiteral() string { return v.Token.Literal }
func (v *VariableNode) Pos() token.Position  { return v.Token.Pos }

func (v *VariableNode) String() string {
	if v.Initializer != nil {
		return v.Name + " = " + v.Initializer.String()
	}
	return v.Name + ": " + v.DeclaredType.String()
}

// Parameter is one formal parameter group of a function: a DeclNode
// whose variables all share one declared type.
type Parameter = DeclNode

// FunctionNode defines a function: name, parameter groups, return type
// (VOID when omitted) and body.
type FunctionNode struct {
	Token      token.Token // the FUNCTION token
	Name       string
	NameToken  token.Token
	Parameters []*Parameter
	ReturnType types.Type
	Body       *CompoundStatement
}

func (f *FunctionNode) statementNode()       {}
func (f *FunctionNode) TokenLiteral() string { return f.Token.Literal }

// Pos returns the position of the function's name, which is where
// declaration diagnostics point.
func (f *FunctionNode) Pos() token.Position { return f.NameToken.Pos }

func (f *FunctionNode) String() string {
	var out bytes.Buffer
	out.WriteString("function ")
	out.WriteString(f.Name)
	out.WriteString("(")
	groups := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		names := make([]string, len(p.Variables))
		for j, v := range p.Variables {
			names[j] = v.Name
		}
		groups[i] = strings.Join(names, ", ") + ": " + p.Variables[0].DeclaredType.String()
	}
	out.WriteString(strings.Join(groups, "; "))
	out.WriteString(")")
	if !f.ReturnType.Equals(types.VOID) {
		out.WriteString(": ")
		out.WriteString(f.ReturnType.String())
	}
	out.WriteString("\n")
	if f.Body != nil {
		out.WriteString(f.Body.String())
	}
	return out.String()
}

// ParameterTypes returns the flattened parameter types in source order,
// one entry per declared name.
func (f *FunctionNode) ParameterTypes() []types.Type {
	var out []types.Type
	for _, p := range f.Parameters {
		for _, v := range p.Variables {
			out = append(out, v.DeclaredType)
		}
	}
	return out
}
