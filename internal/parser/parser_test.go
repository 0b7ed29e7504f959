package parser

import (
	"testing"

	"github.com/plang-dev/go-plang/internal/ast"
	"github.com/plang-dev/go-plang/internal/lexer"
	"github.com/plang-dev/go-plang/internal/types"
)

// parseProgram is the package test helper: parse src and fail the test
// on any parse error.
func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	if program == nil {
		t.Fatal("ParseProgram returned nil")
	}
	return program
}

func TestProgramHeader(t *testing.T) {
	program := parseProgram(t, "demo;\nbegin\nend")
	if program.Name != "demo" {
		t.Errorf("program name = %q, want %q", program.Name, "demo")
	}
	if program.Body == nil {
		t.Fatal("program body is nil")
	}
	if pos := program.Pos(); pos.Line != 1 || pos.Column != 1 {
		t.Errorf("program position = %s, want 1:1", pos)
	}
}

func TestVariableDeclarations(t *testing.T) {
	program := parseProgram(t, `demo;
var a, b: integer;
var s: string;
begin
end`)

	if len(program.Decls) != 2 {
		t.Fatalf("decl count = %d, want 2", len(program.Decls))
	}

	first := program.Decls[0]
	if len(first.Variables) != 2 {
		t.Fatalf("first group has %d variables, want 2", len(first.Variables))
	}
	for i, name := range []string{"a", "b"} {
		v := first.Variables[i]
		if v.Name != name {
			t.Errorf("variable %d name = %q, want %q", i, v.Name, name)
		}
		if !v.DeclaredType.Equals(types.INTEGER) {
			t.Errorf("variable %q type = %s, want integer", v.Name, v.DeclaredType)
		}
	}
	if b := first.Variables[1]; b.Pos().Line != 2 || b.Pos().Column != 8 {
		t.Errorf("variable 'b' position = %s, want 2:8", b.Pos())
	}

	if s := program.Decls[1].Variables[0]; !s.DeclaredType.Equals(types.STRING) {
		t.Errorf("variable 's' type = %s, want string", s.DeclaredType)
	}
}

func TestConstantDeclaration(t *testing.T) {
	program := parseProgram(t, "demo;\nvar PI = 3.14;\nbegin\nend")

	v := program.Decls[0].Variables[0]
	if v.Initializer == nil {
		t.Fatal("constant declaration has no initializer")
	}
	if v.Initializer.ValueText() != "3.14" {
		t.Errorf("initializer text = %q, want %q", v.Initializer.ValueText(), "3.14")
	}
	if !v.DeclaredType.Equals(types.REAL) {
		t.Errorf("declared type = %s, want real", v.DeclaredType)
	}
}

func TestArrayTypes(t *testing.T) {
	tests := []struct {
		name     string
		decl     string
		expected string
	}{
		{"one dimension", "var a: array [5] of integer;", "integer [5]"},
		{"nested arrays fold", "var a: array [2] of array [3] of real;", "real [2][3]"},
		{"zero dimension parses", "var a: array [0] of integer;", "integer [0]"},
		{"negative dimension parses", "var a: array [-1] of integer;", "integer [-1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := parseProgram(t, "demo;\n"+tt.decl+"\nbegin\nend")
			got := program.Decls[0].Variables[0].DeclaredType.String()
			if got != tt.expected {
				t.Errorf("type = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFunctionDeclaration(t *testing.T) {
	program := parseProgram(t, `demo;
function add(x, y: integer): integer
begin
    return x + y;
end
function show(s: string)
begin
    print s;
end
begin
end`)

	if len(program.Functions) != 2 {
		t.Fatalf("function count = %d, want 2", len(program.Functions))
	}

	add := program.Functions[0]
	if add.Name != "add" {
		t.Errorf("name = %q, want add", add.Name)
	}
	if !add.ReturnType.Equals(types.INTEGER) {
		t.Errorf("return type = %s, want integer", add.ReturnType)
	}
	params := add.ParameterTypes()
	if len(params) != 2 || !params[0].Equals(types.INTEGER) || !params[1].Equals(types.INTEGER) {
		t.Errorf("parameter types = %v, want [integer integer]", params)
	}
	if pos := add.Pos(); pos.Line != 2 || pos.Column != 10 {
		t.Errorf("function position = %s, want 2:10 (the name)", pos)
	}

	show := program.Functions[1]
	if !show.ReturnType.Equals(types.VOID) {
		t.Errorf("omitted return type = %s, want void", show.ReturnType)
	}
}

func TestStatementShapes(t *testing.T) {
	program := parseProgram(t, `demo;
var x: integer;
begin
    x := 1;
    print x;
    read x;
    return x;
    dump(x);
    begin
        print 2;
    end
end`)

	stmts := program.Body.Statements
	if len(stmts) != 6 {
		t.Fatalf("statement count = %d, want 6", len(stmts))
	}
	if _, ok := stmts[0].(*ast.AssignmentNode); !ok {
		t.Errorf("stmts[0] is %T, want *ast.AssignmentNode", stmts[0])
	}
	if _, ok := stmts[1].(*ast.PrintNode); !ok {
		t.Errorf("stmts[1] is %T, want *ast.PrintNode", stmts[1])
	}
	if _, ok := stmts[2].(*ast.ReadNode); !ok {
		t.Errorf("stmts[2] is %T, want *ast.ReadNode", stmts[2])
	}
	if _, ok := stmts[3].(*ast.ReturnNode); !ok {
		t.Errorf("stmts[3] is %T, want *ast.ReturnNode", stmts[3])
	}
	if _, ok := stmts[4].(*ast.CallStatement); !ok {
		t.Errorf("stmts[4] is %T, want *ast.CallStatement", stmts[4])
	}
	if _, ok := stmts[5].(*ast.CompoundStatement); !ok {
		t.Errorf("stmts[5] is %T, want *ast.CompoundStatement", stmts[5])
	}
}

func TestIfElse(t *testing.T) {
	program := parseProgram(t, `demo;
var x: integer;
begin
    if x > 0 then begin
        print x;
    end else begin
        print 0;
    end
end`)

	stmt, ok := program.Body.Statements[0].(*ast.IfNode)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfNode", program.Body.Statements[0])
	}
	if stmt.Else == nil {
		t.Error("else branch is nil")
	}
	cond, ok := stmt.Condition.(*ast.BinaryExpression)
	if !ok || cond.Op != ">" {
		t.Errorf("condition = %s, want a '>' comparison", stmt.Condition)
	}
}

func TestForDesugaring(t *testing.T) {
	program := parseProgram(t, `demo;
begin
    for i := 1 to 10 do begin
        print i;
    end
end`)

	stmt, ok := program.Body.Statements[0].(*ast.ForNode)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ForNode", program.Body.Statements[0])
	}
	if pos := stmt.Pos(); pos.Line != 3 || pos.Column != 5 {
		t.Errorf("for position = %s, want 3:5 (the keyword)", pos)
	}

	v := stmt.Decl.Variables[0]
	if v.Name != "i" || !v.DeclaredType.Equals(types.INTEGER) {
		t.Errorf("loop variable = %s %s, want i integer", v.Name, v.DeclaredType)
	}
	if stmt.Init.Lvalue.Name != "i" {
		t.Errorf("init target = %q, want i", stmt.Init.Lvalue.Name)
	}
	lower, ok := stmt.Init.Expr.(*ast.ConstantValue)
	if !ok || lower.ValueText() != "1" {
		t.Errorf("lower bound = %s, want literal 1", stmt.Init.Expr)
	}
	if stmt.Upper.ValueText() != "10" {
		t.Errorf("upper bound = %q, want 10", stmt.Upper.ValueText())
	}
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected string
	}{
		{"product binds tighter", "1 + 2 * 3", "(1 + (2 * 3))"},
		{"relation over sum", "a + 1 > b", "((a + 1) > b)"},
		{"and over or", "p or q and r", "(p or (q and r))"},
		{"unary minus", "-a + 1", "((neg a) + 1)"},
		{"not", "not p and q", "((not p) and q)"},
		{"grouping", "(1 + 2) * 3", "((1 + 2) * 3)"},
		{"mod", "a mod 2 = 0", "((a mod 2) = 0)"},
		{"subscripts", "m[i][j + 1]", "m[i][(j + 1)]"},
		{"call", "f(a, b + 1)", "f(a, (b + 1))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := parseProgram(t, "demo;\nbegin\n    print "+tt.expr+";\nend")
			stmt := program.Body.Statements[0].(*ast.PrintNode)
			if got := stmt.Expr.String(); got != tt.expected {
				t.Errorf("parsed %q as %q, want %q", tt.expr, got, tt.expected)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing program semicolon", "demo\nbegin\nend"},
		{"missing assign", "demo;\nbegin\n    x 1;\nend"},
		{"unterminated block", "demo;\nbegin\n    print 1;"},
		{"bad declaration", "demo;\nvar : integer;\nbegin\nend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(lexer.New(tt.src))
			p.ParseProgram()
			if len(p.Errors()) == 0 {
				t.Errorf("expected parse errors for %q", tt.src)
			}
		})
	}
}
