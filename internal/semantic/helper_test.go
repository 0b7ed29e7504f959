package semantic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/plang-dev/go-plang/internal/ast"
	"github.com/plang-dev/go-plang/internal/lexer"
	"github.com/plang-dev/go-plang/internal/parser"
)

// analyzeSource lexes, parses and analyzes src, with symbol-table dumps
// captured in the returned buffer. Parse errors fail the test: these
// helpers are for semantic behavior only.
func analyzeSource(t *testing.T, src string) (*Analyzer, *bytes.Buffer, error) {
	t.Helper()

	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	var dump bytes.Buffer
	a := NewAnalyzer()
	a.SetDumpWriter(&dump)
	a.SetSourceLines(lexer.SourceLines(src))
	err := a.Analyze(program)
	return a, &dump, err
}

// mustParse parses src, failing the test on parse errors.
func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return program
}

// expectNoErrors analyzes src and fails on any diagnostic.
func expectNoErrors(t *testing.T, src string) {
	t.Helper()
	a, _, err := analyzeSource(t, src)
	if err != nil {
		t.Fatalf("unexpected diagnostics:\n%s", strings.Join(a.Errors(), ""))
	}
}

// expectErrors analyzes src and asserts the diagnostic messages, in
// order. Each want entry must be a substring of the message of the
// corresponding diagnostic.
func expectErrors(t *testing.T, src string, want ...string) {
	t.Helper()
	a, _, err := analyzeSource(t, src)
	if err == nil {
		t.Fatalf("expected diagnostics, got none")
	}
	diags := a.Diagnostics()
	if len(diags) != len(want) {
		t.Fatalf("diagnostic count = %d, want %d:\n%s",
			len(diags), len(want), strings.Join(a.Errors(), ""))
	}
	for i, w := range want {
		if !strings.Contains(diags[i].Message, w) {
			t.Errorf("diagnostics[%d] = %q, want it to contain %q", i, diags[i].Message, w)
		}
	}
}

// diagnosticAt asserts the position of the i-th diagnostic.
func diagnosticAt(t *testing.T, a *Analyzer, i, line, column int) {
	t.Helper()
	diags := a.Diagnostics()
	if i >= len(diags) {
		t.Fatalf("no diagnostic %d, have %d", i, len(diags))
	}
	pos := diags[i].Pos
	if pos.Line != line || pos.Column != column {
		t.Errorf("diagnostics[%d] at %d:%d, want %d:%d", i, pos.Line, pos.Column, line, column)
	}
}
