package semantic

import (
	"strings"
	"testing"
)

func TestDumpFormat(t *testing.T) {
	_, dump, err := analyzeSource(t, `demo;
var x: integer;
var PI = 3.14;
function inc(n: integer): integer
begin
    return n + 1;
end
begin
    x := inc(x);
end`)
	if err != nil {
		t.Fatalf("unexpected diagnostics: %v", err)
	}

	out := dump.String()
	lines := strings.Split(out, "\n")

	// Three scopes pop: the function scope, the body block, then the
	// program scope. Each dump is a '=' rule, the header, a '-' rule,
	// the rows, and a closing '-' rule.
	rule := strings.Repeat("=", 110)
	if got := strings.Count(out, rule+"\n"); got != 3 {
		t.Fatalf("dump count = %d, want 3\n%s", got, out)
	}

	header := "Name" + strings.Repeat(" ", 29) + "Kind" + strings.Repeat(" ", 7) +
		"Level" + strings.Repeat(" ", 6) + "Type" + strings.Repeat(" ", 13) +
		"Attribute" + strings.Repeat(" ", 2)
	if lines[1] != header {
		t.Errorf("header = %q\nwant     %q", lines[1], header)
	}

	// The function's scope pops first and holds only the parameter.
	paramRow := "n" + strings.Repeat(" ", 32) +
		"parameter" + strings.Repeat(" ", 2) +
		"1(local)" + strings.Repeat(" ", 3) +
		"integer" + strings.Repeat(" ", 10) +
		strings.Repeat(" ", 11)
	if lines[3] != paramRow {
		t.Errorf("parameter row = %q\nwant          %q", lines[3], paramRow)
	}

	// The program scope pops last, entries in insertion order.
	wantRows := []string{
		"demo" + strings.Repeat(" ", 29) + "program" + strings.Repeat(" ", 4) +
			"0(global)" + strings.Repeat(" ", 2) + "void" + strings.Repeat(" ", 13) +
			strings.Repeat(" ", 11),
		"x" + strings.Repeat(" ", 32) + "variable" + strings.Repeat(" ", 3) +
			"0(global)" + strings.Repeat(" ", 2) + "integer" + strings.Repeat(" ", 10) +
			strings.Repeat(" ", 11),
		"PI" + strings.Repeat(" ", 31) + "constant" + strings.Repeat(" ", 3) +
			"0(global)" + strings.Repeat(" ", 2) + "real" + strings.Repeat(" ", 13) +
			"3.14" + strings.Repeat(" ", 7),
		"inc" + strings.Repeat(" ", 30) + "function" + strings.Repeat(" ", 3) +
			"0(global)" + strings.Repeat(" ", 2) + "integer" + strings.Repeat(" ", 10) +
			"integer" + strings.Repeat(" ", 4),
	}
	var rowStart int
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] == rule {
			rowStart = i + 3
			break
		}
	}
	for i, want := range wantRows {
		if got := lines[rowStart+i]; got != want {
			t.Errorf("program row %d = %q\nwant           %q", i, got, want)
		}
	}
}

func TestDumpRowWidth(t *testing.T) {
	_, dump, _ := analyzeSource(t, `demo;
var value: real;
begin
end`)

	for _, line := range strings.Split(strings.TrimRight(dump.String(), "\n"), "\n") {
		if strings.HasPrefix(line, "=") || strings.HasPrefix(line, "-") {
			if len(line) != 110 {
				t.Errorf("demarcation width = %d, want 110", len(line))
			}
		}
	}
}

func TestDumpErroneousAttributeBlank(t *testing.T) {
	// A poisoned declaration dumps with a blank attribute column.
	_, dump, _ := analyzeSource(t, `demo;
var a: array [0] of integer;
begin
end`)

	for _, line := range strings.Split(dump.String(), "\n") {
		if strings.HasPrefix(line, "a ") && strings.Contains(line, "error") {
			t.Errorf("erroneous attribute must dump blank: %q", line)
		}
	}
}

func TestDumpConstantKeepsAttribute(t *testing.T) {
	_, dump, _ := analyzeSource(t, `demo;
var greeting = "hi";
begin
end`)

	found := false
	for _, line := range strings.Split(dump.String(), "\n") {
		if strings.HasPrefix(line, "greeting") {
			found = true
			if !strings.Contains(line, "constant") || !strings.Contains(line, "hi") {
				t.Errorf("constant row lost its attribute: %q", line)
			}
		}
	}
	if !found {
		t.Error("constant row missing from dump")
	}
}

func TestDumpDisabled(t *testing.T) {
	p := `demo;
var x: integer;
begin
end`

	_, dump, _ := analyzeSource(t, p)
	if dump.Len() == 0 {
		t.Fatal("dump expected by default")
	}

	// With dumping off, scope pops are silent.
	a2 := NewAnalyzer()
	a2.SetDumpSymbolTables(false)
	var buf strings.Builder
	a2.SetDumpWriter(&buf)
	prog := mustParse(t, p)
	if err := a2.Analyze(prog); err != nil {
		t.Fatalf("unexpected diagnostics: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("dump produced despite being disabled: %q", buf.String())
	}
}

func TestLoopScopeDumpsLoopVariable(t *testing.T) {
	_, dump, _ := analyzeSource(t, `demo;
begin
    for i := 1 to 3 do begin
        print i;
    end
end`)

	found := false
	for _, line := range strings.Split(dump.String(), "\n") {
		if strings.HasPrefix(line, "i ") && strings.Contains(line, "loop_var") {
			found = true
		}
	}
	if !found {
		t.Errorf("loop variable row missing from dump:\n%s", dump.String())
	}
}
