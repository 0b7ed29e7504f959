package semantic

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/plang-dev/go-plang/internal/lexer"
	"github.com/plang-dev/go-plang/internal/parser"
)

// TestFixtures analyzes every P program under testdata and snapshots
// the combined symbol-table dump and diagnostic output. This pins the
// dump bytes and the diagnostic sequence: re-running analysis must
// reproduce them exactly.
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.p"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found under testdata")
	}
	sort.Strings(files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			input := string(content)

			p := parser.New(lexer.New(input))
			program := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("parse errors in %s: %v", file, errs)
			}

			var dump bytes.Buffer
			a := NewAnalyzer()
			a.SetDumpWriter(&dump)
			a.SetSourceLines(lexer.SourceLines(input))
			analysisErr := a.Analyze(program)

			var out strings.Builder
			out.WriteString("Tables >>>>\n")
			out.WriteString(dump.String())
			if analysisErr != nil {
				out.WriteString("Errors >>>>\n")
				for _, d := range a.Diagnostics() {
					out.WriteString(d.Format(false))
				}
			}

			snaps.MatchSnapshot(t, out.String())
		})
	}
}
