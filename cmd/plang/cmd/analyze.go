package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/plang-dev/go-plang/internal/config"
	"github.com/plang-dev/go-plang/internal/lexer"
	"github.com/plang-dev/go-plang/internal/parser"
	"github.com/plang-dev/go-plang/internal/semantic"
)

var (
	configFile string
	colorMode  string
	noDump     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a P source file",
	Long: `Parse a P source file and run semantic analysis over it.

Symbol tables are dumped to standard output as each scope closes;
diagnostics go to standard error. The exit status is non-zero when
any diagnostic was produced.

Examples:
  # Analyze a program
  plang analyze prog.p

  # Suppress the symbol-table dumps
  plang analyze --no-table-dump prog.p`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&configFile, "config", "plang.yaml", "config file path")
	analyzeCmd.Flags().StringVar(&colorMode, "color", "", "color diagnostics: auto, always or never")
	analyzeCmd.Flags().BoolVar(&noDump, "no-table-dump", false, "suppress symbol-table dumps")
}

// loadConfig merges defaults, the config file, PLANG_* environment
// variables and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if err := cfg.LoadFile(configFile); err != nil {
		return nil, err
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("no-table-dump") {
		cfg.DumpSymbolTables = !noDump
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = colorMode
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read file %s: %v\n", filename, err)
		return err
	}
	input := string(content)

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s: syntax error: %s\n", filename, e)
		}
		return fmt.Errorf("%d syntax errors", len(errs))
	}

	analyzer := semantic.NewAnalyzer()
	analyzer.SetDumpSymbolTables(cfg.DumpSymbolTables)
	analyzer.SetSourceLines(lexer.SourceLines(input))

	analysisErr := analyzer.Analyze(program)

	if analysisErr == nil {
		fmt.Print(semantic.NoErrorBanner)
		return nil
	}

	color := cfg.Color == config.ColorAlways ||
		(cfg.Color == config.ColorAuto && isatty.IsTerminal(os.Stderr.Fd()))
	for _, d := range analyzer.Diagnostics() {
		fmt.Fprint(os.Stderr, d.Format(color))
	}
	return analysisErr
}
