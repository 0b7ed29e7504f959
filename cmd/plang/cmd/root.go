package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "plang",
	Short: "P language compiler front end",
	Long: `go-plang is a Go implementation of the P language front end.

P is a small Pascal-like procedural language with integer, real,
boolean and string scalars, multi-dimensional arrays, functions,
and structured control flow.

The front end parses a P source file, performs semantic analysis,
dumps every scope's symbol table, and reports name-resolution, type
and usage errors with precise source locations.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	// An optional .env file supplies PLANG_* defaults; its absence is
	// not an error.
	_ = godotenv.Load()

	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
