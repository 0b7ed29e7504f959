// Command plang is the command-line front end for the P language
// analyzer.
package main

import (
	"os"

	"github.com/plang-dev/go-plang/cmd/plang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
