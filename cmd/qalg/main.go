// Command qalg is a small REPL-less driver around the library: it loads
// a named in-memory table from a JSON file and runs one query against
// it, printed as indented JSON. It exists to exercise
// the library end to end, not as the primary way qalg is meant to be
// used (that's the builder/exec Go API itself).
package main

import (
	"fmt"
	"os"

	"github.com/gabereiser/qalg/cmd/qalg/internal/run"
)

func main() {
	if err := run.Command().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
