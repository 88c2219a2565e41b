// Command uncrustify-core is a debug CLI over the front-end pipeline:
// it tokenizes, frames, and classifies a file or inline snippet and
// prints the resulting token stream. It is not the uncrustify CLI
// (config file parsing, printing, in-place rewriting all stay external
// collaborators) — it exists as a thin window onto one pipeline stage,
// for debugging and demonstration.
package main

import (
	"fmt"
	"os"

	"github.com/uncrustify-go/frontend/cmd/uncrustify-core/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
