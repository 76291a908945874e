package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mustermeiszer/ifc/internal/diagnostics"
)

const (
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

func stderrIsTTY() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// printDiagnostics renders the collected diagnostics, one per line, with the
// related locations of combined diagnostics indented below.
func printDiagnostics(w io.Writer, errs []*diagnostics.DiagnosticError, color bool) {
	for _, err := range errs {
		if color {
			fmt.Fprintf(w, "%serror[%s]%s %s:%s: %s\n",
				ansiRed, err.Code, ansiReset, err.File, err.Token.Pos(), err.Message)
		} else {
			fmt.Fprintf(w, "error[%s] %s:%s: %s\n",
				err.Code, err.File, err.Token.Pos(), err.Message)
		}
		for _, rel := range err.Related {
			if color {
				fmt.Fprintf(w, "  %srelated:%s %s:%s: %s\n",
					ansiDim, ansiReset, rel.File, rel.Token.Pos(), rel.Message)
			} else {
				fmt.Fprintf(w, "  related: %s:%s: %s\n",
					rel.File, rel.Token.Pos(), rel.Message)
			}
		}
	}
}
