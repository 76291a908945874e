package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <files>",
		Short: "Validate definition files without generating output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, src := range args {
				source, err := os.ReadFile(src)
				if err != nil {
					return fmt.Errorf("reading %s: %w", src, err)
				}
				_, errs := compileSource(src, string(source))
				if len(errs) > 0 {
					printDiagnostics(os.Stderr, errs, stderrIsTTY())
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) failed to check", failed)
			}
			return nil
		},
	}
}
