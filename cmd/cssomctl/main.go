// Command cssomctl is a thin CLI demonstrating the cssom library,
// grounded on the teacher's own cmd/browser convention of a small main
// package wrapping the library rather than reimplementing it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cssomctl",
		Short: "Parse, lint, and watch CSS using the cssom library",
	}
	root.AddCommand(newFmtCmd(), newLintCmd(), newWatchCmd())
	return root
}
