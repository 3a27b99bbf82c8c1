package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocssom/cssom/cssom"
)

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <file>",
		Short: "Parse in browser-compliant mode and print every diagnostic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			collected := &cssom.CollectingErrorHandler{}
			settings := cssom.DefaultReaderSettings()
			settings.BrowserCompliantMode = true
			settings.ErrorHandler = collected
			settings.InterpretErrorHandler = collected
			cssom.Parse(raw, settings)

			out := cmd.OutOrStdout()
			for _, e := range collected.ParseErrors {
				fmt.Fprintf(out, "parse-error: %s (offending token %q)\n", e.Record.Message, e.Record.Offending.Image)
			}
			for _, e := range collected.ParseExceptions {
				fmt.Fprintf(out, "parse-exception: %s\n", e.Error())
			}
			for _, w := range collected.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w.Message)
			}
			for _, e := range collected.Errors {
				fmt.Fprintf(out, "error: %s\n", e.Message)
			}
			return nil
		},
	}
	return cmd
}
