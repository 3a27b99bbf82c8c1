package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocssom/cssom/cssom"
)

func newFmtCmd() *cobra.Command {
	var optimized bool
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Parse a stylesheet then reserialize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			sheet := cssom.Parse(raw, cssom.DefaultReaderSettings())
			if sheet == nil {
				return fmt.Errorf("%s: failed to parse", args[0])
			}
			settings := cssom.DefaultWriterSettings()
			if optimized {
				settings = cssom.OptimizedWriterSettings()
			}
			fmt.Fprint(cmd.OutOrStdout(), sheet.Serialize(settings))
			return nil
		},
	}
	cmd.Flags().BoolVar(&optimized, "optimized", false, "drop whitespace and use compact output")
	return cmd
}
