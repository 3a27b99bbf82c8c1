package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gocssom/cssom/cssom"
	"github.com/gocssom/cssom/cssom/cssomwatch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-parse .css files in a directory as they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := make(chan struct{})
			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigs
				close(stop)
			}()

			events, err := cssomwatch.Watch(args[0], cssom.DefaultReaderSettings(), stop)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for ev := range events {
				if ev.Err != nil {
					fmt.Fprintf(out, "%s: error: %v\n", ev.Path, ev.Err)
					continue
				}
				if ev.Sheet == nil {
					fmt.Fprintf(out, "%s: failed to parse\n", ev.Path)
					continue
				}
				fmt.Fprintf(out, "%s: parsed, %d top-level rules\n", ev.Path, len(ev.Sheet.Rules))
			}
			return nil
		},
	}
	return cmd
}
