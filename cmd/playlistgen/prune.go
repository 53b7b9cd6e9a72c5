package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPruneCommand(a *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove artist and album folders left without songs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := a.manager.Prune(cmd.Context())
			for _, path := range removed {
				fmt.Fprintln(cmd.OutOrStdout(), "removed "+path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d folders removed\n", len(removed))
			return nil
		},
	}
}
