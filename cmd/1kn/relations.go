package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRelationsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "relations",
		Short: "List the relations in the fact files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine(opts)
			if err != nil {
				return err
			}
			for _, r := range e.Relations() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
