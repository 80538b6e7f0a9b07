package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joestump/workflows/internal/roles"
)

func newRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the roles a plan can be written for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ROLE\tINSTRUCTION")
			for _, r := range roles.Default().Roles() {
				instruction := r.Instruction
				if instruction == "" {
					instruction = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\n", r.Name, instruction)
			}
			return tw.Flush()
		},
	}
}
