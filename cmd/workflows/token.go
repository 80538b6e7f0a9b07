package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/workflows/internal/auth"
)

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Generate an API token and the digest to configure for it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, hash, err := auth.GenerateToken()
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "token:  %s\n", plaintext)
			fmt.Fprintf(w, "config: WORKFLOWS_API_TOKENS=%s%s\n", auth.HashPrefix, hash)
			return nil
		},
	}
}
