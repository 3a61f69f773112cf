package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-decks/internal/domain/deckfmt"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize FILE",
		Short: "Rewrite a deck file in canonical form on stdout",
		Long:  `normalize decodes FILE with whatever delimiter it uses and encodes it again with " - " between fields.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read deck: %w", err)
			}

			text, err := deckfmt.Normalize(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
