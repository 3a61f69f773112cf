package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-decks/internal/domain/deckfmt"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Decode a deck file and report its headers and row count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := loadDeck(args[0])
			var fe *deckfmt.FormatError
			if errors.As(err, &fe) && len(fe.Candidates) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "candidates: %s\n", quoteRunes(fe.Candidates))
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: ok\n", args[0])
			fmt.Fprintf(out, "headers: %s\n", strings.Join(deck.Headers, ", "))
			fmt.Fprintf(out, "rows: %d\n", len(deck.Rows))
			return nil
		},
	}
}

// quoteRunes renders runes as Go rune literals so tabs and dashes stay
// distinguishable, e.g. '\t' '-' '–'.
func quoteRunes(runes []rune) string {
	quoted := make([]string, len(runes))
	for i, r := range runes {
		quoted[i] = strconv.QuoteRune(r)
	}
	return strings.Join(quoted, " ")
}
