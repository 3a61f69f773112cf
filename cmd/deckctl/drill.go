package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/review"
)

type drillOptions struct {
	direction   string
	skipEasy    bool
	seed        uint64
	count       int
	ratingsPath string
	interactive bool
}

func newDrillCmd() *cobra.Command {
	opts := &drillOptions{}
	cmd := &cobra.Command{
		Use:   "drill FILE",
		Short: "Pick cards from a deck the way a review session would",
		Long: `drill runs COUNT picks over FILE and prints each card's front and back.
With --interactive, a difficulty is read from stdin after every card and
applied before the next pick.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrill(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.direction, "direction", string(domain.DirectionBoth),
		"Which column is the front (both, leftToRight, rightToLeft)")
	cmd.Flags().BoolVar(&opts.skipEasy, "skip-easy", false, "Leave out rows rated easy")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for reproducible picks (0 picks a random seed)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 10, "Number of cards to pick")
	cmd.Flags().StringVar(&opts.ratingsPath, "ratings", "", "YAML file of row ratings to start from")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Read a rating from stdin after each card")
	return cmd
}

func runDrill(cmd *cobra.Command, path string, opts *drillOptions) error {
	if opts.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", opts.count)
	}

	direction, err := domain.ParseDirection(opts.direction)
	if err != nil {
		return fmt.Errorf("--direction %q: %w", opts.direction, err)
	}
	settings := domain.ReviewSettings{Direction: direction, SkipEasy: opts.skipEasy}

	deck, err := loadDeck(path)
	if err != nil {
		return err
	}
	ratings, err := loadRatings(opts.ratingsPath)
	if err != nil {
		return err
	}

	rnd := review.DefaultSource()
	if opts.seed != 0 {
		rnd = review.NewSource(opts.seed)
	}

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	var session review.Session

	for i := 0; i < opts.count; i++ {
		session, err = session.Next(deck, ratings, settings, rnd)
		if err != nil {
			if errors.Is(err, review.ErrNoCandidates) {
				fmt.Fprintln(out, "no cards available with current settings")
				return nil
			}
			return err
		}

		front, err := review.Front(deck, session.Current)
		if err != nil {
			return err
		}
		var back string
		session, back, err = session.Reveal(deck)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "[row %d] %s: %s\n", session.Current.RowIndex, session.Current.FrontHeader, front)
		fmt.Fprintf(out, "         %s: %s\n", session.Current.BackHeader, back)

		if !opts.interactive {
			continue
		}
		ratings, err = promptRating(out, in, deck, session, ratings)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// promptRating reads one line and applies it as the rating of the current
// card. A blank line leaves the ratings unchanged; an unknown label asks again.
func promptRating(
	out io.Writer,
	in *bufio.Scanner,
	deck *domain.Deck,
	session review.Session,
	ratings domain.Ratings,
) (domain.Ratings, error) {
	for {
		fmt.Fprint(out, "rate (easy, normal, challenging, hard; blank to skip): ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return ratings, err
			}
			return ratings, io.EOF
		}

		label := strings.TrimSpace(in.Text())
		if label == "" {
			return ratings, nil
		}

		d, err := domain.ParseDifficulty(label)
		if err != nil {
			fmt.Fprintf(out, "unknown difficulty %q\n", label)
			continue
		}
		return session.Rate(deck, ratings, d)
	}
}
