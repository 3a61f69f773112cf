package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// statsReport is the YAML document printed by the stats command.
type statsReport struct {
	Deck   string         `yaml:"deck"`
	Rows   int            `yaml:"rows"`
	Counts map[string]int `yaml:"counts"`
}

func newStatsCmd() *cobra.Command {
	var ratingsPath string
	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Print a YAML tally of rows per difficulty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := loadDeck(args[0])
			if err != nil {
				return err
			}
			ratings, err := loadRatings(ratingsPath)
			if err != nil {
				return err
			}

			report := statsReport{
				Deck:   deck.Name,
				Rows:   len(deck.Rows),
				Counts: make(map[string]int),
			}
			for d, n := range ratings.Tally(len(deck.Rows)) {
				report.Counts[string(d)] = n
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&ratingsPath, "ratings", "", "YAML file mapping row index to difficulty")
	return cmd
}
