// Package main implements deckctl, an offline tool for checking, normalizing
// and drilling deck text files without a server or database.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/deckfmt"
)

const appName = "deckctl"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Each call returns fresh commands so
// tests can execute them independently.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Work with flashcard deck text files",
		Long:         `deckctl decodes deck text (a header line followed by data lines sharing one delimiter) and runs review drills over it locally.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCheckCmd(),
		newNormalizeCmd(),
		newDrillCmd(),
		newStatsCmd(),
	)
	return root
}

// loadDeck reads and decodes the deck file at path. The deck is named after
// the file and owned by a throwaway local user.
func loadDeck(path string) (*domain.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}

	headers, rows, err := deckfmt.Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return domain.NewDeck(uuid.New(), name, headers, rows)
}

// loadRatings reads a YAML mapping of row index to difficulty, e.g.
//
//	0: hard
//	3: easy
//
// An empty path yields no ratings.
func loadRatings(path string) (domain.Ratings, error) {
	ratings := domain.Ratings{}
	if path == "" {
		return ratings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}

	var raw map[int]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse ratings: %w", err)
	}

	for row, label := range raw {
		if row < 0 {
			return nil, fmt.Errorf("row %d: %w", row, domain.ErrRowOutOfRange)
		}
		d, err := domain.ParseDifficulty(label)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		ratings[row] = d
	}
	return ratings, nil
}
