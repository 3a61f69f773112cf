// Package store defines interfaces for deck persistence.
// The interfaces keep the services independent of the database: decks,
// their per-user ratings and review settings are stored behind them, while
// the core codec and selector never see storage at all.
package store
