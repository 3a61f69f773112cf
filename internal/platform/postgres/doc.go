// Package postgres provides PostgreSQL implementations of the store
// interfaces. Deck headers and rows are kept as JSONB on the decks table;
// ratings and review settings live in their own tables keyed by deck and
// user. The schema is managed by the embedded goose migrations.
package postgres
