// Package deckfmt converts decks to and from their plain-text form.
//
// A deck in text form is one header line followed by one line per row, with
// fields separated by a delimiter. Encode always writes the canonical " - "
// separator. Decode accepts whatever single delimiter character the input uses
// consistently, inferring it from the data lines, so decks pasted from other
// tools using en or em dashes (or tabs, colons and so on) load unchanged.
//
// The package holds no state and performs no I/O.
package deckfmt
