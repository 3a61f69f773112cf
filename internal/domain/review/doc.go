// Package review chooses which card to show next during a review session.
//
// Selection is a weighted random walk over the deck's rows where the weight
// of a row depends on the difficulty the user last gave it. Everything here
// is a pure function of its inputs plus an injected RandSource: the package
// keeps no state between calls, so any number of sessions can share a deck
// and a Selector without locking. Callers thread the Session value and the
// ratings snapshot through successive calls and persist ratings themselves.
package review
