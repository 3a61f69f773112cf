// Package domain contains the core business entities, value objects, and
// domain logic of the application: decks of two-or-more column cards, the
// per-row difficulty ratings a user assigns while reviewing, and the review
// settings that shape a session. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
