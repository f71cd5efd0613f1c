// Package store holds the server's live state: the latest athlete
// snapshot per athlete ID with TTL eviction (Store), and the mutable
// squad evaluation context (SquadContext).
//
// Store.List returns live entries in first-seen order, which is the
// input order the squad ranking's stable tie-break relies on.
package store
