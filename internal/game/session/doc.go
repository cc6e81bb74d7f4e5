// Package session owns the client-side mirror of one Scoundrel game. It is
// the single source of mutation: every operation calls the remote gateway,
// replaces the local state wholesale from the server's snapshot, and then
// publishes events describing what changed. The client never computes
// health, deck counts, or completion itself.
package session
