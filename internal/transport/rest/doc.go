// Package rest implements the action gateway over the rules server's HTTP
// API. Mutating endpoints are acknowledgement-only as far as the client is
// concerned: any state body they return is discarded and the session always
// performs a follow-up fetch.
package rest
