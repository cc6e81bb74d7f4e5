// Package rules holds the pure decision functions the client uses to gate
// and preview actions without a server round trip. They operate on read-only
// snapshots and must match server policy exactly, or the client will offer
// actions the server then rejects.
package rules
