// Package errors provides structured error handling for the Scoundrel client.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Precondition errors: the call was malformed and never left the client.
	CodeNoActiveSession     Code = "NO_ACTIVE_SESSION"
	CodeCardIndexOutOfRange Code = "CARD_INDEX_OUT_OF_RANGE"

	// CodeSessionBusy rejects an operation while another one is in flight
	// on the same session.
	CodeSessionBusy Code = "SESSION_BUSY"

	// CodeSkipNotAllowed is a policy rejection: the skip was refused by the
	// client-side rules before any network call.
	CodeSkipNotAllowed Code = "SKIP_NOT_ALLOWED"

	// Transport errors: the rules server could not be reached or refused
	// the call. Prior state is preserved untouched.
	CodeGatewayUnavailable Code = "GATEWAY_UNAVAILABLE"
	CodeGatewayRejected    Code = "GATEWAY_REJECTED"

	// CodeSnapshotMalformed marks a snapshot payload missing expected
	// fields; treated like a transport failure, never partially applied.
	CodeSnapshotMalformed Code = "SNAPSHOT_MALFORMED"
)
