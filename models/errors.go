package models

import "errors"

// Sentinel errors shared across services and controllers. Wrap with
// fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	// ErrItemNotFound is returned when a document does not exist (or was
	// deleted mid-transaction).
	ErrItemNotFound = errors.New("item not found")

	// ErrDecodeFailure is returned when a stored record cannot be decoded.
	// List reads drop the offending record; single-document mutations abort.
	ErrDecodeFailure = errors.New("record decode failed")

	// ErrInvalidState is returned when a domain precondition is violated,
	// such as voting on a post that is not a poll.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrTransactionConflict is returned after the store exhausts its
	// conditional-write retries.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrUnauthenticated is returned by operations that require a signed-in
	// identity when none is set.
	ErrUnauthenticated = errors.New("not signed in")

	// ErrRateLimited is returned when the external places API reports an
	// over-quota status.
	ErrRateLimited = errors.New("rate limited by places api")

	// ErrTimeout is returned when an external call exceeds its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrTransport is returned on network-level failure of an external call.
	ErrTransport = errors.New("network transport failure")
)
