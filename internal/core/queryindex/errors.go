package queryindex

import "errors"

// Sentinel errors surfaced by the index. The API layer maps the first three to
// client-input failures; the remaining ones indicate a broken caller contract.
var (
	// ErrInvalidTimestamp is returned by Add when the timestamp does not yield
	// exactly 14 digit characters.
	ErrInvalidTimestamp = errors.New("timestamp must contain exactly 14 digits")

	// ErrInvalidDatePrefix is returned by lookups when the prefix contains no
	// digit characters at all.
	ErrInvalidDatePrefix = errors.New("date prefix contains no digits")

	// ErrInvalidQuerySize is returned when a caller asks for a ranking larger
	// than TopKLimit.
	ErrInvalidQuerySize = errors.New("requested size exceeds the supported maximum")

	// ErrIngestionClosed is returned by Add after Finalize.
	ErrIngestionClosed = errors.New("index is finalized and no longer accepts records")

	// ErrAlreadyFinalized is returned when Finalize is called twice.
	ErrAlreadyFinalized = errors.New("index is already finalized")

	// ErrQueryIDRange is returned when a query id was never issued by the store.
	ErrQueryIDRange = errors.New("query id out of range")
)
