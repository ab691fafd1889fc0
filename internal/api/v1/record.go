package v1

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire format of query-log timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one line of the query log: when a search happened and what was
// typed. Sources emit only records that pass Validate; nothing else may reach
// the index.
type Record struct {
	// Timestamp is the client-side clock reading, formatted as TimestampLayout.
	Timestamp string `json:"timestamp"`

	// Query is the search text, trimmed of surrounding whitespace.
	Query string `json:"query"`
}

// Validate enforces the contract ingestion sources must uphold: a well-formed
// timestamp and non-empty query text.
func (r *Record) Validate() error {
	if _, err := time.Parse(TimestampLayout, r.Timestamp); err != nil {
		return fmt.Errorf("timestamp %q is invalid: %w", r.Timestamp, err)
	}

	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query text is empty")
	}

	return nil
}
