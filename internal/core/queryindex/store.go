package queryindex

import "fmt"

// QueryID is a dense, zero-based alias for a distinct query text. IDs are
// assigned in first-seen order and stay stable for the lifetime of the store.
type QueryID int

// QueryRecord holds the interned text plus transient per-prefix counters.
// The counters only exist while ingestion is running; Finalize discards them.
type QueryRecord struct {
	Text string

	prefixCounts map[string]int
}

// QueryStore interns query text to dense integer IDs. The ID of a text is its
// index in the records slice, so translating an ID back to text is a single
// slice access.
type QueryStore struct {
	records   []*QueryRecord
	textIndex map[string]QueryID
	finalized bool
}

// NewQueryStore creates an empty store ready for ingestion.
func NewQueryStore() *QueryStore {
	return &QueryStore{
		textIndex: make(map[string]QueryID),
	}
}

// Add returns the ID already assigned to text, or allocates the next
// sequential one for a first-seen text.
func (s *QueryStore) Add(text string) (QueryID, error) {
	if s.finalized {
		return 0, ErrIngestionClosed
	}
	if id, ok := s.textIndex[text]; ok {
		return id, nil
	}
	id := QueryID(len(s.records))
	s.records = append(s.records, &QueryRecord{
		Text:         text,
		prefixCounts: make(map[string]int),
	})
	s.textIndex[text] = id
	return id, nil
}

// Get returns the record for an ID issued by this store.
func (s *QueryStore) Get(id QueryID) (*QueryRecord, error) {
	if id < 0 || int(id) >= len(s.records) {
		return nil, fmt.Errorf("%w: %d (store holds %d)", ErrQueryIDRange, id, len(s.records))
	}
	return s.records[id], nil
}

// Len reports the number of distinct texts interned so far.
func (s *QueryStore) Len() int {
	return len(s.records)
}

// Finalize releases ingestion-only memory: the dedup index and every record's
// transient prefix counters. Lookups by ID keep working. Idempotent at the
// store level; the owning trie guards against double finalize.
func (s *QueryStore) Finalize() {
	s.textIndex = nil
	for _, rec := range s.records {
		rec.prefixCounts = nil
	}
	s.finalized = true
}
