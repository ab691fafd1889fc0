package queryindex

import "fmt"

// timestampDigits is the number of digit characters in a full
// "YYYY-MM-DD HH:MM:SS" timestamp.
const timestampDigits = 14

// TrieNode is one observed timestamp prefix. Children are allocated lazily: a
// node exists iff its prefix occurred at least once, which keeps the tree
// sparse over the combinatorially large key space.
type TrieNode struct {
	children [10]*TrieNode
	distinct int
	top      TopKCache
}

// Distinct reports the number of distinct queries recorded under this node's
// prefix.
func (n *TrieNode) Distinct() int {
	return n.distinct
}

// QueryCount pairs a query text with its occurrence count under some prefix.
type QueryCount struct {
	Query string
	Count int
}

// Trie indexes query occurrences under every digit prefix of their
// timestamps. Each node caches a distinct-query counter and a bounded top-K
// ranking, so both query types are answered without any traversal below the
// prefix node.
//
// The lifecycle has two phases: a single-writer ingestion phase driven by Add
// (no internal locking; the caller must not call Add concurrently with
// anything), and, after Finalize, an immutable read phase that is safe for
// concurrent readers.
type Trie struct {
	root      *TrieNode
	store     *QueryStore
	finalized bool
}

// NewTrie creates an empty index ready for ingestion.
func NewTrie() *Trie {
	return &Trie{
		root:  &TrieNode{},
		store: NewQueryStore(),
	}
}

// Finalized reports whether the index has entered its read-only phase.
func (t *Trie) Finalized() bool {
	return t.finalized
}

// DistinctQueries reports the total number of distinct query texts seen.
func (t *Trie) DistinctQueries() int {
	return t.store.Len()
}

// digits extracts the decimal digit characters of s, dropping separators.
func digits(s string) []int {
	out := make([]int, 0, timestampDigits)
	for _, c := range s {
		if c >= '0' && c <= '9' {
			out = append(out, int(c-'0'))
		}
	}
	return out
}

// Add records one (timestamp, query) occurrence under every digit prefix of
// the timestamp. The timestamp must yield exactly 14 digits; separators are
// ignored.
func (t *Trie) Add(timestamp, text string) error {
	if t.finalized {
		return ErrIngestionClosed
	}
	ds := digits(timestamp)
	if len(ds) != timestampDigits {
		return fmt.Errorf("%w: %q has %d", ErrInvalidTimestamp, timestamp, len(ds))
	}

	id, err := t.store.Add(text)
	if err != nil {
		return err
	}
	rec, err := t.store.Get(id)
	if err != nil {
		return err
	}

	node := t.root
	prefix := make([]byte, 0, timestampDigits)
	for _, d := range ds {
		prefix = append(prefix, byte('0'+d))
		if node.children[d] == nil {
			node.children[d] = &TrieNode{}
		}
		node = node.children[d]

		count := rec.prefixCounts[string(prefix)] + 1
		rec.prefixCounts[string(prefix)] = count
		if count == 1 {
			node.distinct++
		}
		node.top.Update(id, count)
	}
	return nil
}

// NodeAtPrefix walks to the node for prefix, which may be any truncation of a
// timestamp ("2016", "2016-02", ...); separators are ignored. A prefix that
// was never observed returns (nil, nil), which is not an error.
func (t *Trie) NodeAtPrefix(prefix string) (*TrieNode, error) {
	ds := digits(prefix)
	if len(ds) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDatePrefix, prefix)
	}
	node := t.root
	for _, d := range ds {
		node = node.children[d]
		if node == nil {
			return nil, nil
		}
	}
	return node, nil
}

// Finalize releases ingestion-only memory and freezes the index. Must be
// called exactly once, after which all aggregates are immutable.
func (t *Trie) Finalize() error {
	if t.finalized {
		return ErrAlreadyFinalized
	}
	t.store.Finalize()
	t.finalized = true
	return nil
}

// DistinctQueriesByPrefix returns the number of distinct queries recorded
// under prefix, or 0 for a prefix that was never observed.
func (t *Trie) DistinctQueriesByPrefix(prefix string) (int, error) {
	node, err := t.NodeAtPrefix(prefix)
	if err != nil {
		return 0, err
	}
	if node == nil {
		return 0, nil
	}
	return node.distinct, nil
}

// TopQueriesByPrefix returns up to size (query text, count) pairs under
// prefix, most frequent first. A prefix that was never observed yields an
// empty slice.
func (t *Trie) TopQueriesByPrefix(prefix string, size int) ([]QueryCount, error) {
	if size < 0 || size > TopKLimit {
		return nil, fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidQuerySize, size, TopKLimit)
	}
	node, err := t.NodeAtPrefix(prefix)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return []QueryCount{}, nil
	}

	top := node.top.Get(size)
	out := make([]QueryCount, 0, len(top))
	for _, tq := range top {
		rec, err := t.store.Get(tq.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, QueryCount{Query: rec.Text, Count: tq.Count})
	}
	return out, nil
}
