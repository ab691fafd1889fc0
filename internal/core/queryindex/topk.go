package queryindex

import "sort"

// TopKLimit is the maximum number of ranked queries kept per trie node, and
// therefore the largest size a caller may request.
const TopKLimit = 50

// TopQuery is one ranked entry: a query ID and its occurrence count at the
// owning node's prefix.
type TopQuery struct {
	ID    QueryID
	Count int
}

// TopKCache keeps the highest-count queries observed at one trie node, sorted
// by count descending. Ties are broken by QueryID ascending so rankings are
// reproducible across runs regardless of update order.
type TopKCache struct {
	entries []TopQuery
}

// Update folds one count increment into the ranking.
//
// Contract: newCount must be strictly greater than the count this cache last
// recorded for id. The single ingestion path satisfies this with
// exactly-by-one increments; any strict increase keeps the ranking correct.
// The cache does not rescan all queries, which is what makes per-record
// updates effectively constant time (k is fixed at TopKLimit).
func (c *TopKCache) Update(id QueryID, newCount int) {
	for i := range c.entries {
		if c.entries[i].ID == id {
			c.entries[i].Count = newCount
			c.sort()
			return
		}
	}

	if len(c.entries) < TopKLimit {
		c.entries = append(c.entries, TopQuery{ID: id, Count: newCount})
		c.sort()
		return
	}

	// Full cache: the new count has to beat the current minimum to enter.
	last := len(c.entries) - 1
	if newCount > c.entries[last].Count {
		c.entries[last] = TopQuery{ID: id, Count: newCount}
		c.sort()
	}
}

func (c *TopKCache) sort() {
	sort.Slice(c.entries, func(i, j int) bool {
		if c.entries[i].Count != c.entries[j].Count {
			return c.entries[i].Count > c.entries[j].Count
		}
		return c.entries[i].ID < c.entries[j].ID
	})
}

// Get returns the first min(limit, Len) entries. Rejecting limits above
// TopKLimit is the trie's responsibility.
func (c *TopKCache) Get(limit int) []TopQuery {
	if limit > len(c.entries) {
		limit = len(c.entries)
	}
	return c.entries[:limit]
}

// Len reports how many queries are currently ranked.
func (c *TopKCache) Len() int {
	return len(c.entries)
}
