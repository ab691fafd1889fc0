package queryindex

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrie_EndToEnd(t *testing.T) {
	trie := NewTrie()
	require.NoError(t, trie.Add("2014-08-01 00:03:49", "vungle"))
	require.NoError(t, trie.Add("2015-09-01 00:03:49", "vungle"))
	require.NoError(t, trie.Add("2015-08-01 00:03:49", "test"))
	require.NoError(t, trie.Add("2015-11-01 00:03:49", "test"))

	count, err := trie.DistinctQueriesByPrefix("2015")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = trie.DistinctQueriesByPrefix("2015-08")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = trie.DistinctQueriesByPrefix("2013")
	require.NoError(t, err)
	require.Equal(t, 0, count)

	top, err := trie.TopQueriesByPrefix("2015", 2)
	require.NoError(t, err)
	require.Equal(t, []QueryCount{{Query: "test", Count: 2}, {Query: "vungle", Count: 1}}, top)

	top, err = trie.TopQueriesByPrefix("2013", 2)
	require.NoError(t, err)
	require.Empty(t, top)
}

func TestTrie_AddRejectsBadTimestamps(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
	}{
		{name: "too few digits", timestamp: "2015-08-01"},
		{name: "too many digits", timestamp: "2015-08-01 00:03:49.123"},
		{name: "no digits", timestamp: "not a timestamp"},
		{name: "empty", timestamp: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trie := NewTrie()
			err := trie.Add(tc.timestamp, "query")
			require.ErrorIs(t, err, ErrInvalidTimestamp)

			// A rejected record must not leave partial state behind.
			require.Equal(t, 0, trie.DistinctQueries())
		})
	}
}

func TestTrie_SeparatorsIgnored(t *testing.T) {
	trie := NewTrie()
	// Any 14 digits index identically regardless of separator placement.
	require.NoError(t, trie.Add("20150801000349", "bare digits"))

	count, err := trie.DistinctQueriesByPrefix("2015-08")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestTrie_InvalidPrefix(t *testing.T) {
	trie := NewTrie()
	require.NoError(t, trie.Add("2015-08-01 00:03:49", "query"))

	_, err := trie.DistinctQueriesByPrefix("no digits here")
	require.ErrorIs(t, err, ErrInvalidDatePrefix)

	_, err = trie.TopQueriesByPrefix("", 10)
	require.ErrorIs(t, err, ErrInvalidDatePrefix)
}

func TestTrie_NodeAtPrefix(t *testing.T) {
	trie := NewTrie()
	require.NoError(t, trie.Add("2015-08-01 00:03:49", "query"))

	node, err := trie.NodeAtPrefix("2015-08")
	require.NoError(t, err)
	require.NotNil(t, node)
	require.Equal(t, 1, node.Distinct())

	// A never-observed prefix is "not found", not an error.
	node, err = trie.NodeAtPrefix("2013")
	require.NoError(t, err)
	require.Nil(t, node)
}

func TestTrie_SizeBound(t *testing.T) {
	trie := NewTrie()
	require.NoError(t, trie.Add("2015-08-01 00:03:49", "query"))

	_, err := trie.TopQueriesByPrefix("2015", TopKLimit+1)
	require.ErrorIs(t, err, ErrInvalidQuerySize)

	_, err = trie.TopQueriesByPrefix("2015", -1)
	require.ErrorIs(t, err, ErrInvalidQuerySize)

	top, err := trie.TopQueriesByPrefix("2015", TopKLimit)
	require.NoError(t, err)
	require.Len(t, top, 1)
}

func TestTrie_Lifecycle(t *testing.T) {
	trie := NewTrie()
	require.NoError(t, trie.Add("2015-08-01 00:03:49", "query"))
	require.False(t, trie.Finalized())

	require.NoError(t, trie.Finalize())
	require.True(t, trie.Finalized())

	err := trie.Add("2015-08-01 00:03:50", "query")
	require.ErrorIs(t, err, ErrIngestionClosed)

	err = trie.Finalize()
	require.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestTrie_ReadsIdempotentAfterFinalize(t *testing.T) {
	trie := NewTrie()
	require.NoError(t, trie.Add("2015-08-01 00:03:49", "alpha"))
	require.NoError(t, trie.Add("2015-08-01 00:03:49", "beta"))
	require.NoError(t, trie.Finalize())

	first, err := trie.TopQueriesByPrefix("2015-08", 10)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := trie.TopQueriesByPrefix("2015-08", 10)
		require.NoError(t, err)
		require.Equal(t, first, again)

		count, err := trie.DistinctQueriesByPrefix("2015-08")
		require.NoError(t, err)
		require.Equal(t, 2, count)
	}
}

func TestTrie_MonotonicNarrowing(t *testing.T) {
	trie := NewTrie()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		ts := fmt.Sprintf("2015-0%d-0%d 0%d:03:49", 1+rng.Intn(9), 1+rng.Intn(9), rng.Intn(10))
		require.NoError(t, trie.Add(ts, fmt.Sprintf("query-%d", rng.Intn(40))))
	}

	// Appending a digit to a prefix can only narrow the distinct set.
	full := "20150403040349"
	for length := 1; length < len(full); length++ {
		wide, err := trie.DistinctQueriesByPrefix(full[:length])
		require.NoError(t, err)
		narrow, err := trie.DistinctQueriesByPrefix(full[:length+1])
		require.NoError(t, err)
		require.LessOrEqual(t, narrow, wide, "prefix %q", full[:length+1])
	}
}

// TestTrie_CountsMatchBruteForce replays a pseudo-random record stream and
// checks every returned (query, count) pair against a direct recount of the
// stream, for prefixes of several lengths.
func TestTrie_CountsMatchBruteForce(t *testing.T) {
	type record struct {
		digits string
		query  string
	}

	rng := rand.New(rand.NewSource(42))
	trie := NewTrie()
	var stream []record
	for i := 0; i < 2000; i++ {
		ts := fmt.Sprintf("2016-0%d-1%d 1%d:0%d:5%d",
			1+rng.Intn(3), rng.Intn(5), rng.Intn(3), rng.Intn(6), rng.Intn(10))
		query := fmt.Sprintf("query-%02d", rng.Intn(30))
		require.NoError(t, trie.Add(ts, query))
		stream = append(stream, record{digits: strings.Map(keepDigits, ts), query: query})
	}
	require.NoError(t, trie.Finalize())

	for _, prefix := range []string{"2016", "2016-01", "2016-02-1", "2016-03-14 1", "2016-01-10 10:01:5"} {
		prefixDigits := strings.Map(keepDigits, prefix)

		perQuery := make(map[string]int)
		distinct := 0
		for _, rec := range stream {
			if strings.HasPrefix(rec.digits, prefixDigits) {
				if perQuery[rec.query] == 0 {
					distinct++
				}
				perQuery[rec.query]++
			}
		}

		count, err := trie.DistinctQueriesByPrefix(prefix)
		require.NoError(t, err)
		require.Equal(t, distinct, count, "distinct for prefix %q", prefix)

		top, err := trie.TopQueriesByPrefix(prefix, TopKLimit)
		require.NoError(t, err)
		for i, qc := range top {
			require.Equal(t, perQuery[qc.Query], qc.Count, "count of %q for prefix %q", qc.Query, prefix)
			if i > 0 {
				require.GreaterOrEqual(t, top[i-1].Count, qc.Count, "ordering at %d for prefix %q", i, prefix)
			}
		}
	}
}

func keepDigits(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}
