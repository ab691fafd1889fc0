package queries

import (
	"testing"

	"github.com/lumen-lab/project-lumen/internal/core/queryindex"
	"github.com/stretchr/testify/require"
)

func TestService_DistinctCount(t *testing.T) {
	index := queryindex.NewTrie()
	require.NoError(t, index.Add("2015-08-01 00:03:49", "vungle"))
	require.NoError(t, index.Finalize())

	svc := NewService(index)

	resp, err := svc.DistinctCount("2015")
	require.NoError(t, err)
	require.Equal(t, CountResponse{Count: 1}, resp)

	_, err = svc.DistinctCount("---")
	require.ErrorIs(t, err, queryindex.ErrInvalidDatePrefix)
}

func TestService_TopQueries(t *testing.T) {
	index := queryindex.NewTrie()
	require.NoError(t, index.Add("2015-08-01 00:03:49", "vungle"))
	require.NoError(t, index.Add("2015-08-01 00:03:50", "vungle"))
	require.NoError(t, index.Add("2015-08-01 00:03:51", "test"))
	require.NoError(t, index.Finalize())

	svc := NewService(index)

	resp, err := svc.TopQueries("2015-08", 10)
	require.NoError(t, err)
	require.Equal(t, TopQueriesResponse{Queries: []TopQueryEntry{
		{Query: "vungle", Count: 2},
		{Query: "test", Count: 1},
	}}, resp)

	_, err = svc.TopQueries("2015", queryindex.TopKLimit+1)
	require.ErrorIs(t, err, queryindex.ErrInvalidQuerySize)
}

func TestNewService_NilIndexPanics(t *testing.T) {
	require.Panics(t, func() {
		NewService(nil)
	})
}
