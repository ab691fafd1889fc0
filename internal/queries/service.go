package queries

import (
	"github.com/lumen-lab/project-lumen/internal/core/queryindex"
)

// Service is the read-only query engine over the index. It is constructed
// once in main after ingestion finishes and injected into the HTTP layer; no
// process-wide singleton exists.
type Service struct {
	index *queryindex.Trie
}

// NewService creates a query engine over index.
func NewService(index *queryindex.Trie) *Service {
	if index == nil {
		panic("queries: index must not be nil")
	}
	return &Service{index: index}
}

// DistinctCount returns the number of distinct queries recorded under prefix.
func (s *Service) DistinctCount(prefix string) (CountResponse, error) {
	count, err := s.index.DistinctQueriesByPrefix(prefix)
	if err != nil {
		return CountResponse{}, err
	}
	return CountResponse{Count: count}, nil
}

// TopQueries returns up to size queries under prefix, most frequent first.
func (s *Service) TopQueries(prefix string, size int) (TopQueriesResponse, error) {
	top, err := s.index.TopQueriesByPrefix(prefix, size)
	if err != nil {
		return TopQueriesResponse{}, err
	}

	resp := TopQueriesResponse{Queries: make([]TopQueryEntry, 0, len(top))}
	for _, qc := range top {
		resp.Queries = append(resp.Queries, TopQueryEntry{Query: qc.Query, Count: qc.Count})
	}
	return resp, nil
}
