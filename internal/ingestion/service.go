package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lumen-lab/project-lumen/internal/core/queryindex"
)

const defaultProgressEvery = 10000

// Service drives the single ingestion pass: it drains a Source into the index
// and then finalizes it. The index performs no internal locking; Run must not
// be called concurrently with anything that touches the same index.
type Service struct {
	index         *queryindex.Trie
	progressEvery int
}

// NewService creates the ingestion driver for the given index.
func NewService(index *queryindex.Trie, progressEvery int) *Service {
	if index == nil {
		panic("ingestion: index must not be nil")
	}
	if progressEvery <= 0 {
		progressEvery = defaultProgressEvery
	}
	return &Service{
		index:         index,
		progressEvery: progressEvery,
	}
}

// Stats summarizes one ingestion run.
type Stats struct {
	RunID    string
	Ingested int
	Skipped  int
	Distinct int
}

// Run drains src into the index and finalizes it. Records the index rejects
// with ErrInvalidTimestamp are skipped and logged; any other failure aborts
// the pass, since it means a broken caller contract rather than bad input.
func (s *Service) Run(ctx context.Context, src Source) (Stats, error) {
	stats := Stats{RunID: uuid.NewString()}
	slog.Info("Processing query log", "run_id", stats.RunID, "source", src.Name())

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read source: %w", err)
		}

		if err := s.index.Add(rec.Timestamp, rec.Query); err != nil {
			if errors.Is(err, queryindex.ErrInvalidTimestamp) {
				slog.Warn("Record rejected by index, skipping",
					"run_id", stats.RunID, "timestamp", rec.Timestamp, "error", err)
				stats.Skipped++
				continue
			}
			return stats, fmt.Errorf("index record: %w", err)
		}

		stats.Ingested++
		if stats.Ingested%s.progressEvery == 0 {
			slog.Info("Ingestion progress", "run_id", stats.RunID, "records", stats.Ingested)
		}
	}

	if sr, ok := src.(skipReporter); ok {
		stats.Skipped += sr.Skipped()
	}

	if err := s.index.Finalize(); err != nil {
		return stats, fmt.Errorf("finalize index: %w", err)
	}
	stats.Distinct = s.index.DistinctQueries()

	slog.Info("Finished processing query log",
		"run_id", stats.RunID,
		"ingested", stats.Ingested,
		"skipped", stats.Skipped,
		"distinct_queries", stats.Distinct,
	)
	return stats, nil
}
