package ingestion

import v1 "github.com/lumen-lab/project-lumen/internal/api/v1"

// Source yields query-log records one at a time. Next returns io.EOF once the
// source is drained. Implementations log and skip malformed rows themselves,
// so every record handed to the caller already satisfies v1.Record.Validate.
type Source interface {
	// Name identifies the source in logs (e.g. "file:hn_logs.tsv").
	Name() string

	Next() (v1.Record, error)

	Close() error
}

// skipReporter is implemented by sources that drop malformed rows, so the
// driver can fold their skip count into the run totals.
type skipReporter interface {
	Skipped() int
}
