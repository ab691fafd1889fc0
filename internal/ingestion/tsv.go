package ingestion

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	v1 "github.com/lumen-lab/project-lumen/internal/api/v1"
)

// maxLineBytes bounds a single log line; anything longer is a corrupt input.
const maxLineBytes = 1024 * 1024

// FileSource reads a TSV query log: one record per line, two tab-separated
// columns (timestamp, query text). Malformed lines are logged with their line
// number and skipped, never aborting the pass.
type FileSource struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	line    int
	skipped int
}

// NewFileSource opens the query log at path.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open query log: %w", err)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &FileSource{
		path:    path,
		file:    f,
		scanner: scanner,
	}, nil
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Next returns the next valid record, skipping malformed lines.
func (s *FileSource) Next() (v1.Record, error) {
	for s.scanner.Scan() {
		s.line++

		cols := strings.Split(s.scanner.Text(), "\t")
		if len(cols) != 2 {
			slog.Warn("Line does not have 2 columns, skipping", "line", s.line, "columns", len(cols))
			s.skipped++
			continue
		}

		rec := v1.Record{
			Timestamp: strings.TrimSpace(cols[0]),
			Query:     strings.TrimSpace(cols[1]),
		}
		if err := rec.Validate(); err != nil {
			slog.Warn("Invalid record, skipping", "line", s.line, "error", err)
			s.skipped++
			continue
		}

		return rec, nil
	}

	if err := s.scanner.Err(); err != nil {
		return v1.Record{}, fmt.Errorf("read query log: %w", err)
	}
	return v1.Record{}, io.EOF
}

// Skipped reports how many malformed lines were dropped so far.
func (s *FileSource) Skipped() int {
	return s.skipped
}

func (s *FileSource) Close() error {
	return s.file.Close()
}
