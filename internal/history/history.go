// Package history persists one valuation row per run to an append-only CSV
// log. Single writer, no read/merge/update path; multiple runs on the same
// day append multiple rows.
package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var header = []string{"date", "aggregate_value"}

// Store appends snapshot rows to a CSV file, creating it with a header row on
// first write.
type Store struct {
	Path string
}

func NewStore(path string) *Store { return &Store{Path: path} }

// Append writes one row (date at day granularity, aggregate value). The file
// is created with its header when absent; an existing file never gets a
// second header.
func (s *Store) Append(date time.Time, aggregateValue float64) error {
	writeHeader := false
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		if dir := filepath.Dir(s.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create history dir: %w", err)
			}
		}
		writeHeader = true
	}

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write history header: %w", err)
		}
	}
	row := []string{
		date.Format("2006-01-02"),
		strconv.FormatFloat(aggregateValue, 'f', 2, 64),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write history row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush history log: %w", err)
	}
	return nil
}
