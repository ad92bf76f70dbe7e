// Package ledger reads the held-positions file. The file is owned externally
// and is re-read fresh on every run.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"itisinvest/internal/model"
)

// ErrNotConfigured is returned when the ledger file does not exist. Callers
// substitute a placeholder section instead of failing the run.
var ErrNotConfigured = errors.New("ledger file not configured")

// Column aliases accepted for each field, matched case/whitespace-insensitively.
var (
	symbolColumns   = []string{"ticker", "symbol"}
	costColumns     = []string{"preco_compra", "cost_basis"}
	quantityColumns = []string{"quantidade", "quantity"}
)

// Load reads all positions from a CSV ledger file.
// Rows with a missing symbol or a non-positive cost basis are skipped with a
// warning rather than aborting the load.
func Load(path string) ([]model.Position, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // tolerate ragged rows, validated per field below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read ledger header: %w", err)
	}

	symbolIdx := columnIndex(header, symbolColumns)
	costIdx := columnIndex(header, costColumns)
	quantityIdx := columnIndex(header, quantityColumns)
	if symbolIdx < 0 || costIdx < 0 {
		return nil, fmt.Errorf("ledger header missing ticker/preco_compra columns: %v", header)
	}

	var positions []model.Position
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[WARN] ledger line %d: %v, skipping", line, err)
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(field(record, symbolIdx)))
		if symbol == "" {
			log.Printf("[WARN] ledger line %d: empty symbol, skipping", line)
			continue
		}
		cost, err := strconv.ParseFloat(strings.TrimSpace(field(record, costIdx)), 64)
		if err != nil || cost <= 0 {
			log.Printf("[WARN] ledger line %d (%s): invalid cost basis, skipping", line, symbol)
			continue
		}
		quantity := 1.0
		if quantityIdx >= 0 {
			if raw := strings.TrimSpace(field(record, quantityIdx)); raw != "" {
				q, err := strconv.ParseFloat(raw, 64)
				if err != nil || q < 0 {
					log.Printf("[WARN] ledger line %d (%s): invalid quantity, using 1", line, symbol)
				} else {
					quantity = q
				}
			}
		}
		positions = append(positions, model.Position{Symbol: symbol, CostBasis: cost, Quantity: quantity})
	}
	return positions, nil
}

func columnIndex(header, aliases []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
