// Package importer reads transaction exports into records that can be
// inserted into a workspace.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Required columns, matched case-insensitively in the header row.
const (
	ColumnDate        = "date"
	ColumnCategory    = "category"
	ColumnDescription = "description"
	ColumnAmount      = "amount"
	ColumnEssential   = "essential"
)

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidRecord is wrapped by every per-row parse error.
	ErrInvalidRecord = errors.New("invalid record")
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

// Record is one parsed CSV row. CategoryPath is the category's full path
// ("Housing / Rent") and Amount keeps the sign found in the file.
type Record struct {
	Line         int
	Date         time.Time
	CategoryPath string
	Description  string
	Amount       decimal.Decimal
	IsEssential  bool
}

// Parse reads every row of r. Blank lines are skipped. All row errors are
// collected and returned together so a file can be fixed in one pass.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{ColumnDate, ColumnCategory, ColumnAmount} {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var records []Record
	var errs []error
	for {
		row, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read record: %w", readErr)
		}
		line, _ := reader.FieldPos(0)

		if isBlank(row) {
			continue
		}

		rec, err := parseRow(row, colIndex)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		rec.Line = line
		records = append(records, rec)
	}

	if len(errs) > 0 {
		return records, errors.Join(errs...)
	}
	return records, nil
}

func parseRow(row []string, colIndex map[string]int) (Record, error) {
	var rec Record

	dateStr := get(row, colIndex, ColumnDate)
	date, err := parseDate(dateStr)
	if err != nil {
		return rec, fmt.Errorf("%w: date %q", ErrInvalidRecord, dateStr)
	}
	rec.Date = date

	rec.CategoryPath = normalizePath(get(row, colIndex, ColumnCategory))
	if rec.CategoryPath == "" {
		return rec, fmt.Errorf("%w: category is required", ErrInvalidRecord)
	}

	amountStr := get(row, colIndex, ColumnAmount)
	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.IsZero() {
		return rec, fmt.Errorf("%w: amount %q", ErrInvalidRecord, amountStr)
	}
	rec.Amount = amount

	rec.Description = get(row, colIndex, ColumnDescription)

	essential, err := parseBool(get(row, colIndex, ColumnEssential))
	if err != nil {
		return rec, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	rec.IsEssential = essential

	return rec, nil
}

func get(row []string, colIndex map[string]int, col string) string {
	i, ok := colIndex[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// parseBool treats an empty value as essential.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "true", "yes", "y", "1":
		return true, nil
	case "false", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("essential %q", s)
}

// normalizePath collapses the spacing around path separators so "Food/Snacks"
// and "Food / Snacks" resolve to the same category.
func normalizePath(s string) string {
	parts := strings.Split(s, "/")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " / ")
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
