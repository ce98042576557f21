// Package csvio reads and writes the air-quality measurement CSV format.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/smartcity/aqdash/internal/domain"
)

// ExportFilename and ExportMediaType describe the filtered-data download
const (
	ExportFilename  = "filtered_pollution_data.csv"
	ExportMediaType = "text/csv"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
}

// Read parses a measurement CSV. It returns the canonical columns in the
// order the header declared them, followed by the records in file order.
// Extra columns are ignored.
func Read(r io.Reader) ([]string, []domain.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("csvio: empty input: %w", domain.ErrMissingColumn)
		}
		return nil, nil, fmt.Errorf("csvio: read header: %w", err)
	}

	index := map[string]int{}
	var columns []string
	for i, h := range header {
		name, ok := canonicalName(h)
		if !ok {
			continue
		}
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = i
		columns = append(columns, name)
	}
	for _, col := range domain.CanonicalColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("csvio: %w: %s", domain.ErrMissingColumn, col)
		}
	}

	var records []domain.Record
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("csvio: read row %d: %w", row, err)
		}
		rec, err := parseRecord(fields, index)
		if err != nil {
			return nil, nil, fmt.Errorf("csvio: row %d: %w", row, err)
		}
		records = append(records, rec)
	}
	return columns, records, nil
}

func canonicalName(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	for _, col := range domain.CanonicalColumns {
		if h == strings.ToLower(col) {
			return col, true
		}
	}
	return "", false
}

func parseRecord(fields []string, index map[string]int) (domain.Record, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	rec := domain.Record{City: cell(domain.ColumnCity)}
	date, err := ParseDate(cell(domain.ColumnDate))
	if err != nil {
		return domain.Record{}, err
	}
	rec.Date = date

	targets := []struct {
		col string
		dst **float64
	}{
		{domain.ColumnAQI, &rec.AQI},
		{domain.ColumnPM25, &rec.PM25},
		{domain.ColumnTemperature, &rec.Temperature},
		{domain.ColumnHumidity, &rec.Humidity},
	}
	for _, t := range targets {
		v, err := parseNumber(cell(t.col))
		if err != nil {
			return domain.Record{}, fmt.Errorf("column %s: %w", t.col, err)
		}
		*t.dst = v
	}
	return rec, nil
}

// ParseDate accepts the common calendar layouts and returns the instant in UTC.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseNumber returns nil for empty or NaN cells.
func parseNumber(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(f) {
		return nil, nil
	}
	return &f, nil
}

// Write serializes records with the given column order. Missing values
// become empty cells.
func Write(w io.Writer, columns []string, records []domain.Record) error {
	if len(columns) == 0 {
		columns = domain.CanonicalColumns
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("csvio: write header: %w", err)
	}
	row := make([]string, len(columns))
	for _, r := range records {
		for i, col := range columns {
			row[i] = formatCell(r, col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvio: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(r domain.Record, col string) string {
	switch col {
	case domain.ColumnCity:
		return r.City
	case domain.ColumnDate:
		return FormatDate(r.Date)
	}
	v := r.Value(col)
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormatDate writes midnight instants as a plain date and everything else
// with time of day and any fractional seconds.
func FormatDate(t time.Time) string {
	if t.Equal(domain.StartOfDay(t)) {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05.999999999")
}
