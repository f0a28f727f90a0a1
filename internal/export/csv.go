// Package export renders a logbook extraction result as CSV or XLSX for
// download. Flagged fields are listed in a companion column so reviewers see
// what to re-check without opening the app.
package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"flotta/internal/domain"
)

// BOM is the UTF-8 byte order mark, for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row.
var columns = []string{
	"Row",
	"New Group",
	"Date",
	"Time",
	"Plate",
	"Counter Start",
	"Liters Dispensed",
	"Counter End",
	"Driver",
	"Flagged Fields",
	"Raw Text",
}

// CSVWriter wraps csv.Writer for exporting logbook rows.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts the logbook rows to CSV records and writes them.
func (w *CSVWriter) WriteRows(rows []domain.LogbookRow) error {
	for i := range rows {
		if err := w.csv.Write(rowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// rowToRecord converts a single row into a record matching columns. Nil
// fields export as empty cells.
func rowToRecord(row *domain.LogbookRow) []string {
	record := make([]string, len(columns))
	record[0] = fmtIndex(row.RowIndexFromTop)
	if row.SeparatorBefore {
		record[1] = "yes"
	}
	record[2] = fmtString(row.Date)
	record[3] = fmtString(row.Time)
	record[4] = fmtString(row.Plate)
	record[5] = fmtNumber(row.CounterStart)
	record[6] = fmtNumber(row.LitersDispensed)
	record[7] = fmtNumber(row.CounterEnd)
	record[8] = fmtString(row.DriverName)
	record[9] = fmtFlags(row.FieldFlags)
	record[10] = fmtString(row.RawText)
	return record
}

func fmtString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fmtNumber(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func fmtIndex(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func fmtFlags(flags map[string]string) string {
	if len(flags) == 0 {
		return ""
	}
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
