package normalize

import (
	"encoding/json"
	"sort"
	"strings"

	"flotta/internal/domain"
)

// maxLogbookRows bounds the extraction to the most recent rows; the source
// table is a rolling log and the business need is "what happened most
// recently". Older rows are dropped, not archived.
const maxLogbookRows = 10

// requiredRowFields are the normalized field names that must be readable for
// a row to be trusted without review.
var requiredRowFields = []string{"date", "plate", "litersDispensed", "counterEnd"}

// rawFlagNames maps the model's raw field names onto normalized ones when
// copying model-reported confidence flags.
var rawFlagNames = map[string]string{
	"data":            "date",
	"ora":             "time",
	"targa":           "plate",
	"contatoreInizio": "counterStart",
	"litriErogati":    "litersDispensed",
	"contatoreFine":   "counterEnd",
	"autista":         "driverName",
}

// Logbook converts the decoded raw answer into an ordered, bounded
// LogbookExtractionResult. Like Document it never fails; an unusable answer
// yields zero rows, which itself needs no review (there is nothing to
// verify).
func Logbook(raw json.RawMessage) *domain.LogbookExtractionResult {
	raws := rawRows(raw)
	rows := make([]domain.LogbookRow, 0, len(raws))
	for _, m := range raws {
		rows = append(rows, normalizeRow(m))
	}

	rows = orderRows(rows)
	if len(rows) > maxLogbookRows {
		rows = rows[len(rows)-maxLogbookRows:]
	}
	markSeparators(rows)

	issues := 0
	for i := range rows {
		if rowHasIssues(&rows[i]) {
			issues++
		}
	}

	return &domain.LogbookExtractionResult{
		Rows:        rows,
		NeedsReview: issues > 0,
		Summary: domain.LogbookSummary{
			RowsExtracted:  len(rows),
			RowsWithIssues: issues,
		},
	}
}

// rawRows tolerates both the documented {"righe": [...]} shape and a bare
// top-level array.
func rawRows(raw json.RawMessage) []map[string]any {
	var wrapped struct {
		Righe []map[string]any `json:"righe"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Righe != nil {
		return wrapped.Righe
	}
	var bare []map[string]any
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}
	return nil
}

func normalizeRow(m map[string]any) domain.LogbookRow {
	row := domain.LogbookRow{
		RowIndexFromTop: intIndex(m["rigaDallAlto"]),
		Date:            Date(m["data"]),
		Time:            Str(m["ora"]),
		Plate:           upper(Str(m["targa"])),
		CounterStart:    Number(m["contatoreInizio"]),
		LitersDispensed: Number(m["litriErogati"]),
		CounterEnd:      Number(m["contatoreFine"]),
		DriverName:      Str(m["autista"]),
		RawText:         Str(m["testoGrezzo"]),
	}
	row.FieldFlags = rowFlags(m, &row)
	return row
}

// rowFlags copies model-reported flags (mapped to normalized field names),
// then forces a LOW_CONFIDENCE flag onto every required field whose
// normalized value is nil. The result is recomputed as a union, never merged
// destructively, so the flag set is always a superset of what is actually
// missing. Returns nil (absent) rather than an empty map.
func rowFlags(m map[string]any, row *domain.LogbookRow) map[string]string {
	flags := map[string]string{}

	if reported, ok := m["campiDaVerificare"].(map[string]any); ok {
		for rawName, v := range reported {
			value, ok := v.(string)
			if !ok || value == "" {
				continue
			}
			name := rawName
			if mapped, ok := rawFlagNames[rawName]; ok {
				name = mapped
			}
			flags[name] = value
		}
	}

	missing := map[string]bool{
		"date":            row.Date == nil,
		"plate":           row.Plate == nil,
		"litersDispensed": row.LitersDispensed == nil,
		"counterEnd":      row.CounterEnd == nil,
	}
	for name, isMissing := range missing {
		if isMissing {
			flags[name] = domain.FlagLowConfidence
		}
	}

	if len(flags) == 0 {
		return nil
	}
	return flags
}

// orderRows sorts ascending by RowIndexFromTop only when every row carries
// one; partially-present indices would inject a false order, so the model's
// emission order (assumed top-to-bottom) is kept instead.
func orderRows(rows []domain.LogbookRow) []domain.LogbookRow {
	for i := range rows {
		if rows[i].RowIndexFromTop == nil {
			return rows
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return *rows[i].RowIndexFromTop < *rows[j].RowIndexFromTop
	})
	return rows
}

// markSeparators sets SeparatorBefore on each row whose date differs from
// the previous row's date. The first row never has a separator and unknown
// dates never force one.
func markSeparators(rows []domain.LogbookRow) {
	for i := range rows {
		if i == 0 {
			rows[i].SeparatorBefore = false
			continue
		}
		prev, cur := rows[i-1].Date, rows[i].Date
		rows[i].SeparatorBefore = prev != nil && cur != nil && *prev != *cur
	}
}

// rowHasIssues reports whether any required field is missing or flagged.
// Flag backfill guarantees missing implies flagged, so the flag set is the
// single source of truth here.
func rowHasIssues(row *domain.LogbookRow) bool {
	for _, name := range requiredRowFields {
		if _, flagged := row.FieldFlags[name]; flagged {
			return true
		}
	}
	return false
}

func upper(s *string) *string {
	if s == nil {
		return nil
	}
	u := strings.ToUpper(*s)
	return &u
}
