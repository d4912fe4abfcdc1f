package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

// PreconditionError reports invalid parameters passed to an analytic
// call. It fails fast and is never silently coerced.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return e.Msg
}

// GroupFields are the field names GroupBy accepts.
var GroupFields = []string{"event_type", "severity", "ip", "user", "source", "date"}

// Summarize counts records by (event type, severity). A single pass over
// the input; the record slice is never mutated. Empty input yields an
// empty table, not an error.
func Summarize(records []models.Record) *models.SummaryTable {
	t := models.NewSummaryTable()
	for i := range records {
		t.Add(records[i].EventType, records[i].Severity)
	}
	return t
}

// DailyCounts groups records by the calendar date of their timestamp,
// as given, with no timezone conversion. Only observed dates appear,
// ordered ascending; gaps are not zero-filled.
func DailyCounts(records []models.Record) models.DailyTable {
	counts := make(map[string]int, 32)
	for i := range records {
		counts[records[i].Date()]++
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	table := make(models.DailyTable, 0, len(dates))
	for _, date := range dates {
		table = append(table, models.DailyCount{Date: date, Count: counts[date]})
	}
	return table
}

// DailyCountsFilled is the gap-filling variant of DailyCounts: every date
// between the first and last observed date appears, zero counts included.
func DailyCountsFilled(records []models.Record) models.DailyTable {
	observed := DailyCounts(records)
	if len(observed) < 2 {
		return observed
	}

	first, err := time.Parse("2006-01-02", observed[0].Date)
	if err != nil {
		return observed
	}
	last, err := time.Parse("2006-01-02", observed[len(observed)-1].Date)
	if err != nil {
		return observed
	}

	counts := make(map[string]int, len(observed))
	for _, d := range observed {
		counts[d.Date] = d.Count
	}

	table := make(models.DailyTable, 0, len(observed))
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		table = append(table, models.DailyCount{Date: date, Count: counts[date]})
	}
	return table
}

// GroupBy counts records by one named field, the generic fallback for
// grouping dimensions the fixed reports do not cover. Records with an
// empty value for the field are not counted. An unknown field name is a
// caller error.
func GroupBy(records []models.Record, field string) (map[string]int, error) {
	sel, ok := fieldSelector(field)
	if !ok {
		return nil, &PreconditionError{Msg: fmt.Sprintf("unknown grouping field %q (expected one of %v)", field, GroupFields)}
	}

	out := make(map[string]int, 16)
	for i := range records {
		if v := sel(&records[i]); v != "" {
			out[v]++
		}
	}
	return out, nil
}

func fieldSelector(field string) (func(*models.Record) string, bool) {
	switch field {
	case "event_type", "severity", "ip", "user", "source":
		return func(r *models.Record) string { return r.Field(field) }, true
	case "date":
		return func(r *models.Record) string { return r.Date() }, true
	}
	return nil, false
}
