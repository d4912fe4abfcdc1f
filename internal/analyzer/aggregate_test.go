package analyzer

import (
	"errors"
	"testing"
	"time"

	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

func rec(day int, eventType, severity, ip string) models.Record {
	return models.Record{
		Timestamp: time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC),
		EventType: eventType,
		Severity:  severity,
		IP:        ip,
	}
}

func TestSummarizeCountsByTypeAndSeverity(t *testing.T) {
	records := []models.Record{
		rec(1, "login", "high", "10.0.0.1"),
		rec(1, "login", "low", "10.0.0.2"),
		rec(2, "scan", "high", "10.0.0.1"),
	}

	table := Summarize(records)
	if table.Count("login", "high") != 1 || table.Count("login", "low") != 1 || table.Count("scan", "high") != 1 {
		t.Fatalf("unexpected counts: %+v", table.Rows(nil))
	}
	if table.Total() != len(records) {
		t.Fatalf("summary total %d must equal record count %d", table.Total(), len(records))
	}
}

func TestSummarizeEmptyInputYieldsEmptyTable(t *testing.T) {
	table := Summarize(nil)
	if table.Len() != 0 || table.Total() != 0 {
		t.Fatalf("expected empty table, got %d buckets", table.Len())
	}
}

func TestDailyCountsOnlyObservedDatesAscending(t *testing.T) {
	records := []models.Record{
		rec(5, "scan", "low", ""),
		rec(1, "login", "high", ""),
		rec(1, "login", "low", ""),
	}

	table := DailyCounts(records)
	if len(table) != 2 {
		t.Fatalf("expected 2 observed dates, got %d", len(table))
	}
	if table[0].Date != "2024-01-01" || table[0].Count != 2 {
		t.Fatalf("unexpected first entry: %+v", table[0])
	}
	if table[1].Date != "2024-01-05" || table[1].Count != 1 {
		t.Fatalf("unexpected second entry: %+v", table[1])
	}
	if table.Total() != len(records) {
		t.Fatalf("daily total %d must equal record count %d", table.Total(), len(records))
	}
	for i := 1; i < len(table); i++ {
		if table[i-1].Date >= table[i].Date {
			t.Fatalf("dates must be strictly ascending: %+v", table)
		}
	}
}

func TestDailyCountsFilledZeroFillsGaps(t *testing.T) {
	records := []models.Record{
		rec(1, "login", "high", ""),
		rec(4, "scan", "low", ""),
	}

	table := DailyCountsFilled(records)
	if len(table) != 4 {
		t.Fatalf("expected 4 days inclusive, got %d", len(table))
	}
	if table[1].Date != "2024-01-02" || table[1].Count != 0 {
		t.Fatalf("expected zero-filled gap, got %+v", table[1])
	}
	if table.Total() != len(records) {
		t.Fatalf("gap filling must not change the total, got %d", table.Total())
	}
}

func TestGroupByCountsNamedField(t *testing.T) {
	records := []models.Record{
		rec(1, "login", "high", "10.0.0.1"),
		rec(1, "scan", "high", "10.0.0.1"),
		rec(2, "scan", "low", ""),
	}
	records[0].User = "alice"
	records[1].User = "alice"

	bySeverity, err := GroupBy(records, "severity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bySeverity["high"] != 2 || bySeverity["low"] != 1 {
		t.Fatalf("unexpected severity counts: %v", bySeverity)
	}

	byUser, err := GroupBy(records, "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byUser["alice"] != 2 {
		t.Fatalf("unexpected user counts: %v", byUser)
	}
	if _, ok := byUser[""]; ok {
		t.Fatalf("empty values must not be counted: %v", byUser)
	}

	byDate, err := GroupBy(records, "date")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byDate["2024-01-01"] != 2 || byDate["2024-01-02"] != 1 {
		t.Fatalf("unexpected date counts: %v", byDate)
	}
}

func TestGroupByUnknownFieldFailsFast(t *testing.T) {
	_, err := GroupBy(nil, "hostname")
	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	records := []models.Record{
		rec(1, "login", "high", "10.0.0.1"),
		rec(2, "scan", "low", "10.0.0.2"),
	}
	snapshot := append([]models.Record(nil), records...)

	Summarize(records)
	DailyCounts(records)

	for i := range records {
		if records[i].EventType != snapshot[i].EventType || !records[i].Timestamp.Equal(snapshot[i].Timestamp) {
			t.Fatalf("input records were mutated at %d", i)
		}
	}
}
