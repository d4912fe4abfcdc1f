package analyzer

import (
	"errors"
	"testing"

	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

func TestTopHighSeverityIPsRanksAndTruncates(t *testing.T) {
	records := []models.Record{
		rec(1, "login", "high", "10.0.0.1"),
		rec(1, "login", "low", "10.0.0.2"),
		rec(2, "scan", "high", "10.0.0.1"),
		rec(2, "scan", "critical", "10.0.0.3"),
		rec(3, "scan", "high", ""),
	}

	table, err := TopHighSeverityIPs(records, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(table))
	}
	if table[0].IP != "10.0.0.1" || table[0].Count != 2 {
		t.Fatalf("unexpected top entry: %+v", table[0])
	}

	table, err = TopHighSeverityIPs(records, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected all distinct high-severity IPs without padding, got %d", len(table))
	}
	for i := 1; i < len(table); i++ {
		if table[i-1].Count < table[i].Count {
			t.Fatalf("counts must be non-increasing: %+v", table)
		}
	}
}

func TestTopHighSeverityIPsTieBreaksLexically(t *testing.T) {
	records := []models.Record{
		rec(1, "scan", "high", "10.0.0.9"),
		rec(1, "scan", "high", "10.0.0.1"),
	}

	table, err := TopHighSeverityIPs(records, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table[0].IP != "10.0.0.1" || table[1].IP != "10.0.0.9" {
		t.Fatalf("expected lexical tie-break, got %+v", table)
	}
}

func TestTopHighSeverityIPsZeroAndNegativeN(t *testing.T) {
	records := []models.Record{rec(1, "scan", "high", "10.0.0.1")}

	table, err := TopHighSeverityIPs(records, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 0 {
		t.Fatalf("expected empty table for n=0, got %d entries", len(table))
	}

	_, err = TopHighSeverityIPs(records, nil, -1)
	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("expected PreconditionError for negative n, got %v", err)
	}
}

func TestTopHighSeverityIPsHonorsCustomFloor(t *testing.T) {
	scale, err := models.NewSeverityScale([]string{"low", "medium", "high", "critical"}, "critical")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records := []models.Record{
		rec(1, "scan", "high", "10.0.0.1"),
		rec(1, "scan", "critical", "10.0.0.2"),
	}

	table, err := TopHighSeverityIPs(records, scale, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 1 || table[0].IP != "10.0.0.2" {
		t.Fatalf("expected only critical records above the floor, got %+v", table)
	}
}

func TestCorrelateIsNotSeverityFiltered(t *testing.T) {
	records := []models.Record{
		rec(1, "login", "high", "10.0.0.1"),
		rec(1, "login", "low", "10.0.0.2"),
		rec(2, "scan", "high", "10.0.0.1"),
	}

	table := Correlate(records)
	if table.Count("10.0.0.1", "login") != 1 || table.Count("10.0.0.1", "scan") != 1 {
		t.Fatalf("unexpected counts for 10.0.0.1: %+v", table.Rows())
	}
	if table.Count("10.0.0.2", "login") != 1 {
		t.Fatalf("low severity record must still appear in correlation")
	}
	if table.Excluded != 0 {
		t.Fatalf("expected no exclusions, got %d", table.Excluded)
	}
}

func TestCorrelateExcludesAndCountsRecordsWithoutIP(t *testing.T) {
	records := []models.Record{
		rec(1, "login", "high", "10.0.0.1"),
		rec(1, "scan", "high", ""),
		rec(2, "scan", "low", ""),
	}

	table := Correlate(records)
	if table.Len() != 1 {
		t.Fatalf("expected 1 ip, got %d", table.Len())
	}
	if table.Excluded != 2 {
		t.Fatalf("expected 2 excluded records, got %d", table.Excluded)
	}
}

func TestCorrelateOrderIndependent(t *testing.T) {
	records := []models.Record{
		rec(1, "login", "high", "10.0.0.1"),
		rec(1, "login", "low", "10.0.0.2"),
		rec(2, "scan", "high", "10.0.0.1"),
	}
	reversed := []models.Record{records[2], records[1], records[0]}

	a := Correlate(records).Rows()
	b := Correlate(reversed).Rows()
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs under reordering: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCorrelateHighSeverityFiltersByFloor(t *testing.T) {
	records := []models.Record{
		rec(1, "login", "high", "10.0.0.1"),
		rec(1, "login", "low", "10.0.0.2"),
		rec(2, "scan", "critical", ""),
	}

	table := CorrelateHighSeverity(records, nil)
	if table.Len() != 1 {
		t.Fatalf("expected only high-severity IPs, got %d", table.Len())
	}
	if table.Count("10.0.0.1", "login") != 1 {
		t.Fatalf("unexpected counts: %+v", table.Rows())
	}
	if table.Excluded != 1 {
		t.Fatalf("expected 1 high-severity record excluded for missing ip, got %d", table.Excluded)
	}
}
