package models

import "testing"

func TestSummaryTableRowsOrderedByTypeThenSeverityRank(t *testing.T) {
	table := NewSummaryTable()
	table.Add("scan", "high")
	table.Add("login", "high")
	table.Add("login", "low")
	table.Add("login", "low")
	table.Add("login", UnknownSeverity)

	rows := table.Rows(DefaultScale())
	if len(rows) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(rows))
	}
	if rows[0].EventType != "login" || rows[0].Severity != "low" || rows[0].Count != 2 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Severity != "high" {
		t.Fatalf("expected high before unknown, got %+v", rows[1])
	}
	if rows[2].Severity != UnknownSeverity {
		t.Fatalf("expected unknown to sort after configured tiers, got %+v", rows[2])
	}
	if rows[3].EventType != "scan" {
		t.Fatalf("expected scan last, got %+v", rows[3])
	}
	if table.Total() != 5 {
		t.Fatalf("expected total 5, got %d", table.Total())
	}
}

func TestCorrelationTableRowsAndAxes(t *testing.T) {
	table := NewCorrelationTable()
	table.Add("10.0.0.2", "scan")
	table.Add("10.0.0.1", "login")
	table.Add("10.0.0.1", "scan")
	table.Add("10.0.0.1", "scan")
	table.Excluded = 3

	ips := table.IPs()
	if len(ips) != 2 || ips[0] != "10.0.0.1" || ips[1] != "10.0.0.2" {
		t.Fatalf("unexpected ip order: %v", ips)
	}
	types := table.EventTypes()
	if len(types) != 2 || types[0] != "login" || types[1] != "scan" {
		t.Fatalf("unexpected event type order: %v", types)
	}
	if got := table.Count("10.0.0.1", "scan"); got != 2 {
		t.Fatalf("expected count 2, got %d", got)
	}
	if got := table.Count("10.0.0.2", "login"); got != 0 {
		t.Fatalf("expected sparse cell to read 0, got %d", got)
	}

	rows := table.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 non-zero cells, got %d", len(rows))
	}
	if rows[0].IP != "10.0.0.1" || rows[0].EventType != "login" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
}
