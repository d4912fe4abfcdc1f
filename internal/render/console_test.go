package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

func TestConsoleSummaryRendersRows(t *testing.T) {
	table := models.NewSummaryTable()
	table.Add("login", "high")
	table.Add("scan", "low")

	var out bytes.Buffer
	NewConsole(&out, nil).Summary(table)

	got := out.String()
	if !strings.Contains(got, "Summary by type and severity:") {
		t.Fatalf("expected title, got %q", got)
	}
	if !strings.Contains(got, "login") || !strings.Contains(got, "scan") {
		t.Fatalf("expected event types in output, got %q", got)
	}
}

func TestConsoleCorrelationReportsExclusions(t *testing.T) {
	table := models.NewCorrelationTable()
	table.Add("10.0.0.1", "login")
	table.Excluded = 2

	var out bytes.Buffer
	NewConsole(&out, nil).Correlation(table, "Correlation:")

	got := out.String()
	if !strings.Contains(got, "10.0.0.1") {
		t.Fatalf("expected ip in output, got %q", got)
	}
	if !strings.Contains(got, "2 records excluded (no ip)") {
		t.Fatalf("expected exclusion note, got %q", got)
	}
}

func TestConsoleEmptyTables(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, nil)
	c.Summary(models.NewSummaryTable())
	c.Daily(nil)
	c.TopIPs(nil)

	got := out.String()
	if !strings.Contains(got, "(no records)") || !strings.Contains(got, "(none)") {
		t.Fatalf("expected empty placeholders, got %q", got)
	}
}
