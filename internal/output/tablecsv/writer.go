package tablecsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/logger"
	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

// WriteSummary writes the summary table as CSV, one row per (event type,
// severity) bucket, for external chart renderers.
func WriteSummary(path string, t *models.SummaryTable, scale *models.SeverityScale) error {
	rows := t.Rows(scale)
	out := make([][]string, 0, len(rows)+1)
	out = append(out, []string{"event_type", "severity", "count"})
	for _, row := range rows {
		out = append(out, []string{row.EventType, row.Severity, strconv.Itoa(row.Count)})
	}
	return writeAll(path, out)
}

// WriteDaily writes the daily table as CSV, chronologically ordered.
func WriteDaily(path string, t models.DailyTable) error {
	out := make([][]string, 0, len(t)+1)
	out = append(out, []string{"date", "count"})
	for _, d := range t {
		out = append(out, []string{d.Date, strconv.Itoa(d.Count)})
	}
	return writeAll(path, out)
}

// WriteTopIPs writes the top-IP ranking as CSV, descending by count.
func WriteTopIPs(path string, t models.TopIPTable) error {
	out := make([][]string, 0, len(t)+1)
	out = append(out, []string{"ip", "count"})
	for _, e := range t {
		out = append(out, []string{e.IP, strconv.Itoa(e.Count)})
	}
	return writeAll(path, out)
}

// WriteCorrelation writes the correlation matrix as CSV, one row per
// non-zero (ip, event type) cell.
func WriteCorrelation(path string, t *models.CorrelationTable) error {
	rows := t.Rows()
	out := make([][]string, 0, len(rows)+1)
	out = append(out, []string{"ip", "event_type", "count"})
	for _, row := range rows {
		out = append(out, []string{row.IP, row.EventType, strconv.Itoa(row.Count)})
	}
	return writeAll(path, out)
}

func writeAll(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv output: %w", err)
	}

	logger.Infof("Table export written: %s (%d rows)", path, len(rows)-1)
	return nil
}
