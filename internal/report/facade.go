package report

import (
	"sort"

	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/analyzer"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/rules"
	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

// Service is the single query surface rendering collaborators call: one
// method per report type, structured tables out, no rendering concerns
// in. Callers never reach into the analyzer directly, which keeps one
// seam for future caching or incremental computation.
//
// Every method is a pure read over the record slice; a Service is safe
// for concurrent use by independent callers.
type Service struct {
	scale  *models.SeverityScale
	engine rules.Engine
}

// NewService creates a facade bound to a severity scale and an optional
// detection engine.
func NewService(scale *models.SeverityScale, engine rules.Engine) *Service {
	if scale == nil {
		scale = models.DefaultScale()
	}
	if engine == nil {
		engine = &rules.NoopEngine{}
	}
	return &Service{scale: scale, engine: engine}
}

// Scale returns the severity scale the service analyzes against.
func (s *Service) Scale() *models.SeverityScale {
	return s.scale
}

// Summary counts records by (event type, severity).
func (s *Service) Summary(records []models.Record) *models.SummaryTable {
	return analyzer.Summarize(records)
}

// Daily counts records per observed calendar date, ascending.
func (s *Service) Daily(records []models.Record) models.DailyTable {
	return analyzer.DailyCounts(records)
}

// DailyFilled is Daily with zero-filled gaps between the first and last
// observed dates.
func (s *Service) DailyFilled(records []models.Record) models.DailyTable {
	return analyzer.DailyCountsFilled(records)
}

// TopHighSeverityIPs ranks the IPs with the most records at or above the
// high floor, truncated to n entries.
func (s *Service) TopHighSeverityIPs(records []models.Record, n int) (models.TopIPTable, error) {
	return analyzer.TopHighSeverityIPs(records, s.scale, n)
}

// Correlation builds the IP × event type matrix across all severities.
// The returned table reports how many records were excluded for lacking
// an IP.
func (s *Service) Correlation(records []models.Record) *models.CorrelationTable {
	return analyzer.Correlate(records)
}

// HighSeverityCorrelation restricts the correlation to records at or
// above the high floor.
func (s *Service) HighSeverityCorrelation(records []models.Record) *models.CorrelationTable {
	return analyzer.CorrelateHighSeverity(records, s.scale)
}

// GroupCounts counts records by one named field, for grouping dimensions
// the fixed reports do not cover.
func (s *Service) GroupCounts(records []models.Record, field string) (map[string]int, error) {
	return analyzer.GroupBy(records, field)
}

// Detections evaluates the detection engine over every record and counts
// matches per rule, descending, ties broken by rule ID.
func (s *Service) Detections(records []models.Record) models.DetectionTable {
	counts := make(map[string]*models.DetectionRow, 16)
	for i := range records {
		for _, tag := range s.engine.Apply(&records[i]) {
			key := tag.ID
			if key == "" {
				key = tag.Name
			}
			row := counts[key]
			if row == nil {
				row = &models.DetectionRow{RuleID: tag.ID, Name: tag.Name, Severity: tag.Severity}
				counts[key] = row
			}
			row.Count++
		}
	}

	table := make(models.DetectionTable, 0, len(counts))
	for _, row := range counts {
		table = append(table, *row)
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return table[i].RuleID < table[j].RuleID
	})
	return table
}
