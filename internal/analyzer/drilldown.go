package analyzer

import (
	"sort"

	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

// TopHighSeverityIPs ranks IPs by the number of records at or above the
// scale's high floor. Records without an IP are excluded rather than
// counted under a null key. Ties break by lexical IP order so repeated
// runs on the same input are reproducible. n == 0 yields an empty table;
// a negative n is a caller error.
func TopHighSeverityIPs(records []models.Record, scale *models.SeverityScale, n int) (models.TopIPTable, error) {
	if n < 0 {
		return nil, &PreconditionError{Msg: "top-IP count must not be negative"}
	}
	if scale == nil {
		scale = models.DefaultScale()
	}
	if n == 0 {
		return models.TopIPTable{}, nil
	}

	counts := make(map[string]int, 32)
	for i := range records {
		rec := &records[i]
		if rec.IP == "" || !scale.IsHigh(rec.Severity) {
			continue
		}
		counts[rec.IP]++
	}

	ranked := make(models.TopIPTable, 0, len(counts))
	for ip, count := range counts {
		ranked = append(ranked, models.IPCount{IP: ip, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].IP < ranked[j].IP
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Correlate builds the sparse IP × event type count matrix. Correlation
// is not severity-filtered: every record with an IP contributes. Records
// without an IP are excluded from the matrix; the table carries how many
// so the caller can report the exclusion.
func Correlate(records []models.Record) *models.CorrelationTable {
	t := models.NewCorrelationTable()
	for i := range records {
		rec := &records[i]
		if rec.IP == "" {
			t.Excluded++
			continue
		}
		t.Add(rec.IP, rec.EventType)
	}
	return t
}

// CorrelateHighSeverity restricts the correlation to records at or above
// the scale's high floor. Excluded counts only high-severity records that
// carry no IP.
func CorrelateHighSeverity(records []models.Record, scale *models.SeverityScale) *models.CorrelationTable {
	if scale == nil {
		scale = models.DefaultScale()
	}
	t := models.NewCorrelationTable()
	for i := range records {
		rec := &records[i]
		if !scale.IsHigh(rec.Severity) {
			continue
		}
		if rec.IP == "" {
			t.Excluded++
			continue
		}
		t.Add(rec.IP, rec.EventType)
	}
	return t
}
