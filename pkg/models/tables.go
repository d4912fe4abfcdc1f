package models

import "sort"

// SummaryKey identifies one (event type, severity) bucket.
type SummaryKey struct {
	EventType string
	Severity  string
}

// SummaryRow is one rendered summary bucket.
type SummaryRow struct {
	EventType string `json:"event_type"`
	Severity  string `json:"severity"`
	Count     int    `json:"count"`
}

// SummaryTable counts records by event type and severity.
type SummaryTable struct {
	counts map[SummaryKey]int
}

// NewSummaryTable returns an empty summary table.
func NewSummaryTable() *SummaryTable {
	return &SummaryTable{counts: make(map[SummaryKey]int, 32)}
}

// Add counts one record under its (event type, severity) bucket.
func (t *SummaryTable) Add(eventType, severity string) {
	t.counts[SummaryKey{EventType: eventType, Severity: severity}]++
}

// Count returns the count for one bucket.
func (t *SummaryTable) Count(eventType, severity string) int {
	return t.counts[SummaryKey{EventType: eventType, Severity: severity}]
}

// Total returns the number of records across all buckets.
func (t *SummaryTable) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Len returns the number of non-empty buckets.
func (t *SummaryTable) Len() int {
	return len(t.counts)
}

// Rows returns the buckets ordered by event type, then severity rank on
// the given scale. Unknown severities sort after configured tiers.
func (t *SummaryTable) Rows(scale *SeverityScale) []SummaryRow {
	if scale == nil {
		scale = DefaultScale()
	}
	rows := make([]SummaryRow, 0, len(t.counts))
	for k, c := range t.counts {
		rows = append(rows, SummaryRow{EventType: k.EventType, Severity: k.Severity, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EventType != rows[j].EventType {
			return rows[i].EventType < rows[j].EventType
		}
		ri, rj := scale.Rank(rows[i].Severity), scale.Rank(rows[j].Severity)
		if ri < 0 {
			ri = len(scale.Tiers())
		}
		if rj < 0 {
			rj = len(scale.Tiers())
		}
		if ri != rj {
			return ri < rj
		}
		return rows[i].Severity < rows[j].Severity
	})
	return rows
}

// DailyCount is the record count for one observed calendar date.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyTable is a chronological sequence of per-date counts. Only dates
// observed in the data appear unless gap filling was requested.
type DailyTable []DailyCount

// Total returns the number of records across all dates.
func (t DailyTable) Total() int {
	total := 0
	for _, d := range t {
		total += d.Count
	}
	return total
}

// IPCount is the record count attributed to one IP address.
type IPCount struct {
	IP    string `json:"ip"`
	Count int    `json:"count"`
}

// TopIPTable ranks IPs by high-severity record count, descending. Ties
// break by lexical IP order.
type TopIPTable []IPCount

// CorrelationRow is one cell of the rendered correlation matrix.
type CorrelationRow struct {
	IP        string `json:"ip"`
	EventType string `json:"event_type"`
	Count     int    `json:"count"`
}

// CorrelationTable is the sparse IP × event type count matrix. Only IPs
// present in the input appear as keys. Excluded counts the records that
// were left out because they carry no IP.
type CorrelationTable struct {
	counts   map[string]map[string]int
	Excluded int
}

// NewCorrelationTable returns an empty correlation table.
func NewCorrelationTable() *CorrelationTable {
	return &CorrelationTable{counts: make(map[string]map[string]int, 32)}
}

// Add counts one record under its IP and event type.
func (t *CorrelationTable) Add(ip, eventType string) {
	byType := t.counts[ip]
	if byType == nil {
		byType = make(map[string]int, 4)
		t.counts[ip] = byType
	}
	byType[eventType]++
}

// Count returns the count for one (ip, event type) cell.
func (t *CorrelationTable) Count(ip, eventType string) int {
	return t.counts[ip][eventType]
}

// Len returns the number of distinct IPs in the table.
func (t *CorrelationTable) Len() int {
	return len(t.counts)
}

// IPs returns the IPs present in the table in lexical order.
func (t *CorrelationTable) IPs() []string {
	ips := make([]string, 0, len(t.counts))
	for ip := range t.counts {
		ips = append(ips, ip)
	}
	sort.Strings(ips)
	return ips
}

// EventTypes returns the union of event types across all IPs in lexical
// order.
func (t *CorrelationTable) EventTypes() []string {
	seen := make(map[string]struct{}, 16)
	for _, byType := range t.counts {
		for et := range byType {
			seen[et] = struct{}{}
		}
	}
	types := make([]string, 0, len(seen))
	for et := range seen {
		types = append(types, et)
	}
	sort.Strings(types)
	return types
}

// Rows returns the non-zero cells ordered by IP, then event type.
func (t *CorrelationTable) Rows() []CorrelationRow {
	rows := make([]CorrelationRow, 0, len(t.counts)*2)
	for _, ip := range t.IPs() {
		byType := t.counts[ip]
		types := make([]string, 0, len(byType))
		for et := range byType {
			types = append(types, et)
		}
		sort.Strings(types)
		for _, et := range types {
			rows = append(rows, CorrelationRow{IP: ip, EventType: et, Count: byType[et]})
		}
	}
	return rows
}

// DetectionRow is the match count for one detection rule.
type DetectionRow struct {
	RuleID   string `json:"rule_id"`
	Name     string `json:"name,omitempty"`
	Severity string `json:"severity,omitempty"`
	Count    int    `json:"count"`
}

// DetectionTable ranks detection rules by match count, descending. Ties
// break by rule ID.
type DetectionTable []DetectionRow
