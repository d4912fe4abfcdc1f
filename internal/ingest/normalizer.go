package ingest

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/logger"
	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

// timestampLayouts are the accepted timestamp formats, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// namedColumns are the columns mapped onto Record fields; everything else
// is retained as a passthrough attribute.
var namedColumns = map[string]struct{}{
	"timestamp":   {},
	"event_type":  {},
	"severity":    {},
	"ip":          {},
	"user":        {},
	"source":      {},
	"description": {},
}

// Reject is one row excluded from the normalized set, with the reason.
type Reject struct {
	Line   int               `json:"line"`
	Row    map[string]string `json:"row,omitempty"`
	Reason string            `json:"reason"`
}

// Result is the outcome of normalizing one source.
type Result struct {
	Records []models.Record
	Rejects []Reject
}

// Accepted returns the number of normalized records.
func (r *Result) Accepted() int {
	return len(r.Records)
}

// Rejected returns the number of rejected rows.
func (r *Result) Rejected() int {
	return len(r.Rejects)
}

// Normalizer parses raw rows into canonical incident records. Severity
// values outside the scale are bucketed as unknown rather than rejected.
type Normalizer struct {
	scale *models.SeverityScale
}

// NewNormalizer creates a normalizer against a severity scale. A nil
// scale falls back to the default ladder.
func NewNormalizer(scale *models.SeverityScale) *Normalizer {
	if scale == nil {
		scale = models.DefaultScale()
	}
	return &Normalizer{scale: scale}
}

// Stream consumes the source row by row, invoking fn for each accepted
// record. The source is never materialized as a whole, so arbitrarily
// large streams stay within bounded memory. Rejected rows are returned
// once the source is exhausted.
func (n *Normalizer) Stream(src *Source, fn func(models.Record) error) ([]Reject, error) {
	if src == nil {
		return nil, &InputError{Msg: "no input source"}
	}

	var rejects []Reject
	for {
		row, line, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			rejects = append(rejects, Reject{Line: line, Reason: fmt.Sprintf("unparseable row: %v", err)})
			continue
		}

		rec, reason := n.normalizeRow(row)
		if reason != "" {
			rejects = append(rejects, Reject{Line: line, Row: row, Reason: reason})
			continue
		}

		if fn != nil {
			if err := fn(rec); err != nil {
				return rejects, err
			}
		}
	}
	return rejects, nil
}

// Normalize materializes the full record set for downstream analytics.
// Row-level problems never abort the batch; they accumulate as rejects.
func (n *Normalizer) Normalize(src *Source) (*Result, error) {
	res := &Result{}
	rejects, err := n.Stream(src, func(rec models.Record) error {
		res.Records = append(res.Records, rec)
		return nil
	})
	res.Rejects = rejects
	if err != nil {
		return nil, err
	}
	if len(res.Rejects) > 0 {
		logger.Warnf("Rejected %d of %d input rows", len(res.Rejects), len(res.Records)+len(res.Rejects))
	}
	return res, nil
}

func (n *Normalizer) normalizeRow(row map[string]string) (models.Record, string) {
	var rec models.Record

	ts := strings.TrimSpace(row["timestamp"])
	if ts == "" {
		return rec, "missing timestamp"
	}
	parsed, ok := parseTimestamp(ts)
	if !ok {
		return rec, fmt.Sprintf("unparseable timestamp %q", ts)
	}

	eventType := strings.TrimSpace(row["event_type"])
	if eventType == "" {
		return rec, "missing event_type"
	}

	severity := strings.TrimSpace(row["severity"])
	if severity == "" {
		return rec, "missing severity"
	}

	rec.Timestamp = parsed
	rec.EventType = eventType
	rec.Severity = n.scale.Canonical(severity)
	rec.IP = normalizeIP(row["ip"])
	rec.User = strings.TrimSpace(row["user"])
	rec.Source = strings.TrimSpace(row["source"])
	rec.Description = strings.TrimSpace(row["description"])

	for name, value := range row {
		if _, known := namedColumns[name]; known {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string, 4)
		}
		rec.Extra[name] = value
	}

	return rec, ""
}

// normalizeIP validates the optional ip column loosely. A value that does
// not parse as an address is treated as absent; it never rejects the row.
func normalizeIP(raw string) string {
	ip := strings.TrimSpace(raw)
	if ip == "" {
		return ""
	}
	if net.ParseIP(ip) == nil {
		logger.Debugf("Dropping malformed ip value %q", ip)
		return ""
	}
	return ip
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
