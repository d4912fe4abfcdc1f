package models

import "time"

// Record is one normalized incident row.
type Record struct {
	Timestamp   time.Time         `json:"timestamp"`
	EventType   string            `json:"event_type"`
	Severity    string            `json:"severity"`
	IP          string            `json:"ip,omitempty"`
	User        string            `json:"user,omitempty"`
	Source      string            `json:"source,omitempty"`
	Description string            `json:"description,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Date returns the calendar date component of the timestamp, as given,
// without timezone conversion.
func (r *Record) Date() string {
	return r.Timestamp.Format("2006-01-02")
}

// Field returns a named field value. Unrecognized names fall back to the
// passthrough columns.
func (r *Record) Field(name string) string {
	switch name {
	case "timestamp":
		return r.Timestamp.Format(time.RFC3339)
	case "event_type":
		return r.EventType
	case "severity":
		return r.Severity
	case "ip":
		return r.IP
	case "user":
		return r.User
	case "source":
		return r.Source
	case "description":
		return r.Description
	}
	if r.Extra == nil {
		return ""
	}
	return r.Extra[name]
}

// RuleTag labels a record matched by a detection rule.
type RuleTag struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Severity  string `json:"severity,omitempty"`
	Tactic    string `json:"tactic,omitempty"`
	Technique string `json:"technique,omitempty"`
}
