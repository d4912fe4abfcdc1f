package models

import (
	"fmt"
	"strings"
)

// UnknownSeverity buckets severity values outside the configured tiers.
// Unknown values are kept, not rejected, so one bad label never hides a
// whole row from the aggregates. Unknown ranks below every real tier and
// never counts as high severity.
const UnknownSeverity = "unknown"

// DefaultTiers is the ordered severity ladder from lowest to highest.
var DefaultTiers = []string{"low", "medium", "high", "critical"}

// DefaultHighFloor is the tier at or above which records count as high
// severity by default.
const DefaultHighFloor = "high"

// SeverityScale is an ordered enumeration of severity tiers with a high
// floor. Analytics take the scale as a parameter instead of comparing
// severity strings directly.
type SeverityScale struct {
	tiers     []string
	rank      map[string]int
	highFloor int
}

// NewSeverityScale builds a scale from an ordered tier list and the tier
// at or above which records count as high severity.
func NewSeverityScale(tiers []string, highFloor string) (*SeverityScale, error) {
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}
	if highFloor == "" {
		highFloor = tiers[len(tiers)-1]
	}

	s := &SeverityScale{
		tiers: make([]string, 0, len(tiers)),
		rank:  make(map[string]int, len(tiers)),
	}
	for _, tier := range tiers {
		tier = strings.ToLower(strings.TrimSpace(tier))
		if tier == "" {
			continue
		}
		if _, ok := s.rank[tier]; ok {
			return nil, fmt.Errorf("duplicate severity tier %q", tier)
		}
		if tier == UnknownSeverity {
			return nil, fmt.Errorf("severity tier %q is reserved", UnknownSeverity)
		}
		s.rank[tier] = len(s.tiers)
		s.tiers = append(s.tiers, tier)
	}
	if len(s.tiers) == 0 {
		return nil, fmt.Errorf("severity scale has no tiers")
	}

	floor, ok := s.rank[strings.ToLower(strings.TrimSpace(highFloor))]
	if !ok {
		return nil, fmt.Errorf("high floor %q is not a configured tier", highFloor)
	}
	s.highFloor = floor
	return s, nil
}

// DefaultScale returns the low/medium/high/critical ladder with "high" as
// the high floor.
func DefaultScale() *SeverityScale {
	s, err := NewSeverityScale(DefaultTiers, DefaultHighFloor)
	if err != nil {
		panic(err)
	}
	return s
}

// Canonical maps a raw severity value onto the scale. Values outside the
// configured tiers become UnknownSeverity.
func (s *SeverityScale) Canonical(raw string) string {
	tier := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := s.rank[tier]; ok {
		return tier
	}
	return UnknownSeverity
}

// Rank returns the position of a tier in the ladder, or -1 for values
// outside it.
func (s *SeverityScale) Rank(tier string) int {
	if r, ok := s.rank[strings.ToLower(strings.TrimSpace(tier))]; ok {
		return r
	}
	return -1
}

// IsHigh reports whether a tier is at or above the high floor.
func (s *SeverityScale) IsHigh(tier string) bool {
	r := s.Rank(tier)
	return r >= 0 && r >= s.highFloor
}

// Tiers returns the ordered tier list, lowest first.
func (s *SeverityScale) Tiers() []string {
	return append([]string(nil), s.tiers...)
}

// HighFloor returns the tier at the high-severity boundary.
func (s *SeverityScale) HighFloor() string {
	return s.tiers[s.highFloor]
}
