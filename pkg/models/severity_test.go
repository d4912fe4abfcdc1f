package models

import "testing"

func TestDefaultScaleOrdersTiers(t *testing.T) {
	s := DefaultScale()

	if got := s.Rank("low"); got != 0 {
		t.Fatalf("expected low rank 0, got %d", got)
	}
	if got := s.Rank("critical"); got != 3 {
		t.Fatalf("expected critical rank 3, got %d", got)
	}
	if s.Rank("low") >= s.Rank("medium") || s.Rank("medium") >= s.Rank("high") {
		t.Fatalf("expected strictly increasing ranks")
	}
	if s.HighFloor() != "high" {
		t.Fatalf("expected high floor high, got %s", s.HighFloor())
	}
}

func TestIsHighRespectsFloor(t *testing.T) {
	s := DefaultScale()

	if s.IsHigh("low") || s.IsHigh("medium") {
		t.Fatalf("did not expect tiers below the floor to be high")
	}
	if !s.IsHigh("high") || !s.IsHigh("critical") {
		t.Fatalf("expected high and critical to be high")
	}
	if s.IsHigh(UnknownSeverity) {
		t.Fatalf("did not expect unknown to be high")
	}
}

func TestCanonicalBucketsUnrecognizedValues(t *testing.T) {
	s := DefaultScale()

	if got := s.Canonical("  HIGH "); got != "high" {
		t.Fatalf("expected high, got %q", got)
	}
	if got := s.Canonical("catastrophic"); got != UnknownSeverity {
		t.Fatalf("expected unknown bucket, got %q", got)
	}
	if got := s.Canonical(""); got != UnknownSeverity {
		t.Fatalf("expected unknown bucket for empty value, got %q", got)
	}
}

func TestNewSeverityScaleCustomTiers(t *testing.T) {
	s, err := NewSeverityScale([]string{"info", "notice", "alert"}, "notice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsHigh("info") {
		t.Fatalf("did not expect info to be high")
	}
	if !s.IsHigh("notice") || !s.IsHigh("alert") {
		t.Fatalf("expected notice and alert to be high")
	}
	if got := s.Canonical("HIGH"); got != UnknownSeverity {
		t.Fatalf("expected high to be unknown on a custom scale, got %q", got)
	}
}

func TestNewSeverityScaleRejectsBadConfig(t *testing.T) {
	if _, err := NewSeverityScale([]string{"low", "low"}, "low"); err == nil {
		t.Fatalf("expected error for duplicate tier")
	}
	if _, err := NewSeverityScale([]string{"low", "high"}, "severe"); err == nil {
		t.Fatalf("expected error for floor outside the ladder")
	}
	if _, err := NewSeverityScale([]string{"low", "unknown"}, "low"); err == nil {
		t.Fatalf("expected error for reserved unknown tier")
	}
}
