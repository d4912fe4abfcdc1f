package rules

import "github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"

// Engine tags incident records that match detection rules.
type Engine interface {
	Apply(rec *models.Record) []models.RuleTag
}

// NoopEngine returns no tags.
type NoopEngine struct{}

// Apply returns an empty tag list.
func (n *NoopEngine) Apply(rec *models.Record) []models.RuleTag {
	return nil
}
