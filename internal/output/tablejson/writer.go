package tablejson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/ingest"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/logger"
	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

// Report is the full analysis bundle handed to external renderers.
type Report struct {
	GeneratedAt         time.Time               `json:"generated_at"`
	Accepted            int                     `json:"accepted"`
	Rejected            int                     `json:"rejected"`
	Summary             []models.SummaryRow     `json:"summary"`
	Daily               models.DailyTable       `json:"daily"`
	TopIPs              models.TopIPTable       `json:"top_ips,omitempty"`
	Correlation         []models.CorrelationRow `json:"correlation,omitempty"`
	CorrelationExcluded int                     `json:"correlation_excluded,omitempty"`
	Detections          models.DetectionTable   `json:"detections,omitempty"`
	Rejects             []ingest.Reject         `json:"rejects,omitempty"`
}

// Write serializes the report bundle as indented JSON.
func Write(path string, rep *Report) error {
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

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	logger.Infof("JSON report written: %s", path)
	return nil
}
