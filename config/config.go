package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// DashboardConfig is the project configuration.
type DashboardConfig struct {
	Input    InputConfig    `yaml:"input"`
	Severity SeverityConfig `yaml:"severity"`
	Rules    RulesConfig    `yaml:"rules"`
	Reports  ReportsConfig  `yaml:"reports"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig controls the default input source. Path may be "-" for
// standard input.
type InputConfig struct {
	Path string `yaml:"path"`
}

// SeverityConfig defines the ordered severity ladder, lowest first, and
// the tier at or above which records count as high severity.
type SeverityConfig struct {
	Tiers     []string `yaml:"tiers"`
	HighFloor string   `yaml:"high_floor"`
}

// RulesConfig controls detection-rule tagging.
type RulesConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ReportsConfig controls which reports run by default and where table
// exports for external renderers are written.
type ReportsConfig struct {
	SummaryCSV    string `yaml:"summary_csv"`
	DailyCSV      string `yaml:"daily_csv"`
	TopIPsCSV     string `yaml:"top_ips_csv"`
	JSON          string `yaml:"json"`
	TopHigh       int    `yaml:"top_high"`
	FillDailyGaps bool   `yaml:"fill_daily_gaps"`
}

// LoggingConfig controls logging output.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Console bool   `yaml:"console"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
