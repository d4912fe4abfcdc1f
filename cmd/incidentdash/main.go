package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MarcellusHarris/incident-analysis-dashboard/config"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/ingest"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/logger"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/menu"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/output/tablecsv"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/output/tablejson"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/render"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/report"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/rules"
	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

const defaultConfigName = "incidentdash.yml"

func findConfigFile(configArg string) string {
	if configArg != "" {
		return configArg
	}

	if _, err := os.Stat(defaultConfigName); err == nil {
		return defaultConfigName
	}

	exePath, err := os.Executable()
	if err == nil {
		path := filepath.Join(filepath.Dir(exePath), defaultConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func applyDefaults(cfg *config.Config) {
	if len(cfg.Dashboard.Severity.Tiers) == 0 {
		cfg.Dashboard.Severity.Tiers = models.DefaultTiers
	}
	if cfg.Dashboard.Severity.HighFloor == "" {
		cfg.Dashboard.Severity.HighFloor = models.DefaultHighFloor
	}
	if cfg.Dashboard.Logging.Level == "" {
		cfg.Dashboard.Logging.Level = "info"
	}
}

func loadConfig(configArg string) (*config.Config, error) {
	path := findConfigFile(configArg)
	if path == "" {
		cfg := &config.Config{}
		applyDefaults(cfg)
		return cfg, nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == ingest.StdinPath {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &ingest.InputError{Msg: fmt.Sprintf("cannot open input %s", path), Err: err}
	}
	return f, f.Close, nil
}

func run(args []string) int {
	fs := flag.NewFlagSet("incidentdash", flag.ContinueOnError)
	configArg := fs.String("config", "", "YAML config file path")
	input := fs.String("input", "", "Input CSV path, or - to read from standard input")
	summaryOut := fs.String("summary-output", "", "Write the summary table as CSV to this path")
	dailyOut := fs.String("daily-output", "", "Write the daily table as CSV to this path")
	topIPsOut := fs.String("top-ips-output", "", "Write the top-IP table as CSV to this path")
	jsonOut := fs.String("json-output", "", "Write the full report bundle as JSON to this path")
	topHigh := fs.Int("top-high", 0, "If greater than zero, print the top N IPs with high severity events")
	fillGaps := fs.Bool("fill-daily-gaps", false, "Zero-fill missing dates in the daily table")
	groupBy := fs.String("group-by", "", "Print counts grouped by one field (event_type, severity, ip, user, source, date)")
	rulesPath := fs.String("rules", "", "Sigma rule file or directory for detection tagging")
	interactive := fs.Bool("interactive", false, "Launch the interactive menu instead of producing static output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Dashboard.Logging.Enabled, cfg.Dashboard.Logging.Level, cfg.Dashboard.Logging.File, cfg.Dashboard.Logging.Console); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		return 1
	}

	scale, err := models.NewSeverityScale(cfg.Dashboard.Severity.Tiers, cfg.Dashboard.Severity.HighFloor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid severity config: %v\n", err)
		return 1
	}

	inputPath := *input
	if inputPath == "" {
		inputPath = cfg.Dashboard.Input.Path
	}
	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no input source; pass -input <path> or - for stdin")
		fs.Usage()
		return 2
	}

	reader, closeInput, err := openInput(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeInput()

	if inputPath == ingest.StdinPath {
		logger.Infof("Reading incident data from stdin")
	} else {
		logger.Infof("Reading incident data from %s", inputPath)
	}

	src, err := ingest.NewSource(reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	normalizer := ingest.NewNormalizer(scale)
	res, err := normalizer.Normalize(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Accepted %d rows, rejected %d\n", res.Accepted(), res.Rejected())
	for _, rej := range res.Rejects {
		logger.Warnf("Rejected row at line %d: %s", rej.Line, rej.Reason)
	}

	var engine rules.Engine = &rules.NoopEngine{}
	ruleSource := *rulesPath
	if ruleSource == "" && cfg.Dashboard.Rules.Enabled {
		ruleSource = cfg.Dashboard.Rules.Path
	}
	if ruleSource != "" {
		sigmaEngine, stats, err := rules.NewSigmaEngine(ruleSource)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load rules from %s: %v\n", ruleSource, err)
			return 1
		}
		logger.Infof("Sigma rules loaded: loaded=%d skipped_complex=%d skipped_invalid=%d files=%d",
			stats.Loaded, stats.SkippedComplex, stats.SkippedInvalid, stats.TotalFiles)
		if stats.Loaded == 0 {
			logger.Warnf("No compatible Sigma rules loaded; detection tagging is effectively disabled")
		}
		engine = sigmaEngine
	}

	svc := report.NewService(scale, engine)

	if *interactive {
		menu.New(svc, res.Records, os.Stdin, os.Stdout).Run()
		return 0
	}

	console := render.NewConsole(os.Stdout, scale)
	console.Summary(svc.Summary(res.Records))

	daily := svc.Daily(res.Records)
	if *fillGaps || cfg.Dashboard.Reports.FillDailyGaps {
		daily = svc.DailyFilled(res.Records)
	}
	console.Daily(daily)

	topN := *topHigh
	if topN == 0 {
		topN = cfg.Dashboard.Reports.TopHigh
	}
	var topIPs models.TopIPTable
	if topN > 0 {
		topIPs, err = svc.TopHighSeverityIPs(res.Records, topN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		console.TopIPs(topIPs)
	}

	if *groupBy != "" {
		counts, err := svc.GroupCounts(res.Records, *groupBy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		console.GroupCounts(*groupBy, counts)
	}

	if ruleSource != "" {
		console.Detections(svc.Detections(res.Records))
	}

	if path := pick(*summaryOut, cfg.Dashboard.Reports.SummaryCSV); path != "" {
		if err := tablecsv.WriteSummary(path, svc.Summary(res.Records), scale); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Summary table saved to %s\n", path)
	}
	if path := pick(*dailyOut, cfg.Dashboard.Reports.DailyCSV); path != "" {
		if err := tablecsv.WriteDaily(path, daily); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Daily table saved to %s\n", path)
	}
	if path := pick(*topIPsOut, cfg.Dashboard.Reports.TopIPsCSV); path != "" && topN > 0 {
		if err := tablecsv.WriteTopIPs(path, topIPs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Top-IP table saved to %s\n", path)
	}
	if path := pick(*jsonOut, cfg.Dashboard.Reports.JSON); path != "" {
		corr := svc.Correlation(res.Records)
		rep := &tablejson.Report{
			GeneratedAt:         time.Now().UTC(),
			Accepted:            res.Accepted(),
			Rejected:            res.Rejected(),
			Summary:             svc.Summary(res.Records).Rows(scale),
			Daily:               daily,
			TopIPs:              topIPs,
			Correlation:         corr.Rows(),
			CorrelationExcluded: corr.Excluded,
			Detections:          svc.Detections(res.Records),
			Rejects:             res.Rejects,
		}
		if err := tablejson.Write(path, rep); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("JSON report saved to %s\n", path)
	}

	return 0
}

func pick(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func main() {
	os.Exit(run(os.Args[1:]))
}
