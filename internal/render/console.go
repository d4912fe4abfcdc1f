package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

// Console renders report tables as text. It consumes the facade's table
// types only; it never reaches into the analyzer.
type Console struct {
	out   io.Writer
	scale *models.SeverityScale
}

// NewConsole creates a console renderer. A nil scale falls back to the
// default ladder.
func NewConsole(out io.Writer, scale *models.SeverityScale) *Console {
	if scale == nil {
		scale = models.DefaultScale()
	}
	return &Console{out: out, scale: scale}
}

// Summary renders the (event type, severity) count table.
func (c *Console) Summary(t *models.SummaryTable) {
	fmt.Fprintln(c.out, "Summary by type and severity:")
	rows := t.Rows(c.scale)
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "  (no records)")
		return
	}
	tw := c.newTable([]string{"Event Type", "Severity", "Count"})
	for _, row := range rows {
		tw.Append([]string{row.EventType, c.severityCell(row.Severity), strconv.Itoa(row.Count)})
	}
	tw.Render()
}

// Daily renders per-date counts, chronologically.
func (c *Console) Daily(t models.DailyTable) {
	fmt.Fprintln(c.out, "Daily incident counts:")
	if len(t) == 0 {
		fmt.Fprintln(c.out, "  (no records)")
		return
	}
	tw := c.newTable([]string{"Date", "Count"})
	for _, d := range t {
		tw.Append([]string{d.Date, strconv.Itoa(d.Count)})
	}
	tw.Render()
}

// TopIPs renders the high-severity IP ranking.
func (c *Console) TopIPs(t models.TopIPTable) {
	fmt.Fprintf(c.out, "Top IP addresses with %s+ severity events:\n", c.scale.HighFloor())
	if len(t) == 0 {
		fmt.Fprintln(c.out, "  (none)")
		return
	}
	tw := c.newTable([]string{"IP", "Count"})
	for _, e := range t {
		tw.Append([]string{e.IP, strconv.Itoa(e.Count)})
	}
	tw.Render()
}

// Correlation renders the IP × event type matrix, one column per event
// type, and reports excluded records.
func (c *Console) Correlation(t *models.CorrelationTable, title string) {
	fmt.Fprintln(c.out, title)
	ips := t.IPs()
	if len(ips) == 0 {
		fmt.Fprintln(c.out, "  (no records with an ip)")
		if t.Excluded > 0 {
			fmt.Fprintf(c.out, "  %d records excluded (no ip)\n", t.Excluded)
		}
		return
	}
	types := t.EventTypes()
	header := append([]string{"IP"}, types...)
	tw := c.newTable(header)
	for _, ip := range ips {
		row := make([]string, 0, len(types)+1)
		row = append(row, ip)
		for _, et := range types {
			row = append(row, strconv.Itoa(t.Count(ip, et)))
		}
		tw.Append(row)
	}
	tw.Render()
	if t.Excluded > 0 {
		fmt.Fprintf(c.out, "%d records excluded (no ip)\n", t.Excluded)
	}
}

// Detections renders per-rule match counts.
func (c *Console) Detections(t models.DetectionTable) {
	fmt.Fprintln(c.out, "Detection rule matches:")
	if len(t) == 0 {
		fmt.Fprintln(c.out, "  (no matches)")
		return
	}
	tw := c.newTable([]string{"Rule", "Name", "Severity", "Count"})
	for _, d := range t {
		tw.Append([]string{d.RuleID, d.Name, c.severityCell(d.Severity), strconv.Itoa(d.Count)})
	}
	tw.Render()
}

// GroupCounts renders a generic field grouping.
func (c *Console) GroupCounts(field string, counts map[string]int) {
	fmt.Fprintf(c.out, "Counts by %s:\n", field)
	if len(counts) == 0 {
		fmt.Fprintln(c.out, "  (no records)")
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tw := c.newTable([]string{field, "Count"})
	for _, k := range keys {
		tw.Append([]string{k, strconv.Itoa(counts[k])})
	}
	tw.Render()
}

func (c *Console) newTable(header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(c.out)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetBorder(false)
	return tw
}

func (c *Console) severityCell(tier string) string {
	rank := c.scale.Rank(tier)
	switch {
	case rank < 0:
		return tier
	case c.scale.IsHigh(tier):
		if rank == len(c.scale.Tiers())-1 {
			return color.New(color.FgRed, color.Bold).Sprint(tier)
		}
		return color.New(color.FgRed).Sprint(tier)
	case rank == 0:
		return color.New(color.FgGreen).Sprint(tier)
	default:
		return color.New(color.FgYellow).Sprint(tier)
	}
}
