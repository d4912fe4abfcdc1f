package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/render"
	"github.com/MarcellusHarris/incident-analysis-dashboard/internal/report"
	"github.com/MarcellusHarris/incident-analysis-dashboard/pkg/models"
)

const defaultTopN = 5

// Menu is the interactive loop for exploring a normalized record set.
// Each selection runs one facade query; no state survives between
// selections.
type Menu struct {
	svc     *report.Service
	records []models.Record
	in      *bufio.Scanner
	out     io.Writer
	console *render.Console
}

// New creates a menu over an already-normalized record set.
func New(svc *report.Service, records []models.Record, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		svc:     svc,
		records: records,
		in:      bufio.NewScanner(in),
		out:     out,
		console: render.NewConsole(out, svc.Scale()),
	}
}

// Run loops until the user exits or input ends.
func (m *Menu) Run() {
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, "Incident Dashboard Interactive Menu:")
		fmt.Fprintln(m.out, "1. View summary by type and severity")
		fmt.Fprintln(m.out, "2. View daily counts")
		fmt.Fprintln(m.out, "3. Show top high severity IP addresses")
		fmt.Fprintln(m.out, "4. Correlate events by IP and event type")
		fmt.Fprintln(m.out, "5. Correlate high severity events by IP")
		fmt.Fprintln(m.out, "6. Show detection rule matches")
		fmt.Fprintln(m.out, "7. Exit menu")

		choice, ok := m.prompt("Select an option (1-7): ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			m.console.Summary(m.svc.Summary(m.records))
		case "2":
			m.console.Daily(m.svc.Daily(m.records))
		case "3":
			m.topIPs()
		case "4":
			m.console.Correlation(m.svc.Correlation(m.records), "Correlation of incidents by IP and event type:")
		case "5":
			m.console.Correlation(m.svc.HighSeverityCorrelation(m.records), "Correlation of high severity incidents by IP:")
		case "6":
			m.console.Detections(m.svc.Detections(m.records))
		case "7":
			fmt.Fprintln(m.out, "Exiting interactive menu.")
			return
		default:
			fmt.Fprintln(m.out, "Invalid selection; please choose a number between 1 and 7.")
		}
	}
}

func (m *Menu) topIPs() {
	raw, ok := m.prompt("How many top IPs to display? ")
	if !ok {
		return
	}
	n := defaultTopN
	if raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			fmt.Fprintf(m.out, "Invalid number; defaulting to %d.\n", defaultTopN)
		} else {
			n = parsed
		}
	}

	table, err := m.svc.TopHighSeverityIPs(m.records, n)
	if err != nil {
		fmt.Fprintf(m.out, "Failed to rank IPs: %v\n", err)
		return
	}
	m.console.TopIPs(table)
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}
