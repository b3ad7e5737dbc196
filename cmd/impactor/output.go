package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/planetdefense/orbits"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	riskStyles  = map[orbits.RiskLevel]lipgloss.Style{
		orbits.RiskLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		orbits.RiskMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		orbits.RiskHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		orbits.RiskCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5733")).Bold(true),
	}
)

func riskLabel(r orbits.RiskLevel) string {
	return riskStyles[r].Render(r.String())
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printHeader(format string, a ...interface{}) {
	fmt.Println(headerStyle.Render(fmt.Sprintf(format, a...)))
}
