package renderer

import (
	"fmt"
	"strings"

	"github.com/fgallo/cartera"
)

// ReturnsMarkdown renders the per-window portfolio returns.
func ReturnsMarkdown(r *cartera.ReturnsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Returns as of %s\n\n", r.AsOf)
	if r.ReportingCurrency != "" {
		fmt.Fprintf(&b, "Reporting currency: %s\n\n", r.ReportingCurrency)
	}

	fmt.Fprintln(&b, "| Window | From | To | Change | % |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|")

	rows := []struct {
		label string
		block cartera.ReturnBlock
	}{
		{"Daily", r.Daily},
		{"Weekly", r.Weekly},
		{"Monthly", r.Monthly},
		{"Yearly", r.Yearly},
		{"YTD", r.YTD},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			row.label,
			date(row.block.From),
			date(row.block.To),
			money(row.block.Delta),
			pct(row.block.Pct),
		)
	}
	return b.String()
}
