package renderer

import (
	"fmt"
	"strings"

	"github.com/fgallo/cartera"
)

func inflationNotes(b *strings.Builder, stale bool, availableTo *cartera.Month, projectionUsed bool) {
	if stale {
		fmt.Fprintln(b, "> Price index served from an expired cache; figures may lag.")
	}
	if projectionUsed && availableTo != nil {
		fmt.Fprintf(b, "> Index published through %s; later months are estimated from the last known rate.\n", availableTo)
	}
	if stale || projectionUsed {
		fmt.Fprintln(b)
	}
}

// InflationCompareMarkdown renders the month-by-month comparison of the
// portfolio returns against the price index.
func InflationCompareMarkdown(r *cartera.InflationCompareReport) string {
	var b strings.Builder

	fmt.Fprintln(&b, "# Portfolio vs Inflation (monthly)")
	fmt.Fprintln(&b)
	inflationNotes(&b, r.Stale, r.InflationAvailableTo, r.ProjectionUsed)

	fmt.Fprintln(&b, "| Month | Portfolio | Inflation | Real |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, row := range r.Rows {
		inflation := pct(row.InflationPct)
		if row.InflationProjected && row.InflationPct != nil {
			inflation += " (estimated)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			row.Month, pct(row.PortfolioPct), inflation, pct(row.RealPct))
	}
	return b.String()
}

// InflationAnnualMarkdown renders the calendar-year aggregation.
func InflationAnnualMarkdown(r *cartera.InflationAnnualReport) string {
	var b strings.Builder

	fmt.Fprintln(&b, "# Portfolio vs Inflation (annual)")
	fmt.Fprintln(&b)
	inflationNotes(&b, r.Stale, r.InflationAvailableTo, r.ProjectionUsed)

	fmt.Fprintln(&b, "| Year | Portfolio | Inflation | Real | Months |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|")
	for _, row := range r.Rows {
		months := fmt.Sprintf("%d", row.Months)
		if row.Partial {
			months += " (partial)"
		}
		inflation := pct(row.InflationPct)
		if row.InflationProjected && row.InflationPct != nil {
			inflation += " (estimated)"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			row.Year, pct(row.PortfolioPct), inflation, pct(row.RealPct), months)
	}
	return b.String()
}

// InflationSeriesMarkdown renders the base-100 divergence series.
func InflationSeriesMarkdown(r *cartera.InflationSeriesReport) string {
	var b strings.Builder

	fmt.Fprintln(&b, "# Portfolio vs Inflation (indexed, base 100)")
	fmt.Fprintln(&b)
	inflationNotes(&b, r.Stale, r.InflationAvailableTo, r.ProjectionUsed)

	fmt.Fprintln(&b, "| Month | Portfolio | Inflation |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, p := range r.Points {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Month, level(p.PortfolioIndex), level(p.InflationIndex))
	}
	return b.String()
}

func level(v *float64) string {
	if v == nil {
		return unknown
	}
	return fmt.Sprintf("%.2f", *v)
}
