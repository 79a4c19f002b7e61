package renderer

import (
	"fmt"
	"strings"

	"github.com/fgallo/cartera"
)

func moverRows(b *strings.Builder, movers []cartera.Mover) {
	if len(movers) == 0 {
		fmt.Fprintln(b, "None.")
		fmt.Fprintln(b)
		return
	}
	fmt.Fprintln(b, "| Symbol | Description | Value | Change | % | Note |")
	fmt.Fprintln(b, "|:---|:---|---:|---:|---:|:---|")
	for _, m := range movers {
		note := ""
		switch m.Flow {
		case cartera.FlowLiquidated:
			note = "liquidated"
		case cartera.FlowMissingCashflow:
			note = "missing cashflow"
		}
		delta := m.DeltaValue
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
			m.Symbol, m.Description, m.TotalValue, delta.SignedString(), pct(m.DeltaPct), note)
	}
	fmt.Fprintln(b)
}

// MoversMarkdown renders the ranked gainers and losers of one window.
func MoversMarkdown(r *cartera.MoversReport) string {
	var b strings.Builder

	if r.Kind == cartera.KindTotal {
		fmt.Fprintf(&b, "# Top Movers (lifetime, %s)\n\n", r.Currency)
	} else {
		fmt.Fprintf(&b, "# Top Movers (%s, %s)\n\n", r.Period, r.Currency)
	}

	if r.Kind == cartera.KindPeriod && (r.From == nil || r.To == nil) {
		fmt.Fprintln(&b, "No data for this period.")
		return b.String()
	}
	if r.From != nil && r.To != nil {
		fmt.Fprintf(&b, "Window: %s to %s\n\n", r.From, r.To)
	}

	for _, w := range r.Warnings {
		switch w {
		case cartera.WarningOrdersNone:
			fmt.Fprintln(&b, "> No trade records found for the window; figures ignore cashflows.")
		case cartera.WarningOrdersIncomplete:
			fmt.Fprintln(&b, "> Some trade records are incomplete; figures may understate flows.")
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "## Gainers")
	fmt.Fprintln(&b)
	moverRows(&b, r.Gainers)

	fmt.Fprintln(&b, "## Losers")
	fmt.Fprintln(&b)
	moverRows(&b, r.Losers)

	return b.String()
}
