// Package renderer turns analytics reports into markdown strings.
package renderer

import (
	"github.com/fgallo/cartera"
)

// unknown is printed wherever a figure could not be computed. An unknown
// value is never rendered as 0.
const unknown = "n/a"

func pct(p *cartera.Percent) string {
	if p == nil {
		return unknown
	}
	return p.SignedString()
}

func money(m *cartera.Money) string {
	if m == nil {
		return unknown
	}
	return m.SignedString()
}

func date(d *cartera.Date) string {
	if d == nil {
		return unknown
	}
	return d.String()
}
