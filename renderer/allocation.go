package renderer

import (
	"fmt"
	"strings"

	"github.com/fgallo/cartera"
)

// AllocationMarkdown renders the grouped composition of the latest snapshot.
func AllocationMarkdown(r *cartera.AllocationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Allocation by %s on %s\n\n", r.GroupBy, r.On)

	if len(r.Groups) == 0 {
		fmt.Fprintln(&b, "No holdings.")
		return b.String()
	}

	total := r.Total()
	fmt.Fprintln(&b, "| Group | Value | Share |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, g := range r.Groups {
		share := unknown
		if s, ok := g.Value.PctOf(total); ok {
			share = s.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", g.Key, g.Value, share)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | |\n", total)

	return b.String()
}
