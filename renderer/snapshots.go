package renderer

import (
	"fmt"
	"strings"

	"github.com/fgallo/cartera"
)

// SnapshotsMarkdown renders the recorded snapshot history, newest first.
func SnapshotsMarkdown(series *cartera.SnapshotSeries, limit int) string {
	var b strings.Builder

	fmt.Fprintln(&b, "# Snapshot History")
	fmt.Fprintln(&b)

	if series.Len() == 0 {
		fmt.Fprintln(&b, "No snapshots recorded.")
		return b.String()
	}

	snaps := make([]cartera.Snapshot, 0, series.Len())
	for s := range series.Values() {
		snaps = append(snaps, s)
	}

	fmt.Fprintln(&b, "| Date | Total | Titles | Source |")
	fmt.Fprintln(&b, "|:---|---:|---:|:---|")
	count := 0
	for i := len(snaps) - 1; i >= 0 && (limit <= 0 || count < limit); i-- {
		s := snaps[i]
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			s.Date, s.TotalValue, money(s.TitlesValue), s.Source)
		count++
	}
	return b.String()
}
