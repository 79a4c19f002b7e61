package cartera

import (
	"fmt"
	"strings"
)

// Period is a calendar window over which returns and movers are computed.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Yearly
	YTD
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	case YTD:
		return "ytd"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod parses a period tag. Unknown tags are a caller-contract
// violation and rejected before any computation starts.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	case "ytd":
		return YTD, nil
	default:
		return Daily, fmt.Errorf("unknown period %q (want daily|weekly|monthly|yearly|ytd)", p)
	}
}

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// MonthRange returns the range covering a full calendar month.
func MonthRange(m Month) Range { return Range{From: m.First(), To: m.Last()} }

// YearRange returns the range covering a full calendar year.
func YearRange(year int) Range {
	return Range{From: NewDate(year, 1, 1), To: NewDate(year, 12, 31)}
}
