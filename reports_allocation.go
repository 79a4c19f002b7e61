package cartera

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// GroupBy is the dimension current holdings are aggregated on.
type GroupBy int

const (
	BySymbol GroupBy = iota
	ByType
	ByMarket
	ByCurrency
)

func (g GroupBy) String() string {
	switch g {
	case BySymbol:
		return "symbol"
	case ByType:
		return "type"
	case ByMarket:
		return "market"
	case ByCurrency:
		return "currency"
	default:
		panic(fmt.Sprintf("unknown group-by %d", g))
	}
}

// ParseGroupBy rejects unknown dimensions before any computation starts.
func ParseGroupBy(s string) (GroupBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "symbol":
		return BySymbol, nil
	case "type":
		return ByType, nil
	case "market":
		return ByMarket, nil
	case "currency":
		return ByCurrency, nil
	default:
		return BySymbol, fmt.Errorf("unknown group-by %q (want symbol|type|market|currency)", s)
	}
}

func (g GroupBy) key(v AssetValuation) string {
	var k string
	switch g {
	case BySymbol:
		k = v.Symbol
	case ByType:
		k = v.Type
	case ByMarket:
		k = v.Market
	case ByCurrency:
		k = v.Currency
	}
	if strings.TrimSpace(k) == "" {
		return "unknown"
	}
	return k
}

// allocationTopGroups is how many groups are kept verbatim before the tail
// is folded into "Other".
const allocationTopGroups = 8

// OtherGroupLabel is the label of the long-tail bucket.
const OtherGroupLabel = "Other"

// CashGroupLabel is the label of the optional cash pseudo-asset.
const CashGroupLabel = "Cash"

// AllocationGroup is one (label, value) pair of the breakdown, suitable for
// direct use in a share-of-total visualization. Percentage-of-total is left
// to the caller to avoid double rounding.
type AllocationGroup struct {
	Key   string
	Value Money
}

// AllocationReport is the grouped breakdown of the holdings of one snapshot.
type AllocationReport struct {
	On      Date
	GroupBy GroupBy
	Groups  []AllocationGroup
}

// NewAllocationReport groups the snapshot's valuation rows by the chosen
// dimension, sums values per key and sorts descending. The top 8 groups are
// kept verbatim; the remainder is merged into a single "Other" bucket, added
// only when its sum is positive. When includeCash is set and the snapshot
// carries a known cash value, cash joins as a pseudo-asset.
//
// Asset rows can carry several currencies; the sums are taken over the raw
// broker figures and reported in the snapshot's currency, so the shares
// match the collector's own breakdown.
func NewAllocationReport(snap Snapshot, rows []AssetValuation, groupBy GroupBy, includeCash bool) *AllocationReport {
	report := &AllocationReport{On: snap.Date, GroupBy: groupBy, Groups: []AllocationGroup{}}
	currency := snap.TotalValue.Currency()

	sums := make(map[string]decimal.Decimal)
	for _, v := range rows {
		k := groupBy.key(v)
		sums[k] = sums[k].Add(v.TotalValue.Decimal())
	}

	groups := make([]AllocationGroup, 0, len(sums))
	for k, v := range sums {
		groups = append(groups, AllocationGroup{Key: k, Value: M(v, currency)})
	}
	if includeCash {
		if cash, ok := snap.CashValue(); ok {
			groups = append(groups, AllocationGroup{Key: CashGroupLabel, Value: M(cash.Decimal(), currency)})
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Value.Equal(groups[j].Value) {
			return groups[i].Key < groups[j].Key
		}
		return groups[i].Value.GreaterThan(groups[j].Value)
	})

	if len(groups) <= allocationTopGroups {
		report.Groups = groups
		return report
	}

	head := groups[:allocationTopGroups]
	other := Money{}
	for _, g := range groups[allocationTopGroups:] {
		other = other.Add(g.Value)
	}
	report.Groups = head
	if other.IsPositive() {
		report.Groups = append(report.Groups, AllocationGroup{Key: OtherGroupLabel, Value: other})
	}
	return report
}

// Total returns the sum of all reported group values.
func (r *AllocationReport) Total() Money {
	var total Money
	for _, g := range r.Groups {
		total = total.Add(g.Value)
	}
	return total
}
