// Package cartera computes portfolio analytics over a history of daily
// brokerage snapshots. It is read-only by design: a separate collection
// process records the snapshots, and this package only derives figures
// from them.
//
// The core functionalities include:
//   - Returns: point-in-time portfolio returns over the daily, weekly,
//     monthly, yearly and year-to-date windows, resolved over a sparse
//     snapshot series with closest-earlier baselines.
//   - Movers: per-asset gainers and losers for a calendar window, ranked
//     by mark-to-market change or by cashflow-adjusted profit and loss.
//   - Inflation comparison: portfolio monthly returns against a consumer
//     price index, with real (deflated) returns, calendar-year
//     aggregation, and explicit estimation of unpublished index months.
//   - Allocation: the current composition of the portfolio grouped by
//     symbol, instrument type, market or currency.
//
// Throughout the package a nil pointer means "unknown", which is never
// collapsed into zero: a window without a baseline has no return, and a
// month with a single snapshot has no monthly figure.
//
// This package is the foundational logic for the `cta` command-line tool;
// persistence lives in the store subpackage and index retrieval in indec.
package cartera
