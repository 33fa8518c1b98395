package domain

import "strings"

// Side is the side of the order book a conversion executes against.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ConversionStep records one hop of a conversion path. It is produced once
// per hop and never mutated.
type ConversionStep struct {
	Side   Side
	Symbol string
	From   Asset
	To     Asset
	Price  float64
}

// PathResult is the outcome of evaluating one conversion cycle.
//
// On success (Valid=true): EndAmount, Profit, ProfitPct and the full Steps
// sequence are set. On failure: Reason explains the first missing hop and
// Steps holds the hops completed before it; the amounts are zero.
type PathResult struct {
	Path        []Asset
	Valid       bool
	StartAmount float64
	EndAmount   float64
	Profit      float64
	ProfitPct   float64
	Steps       []ConversionStep
	Reason      string
}

// Label renders the path as "A -> B -> C -> A" for logs and reports.
func (r PathResult) Label() string {
	parts := make([]string, len(r.Path))
	for i, a := range r.Path {
		parts[i] = string(a)
	}
	return strings.Join(parts, " -> ")
}
