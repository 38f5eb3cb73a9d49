// Package pricing gives ballpark monthly USD estimates for a layout.
// Figures assume light usage and are not AWS billing.
package pricing

import (
	"math"
	"sort"

	"infralab/internal/topology"
)

// FallbackMonthlyUSD is charged for kinds missing from the table.
const FallbackMonthlyUSD = 15.0

// PriceTable maps a kind to its unit monthly cost in USD.
type PriceTable map[topology.Kind]float64

// Default holds conservative baseline monthly estimates.
var Default = PriceTable{
	topology.KindLambda:       5,
	topology.KindS3:           3,
	topology.KindDynamoDB:     30,
	topology.KindCloudFront:   15,
	topology.KindAPIGateway:   20,
	topology.KindAmplify:      25,
	topology.KindRDS:          120,
	topology.KindElastiCache:  80,
	topology.KindSQS:          5,
	topology.KindSNS:          5,
	topology.KindLoadBalancer: 25,

	topology.KindVPC:             0,
	topology.KindSubnet:          0,
	topology.KindSecurityGroup:   0,
	topology.KindNATGateway:      32, // ~100 GB processed
	topology.KindInternetGateway: 5,

	topology.KindComputeNode:  40,
	topology.KindDatabase:     120,
	topology.KindCache:        80,
	topology.KindMessageQueue: 5,
}

// UnitPrice returns the monthly unit cost for k, or FallbackMonthlyUSD.
func (t PriceTable) UnitPrice(k topology.Kind) float64 {
	if p, ok := t[k]; ok {
		return p
	}
	return FallbackMonthlyUSD
}

// LineItem is the cost of all components of one kind.
type LineItem struct {
	Service            string  `json:"service"`
	Count              int     `json:"count"`
	UnitMonthlyUSD     float64 `json:"unit_monthly_usd"`
	SubtotalMonthlyUSD float64 `json:"subtotal_monthly_usd"`
}

// Estimate groups the layout's components by kind and prices each group.
// Items are sorted by subtotal, highest first.
func (t PriceTable) Estimate(layout topology.Layout) (float64, []LineItem) {
	var (
		order  []topology.Kind
		counts = make(map[topology.Kind]int)
	)
	for _, c := range layout.Components {
		if counts[c.Type] == 0 {
			order = append(order, c.Type)
		}
		counts[c.Type]++
	}

	items := make([]LineItem, 0, len(order))
	var total float64
	for _, k := range order {
		unit := t.UnitPrice(k)
		subtotal := unit * float64(counts[k])
		total += subtotal
		items = append(items, LineItem{
			Service:            string(k),
			Count:              counts[k],
			UnitMonthlyUSD:     roundCents(unit),
			SubtotalMonthlyUSD: roundCents(subtotal),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SubtotalMonthlyUSD > items[j].SubtotalMonthlyUSD
	})
	return roundCents(total), items
}

// Estimate prices a layout with the Default table.
func Estimate(layout topology.Layout) (float64, []LineItem) {
	return Default.Estimate(layout)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
