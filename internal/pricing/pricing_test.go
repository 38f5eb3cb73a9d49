package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"infralab/internal/topology"
)

func TestEstimate_GroupsAndSorts(t *testing.T) {
	l := topology.Layout{Components: []topology.Component{
		{ID: "fn-1", Type: topology.KindLambda},
		{ID: "db-1", Type: topology.KindRDS},
		{ID: "fn-2", Type: topology.KindLambda},
		{ID: "vpc-1", Type: topology.KindVPC},
		{ID: "x-1", Type: topology.Kind("mystery")},
	}}

	total, items := Estimate(l)

	assert.Equal(t, 120.0+10.0+0+15.0, total)
	assert.Equal(t, []LineItem{
		{Service: "rds", Count: 1, UnitMonthlyUSD: 120, SubtotalMonthlyUSD: 120},
		{Service: "mystery", Count: 1, UnitMonthlyUSD: 15, SubtotalMonthlyUSD: 15},
		{Service: "lambda", Count: 2, UnitMonthlyUSD: 5, SubtotalMonthlyUSD: 10},
		{Service: "vpc", Count: 1, UnitMonthlyUSD: 0, SubtotalMonthlyUSD: 0},
	}, items)
}

func TestEstimate_TiesKeepFirstAppearance(t *testing.T) {
	l := topology.Layout{Components: []topology.Component{
		{ID: "q", Type: topology.KindSQS},
		{ID: "n", Type: topology.KindSNS},
		{ID: "f", Type: topology.KindLambda},
	}}
	_, items := Estimate(l)
	got := []string{items[0].Service, items[1].Service, items[2].Service}
	assert.Equal(t, []string{"sqs", "sns", "lambda"}, got)
}

func TestPriceTable_Custom(t *testing.T) {
	table := PriceTable{topology.KindS3: 1.005}
	total, items := table.Estimate(topology.Layout{Components: []topology.Component{
		{ID: "a", Type: topology.KindS3},
		{ID: "b", Type: topology.KindS3},
	}})
	assert.Equal(t, 2.01, total)
	assert.Equal(t, 2, items[0].Count)
	assert.Equal(t, FallbackMonthlyUSD, table.UnitPrice(topology.KindRDS))
}

func TestEveryKnownKindIsPriced(t *testing.T) {
	for _, k := range topology.KnownKinds() {
		_, ok := Default[k]
		assert.True(t, ok, "missing price for %s", k)
	}
}
