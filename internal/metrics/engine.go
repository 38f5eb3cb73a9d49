package metrics

import (
	"math"

	"infralab/internal/topology"
)

const (
	networkLatencyPerConnection = 2.5
	coldStartRate               = 0.1
	cacheLatencyMultiplier      = 0.5
	cdnLatencyMultiplier        = 0.6
	loadBalancerOverheadMs      = 3
	loadBalancerScalabilityGain = 10
	bottleneckPenalty           = 15
	redundancyStep              = 5
	redundancyCap               = 15
	redundancyCostWeight        = 1.5
	baseCostIndex               = 10
	expensiveCost               = 8
	cheapCost                   = 3
	emptyScalability            = 50

	minLatencyMs = 5
	maxLatencyMs = 500
	maxScore     = 100
)

// Adjustment scales the three metrics for an optimization goal.
type Adjustment struct {
	Latency     float64 `json:"latency"`
	Scalability float64 `json:"scalability"`
	Cost        float64 `json:"cost"`
}

// NoAdjustment applies to goals without an entry in the goal table.
var NoAdjustment = Adjustment{Latency: 1, Scalability: 1, Cost: 1}

var goalAdjustments = map[topology.Goal]Adjustment{
	topology.GoalLowLatency:       {Latency: 0.75, Scalability: 1, Cost: 1.25},
	topology.GoalHighAvailability: {Latency: 1.05, Scalability: 1.25, Cost: 1.15},
	topology.GoalLowCost:          {Latency: 1.15, Scalability: 0.85, Cost: 0.7},
}

// AdjustmentFor returns the goal's adjustment, or NoAdjustment.
func AdjustmentFor(g topology.Goal) Adjustment {
	if a, ok := goalAdjustments[g]; ok {
		return a
	}
	return NoAdjustment
}

// Result is the scored outcome of a layout.
type Result struct {
	LatencyMs   int `json:"latency_ms"`
	Scalability int `json:"scalability"`
	CostIndex   int `json:"cost_index"`
}

// Breakdown exposes the intermediate terms of a scoring run.
type Breakdown struct {
	ServiceLatencyMs float64    `json:"service_latency_ms"`
	NetworkLatencyMs float64    `json:"network_latency_ms"`
	HasCache         bool       `json:"has_cache"`
	HasCDN           bool       `json:"has_cdn"`
	HasLoadBalancer  bool       `json:"has_load_balancer"`
	MeanScalability  float64    `json:"mean_scalability"`
	RedundancyBonus  float64    `json:"redundancy_bonus"`
	Bottlenecks      int        `json:"bottlenecks"`
	Adjustment       Adjustment `json:"adjustment"`

	// Unclamped values after the goal adjustment.
	Latency     float64 `json:"latency"`
	Scalability float64 `json:"scalability"`
	Cost        float64 `json:"cost"`

	Result Result `json:"result"`
}

// Compute scores a layout for a goal. The layout is expected to be valid;
// unknown kinds fall back to DefaultProfile.
func Compute(layout topology.Layout, goal topology.Goal) Result {
	return Analyze(layout, goal).Result
}

// Analyze scores a layout and returns every intermediate term.
func Analyze(layout topology.Layout, goal topology.Goal) Breakdown {
	var b Breakdown

	var ceilings float64
	for _, c := range layout.Components {
		p := ProfileFor(c.Type)
		latency := p.BaseLatencyMs
		if c.Type == topology.KindLambda {
			latency += p.ColdStartMs * coldStartRate
		}
		b.ServiceLatencyMs += latency
		ceilings += p.ScalabilityCeiling
		if p.Bottleneck {
			b.Bottlenecks++
		}
		switch p.Role {
		case RoleCache:
			b.HasCache = true
		case RoleCDN:
			b.HasCDN = true
		case RoleLoadBalancer:
			b.HasLoadBalancer = true
		}
	}
	b.NetworkLatencyMs = float64(len(layout.Connections)) * networkLatencyPerConnection

	latency := b.ServiceLatencyMs + b.NetworkLatencyMs
	if b.HasCache {
		latency *= cacheLatencyMultiplier
	}
	if b.HasCDN {
		latency *= cdnLatencyMultiplier
	}
	if b.HasLoadBalancer {
		latency += loadBalancerOverheadMs
	}

	b.MeanScalability = emptyScalability
	if n := len(layout.Components); n > 0 {
		b.MeanScalability = ceilings / float64(n)
	}
	b.RedundancyBonus = redundancyBonus(layout)

	scalability := b.MeanScalability + b.RedundancyBonus
	scalability -= float64(b.Bottlenecks * bottleneckPenalty)
	if b.HasLoadBalancer {
		scalability += loadBalancerScalabilityGain
	}

	cost := float64(baseCostIndex)
	for _, c := range layout.Components {
		if Expensive(c.Type) {
			cost += expensiveCost
		} else {
			cost += cheapCost
		}
	}
	cost += b.RedundancyBonus * redundancyCostWeight

	b.Adjustment = AdjustmentFor(goal)
	b.Latency = latency * b.Adjustment.Latency
	b.Scalability = scalability * b.Adjustment.Scalability
	b.Cost = cost * b.Adjustment.Cost

	b.Result = Result{
		LatencyMs:   clampInt(b.Latency, minLatencyMs, maxLatencyMs),
		Scalability: clampInt(b.Scalability, 0, maxScore),
		CostIndex:   clampInt(b.Cost, 0, maxScore),
	}
	return b
}

// redundancyBonus rewards repeated kinds: min((count-1)*5, 15) per kind.
func redundancyBonus(layout topology.Layout) float64 {
	var bonus float64
	for _, count := range layout.CountByKind() {
		if count > 1 {
			bonus += math.Min(float64((count-1)*redundancyStep), redundancyCap)
		}
	}
	return bonus
}

// clampInt clamps v to [lo, hi] and truncates toward zero.
func clampInt(v float64, lo, hi float64) int {
	return int(math.Max(lo, math.Min(v, hi)))
}
