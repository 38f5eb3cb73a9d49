package advisor

import "infralab/internal/topology"

// suggestionFocus is what each goal asks improvements to aim for.
var suggestionFocus = map[topology.Goal]string{
	topology.GoalLowLatency:       "minimize response time with caching and load balancing",
	topology.GoalHighAvailability: "maximize uptime through redundancy and failover",
	topology.GoalLowCost:          "minimize expenses with minimal redundancy",
}

// SuggestionFocus returns the phrase for g, falling back to low_latency.
func SuggestionFocus(g topology.Goal) string {
	if s, ok := suggestionFocus[g]; ok {
		return s
	}
	return suggestionFocus[topology.GoalLowLatency]
}

// DesignBrief steers topology generation for one goal.
type DesignBrief struct {
	Target string
	Style  string
}

var designBriefs = map[topology.Goal]DesignBrief{
	topology.GoalLowLatency:       {Target: "minimize response time", Style: "minimize hops, add caching layers"},
	topology.GoalHighAvailability: {Target: "maximize uptime and fault tolerance", Style: "redundancy, failover, distributed"},
	topology.GoalLowCost:          {Target: "minimize infrastructure expenses", Style: "simple, minimal redundancy"},
}

// BriefFor returns the brief for g, falling back to low_latency.
func BriefFor(g topology.Goal) DesignBrief {
	if b, ok := designBriefs[g]; ok {
		return b
	}
	return designBriefs[topology.GoalLowLatency]
}
