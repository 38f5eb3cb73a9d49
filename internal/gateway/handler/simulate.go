package handler

import (
	"net/http"

	"infralab/internal/metrics"
	"infralab/internal/topology"
)

type layoutRequest struct {
	Layout topology.Layout `json:"layout"`
	Goal   string          `json:"goal"`
}

// parse validates the layout and goal of a request body.
func (req layoutRequest) parse() (topology.Goal, error) {
	if err := req.Layout.Validate(); err != nil {
		return "", err
	}
	return topology.ParseGoal(req.Goal)
}

type simulateResponse struct {
	EstimatedLatencyMs int    `json:"estimated_latency_ms"`
	ScalabilityScore   int    `json:"scalability_score"`
	CostIndex          int    `json:"cost_index"`
	Explanation        string `json:"explanation"`
}

func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	goal, err := req.parse()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	m := metrics.Compute(req.Layout, goal)
	explanation, err := h.advisor.Explain(r.Context(), req.Layout, goal, m)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, simulateResponse{
		EstimatedLatencyMs: m.LatencyMs,
		ScalabilityScore:   m.Scalability,
		CostIndex:          m.CostIndex,
		Explanation:        explanation,
	})
}

type currentMetrics struct {
	Latency     int `json:"latency"`
	Scalability int `json:"scalability"`
	Cost        int `json:"cost"`
}

type suggestionsResponse struct {
	Suggestions    string         `json:"suggestions"`
	CurrentMetrics currentMetrics `json:"current_metrics"`
}

func (h *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	goal, err := req.parse()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	m := metrics.Compute(req.Layout, goal)
	suggestions, err := h.advisor.Suggest(r.Context(), req.Layout, goal, m)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{
		Suggestions:    suggestions,
		CurrentMetrics: currentMetrics{Latency: m.LatencyMs, Scalability: m.Scalability, Cost: m.CostIndex},
	})
}
