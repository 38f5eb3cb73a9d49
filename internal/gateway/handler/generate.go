package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"infralab/internal/advisor"
	"infralab/internal/gateway/repository/archive"
	"infralab/internal/ledger"
	"infralab/internal/metrics"
	"infralab/internal/proposal"
	"infralab/internal/topology"
)

type topologyRequest struct {
	Goal    string `json:"goal"`
	UseCase string `json:"use_case"`
}

func (h *Handler) HandleGenerateTopology(w http.ResponseWriter, r *http.Request) {
	var req topologyRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	goal, err := topology.ParseGoal(req.Goal)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	layout, err := h.advisor.GenerateTopology(r.Context(), goal, req.UseCase)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

type proposalRequest struct {
	layoutRequest
	UseCase string `json:"use_case"`
}

func (h *Handler) HandleGenerateProposal(w http.ResponseWriter, r *http.Request) {
	var req proposalRequest
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
	total, items := h.prices.Estimate(req.Layout)
	sections, err := h.advisor.Propose(r.Context(), advisor.ProposalInput{
		Layout:          req.Layout,
		Goal:            goal,
		UseCase:         req.UseCase,
		Costs:           items,
		TotalMonthlyUSD: total,
		Metrics:         m,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	pdf, err := proposal.Render(proposal.Document{
		UseCase:         req.UseCase,
		Goal:            goal.String(),
		Sections:        sections.Sections(),
		Costs:           items,
		TotalMonthlyUSD: total,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if id, ok := h.archiveProposal(r.Context(), pdf); ok {
		w.Header().Set("X-Proposal-Id", id)
	}
	writePDF(w, pdf)
}

// archiveProposal stores pdf when an archive is configured. Failures are
// logged and otherwise ignored.
func (h *Handler) archiveProposal(ctx context.Context, pdf []byte) (string, bool) {
	if h.archive == nil {
		return "", false
	}
	id := archive.NewID()
	if err := h.archive.Put(context.WithoutCancel(ctx), id, pdf); err != nil {
		h.log.Printf("archive proposal %s: %v", id, err)
		return "", false
	}
	return id, true
}

func (h *Handler) HandleGetProposal(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "proposal archive is disabled"})
		return
	}
	pdf, err := h.archive.Get(r.Context(), r.PathValue("id"))
	switch {
	case err == nil:
		writePDF(w, pdf)
	case errors.Is(err, archive.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "proposal not found"})
	case errors.Is(err, archive.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "invalid proposal id"})
	default:
		h.log.Printf("read proposal %s: %v", r.PathValue("id"), err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "proposal archive unavailable"})
	}
}

func (h *Handler) HandleListProposals(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	if h.archive != nil {
		got, err := h.archive.List(r.Context())
		if err != nil {
			h.log.Printf("list proposals: %v", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "proposal archive unavailable"})
			return
		}
		if got != nil {
			ids = got
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"proposals": ids})
}

func writePDF(w http.ResponseWriter, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=proposal.pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

const defaultGenerationsLimit = 50

func (h *Handler) HandleGenerations(w http.ResponseWriter, r *http.Request) {
	limit := defaultGenerationsLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorBody{Detail: "limit must be a positive integer"})
			return
		}
		limit = n
	}
	entries := []ledger.Entry{}
	if h.ledger != nil {
		got, err := h.ledger.Recent(r.Context(), limit)
		if err != nil {
			h.log.Printf("read ledger: %v", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "ledger unavailable"})
			return
		}
		if got != nil {
			entries = got
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": entries})
}
