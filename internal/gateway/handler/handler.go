package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"infralab/internal/advisor"
	"infralab/internal/gateway/repository/archive"
	"infralab/internal/ledger"
	llmclient "infralab/internal/llmClient"
	"infralab/internal/pricing"
	"infralab/internal/topology"
	"infralab/internal/util/jsonutil"
)

const maxBodyBytes = 1 << 20

// Handler serves the lab's JSON API.
type Handler struct {
	advisor *advisor.Advisor
	prices  pricing.PriceTable
	archive archive.Store
	ledger  ledger.Ledger
	log     *log.Logger
	debug   bool
}

// New wires a handler. store and l may be nil.
func New(adv *advisor.Advisor, store archive.Store, l ledger.Ledger, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		advisor: adv,
		prices:  pricing.Default,
		archive: store,
		ledger:  l,
		log:     logger,
	}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("POST /simulate", h.HandleSimulate)
	mux.HandleFunc("POST /suggestions", h.HandleSuggestions)
	mux.HandleFunc("POST /generate-topology", h.HandleGenerateTopology)
	mux.HandleFunc("POST /generate-proposal", h.HandleGenerateProposal)
	mux.HandleFunc("GET /proposals", h.HandleListProposals)
	mux.HandleFunc("GET /proposals/{id}", h.HandleGetProposal)
	if h.debug {
		mux.HandleFunc("GET /debug/generations", h.HandleGenerations)
	}
}

// WithDebugRoutes mounts /debug/generations on Register. Ledger entries carry
// raw provider errors, so production leaves it off.
func (h *Handler) WithDebugRoutes(on bool) *Handler {
	h.debug = on
	return h
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "operational",
		"service": "Virtual Infrastructure Lab",
	})
}

// decode reads a JSON body into v; any failure is a client error.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &topology.ValidationError{Field: "body", Reason: "request body is empty"}
		}
		return &topology.ValidationError{Field: "body", Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return nil
}

type errorBody struct {
	Detail string `json:"detail"`
}

// writeError maps err to a status code and a short detail string.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		h.log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorBody{Detail: detail})
}

func classify(err error) (int, string) {
	var ve *topology.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}
	if errors.Is(err, llmclient.ErrMissingAPIKey) {
		return http.StatusServiceUnavailable, "generation service is not configured"
	}
	var ge *advisor.GenerationError
	if errors.As(err, &ge) {
		if llmclient.IsTransport(err) {
			return http.StatusServiceUnavailable, "generation service unavailable"
		}
		return http.StatusInternalServerError, ge.Site + " generation failed"
	}
	return http.StatusInternalServerError, "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonutil.Write(w, v)
}
