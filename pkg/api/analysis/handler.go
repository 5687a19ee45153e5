// Package analysis provides the HTTP handlers exposing the signal and memo
// operations to the chat/UI layer.
package analysis

import (
	"encoding/json"
	"net/http"

	"munger_agent/pkg/core/munger"
)

// Handler serves the analysis endpoints.
type Handler struct {
	runner *munger.Runner
}

func NewHandler(runner *munger.Runner) *Handler {
	return &Handler{runner: runner}
}

// SignalRequest is the body of POST /api/analysis/signal.
type SignalRequest struct {
	Ticker  string `json:"ticker"`
	EndDate string `json:"end_date"`
}

// MemoRequest is the body of POST /api/analysis/memo.
type MemoRequest struct {
	Ticker         string   `json:"ticker"`
	EndDate        string   `json:"end_date"`
	IncludeSources *bool    `json:"include_sources,omitempty"`
	ExtraDocuments []string `json:"extra_documents,omitempty"`
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleSignal runs the full fundamental analysis and returns the signal.
// The runner never raises; this handler only fails on malformed requests.
func (h *Handler) HandleSignal(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Ticker == "" || req.EndDate == "" {
		http.Error(w, "ticker and end_date are required", http.StatusBadRequest)
		return
	}

	result := h.runner.RunMungerAnalysis(r.Context(), req.Ticker, req.EndDate)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleMemo generates the investment memo. Failures surface as the
// {error} variant of the result, never as a transport-level error.
func (h *Handler) HandleMemo(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Ticker == "" || req.EndDate == "" {
		http.Error(w, "ticker and end_date are required", http.StatusBadRequest)
		return
	}

	// Sources are included unless the caller opts out.
	includeSources := true
	if req.IncludeSources != nil {
		includeSources = *req.IncludeSources
	}

	result := h.runner.RunInvestmentMemo(r.Context(), req.Ticker, req.EndDate, includeSources, req.ExtraDocuments)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
