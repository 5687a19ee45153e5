package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"munger_agent/pkg/core/munger"
	"munger_agent/pkg/models"
)

type stubSource struct{}

func (stubSource) GetFinancialMetrics(ctx context.Context, ticker, endDate, period string, limit int) ([]models.FinancialMetrics, error) {
	return nil, nil
}

func (stubSource) SearchLineItems(ctx context.Context, ticker string, fields []string, endDate, period string, limit int) ([]models.LineItem, error) {
	return nil, nil
}

func (stubSource) GetInsiderTrades(ctx context.Context, ticker, endDate, startDate string, limit int) ([]models.InsiderTrade, error) {
	return nil, nil
}

func (stubSource) GetCompanyNews(ctx context.Context, ticker, endDate, startDate string, limit int) ([]models.NewsItem, error) {
	return nil, nil
}

func (stubSource) GetCompanyFacts(ctx context.Context, ticker string) (*models.CompanyFacts, error) {
	return &models.CompanyFacts{Ticker: ticker}, nil
}

type stubProvider struct{}

func (stubProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	return `{"signal": "neutral", "confidence": 40, "reasoning": "Thin data."}`, nil
}

func (stubProvider) AdaptInstructions(raw string) string { return raw }

func newTestHandler() *Handler {
	return NewHandler(munger.NewRunner(stubSource{}, stubProvider{}, stubProvider{}))
}

func TestHandleSignalValidation(t *testing.T) {
	h := newTestHandler()

	// Wrong method
	rec := httptest.NewRecorder()
	h.HandleSignal(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/signal", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET, got %d", rec.Code)
	}

	// Malformed body
	rec = httptest.NewRecorder()
	h.HandleSignal(rec, httptest.NewRequest(http.MethodPost, "/api/analysis/signal", strings.NewReader("{not json")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", rec.Code)
	}

	// Missing ticker
	rec = httptest.NewRecorder()
	h.HandleSignal(rec, httptest.NewRequest(http.MethodPost, "/api/analysis/signal", strings.NewReader(`{"end_date": "2024-01-31"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing ticker, got %d", rec.Code)
	}
}

func TestHandleSignalOptionsPreflight(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.HandleSignal(rec, httptest.NewRequest(http.MethodOptions, "/api/analysis/signal", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS headers on preflight response")
	}
}

func TestHandleSignalRunsAnalysis(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.HandleSignal(rec, httptest.NewRequest(http.MethodPost, "/api/analysis/signal",
		strings.NewReader(`{"ticker": "ACME", "end_date": "2024-01-31"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result munger.MungerSignal
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Ticker != "ACME" {
		t.Errorf("Expected ticker ACME, got %q", result.Ticker)
	}
	if result.Signal == "" {
		t.Error("Expected a signal in the response")
	}
}

func TestHandleMemoValidation(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.HandleMemo(rec, httptest.NewRequest(http.MethodPost, "/api/analysis/memo", strings.NewReader(`{"ticker": "ACME"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing end_date, got %d", rec.Code)
	}
}
