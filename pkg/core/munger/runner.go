// Package munger wires data access, scoring, aggregation, and narrative into
// the two top-level operations consumed by the chat layer. Nothing in this
// package raises to its caller: every failure path degrades into a typed
// neutral or {error} result.
package munger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"munger_agent/pkg/core/llm"
	"munger_agent/pkg/core/memo"
	"munger_agent/pkg/core/narrative"
	"munger_agent/pkg/core/scoring"
	"munger_agent/pkg/core/utils"
	"munger_agent/pkg/models"
)

// lineItemFields is the fixed set of statement fields the scoring engine
// consumes.
var lineItemFields = []string{
	"revenue",
	"net_income",
	"operating_income",
	"return_on_invested_capital",
	"gross_margin",
	"operating_margin",
	"free_cash_flow",
	"capital_expenditure",
	"cash_and_equivalents",
	"total_debt",
	"shareholders_equity",
	"outstanding_shares",
	"research_and_development",
	"goodwill_and_intangible_assets",
}

// Fetch sizing for one analysis run.
const (
	metricsLimit       = 10
	lineItemsLimit     = 10
	insiderTradesLimit = 100
	newsLimit          = 50
)

// DataSource is the read contract the runner needs from the data access
// layer. findata.Client implements it; tests supply mocks.
type DataSource interface {
	GetFinancialMetrics(ctx context.Context, ticker, endDate, period string, limit int) ([]models.FinancialMetrics, error)
	SearchLineItems(ctx context.Context, ticker string, fields []string, endDate, period string, limit int) ([]models.LineItem, error)
	GetInsiderTrades(ctx context.Context, ticker, endDate, startDate string, limit int) ([]models.InsiderTrade, error)
	GetCompanyNews(ctx context.Context, ticker, endDate, startDate string, limit int) ([]models.NewsItem, error)
	GetCompanyFacts(ctx context.Context, ticker string) (*models.CompanyFacts, error)
}

// MungerSignal is the never-throws result of RunMungerAnalysis.
type MungerSignal struct {
	RunID      string                     `json:"run_id"`
	Ticker     string                     `json:"ticker"`
	Signal     models.Signal              `json:"signal"`
	Confidence float64                    `json:"confidence"`
	Reasoning  string                     `json:"reasoning"`
	Details    *models.AggregatedAnalysis `json:"details,omitempty"`
}

// MemoResult is a tagged union: exactly one of Memo or Error is set.
type MemoResult struct {
	RunID string                 `json:"run_id"`
	Memo  *models.InvestmentMemo `json:"memo,omitempty"`
	Error string                 `json:"error,omitempty"`
}

// Runner executes top-level analyses against an injected data source and
// per-role LLM providers.
type Runner struct {
	source            DataSource
	narrativeProvider llm.Provider
	memoProvider      llm.Provider
}

func NewRunner(source DataSource, narrativeProvider, memoProvider llm.Provider) *Runner {
	return &Runner{
		source:            source,
		narrativeProvider: narrativeProvider,
		memoProvider:      memoProvider,
	}
}

// RunMungerAnalysis produces the fundamental-analysis signal for a ticker as
// of endDate. It never returns an error: any failure becomes a neutral,
// zero-confidence result whose reasoning carries the underlying error text.
func (r *Runner) RunMungerAnalysis(ctx context.Context, ticker, endDate string) MungerSignal {
	runID := uuid.New().String()
	fmt.Printf("[MUNGER] %s: analyzing %s as of %s\n", runID, ticker, endDate)

	analysis, err := r.analyze(ctx, ticker, endDate)
	if err != nil {
		fmt.Printf("[MUNGER] %s: analysis failed: %v\n", runID, err)
		return MungerSignal{
			RunID:      runID,
			Ticker:     ticker,
			Signal:     models.SignalNeutral,
			Confidence: 0,
			Reasoning:  fmt.Sprintf("Error analyzing %s: %v", ticker, err),
		}
	}

	output := narrative.NewGenerator(r.narrativeProvider).GenerateSignal(ctx, *analysis)

	return MungerSignal{
		RunID:      runID,
		Ticker:     ticker,
		Signal:     output.Signal,
		Confidence: output.Confidence,
		Reasoning:  output.Reasoning,
		Details:    analysis,
	}
}

// RunInvestmentMemo produces the multi-section memo, or an {error} result.
func (r *Runner) RunInvestmentMemo(ctx context.Context, ticker, endDate string, includeSources bool, extraDocuments []string) MemoResult {
	runID := uuid.New().String()
	fmt.Printf("[MEMO] %s: generating memo for %s as of %s\n", runID, ticker, endDate)

	analysis, err := r.analyze(ctx, ticker, endDate)
	if err != nil {
		return MemoResult{RunID: runID, Error: fmt.Sprintf("Error analyzing %s: %v", ticker, err)}
	}

	news, err := r.source.GetCompanyNews(ctx, ticker, endDate, "", newsLimit)
	if err != nil {
		return MemoResult{RunID: runID, Error: fmt.Sprintf("Error fetching news for %s: %v", ticker, err)}
	}
	for i := range news {
		news[i].Summary = utils.StripHTML(news[i].Summary)
	}

	// Company facts are best-effort: the memo falls back to the ticker.
	companyName := ticker
	if facts, err := r.source.GetCompanyFacts(ctx, ticker); err == nil && facts.Name != "" {
		companyName = facts.Name
	} else if err != nil {
		fmt.Printf("[MEMO] %s: company facts unavailable, using ticker: %v\n", runID, err)
	}

	doc, err := memo.NewGenerator(r.memoProvider).Generate(ctx, memo.Input{
		CompanyName:    companyName,
		Ticker:         ticker,
		Analysis:       *analysis,
		News:           news,
		IncludeSources: includeSources,
		ExtraDocuments: extraDocuments,
	})
	if err != nil {
		return MemoResult{RunID: runID, Error: fmt.Sprintf("Error generating memo for %s: %v", ticker, err)}
	}

	return MemoResult{RunID: runID, Memo: doc}
}

// analyze runs the deterministic half of the pipeline: fetch, score,
// aggregate. Errors propagate to the caller, which owns the fallback shape.
func (r *Runner) analyze(ctx context.Context, ticker, endDate string) (*models.AggregatedAnalysis, error) {
	metrics, err := r.source.GetFinancialMetrics(ctx, ticker, endDate, models.PeriodTTM, metricsLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching financial metrics: %w", err)
	}

	items, err := r.source.SearchLineItems(ctx, ticker, lineItemFields, endDate, models.PeriodAnnual, lineItemsLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching line items: %w", err)
	}

	trades, err := r.source.GetInsiderTrades(ctx, ticker, endDate, "", insiderTradesLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching insider trades: %w", err)
	}

	// Market cap rides on the most recent metrics record.
	var marketCap *float64
	if len(metrics) > 0 {
		marketCap = metrics[0].MarketCap
	}

	moat := scoring.AnalyzeMoatStrength(metrics, items)
	management := scoring.AnalyzeManagementQuality(items, trades)
	predictability := scoring.AnalyzePredictability(items)
	valuation := scoring.AnalyzeValuation(items, marketCap)

	analysis := scoring.Aggregate(ticker, moat, management, predictability, valuation)
	fmt.Printf("[MUNGER] %s scored %.2f/10 -> %s\n", ticker, analysis.Score, analysis.Signal)
	return &analysis, nil
}
