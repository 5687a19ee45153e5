// Package models defines the shared data model for the analysis pipeline.
// All upstream numeric fields are nullable (*float64): an absent value means
// "not reported", which analyzers must treat as insufficient data, never as zero.
package models

// Reporting period kinds accepted by the data API.
const (
	PeriodAnnual = "annual"
	PeriodTTM    = "ttm"
)

// FinancialMetrics is one period of ratio/metric data from the data API.
// The most recent record carries the market capitalization.
type FinancialMetrics struct {
	Ticker                  string   `json:"ticker"`
	ReportPeriod            string   `json:"report_period"` // ISO date, e.g. "2024-09-28"
	Period                  string   `json:"period"`
	Currency                string   `json:"currency"`
	MarketCap               *float64 `json:"market_cap"`
	PriceToEarningsRatio    *float64 `json:"price_to_earnings_ratio"`
	PriceToBookRatio        *float64 `json:"price_to_book_ratio"`
	ReturnOnEquity          *float64 `json:"return_on_equity"`
	ReturnOnInvestedCapital *float64 `json:"return_on_invested_capital"`
	DebtToEquity            *float64 `json:"debt_to_equity"`
}

// LineItem is one reporting period of requested financial statement fields.
// Records for a ticker form a set with no ordering guarantee; every consumer
// doing trend or recency logic must sort by ReportPeriod itself.
type LineItem struct {
	Ticker                      string   `json:"ticker"`
	ReportPeriod                string   `json:"report_period"`
	Period                      string   `json:"period"`
	Currency                    string   `json:"currency"`
	Revenue                     *float64 `json:"revenue"`
	NetIncome                   *float64 `json:"net_income"`
	OperatingIncome             *float64 `json:"operating_income"`
	ReturnOnInvestedCapital     *float64 `json:"return_on_invested_capital"`
	GrossMargin                 *float64 `json:"gross_margin"`
	OperatingMargin             *float64 `json:"operating_margin"`
	FreeCashFlow                *float64 `json:"free_cash_flow"`
	CapitalExpenditure          *float64 `json:"capital_expenditure"`
	CashAndEquivalents          *float64 `json:"cash_and_equivalents"`
	TotalDebt                   *float64 `json:"total_debt"`
	ShareholdersEquity          *float64 `json:"shareholders_equity"`
	OutstandingShares           *float64 `json:"outstanding_shares"`
	ResearchAndDevelopment      *float64 `json:"research_and_development"`
	GoodwillAndIntangibleAssets *float64 `json:"goodwill_and_intangible_assets"`
}

// MarketSnapshot captures the market value of a ticker as of an end date.
type MarketSnapshot struct {
	Ticker    string   `json:"ticker"`
	EndDate   string   `json:"end_date"`
	MarketCap *float64 `json:"market_cap"`
}

// InsiderTrade is a single insider transaction filing.
type InsiderTrade struct {
	Ticker            string   `json:"ticker"`
	Name              string   `json:"name"`
	Title             string   `json:"title"`
	TransactionType   string   `json:"transaction_type"`
	TransactionPrice  *float64 `json:"transaction_price_per_share"`
	TransactionShares *float64 `json:"transaction_shares"`
	FilingDate        string   `json:"filing_date"`
}

// NewsItem is one company news article. Summaries may contain HTML fragments
// and must be flattened to text before being embedded in prompts.
type NewsItem struct {
	Ticker  string `json:"ticker"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Source  string `json:"source"`
	Date    string `json:"date"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// CompanyFacts holds descriptive company information.
type CompanyFacts struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}
