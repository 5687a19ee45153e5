package models

import "time"

// Signal is the discrete output of the aggregated analysis.
type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
	SignalNeutral Signal = "neutral"
)

// AnalysisScore is the common output shape of every analyzer: a score in
// [0, 10] and rationale lines in evaluation order. Details is append-only and
// its ordering is a contract: it becomes the audit trail and the LLM prompt
// payload.
type AnalysisScore struct {
	Score   float64  `json:"score"`
	Details []string `json:"details"`
}

// IntrinsicValueRange holds the owner-earnings value bands.
type IntrinsicValueRange struct {
	Conservative float64 `json:"conservative"`
	Reasonable   float64 `json:"reasonable"`
	Optimistic   float64 `json:"optimistic"`
}

// ValuationResult extends AnalysisScore with intrinsic-value estimates.
// The range fields are nil when valuation could not be computed.
type ValuationResult struct {
	AnalysisScore
	IntrinsicValueRange *IntrinsicValueRange `json:"intrinsic_value_range,omitempty"`
	FCFYield            *float64             `json:"fcf_yield,omitempty"`
	NormalizedFCF       *float64             `json:"normalized_fcf,omitempty"`
}

// AggregatedAnalysis is the unit passed into the narrative step.
type AggregatedAnalysis struct {
	Ticker         string          `json:"ticker"`
	Signal         Signal          `json:"signal"`
	Score          float64         `json:"score"`
	MaxScore       float64         `json:"max_score"`
	Moat           AnalysisScore   `json:"moat"`
	Management     AnalysisScore   `json:"management"`
	Predictability AnalysisScore   `json:"predictability"`
	Valuation      ValuationResult `json:"valuation"`
}

// MemoSection is one titled block of the investment memo.
type MemoSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// MemoSectionTitles is the fixed section order of an investment memo.
// This ordering is a contract for any renderer.
var MemoSectionTitles = []string{
	"Business Description",
	"Competitive Landscape",
	"Financial Analysis",
	"Growth Prospects",
	"Opportunities & Risks",
}

// InvestmentMemo is the assembled multi-section memo document.
type InvestmentMemo struct {
	CompanyName    string        `json:"company_name"`
	Ticker         string        `json:"ticker"`
	Title          string        `json:"title"`
	GenerationDate time.Time     `json:"generation_date"`
	Summary        string        `json:"summary"`
	Content        string        `json:"content"`
	Sections       []MemoSection `json:"sections"`
}
