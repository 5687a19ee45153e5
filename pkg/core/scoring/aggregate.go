package scoring

import "munger_agent/pkg/models"

// Fixed analysis weights. Moat dominates because durable competitive
// advantage is the anchor of the whole method; valuation gets the least
// weight since a wonderful business at a fair price beats the reverse.
const (
	weightMoat           = 0.35
	weightManagement     = 0.25
	weightPredictability = 0.25
	weightValuation      = 0.15
)

// Classification thresholds on the weighted total, boundary inclusive.
const (
	bullishThreshold = 7.5
	bearishThreshold = 4.5
)

// Aggregate combines the four analyzer scores into a single weighted score
// and classifies it into a discrete signal.
func Aggregate(ticker string, moat, management, predictability models.AnalysisScore, valuation models.ValuationResult) models.AggregatedAnalysis {
	total := moat.Score*weightMoat +
		management.Score*weightManagement +
		predictability.Score*weightPredictability +
		valuation.Score*weightValuation

	var signal models.Signal
	switch {
	case total >= bullishThreshold:
		signal = models.SignalBullish
	case total <= bearishThreshold:
		signal = models.SignalBearish
	default:
		signal = models.SignalNeutral
	}

	return models.AggregatedAnalysis{
		Ticker:         ticker,
		Signal:         signal,
		Score:          total,
		MaxScore:       10,
		Moat:           moat,
		Management:     management,
		Predictability: predictability,
		Valuation:      valuation,
	}
}
