package scoring

import (
	"fmt"
	"math"

	"munger_agent/pkg/models"
)

// Fixed owner-earnings multiples for the intrinsic value bands. These are not
// configurable: the bands are defined by the analysis method itself.
const (
	conservativeMultiple = 10.0
	reasonableMultiple   = 15.0
	optimisticMultiple   = 20.0
)

// AnalyzeValuation runs a Munger-style owner-earnings valuation: normalize
// free cash flow over recent periods, compare its yield to the market cap,
// and bracket intrinsic value with fixed multiples.
//
// The FCF series is explicitly sorted most recent first before normalization;
// the upstream ordering contract is not relied on.
func AnalyzeValuation(items []models.LineItem, marketCap *float64) models.ValuationResult {
	if marketCap == nil || *marketCap <= 0 {
		return models.ValuationResult{
			AnalysisScore: models.AnalysisScore{
				Score:   0,
				Details: []string{"Insufficient data to perform valuation"},
			},
		}
	}

	sorted := sortByPeriodDesc(items)
	var fcfValues []float64
	for _, item := range sorted {
		if item.FreeCashFlow != nil {
			fcfValues = append(fcfValues, *item.FreeCashFlow)
		}
	}
	if len(fcfValues) < 3 {
		return models.ValuationResult{
			AnalysisScore: models.AnalysisScore{
				Score:   0,
				Details: []string{"Insufficient free cash flow data for valuation"},
			},
		}
	}

	// Normalize owner earnings as the mean of up to 5 most recent FCF values,
	// smoothing out single-year distortions.
	window := fcfValues
	if len(window) > 5 {
		window = window[:5]
	}
	normalizedFCF := mean(window)
	if normalizedFCF <= 0 {
		return models.ValuationResult{
			AnalysisScore: models.AnalysisScore{
				Score:   0,
				Details: []string{fmt.Sprintf("Negative or zero normalized FCF (%.1f), cannot value", normalizedFCF)},
			},
			NormalizedFCF: &normalizedFCF,
		}
	}

	raw := 0.0
	var details []string

	// 1. FCF yield against the current market cap.
	fcfYield := normalizedFCF / *marketCap
	switch {
	case fcfYield > 0.08:
		raw += 4
		details = append(details, fmt.Sprintf("Excellent value: %.1f%% FCF yield", fcfYield*100))
	case fcfYield > 0.05:
		raw += 3
		details = append(details, fmt.Sprintf("Good value: %.1f%% FCF yield", fcfYield*100))
	case fcfYield > 0.03:
		raw += 1
		details = append(details, fmt.Sprintf("Fair value: %.1f%% FCF yield", fcfYield*100))
	default:
		details = append(details, fmt.Sprintf("Expensive: only %.1f%% FCF yield", fcfYield*100))
	}

	valueRange := &models.IntrinsicValueRange{
		Conservative: normalizedFCF * conservativeMultiple,
		Reasonable:   normalizedFCF * reasonableMultiple,
		Optimistic:   normalizedFCF * optimisticMultiple,
	}

	// 2. Margin of safety relative to the reasonable estimate.
	marginOfSafety := (valueRange.Reasonable - *marketCap) / *marketCap
	switch {
	case marginOfSafety > 0.3:
		raw += 3
		details = append(details, fmt.Sprintf("Large margin of safety: %.1f%% upside to reasonable value", marginOfSafety*100))
	case marginOfSafety > 0.1:
		raw += 2
		details = append(details, fmt.Sprintf("Moderate margin of safety: %.1f%% upside to reasonable value", marginOfSafety*100))
	case marginOfSafety > -0.1:
		raw += 1
		details = append(details, fmt.Sprintf("Fair price: within 10%% of reasonable value (%.1f%%)", marginOfSafety*100))
	default:
		details = append(details, fmt.Sprintf("Expensive: %.1f%% premium to reasonable value", marginOfSafety*100))
	}

	// 3. FCF trajectory: recent average against the older base.
	if len(fcfValues) >= 3 {
		recentAvg := mean(fcfValues[:3])
		var olderAvg float64
		if len(fcfValues) >= 6 {
			olderAvg = mean(fcfValues[len(fcfValues)-3:])
		} else {
			olderAvg = fcfValues[len(fcfValues)-1]
		}
		switch {
		case recentAvg > olderAvg*1.2:
			raw += 3
			details = append(details, "Growing FCF trend adds to intrinsic value")
		case recentAvg > olderAvg:
			raw += 2
			details = append(details, "Stable to growing FCF supports valuation")
		default:
			details = append(details, "Declining FCF trend is concerning")
		}
	}

	// raw max is already 10, identity scaling
	return models.ValuationResult{
		AnalysisScore: models.AnalysisScore{
			Score:   math.Min(10, raw),
			Details: details,
		},
		IntrinsicValueRange: valueRange,
		FCFYield:            &fcfYield,
		NormalizedFCF:       &normalizedFCF,
	}
}
