package scoring

import (
	"fmt"
	"math"

	"munger_agent/pkg/models"
)

// AnalyzePredictability scores how forecastable the business is: steady
// revenue growth, persistent operating profits, stable margins, and reliable
// free cash flow. It needs at least 5 periods overall, and each sub-check
// needs 5 qualifying periods for its specific field.
func AnalyzePredictability(items []models.LineItem) models.AnalysisScore {
	if len(items) < 5 {
		return models.AnalysisScore{
			Score:   0,
			Details: []string{"Insufficient data to analyze predictability (need 5+ years)"},
		}
	}

	sorted := sortByPeriodDesc(items)
	raw := 0.0
	var details []string

	// 1. Revenue growth consistency. Rates are recent-over-older on the
	// descending sort: rev[i]/rev[i+1] - 1.
	var revenues []float64
	for _, item := range sorted {
		if item.Revenue != nil {
			revenues = append(revenues, *item.Revenue)
		}
	}
	if len(revenues) >= 5 {
		var growthRates []float64
		for i := 0; i < len(revenues)-1; i++ {
			if revenues[i+1] != 0 {
				growthRates = append(growthRates, revenues[i]/revenues[i+1]-1)
			}
		}
		if len(growthRates) >= 4 {
			avgGrowth := mean(growthRates)
			volatility := meanAbsDeviation(growthRates)
			switch {
			case avgGrowth > 0.05 && volatility < 0.1:
				raw += 3
				details = append(details, fmt.Sprintf("Highly predictable revenue: %.1f%% avg growth with low volatility", avgGrowth*100))
			case avgGrowth > 0 && volatility < 0.2:
				raw += 2
				details = append(details, fmt.Sprintf("Moderately predictable revenue: %.1f%% avg growth with some volatility", avgGrowth*100))
			case avgGrowth > 0:
				raw += 1
				details = append(details, fmt.Sprintf("Growing but less predictable revenue: %.1f%% avg growth with high volatility", avgGrowth*100))
			default:
				details = append(details, fmt.Sprintf("Declining or highly unpredictable revenue: %.1f%% avg growth", avgGrowth*100))
			}
		} else {
			details = append(details, "Insufficient revenue growth history")
		}
	} else {
		details = append(details, "Insufficient revenue history for predictability analysis")
	}

	// 2. Operating income positivity.
	var opIncomes []float64
	for _, item := range sorted {
		if item.OperatingIncome != nil {
			opIncomes = append(opIncomes, *item.OperatingIncome)
		}
	}
	if len(opIncomes) >= 5 {
		positive := 0
		for _, v := range opIncomes {
			if v > 0 {
				positive++
			}
		}
		ratio := float64(positive) / float64(len(opIncomes))
		switch {
		case positive == len(opIncomes):
			raw += 3
			details = append(details, "Highly predictable operations: positive operating income in all periods")
		case ratio >= 0.8:
			raw += 2
			details = append(details, fmt.Sprintf("Predictable operations: positive operating income in %d/%d periods", positive, len(opIncomes)))
		case ratio >= 0.6:
			raw += 1
			details = append(details, fmt.Sprintf("Somewhat predictable operations: positive operating income in %d/%d periods", positive, len(opIncomes)))
		default:
			details = append(details, fmt.Sprintf("Unpredictable operations: positive operating income in only %d/%d periods", positive, len(opIncomes)))
		}
	} else {
		details = append(details, "Insufficient operating income history")
	}

	// 3. Operating margin stability.
	var opMargins []float64
	for _, item := range sorted {
		if item.OperatingMargin != nil {
			opMargins = append(opMargins, *item.OperatingMargin)
		}
	}
	if len(opMargins) >= 5 {
		marginVolatility := meanAbsDeviation(opMargins)
		switch {
		case marginVolatility < 0.03:
			raw += 2
			details = append(details, fmt.Sprintf("Highly stable operating margins: avg %.1f%% with minimal volatility", mean(opMargins)*100))
		case marginVolatility < 0.07:
			raw += 1
			details = append(details, fmt.Sprintf("Moderately stable operating margins: avg %.1f%%", mean(opMargins)*100))
		default:
			details = append(details, fmt.Sprintf("Volatile operating margins: avg %.1f%%", mean(opMargins)*100))
		}
	} else {
		details = append(details, "Insufficient operating margin history")
	}

	// 4. Free cash flow reliability.
	var fcfValues []float64
	for _, item := range sorted {
		if item.FreeCashFlow != nil {
			fcfValues = append(fcfValues, *item.FreeCashFlow)
		}
	}
	if len(fcfValues) >= 5 {
		positive := 0
		for _, v := range fcfValues {
			if v > 0 {
				positive++
			}
		}
		ratio := float64(positive) / float64(len(fcfValues))
		switch {
		case positive == len(fcfValues):
			raw += 2
			details = append(details, "Highly predictable cash generation: positive FCF in all periods")
		case ratio >= 0.8:
			raw += 1
			details = append(details, fmt.Sprintf("Predictable cash generation: positive FCF in %d/%d periods", positive, len(fcfValues)))
		default:
			details = append(details, fmt.Sprintf("Unpredictable cash generation: positive FCF in only %d/%d periods", positive, len(fcfValues)))
		}
	} else {
		details = append(details, "Insufficient free cash flow history")
	}

	// raw max is already 10, identity scaling
	return models.AnalysisScore{
		Score:   math.Min(10, raw),
		Details: details,
	}
}
