package scoring

import (
	"fmt"
	"math"

	"munger_agent/pkg/models"
)

// moatMaxRaw is the maximum attainable raw points of the moat sub-checks
// (3 ROIC + 2 margin + 2 capital intensity + 1 R&D + 1 intangibles).
const moatMaxRaw = 9.0

// AnalyzeMoatStrength scores the durability of a company's competitive
// advantage from return consistency, pricing power, and capital requirements.
// Sub-checks are additive and each appends exactly one rationale line.
func AnalyzeMoatStrength(metrics []models.FinancialMetrics, items []models.LineItem) models.AnalysisScore {
	if len(metrics) == 0 || len(items) == 0 {
		return models.AnalysisScore{
			Score:   0,
			Details: []string{"Insufficient data to analyze moat strength"},
		}
	}

	sorted := sortByPeriodDesc(items)
	raw := 0.0
	var details []string

	// 1. ROIC consistency. Munger values businesses that earn high returns
	// on invested capital across the cycle, not just in peak years.
	var roicValues []float64
	highRoicCount := 0
	for _, item := range sorted {
		if item.ReturnOnInvestedCapital == nil {
			continue
		}
		roicValues = append(roicValues, *item.ReturnOnInvestedCapital)
		if *item.ReturnOnInvestedCapital > 0.15 {
			highRoicCount++
		}
	}
	if len(roicValues) > 0 {
		ratio := float64(highRoicCount) / float64(len(roicValues))
		switch {
		case ratio >= 0.8:
			raw += 3
			details = append(details, fmt.Sprintf("Excellent ROIC: >15%% in %d/%d periods", highRoicCount, len(roicValues)))
		case ratio >= 0.5:
			raw += 2
			details = append(details, fmt.Sprintf("Good ROIC: >15%% in %d/%d periods", highRoicCount, len(roicValues)))
		case ratio > 0:
			raw += 1
			details = append(details, fmt.Sprintf("Mixed ROIC: >15%% in only %d/%d periods", highRoicCount, len(roicValues)))
		default:
			details = append(details, "Poor ROIC: never exceeds 15% threshold")
		}
	} else {
		details = append(details, "No ROIC data available")
	}

	// 2. Gross margin trend as a pricing-power proxy. Pairs are compared
	// newest-over-older on the descending sort.
	var margins []float64
	for _, item := range sorted {
		if item.GrossMargin != nil {
			margins = append(margins, *item.GrossMargin)
		}
	}
	if len(margins) >= 3 {
		improving := 0
		for i := 0; i < len(margins)-1; i++ {
			if margins[i] >= margins[i+1] {
				improving++
			}
		}
		trendRatio := float64(improving) / float64(len(margins)-1)
		switch {
		case trendRatio >= 0.7:
			raw += 2
			details = append(details, "Strong pricing power: gross margins consistently improving")
		case mean(margins) > 0.3:
			raw += 1
			details = append(details, fmt.Sprintf("Good pricing power: average gross margin %.1f%%", mean(margins)*100))
		default:
			details = append(details, "Limited pricing power: inconsistent gross margins")
		}
	} else {
		details = append(details, "Insufficient gross margin data")
	}

	// 3. Capital intensity: capex relative to revenue, same-period pairs only.
	var capexRatios []float64
	for _, item := range sorted {
		if item.CapitalExpenditure == nil || item.Revenue == nil || *item.Revenue <= 0 {
			continue
		}
		capexRatios = append(capexRatios, math.Abs(*item.CapitalExpenditure) / *item.Revenue)
	}
	if len(capexRatios) >= 3 {
		avgCapex := mean(capexRatios)
		switch {
		case avgCapex < 0.05:
			raw += 2
			details = append(details, fmt.Sprintf("Low capital requirements: avg capex %.1f%% of revenue", avgCapex*100))
		case avgCapex < 0.10:
			raw += 1
			details = append(details, fmt.Sprintf("Moderate capital requirements: avg capex %.1f%% of revenue", avgCapex*100))
		default:
			details = append(details, fmt.Sprintf("High capital requirements: avg capex %.1f%% of revenue", avgCapex*100))
		}
	} else {
		details = append(details, "No capital expenditure data available")
	}

	// 4. Intangible investment: sustained R&D spend suggests an innovation moat.
	rdSum := 0.0
	hasRD := false
	for _, item := range sorted {
		if item.ResearchAndDevelopment != nil {
			hasRD = true
			rdSum += *item.ResearchAndDevelopment
		}
	}
	if hasRD && rdSum > 0 {
		raw += 1
		details = append(details, "Invests in R&D, building intellectual property")
	}

	// 5. Reported goodwill/intangibles point to acquired brands or IP.
	for _, item := range sorted {
		if item.GoodwillAndIntangibleAssets != nil {
			raw += 1
			details = append(details, "Significant goodwill/intangible assets, suggesting brand value or IP")
			break
		}
	}

	return models.AnalysisScore{
		Score:   math.Min(10, raw*10/moatMaxRaw),
		Details: details,
	}
}
