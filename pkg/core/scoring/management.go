package scoring

import (
	"fmt"
	"math"
	"strings"

	"munger_agent/pkg/models"
)

// managementMaxRaw is the maximum attainable raw points of the management
// sub-checks (3 FCF/NI + 3 debt + 2 cash + 2 insider + 2 share count).
// Penalties can drag the raw score below zero before clamping.
const managementMaxRaw = 12.0

// AnalyzeManagementQuality scores capital allocation and shareholder
// alignment: cash conversion, balance sheet discipline, insider behavior,
// and share count stewardship.
//
// The debt and cash checks intentionally consider only the single most recent
// qualifying period. That recency bias is a documented asymmetry against the
// other checks, which average across history.
func AnalyzeManagementQuality(items []models.LineItem, trades []models.InsiderTrade) models.AnalysisScore {
	if len(items) == 0 {
		return models.AnalysisScore{
			Score:   0,
			Details: []string{"Insufficient data to analyze management quality"},
		}
	}

	sorted := sortByPeriodDesc(items)
	raw := 0.0
	var details []string

	// 1. Cash conversion: FCF should track or exceed reported net income.
	var conversionRatios []float64
	for _, item := range sorted {
		if item.FreeCashFlow == nil || item.NetIncome == nil || *item.NetIncome <= 0 {
			continue
		}
		conversionRatios = append(conversionRatios, *item.FreeCashFlow / *item.NetIncome)
	}
	if len(conversionRatios) > 0 {
		avgConversion := mean(conversionRatios)
		switch {
		case avgConversion > 1.1:
			raw += 3
			details = append(details, fmt.Sprintf("Excellent cash conversion: FCF/NI ratio of %.2f", avgConversion))
		case avgConversion > 0.9:
			raw += 2
			details = append(details, fmt.Sprintf("Good cash conversion: FCF/NI ratio of %.2f", avgConversion))
		case avgConversion > 0.7:
			raw += 1
			details = append(details, fmt.Sprintf("Moderate cash conversion: FCF/NI ratio of %.2f", avgConversion))
		default:
			details = append(details, fmt.Sprintf("Poor cash conversion: FCF/NI ratio of only %.2f", avgConversion))
		}
	} else {
		details = append(details, "Could not analyze FCF to net income conversion")
	}

	// 2. Debt management, most recent qualifying period only.
	var debtPeriods []models.LineItem
	for _, item := range sorted {
		if item.TotalDebt != nil && item.ShareholdersEquity != nil {
			debtPeriods = append(debtPeriods, item)
		}
	}
	if len(debtPeriods) > 0 {
		recent := debtPeriods[0]
		if *recent.ShareholdersEquity > 0 {
			de := *recent.TotalDebt / *recent.ShareholdersEquity
			switch {
			case de < 0.3:
				raw += 3
				details = append(details, fmt.Sprintf("Conservative debt management: D/E ratio of %.2f", de))
			case de < 0.7:
				raw += 2
				details = append(details, fmt.Sprintf("Prudent debt management: D/E ratio of %.2f", de))
			case de < 1.5:
				raw += 1
				details = append(details, fmt.Sprintf("Moderate debt level: D/E ratio of %.2f", de))
			default:
				details = append(details, fmt.Sprintf("High debt level: D/E ratio of %.2f", de))
			}
		} else {
			details = append(details, "Negative or zero shareholders' equity, debt ratio not meaningful")
		}
	} else {
		details = append(details, "Insufficient data to analyze debt levels")
	}

	// 3. Cash efficiency, most recent qualifying period only. A cash balance
	// of 10-25% of revenue is the goldilocks zone; hoarding or running dry
	// both score zero.
	var cashPeriods []models.LineItem
	for _, item := range sorted {
		if item.CashAndEquivalents != nil && item.Revenue != nil && *item.Revenue > 0 {
			cashPeriods = append(cashPeriods, item)
		}
	}
	if len(cashPeriods) > 0 {
		recent := cashPeriods[0]
		cashRatio := *recent.CashAndEquivalents / *recent.Revenue
		switch {
		case cashRatio >= 0.1 && cashRatio <= 0.25:
			raw += 2
			details = append(details, fmt.Sprintf("Prudent cash management: cash/revenue ratio of %.2f", cashRatio))
		case (cashRatio >= 0.05 && cashRatio < 0.1) || (cashRatio > 0.25 && cashRatio <= 0.4):
			raw += 1
			details = append(details, fmt.Sprintf("Acceptable cash position: cash/revenue ratio of %.2f", cashRatio))
		case cashRatio > 0.4:
			details = append(details, fmt.Sprintf("Excess cash reserves: cash/revenue ratio of %.2f", cashRatio))
		default:
			details = append(details, fmt.Sprintf("Low cash reserves: cash/revenue ratio of %.2f", cashRatio))
		}
	} else {
		details = append(details, "Insufficient data to analyze cash position")
	}

	// 4. Insider activity: do the people running the business buy the stock?
	if len(trades) > 0 {
		buys, sells := 0, 0
		for _, trade := range trades {
			t := strings.ToLower(trade.TransactionType)
			switch {
			case strings.Contains(t, "buy") || strings.Contains(t, "purchase"):
				buys++
			case strings.Contains(t, "sell") || strings.Contains(t, "sale"):
				sells++
			}
		}
		total := buys + sells
		if total > 0 {
			buyRatio := float64(buys) / float64(total)
			switch {
			case buyRatio > 0.7:
				raw += 2
				details = append(details, fmt.Sprintf("Strong insider buying: %d/%d transactions are purchases", buys, total))
			case buyRatio > 0.4:
				raw += 1
				details = append(details, fmt.Sprintf("Balanced insider trading: %d/%d transactions are purchases", buys, total))
			case buyRatio < 0.1 && sells > 5:
				raw -= 1
				details = append(details, fmt.Sprintf("Concerning insider selling: %d sells vs %d buys", sells, buys))
			default:
				details = append(details, fmt.Sprintf("Mixed insider activity: %d buys, %d sells", buys, sells))
			}
		} else {
			details = append(details, "No classifiable insider transactions")
		}
	} else {
		details = append(details, "No insider trading data available")
	}

	// 5. Share count trend: buybacks good, dilution penalized.
	var shareCounts []float64
	for _, item := range sorted {
		if item.OutstandingShares != nil {
			shareCounts = append(shareCounts, *item.OutstandingShares)
		}
	}
	if len(shareCounts) >= 3 {
		// descending sort: index 0 is the newest period, last is the oldest
		newest := shareCounts[0]
		oldest := shareCounts[len(shareCounts)-1]
		switch {
		case newest < oldest*0.95:
			raw += 2
			details = append(details, "Shareholder-friendly: meaningful share count reduction via buybacks")
		case newest < oldest*1.05:
			raw += 1
			details = append(details, "Stable share count: no significant dilution")
		case newest > oldest*1.2:
			raw -= 1
			details = append(details, "Concerning dilution: share count increased significantly")
		default:
			details = append(details, "Moderate share count increase over time")
		}
	} else {
		details = append(details, "Insufficient share count data")
	}

	return models.AnalysisScore{
		Score:   math.Max(0, math.Min(10, raw*10/managementMaxRaw)),
		Details: details,
	}
}
