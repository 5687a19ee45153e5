package scoring

import (
	"math"
	"strings"
	"testing"

	"munger_agent/pkg/models"
)

func TestManagementEmptyItems(t *testing.T) {
	res := AnalyzeManagementQuality(nil, nil)
	if res.Score != 0 {
		t.Errorf("Expected score 0, got %f", res.Score)
	}
	if len(res.Details) != 1 {
		t.Errorf("Expected single rationale, got %v", res.Details)
	}
}

func TestManagementInsiderBuying(t *testing.T) {
	// 8 buys, 2 sells -> buyRatio 0.8 > 0.7 -> +2 raw.
	// No other sub-check has data, so score = 2*10/12.
	items := []models.LineItem{{ReportPeriod: "2024-12-31"}}
	var trades []models.InsiderTrade
	for i := 0; i < 8; i++ {
		trades = append(trades, models.InsiderTrade{TransactionType: "Buy", FilingDate: "2024-06-01"})
	}
	for i := 0; i < 2; i++ {
		trades = append(trades, models.InsiderTrade{TransactionType: "Sale", FilingDate: "2024-06-01"})
	}

	res := AnalyzeManagementQuality(items, trades)
	expected := 2.0 * 10 / 12
	if math.Abs(res.Score-expected) > 0.0001 {
		t.Errorf("Expected score %f, got %f (details: %v)", expected, res.Score, res.Details)
	}

	found := false
	for _, d := range res.Details {
		if strings.Contains(d, "8/10") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a rationale mentioning 8/10 purchases, got %v", res.Details)
	}
}

func TestManagementDebtUsesMostRecentPeriodOnly(t *testing.T) {
	// Recent period has D/E 0.2 (+3), the older period's D/E of 2.0 must
	// be ignored. Intentional recency bias, not an average.
	items := []models.LineItem{
		{ReportPeriod: "2022-12-31", TotalDebt: fp(2000), ShareholdersEquity: fp(1000)},
		{ReportPeriod: "2023-12-31", TotalDebt: fp(200), ShareholdersEquity: fp(1000)},
	}

	res := AnalyzeManagementQuality(items, nil)
	expected := 3.0 * 10 / 12
	if math.Abs(res.Score-expected) > 0.0001 {
		t.Errorf("Expected score %f, got %f (details: %v)", expected, res.Score, res.Details)
	}
}

func TestManagementDebtEmptyFilteredListIsSoft(t *testing.T) {
	// No period has both debt and equity: the check contributes nothing and
	// must not panic.
	items := []models.LineItem{
		{ReportPeriod: "2023-12-31", TotalDebt: fp(200)},
		{ReportPeriod: "2022-12-31", ShareholdersEquity: fp(1000)},
	}

	res := AnalyzeManagementQuality(items, nil)
	if res.Score != 0 {
		t.Errorf("Expected score 0, got %f", res.Score)
	}
}

func TestManagementShareDilutionPenalty(t *testing.T) {
	// Shares go 100 -> 130 over three periods: newest > oldest*1.2 -> -1
	// raw, clamped to score 0.
	items := []models.LineItem{
		{ReportPeriod: "2021-12-31", OutstandingShares: fp(100)},
		{ReportPeriod: "2022-12-31", OutstandingShares: fp(110)},
		{ReportPeriod: "2023-12-31", OutstandingShares: fp(130)},
	}

	res := AnalyzeManagementQuality(items, nil)
	if res.Score != 0 {
		t.Errorf("Expected clamped score 0 after dilution penalty, got %f", res.Score)
	}
	found := false
	for _, d := range res.Details {
		if strings.Contains(d, "dilution") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected dilution rationale, got %v", res.Details)
	}
}

func TestManagementBuybacks(t *testing.T) {
	// Shares shrink 100 -> 90: newest < oldest*0.95 -> +2 raw.
	items := []models.LineItem{
		{ReportPeriod: "2021-12-31", OutstandingShares: fp(100)},
		{ReportPeriod: "2022-12-31", OutstandingShares: fp(95)},
		{ReportPeriod: "2023-12-31", OutstandingShares: fp(90)},
	}

	res := AnalyzeManagementQuality(items, nil)
	expected := 2.0 * 10 / 12
	if math.Abs(res.Score-expected) > 0.0001 {
		t.Errorf("Expected score %f, got %f (details: %v)", expected, res.Score, res.Details)
	}
}

func TestManagementCashBands(t *testing.T) {
	// Cash/revenue bands: [0.10, 0.25] is the goldilocks zone (+2), the
	// shoulders [0.05, 0.10) and (0.25, 0.40] score +1, and both hoarding
	// and running dry score 0 with distinct rationale texts.
	cases := []struct {
		cash     float64
		points   float64
		fragment string
	}{
		{15, 2, "Prudent cash management"},
		{7, 1, "Acceptable cash position"},
		{30, 1, "Acceptable cash position"},
		{50, 0, "Excess cash reserves"},
		{2, 0, "Low cash reserves"},
	}

	for _, c := range cases {
		items := []models.LineItem{
			{ReportPeriod: "2023-12-31", CashAndEquivalents: fp(c.cash), Revenue: fp(100)},
		}
		res := AnalyzeManagementQuality(items, nil)

		expected := c.points * 10 / 12
		if math.Abs(res.Score-expected) > 0.0001 {
			t.Errorf("Cash ratio %.2f: expected score %f, got %f (details: %v)", c.cash/100, expected, res.Score, res.Details)
		}
		found := false
		for _, d := range res.Details {
			if strings.Contains(d, c.fragment) {
				found = true
			}
		}
		if !found {
			t.Errorf("Cash ratio %.2f: expected rationale containing %q, got %v", c.cash/100, c.fragment, res.Details)
		}
	}
}

func TestManagementCashUsesMostRecentPeriodOnly(t *testing.T) {
	// Recent period sits in the goldilocks zone (+2); the older period's
	// excess cash must be ignored, same recency bias as the debt check.
	items := []models.LineItem{
		{ReportPeriod: "2022-12-31", CashAndEquivalents: fp(50), Revenue: fp(100)},
		{ReportPeriod: "2023-12-31", CashAndEquivalents: fp(15), Revenue: fp(100)},
	}

	res := AnalyzeManagementQuality(items, nil)
	expected := 2.0 * 10 / 12
	if math.Abs(res.Score-expected) > 0.0001 {
		t.Errorf("Expected score %f, got %f (details: %v)", expected, res.Score, res.Details)
	}
}

func TestManagementCashConversion(t *testing.T) {
	// FCF/NI = 1.2 in both periods -> avg 1.2 > 1.1 -> +3 raw.
	items := []models.LineItem{
		{ReportPeriod: "2022-12-31", FreeCashFlow: fp(120), NetIncome: fp(100)},
		{ReportPeriod: "2023-12-31", FreeCashFlow: fp(240), NetIncome: fp(200)},
	}

	res := AnalyzeManagementQuality(items, nil)
	expected := 3.0 * 10 / 12
	if math.Abs(res.Score-expected) > 0.0001 {
		t.Errorf("Expected score %f, got %f (details: %v)", expected, res.Score, res.Details)
	}
}
