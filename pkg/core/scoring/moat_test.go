package scoring

import (
	"fmt"
	"math"
	"testing"

	"munger_agent/pkg/models"
)

func fp(v float64) *float64 { return &v }

func someMetrics() []models.FinancialMetrics {
	return []models.FinancialMetrics{{Ticker: "TEST", ReportPeriod: "2024-12-31", MarketCap: fp(1000)}}
}

func TestMoatInsufficientData(t *testing.T) {
	res := AnalyzeMoatStrength(nil, []models.LineItem{{ReportPeriod: "2024-12-31"}})
	if res.Score != 0 {
		t.Errorf("Expected score 0 with no metrics, got %f", res.Score)
	}
	if len(res.Details) != 1 {
		t.Errorf("Expected single insufficient-data rationale, got %v", res.Details)
	}

	res = AnalyzeMoatStrength(someMetrics(), nil)
	if res.Score != 0 || len(res.Details) != 1 {
		t.Errorf("Expected score 0 and one rationale with no line items, got %f / %v", res.Score, res.Details)
	}
}

func TestMoatROICScoring(t *testing.T) {
	// 5 periods, all ROIC 0.20 > 0.15 -> ratio 1.0 -> +3 raw.
	// No other sub-check has data, so raw = 3 and score = 3*10/9 = 3.333...
	var items []models.LineItem
	for i := 0; i < 5; i++ {
		items = append(items, models.LineItem{
			ReportPeriod:            fmt.Sprintf("20%02d-12-31", 20+i),
			ReturnOnInvestedCapital: fp(0.20),
		})
	}

	res := AnalyzeMoatStrength(someMetrics(), items)
	expected := 3.0 * 10 / 9
	if math.Abs(res.Score-expected) > 0.0001 {
		t.Errorf("Expected score %f, got %f", expected, res.Score)
	}
}

func TestMoatROICMonotonic(t *testing.T) {
	// Score must be non-decreasing in the number of high-ROIC periods,
	// all else equal.
	prev := -1.0
	for high := 0; high <= 5; high++ {
		var items []models.LineItem
		for i := 0; i < 5; i++ {
			roic := 0.05
			if i < high {
				roic = 0.25
			}
			items = append(items, models.LineItem{
				ReportPeriod:            fmt.Sprintf("20%02d-12-31", 20+i),
				ReturnOnInvestedCapital: fp(roic),
			})
		}
		res := AnalyzeMoatStrength(someMetrics(), items)
		if res.Score < prev {
			t.Errorf("Score decreased from %f to %f at %d high-ROIC periods", prev, res.Score, high)
		}
		prev = res.Score
	}
}

func TestMoatCapitalIntensity(t *testing.T) {
	// capex 3% of revenue over 3 periods -> +2. Plus goodwill present -> +1.
	var items []models.LineItem
	for i := 0; i < 3; i++ {
		items = append(items, models.LineItem{
			ReportPeriod:                fmt.Sprintf("202%d-12-31", i+1),
			Revenue:                     fp(1000),
			CapitalExpenditure:          fp(-30),
			GoodwillAndIntangibleAssets: fp(500),
		})
	}

	res := AnalyzeMoatStrength(someMetrics(), items)
	expected := 3.0 * 10 / 9 // raw 2 + 1
	if math.Abs(res.Score-expected) > 0.0001 {
		t.Errorf("Expected score %f, got %f (details: %v)", expected, res.Score, res.Details)
	}
}

func TestMoatGrossMarginTrend(t *testing.T) {
	// Margins improving every period: 0.30, 0.32, 0.34, newest first after
	// sort. Trend ratio 1.0 >= 0.7 -> +2 raw.
	items := []models.LineItem{
		{ReportPeriod: "2021-12-31", GrossMargin: fp(0.30)},
		{ReportPeriod: "2022-12-31", GrossMargin: fp(0.32)},
		{ReportPeriod: "2023-12-31", GrossMargin: fp(0.34)},
	}

	res := AnalyzeMoatStrength(someMetrics(), items)
	expected := 2.0 * 10 / 9
	if math.Abs(res.Score-expected) > 0.0001 {
		t.Errorf("Expected score %f, got %f (details: %v)", expected, res.Score, res.Details)
	}
}
