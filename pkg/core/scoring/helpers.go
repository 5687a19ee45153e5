package scoring

import (
	"sort"

	"munger_agent/pkg/models"
)

// sortByPeriodDesc returns a copy of items ordered most recent first.
// Input order from the data API is not guaranteed, so every analyzer sorts
// before doing trend or recency logic.
func sortByPeriodDesc(items []models.LineItem) []models.LineItem {
	sorted := make([]models.LineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		// ISO dates compare lexicographically
		return sorted[i].ReportPeriod > sorted[j].ReportPeriod
	})
	return sorted
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// meanAbsDeviation measures volatility as the average absolute distance from
// the mean.
func meanAbsDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(values))
}
