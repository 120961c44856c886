package billing

import (
	"math"
	"time"
)

// Polarity tells the dashboard how to read the sign of a trend. For most
// cards growth is good; for the unpaid-invoices card a decrease is the good
// direction.
type Polarity int

const (
	PolarityGrowthIsGood Polarity = iota
	PolarityDeclineIsGood
)

// Trend returns the month-over-month change of a metric as a percentage
// rounded to one decimal place. A zero previous value yields 0 rather than
// an infinite trend.
func Trend(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	t := ((current - previous) / previous) * 100
	return math.Round(t*10) / 10
}

// Favorable reports whether a trend value is good news under the given
// polarity.
func Favorable(trend float64, p Polarity) bool {
	if p == PolarityDeclineIsGood {
		return trend <= 0
	}
	return trend >= 0
}

// Period is a half-open-ish time window [From, To] used for trend queries.
type Period struct {
	From time.Time
	To   time.Time
}

// TrendPeriods returns the comparison windows for dashboard cards: the
// current period runs from the first of the month to now, while the previous
// period covers the whole prior calendar month. The asymmetry (partial month
// vs full month) is the documented behavior, kept as-is.
func TrendPeriods(now time.Time) (current, previous Period) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfPrevMonth := firstOfMonth.AddDate(0, -1, 0)

	current = Period{From: firstOfMonth, To: now}
	previous = Period{From: firstOfPrevMonth, To: firstOfMonth.Add(-time.Nanosecond)}
	return current, previous
}
