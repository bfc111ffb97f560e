package appointment

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EndTime derives the end of an appointment from the service duration.
func EndTime(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// Overlaps uses half-open intervals: touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Commission is price * rate / 100, rounded half away from zero to cents.
func Commission(price, ratePercent decimal.Decimal) decimal.Decimal {
	return price.Mul(ratePercent).Div(hundred).Round(2)
}
