package domain

import (
	"math"
	"time"
)

// FundingAmount is the fixed, non-refundable amount of a single funding in
// won. It is not configurable.
const FundingAmount int64 = 500

// DaysLeft returns the whole days remaining until end, rounding partial days
// up and flooring at zero so an elapsed deadline never reads negative.
func DaysLeft(end, now time.Time) int {
	diff := end.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// ProgressPercent reports current funding against a goal as a percentage
// capped at 100. A missing goal (zero or negative) yields 0.
func ProgressPercent(current, goal int64) float64 {
	if goal <= 0 {
		return 0
	}
	pct := float64(current) / float64(goal) * 100
	return math.Min(pct, 100)
}

// DiscountPercent derives the display discount badge from an original and a
// sale price, rounded to the nearest whole percent. It returns 0 unless
// original exceeds price and both are positive, matching the badge rules.
func DiscountPercent(original, price int64) int {
	if original <= price || price <= 0 {
		return 0
	}
	return int(math.Round(float64(original-price) / float64(original) * 100))
}
