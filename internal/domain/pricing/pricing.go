// Package pricing implements the marketplace pricing formulas as pure
// functions. Every caller (listing preview, checkout quote, purchase
// recording) must go through this package so prices agree exactly.
//
// All amounts are integer cents. The month basis is a fixed 30 days rather
// than the calendar month length: the per-day rate stays constant year-round,
// which keeps previews predictable. Do not replace it with calendar math.
package pricing

import "math"

const (
	// DiscountRate is the marketplace discount applied to the catalog
	// monthly price (50% off).
	DiscountRate = 0.5

	// MinDurationDays is the shortest purchasable non-recurring duration.
	MinDurationDays = 2

	// MaxDurationDays is the longest purchasable non-recurring duration.
	MaxDurationDays = 15

	// DaysInMonth is the fixed month basis for the daily rate.
	DaysInMonth = 30

	// RecurringCycleDays is the rolling billing cycle for recurring grants.
	RecurringCycleDays = 30
)

// ClampDuration clamps a requested duration into
// [MinDurationDays, MaxDurationDays]. Non-positive input falls back to the
// minimum.
func ClampDuration(days int) int {
	if days < MinDurationDays {
		return MinDurationDays
	}
	if days > MaxDurationDays {
		return MaxDurationDays
	}
	return days
}

// ComputeDiscountedMonthly returns the discounted monthly price in cents,
// or 0 for non-positive input.
func ComputeDiscountedMonthly(catalogMonthlyCents int64) int64 {
	if catalogMonthlyCents <= 0 {
		return 0
	}
	return roundCents(float64(catalogMonthlyCents) * DiscountRate)
}

// ComputeProratedPrice returns the prorated price in cents for the requested
// duration. The duration is clamped before computing. Non-positive price or
// duration yields 0: malformed input produces a harmless preview rather than
// an error.
func ComputeProratedPrice(catalogMonthlyCents int64, requestedDurationDays int) int64 {
	if catalogMonthlyCents <= 0 || requestedDurationDays <= 0 {
		return 0
	}

	clamped := ClampDuration(requestedDurationDays)
	discountedMonthly := float64(catalogMonthlyCents) * DiscountRate
	dailyRate := discountedMonthly / DaysInMonth

	return roundCents(dailyRate * float64(clamped))
}

// roundCents rounds half away from zero on the cent boundary.
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
