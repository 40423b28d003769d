package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeProratedPrice_HalfMonthOfTwentyDollars(t *testing.T) {
	// 20.00 catalog -> 10.00 discounted monthly -> 10/30 * 15 = 5.00
	assert.Equal(t, int64(500), ComputeProratedPrice(2000, 15))
}

func TestComputeProratedPrice_TwoDaysRoundsUp(t *testing.T) {
	// 10.00 / 30 * 2 = 0.666... -> 0.67
	assert.Equal(t, int64(67), ComputeProratedPrice(2000, 2))
}

func TestComputeProratedPrice_ClampsShortDuration(t *testing.T) {
	// 1 day clamps to the 2-day minimum before computing
	assert.Equal(t, ComputeProratedPrice(2000, 2), ComputeProratedPrice(2000, 1))
}

func TestComputeProratedPrice_ClampsLongDuration(t *testing.T) {
	assert.Equal(t, ComputeProratedPrice(2000, 15), ComputeProratedPrice(2000, 90))
}

func TestComputeProratedPrice_DefensiveZeroes(t *testing.T) {
	assert.Equal(t, int64(0), ComputeProratedPrice(0, 10))
	assert.Equal(t, int64(0), ComputeProratedPrice(-500, 10))
	assert.Equal(t, int64(0), ComputeProratedPrice(2000, 0))
	assert.Equal(t, int64(0), ComputeProratedPrice(2000, -3))
}

func TestComputeProratedPrice_Monotonic(t *testing.T) {
	prices := []int64{1, 99, 100, 999, 2000, 12345, 99999}
	for _, price := range prices {
		prev := int64(-1)
		for d := MinDurationDays; d <= MaxDurationDays; d++ {
			got := ComputeProratedPrice(price, d)
			assert.GreaterOrEqual(t, got, prev,
				"price must not decrease with duration (price=%d, days=%d)", price, d)
			prev = got
		}
	}
}

func TestComputeProratedPrice_HalfMonthIdentity(t *testing.T) {
	// MaxDurationDays is exactly half of DaysInMonth, so the 15-day price
	// equals half the discounted monthly price within cent rounding.
	for _, price := range []int64{100, 999, 2000, 5000, 123456} {
		halfMonth := ComputeProratedPrice(price, MaxDurationDays)
		discounted := ComputeDiscountedMonthly(price)
		assert.InDelta(t, float64(discounted)/2, float64(halfMonth), 1,
			"price=%d", price)
	}
}

func TestComputeDiscountedMonthly(t *testing.T) {
	assert.Equal(t, int64(1000), ComputeDiscountedMonthly(2000))
	assert.Equal(t, int64(50), ComputeDiscountedMonthly(99))  // 49.5 -> 50
	assert.Equal(t, int64(0), ComputeDiscountedMonthly(0))
	assert.Equal(t, int64(0), ComputeDiscountedMonthly(-100))
}

func TestClampDuration(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below minimum", 1, MinDurationDays},
		{"zero", 0, MinDurationDays},
		{"negative", -7, MinDurationDays},
		{"at minimum", 2, 2},
		{"in range", 9, 9},
		{"at maximum", 15, 15},
		{"above maximum", 16, MaxDurationDays},
		{"far above maximum", 365, MaxDurationDays},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampDuration(tc.in))
		})
	}
}

func TestClampDuration_Idempotent(t *testing.T) {
	for d := -5; d <= 30; d++ {
		once := ClampDuration(d)
		assert.Equal(t, once, ClampDuration(once), "days=%d", d)
	}
}
