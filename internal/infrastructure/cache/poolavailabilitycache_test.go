package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTierTTL(t *testing.T) {
	tests := []struct {
		name  string
		pools []CachedPoolPreview
		want  time.Duration
	}{
		{
			name:  "empty list uses default tier",
			pools: nil,
			want:  availabilityTTLDefault,
		},
		{
			name: "nearly full pool forces high churn tier",
			pools: []CachedPoolPreview{
				{SeatsLeft: 8},
				{SeatsLeft: 1},
			},
			want: availabilityTTLHigh,
		},
		{
			name: "pool at zero seats left forces high churn tier",
			pools: []CachedPoolPreview{
				{SeatsLeft: 0},
			},
			want: availabilityTTLHigh,
		},
		{
			name: "all pools roomy uses low churn tier",
			pools: []CachedPoolPreview{
				{SeatsLeft: 5},
				{SeatsLeft: 12},
			},
			want: availabilityTTLLow,
		},
		{
			name: "middling occupancy uses default tier",
			pools: []CachedPoolPreview{
				{SeatsLeft: 3},
				{SeatsLeft: 9},
			},
			want: availabilityTTLDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tierTTL(tt.pools))
		})
	}
}

func TestAvailabilityTTLWithJitter(t *testing.T) {
	for i := 0; i < 100; i++ {
		ttl := availabilityTTLWithJitter(availabilityTTLDefault)
		assert.GreaterOrEqual(t, ttl, availabilityTTLDefault)
		assert.Less(t, ttl, availabilityTTLDefault+availabilityTTLJitter)
	}
}
