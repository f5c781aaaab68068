package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestAccrueTreasure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		current         int64
		capacity        int64
		ratePerHour     int64
		lastCollect     *time.Time
		expectedAmount  int64
		expectedMinutes int64
	}{
		{
			name:            "ThreeHoursAtTenPerHour",
			current:         0,
			capacity:        300,
			ratePerHour:     10,
			lastCollect:     timePtr(now.Add(-3 * time.Hour)),
			expectedAmount:  30,
			expectedMinutes: 1620,
		},
		{
			name:            "NeverCollected_NoElapsedTime",
			current:         50,
			capacity:        300,
			ratePerHour:     10,
			lastCollect:     nil,
			expectedAmount:  50,
			expectedMinutes: 1500,
		},
		{
			name:            "ClampedAtCapacity",
			current:         290,
			capacity:        300,
			ratePerHour:     10,
			lastCollect:     timePtr(now.Add(-48 * time.Hour)),
			expectedAmount:  300,
			expectedMinutes: 0,
		},
		{
			name:            "PartialHourFloored",
			current:         0,
			capacity:        300,
			ratePerHour:     10,
			lastCollect:     timePtr(now.Add(-90 * time.Minute)),
			expectedAmount:  15,
			expectedMinutes: 1710,
		},
		{
			name:            "SubUnitGenerationFloorsToZero",
			current:         0,
			capacity:        300,
			ratePerHour:     10,
			lastCollect:     timePtr(now.Add(-5 * time.Minute)),
			expectedAmount:  0,
			expectedMinutes: 1800,
		},
		{
			name:            "ZeroRate_OnlyClamps",
			current:         500,
			capacity:        300,
			ratePerHour:     0,
			lastCollect:     timePtr(now.Add(-2 * time.Hour)),
			expectedAmount:  300,
			expectedMinutes: 0,
		},
		{
			name:            "NegativeStoredAmountClampedUp",
			current:         -10,
			capacity:        300,
			ratePerHour:     10,
			lastCollect:     timePtr(now.Add(-1 * time.Hour)),
			expectedAmount:  10,
			expectedMinutes: 1740,
		},
		{
			name:            "FutureLastCollectTreatedAsZeroElapsed",
			current:         20,
			capacity:        300,
			ratePerHour:     10,
			lastCollect:     timePtr(now.Add(1 * time.Hour)),
			expectedAmount:  20,
			expectedMinutes: 1680,
		},
		{
			name:            "TimeToFullRoundsUp",
			current:         0,
			capacity:        100,
			ratePerHour:     7,
			lastCollect:     nil,
			expectedAmount:  0,
			expectedMinutes: 858, // 100/7 h = 857.14 min
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accrued := AccrueTreasure(tt.current, tt.capacity, tt.ratePerHour, tt.lastCollect, now)
			assert.Equal(t, tt.expectedAmount, accrued.Amount)
			assert.Equal(t, tt.expectedMinutes, accrued.TimeToFullMinutes)
		})
	}
}

func TestAccrueTreasureFullCapacityStopsGenerating(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	accrued := AccrueTreasure(300, 300, 10, timePtr(now.Add(-10*time.Hour)), now)
	assert.Equal(t, int64(300), accrued.Amount)
	assert.Equal(t, int64(0), accrued.TimeToFullMinutes)
}
