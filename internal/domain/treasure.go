package domain

import (
	"math"
	"time"
)

// AccruedTreasure is the result of projecting passive treasure generation
type AccruedTreasure struct {
	Amount            int64
	TimeToFullMinutes int64
}

// AccrueTreasure projects the treasure held by a binding at `now`.
//
// Generation is lazy: nothing is persisted here. The projection is computed
// on every status read and immediately before every collection, so a collect
// always operates on fresh values. A nil lastCollect means the binding has
// never collected; no time is considered elapsed in that case.
func AccrueTreasure(current, capacity, ratePerHour int64, lastCollect *time.Time, now time.Time) AccruedTreasure {
	if ratePerHour <= 0 {
		return AccruedTreasure{Amount: clamp(current, 0, capacity)}
	}

	current = clamp(current, 0, capacity)

	if lastCollect == nil {
		return AccruedTreasure{
			Amount:            current,
			TimeToFullMinutes: minutesToFull(capacity-current, ratePerHour),
		}
	}

	hoursElapsed := math.Max(0, now.Sub(*lastCollect).Seconds()/3600.0)
	generated := int64(math.Floor(float64(ratePerHour) * hoursElapsed))

	amount := current + generated
	if amount > capacity {
		amount = capacity
	}

	return AccruedTreasure{
		Amount:            amount,
		TimeToFullMinutes: minutesToFull(capacity-amount, ratePerHour),
	}
}

func minutesToFull(remaining, ratePerHour int64) int64 {
	if remaining <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(remaining) / float64(ratePerHour) * 60.0))
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
