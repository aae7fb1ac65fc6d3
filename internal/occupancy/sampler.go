/*
Package occupancy
File: sampler.go
Description:
    Chooses which seats are shown as occupied.

    Sample is the pure selection: k distinct indices from [0, n), uniformly
    without replacement. Sampler wraps it with memoization keyed strictly by
    (seatCount, targetCount) so unrelated state changes never reshuffle the
    crowd. While the seat count stays the same, a change in the target only
    grows or shrinks the prefix of one shuffled order, so people already
    seated stay put.
*/

package occupancy

import (
	"math"
	"math/rand"
	"sort"
)

// FillRatio is members / capacity clamped to [0, 1]. A non-positive
// capacity yields 0.
func FillRatio(members, capacity float64) float64 {
	if capacity <= 0 || members <= 0 {
		return 0
	}
	return math.Min(1, members/capacity)
}

// TargetCount is floor(seatCount * ratio) with the ratio clamped to [0, 1].
func TargetCount(seatCount int, ratio float64) int {
	if seatCount <= 0 {
		return 0
	}
	ratio = math.Max(0, math.Min(1, ratio))
	return int(math.Floor(float64(seatCount) * ratio))
}

// Sample returns k distinct indices drawn uniformly from [0, n), sorted
// ascending. k is clamped to [0, n].
func Sample(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	perm := rng.Perm(n)[:k]
	sort.Ints(perm)
	return perm
}

// Sampler memoizes occupancy by (seatCount, targetCount). It is not safe
// for concurrent use; the scene composer serializes access.
type Sampler struct {
	rng *rand.Rand

	order     []int // shuffled seat order for the current seat count
	seatCount int
	target    int
	current   []int
	valid     bool

	resamples int
}

// NewSampler creates a Sampler drawing from rng.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Occupied returns the sorted occupied seat indices for seatCount seats
// filled to ratio. The returned slice is shared; callers must not modify it.
func (s *Sampler) Occupied(seatCount int, ratio float64) []int {
	target := TargetCount(seatCount, ratio)
	if s.valid && seatCount == s.seatCount && target == s.target {
		return s.current
	}

	// 1. New seat list: reshuffle the whole order.
	if !s.valid || seatCount != s.seatCount {
		s.order = s.rng.Perm(seatCount)
		s.seatCount = seatCount
	}

	// 2. The occupied set is a prefix of the order.
	s.target = target
	s.current = make([]int, target)
	copy(s.current, s.order[:target])
	sort.Ints(s.current)

	s.valid = true
	s.resamples++
	return s.current
}

// Reset forgets the memoized selection; the next call reshuffles.
func (s *Sampler) Reset() {
	s.valid = false
	s.order = nil
	s.current = nil
}

// Resamples counts how many times the occupied set was recomputed.
func (s *Sampler) Resamples() int { return s.resamples }
