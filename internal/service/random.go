package service

import (
	"math/rand/v2"
	"time"
)

const day = 24 * time.Hour

// Rand is the random source the generators draw from. *rand.Rand satisfies it;
// tests substitute scripted sources to force individual branches.
type Rand interface {
	IntN(n int) int
	Int64N(n int64) int64
	Float64() float64
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// NewRand returns a PCG-backed source. A zero seed draws from the wall clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

func pick[T any](r Rand, xs []T) T {
	return xs[r.IntN(len(xs))]
}

// sampleDistinct draws k elements of xs without replacement (partial
// Fisher-Yates over an index permutation). xs is not modified.
func sampleDistinct[T any](r Rand, xs []T, k int) []T {
	if k > len(xs) {
		k = len(xs)
	}
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	out := make([]T, k)
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = xs[idx[i]]
	}
	return out
}

// intBetween is uniform over [lo, hi].
func intBetween(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// pastInstant is uniform over [now-maxAge, now-minAge].
func pastInstant(r Rand, now time.Time, minAge, maxAge time.Duration) time.Time {
	span := int64(maxAge - minAge)
	age := minAge + time.Duration(r.Int64N(span+1))
	return now.Add(-age)
}

const alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func alphanumeric(r Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumerics[r.IntN(len(alphanumerics))]
	}
	return string(b)
}
