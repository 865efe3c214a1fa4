package planner

import (
	"math/rand"
	"time"
)

// Rand is the randomness the planner needs for tie-breaks and shuffles.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// RandFactory returns a fresh source for one request.
type RandFactory func() Rand

// NewRandSource is the production factory.
func NewRandSource() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
