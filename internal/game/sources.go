package game

import (
	"math/rand/v2"
	"time"
)

// SystemClock is the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// mathRandom is the default Random backed by math/rand/v2.
type mathRandom struct {
	r *rand.Rand
}

// NewRandom returns a Random seeded from the runtime's entropy source.
func NewRandom() Random {
	return &mathRandom{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRandom returns a deterministic Random.
func NewSeededRandom(seed uint64) Random {
	return &mathRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (m *mathRandom) Between(low, high int) int {
	if high <= low {
		return low
	}
	return low + m.r.IntN(high-low+1)
}

// Secret draws a hidden number uniformly from [1, numberRange].
func Secret(rnd Random, numberRange int) int {
	return rnd.Between(1, numberRange)
}
