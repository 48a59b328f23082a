package shot

import "math/rand/v2"

// Probability thresholds, in percent.
const (
	CertainMissBelow = 25.0
	CertainMakeAbove = 90.0
)

// Band classifies a chance by how the sampler treats it.
type Band uint8

const (
	// BandImpossible always misses.
	BandImpossible Band = iota
	// BandContested is decided by one uniform draw.
	BandContested
	// BandCertain always scores.
	BandCertain
)

func (b Band) String() string {
	switch b {
	case BandImpossible:
		return "impossible"
	case BandContested:
		return "contested"
	case BandCertain:
		return "certain"
	default:
		return "unknown"
	}
}

func (b Band) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// BandOf returns the band for a chance in percent.
func BandOf(chance float64) Band {
	switch {
	case chance < CertainMissBelow:
		return BandImpossible
	case chance > CertainMakeAbove:
		return BandCertain
	default:
		return BandContested
	}
}

// Sampler turns a chance into a make or a miss. It owns its random source and
// is not safe for concurrent use; give every goroutine its own Sampler.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: newRand(seed)}
}

// Decide reports whether a shot with the given chance scores. Contested
// chances score iff a uniform draw in [0,100] is <= chance.
func (s *Sampler) Decide(chance float64) bool {
	switch BandOf(chance) {
	case BandImpossible:
		return false
	case BandCertain:
		return true
	}
	return s.rng.Float64()*100 <= chance
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
}
