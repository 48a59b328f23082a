package shot

import (
	"fmt"
	"math/rand/v2"
)

// Params describes one shot. Values are clamped to their universes by NewParams.
type Params struct {
	Distance float64 `json:"distance" yaml:"distance"`
	Angle    float64 `json:"angle" yaml:"angle"`
	Force    float64 `json:"force" yaml:"force"`
}

// NewParams clamps distance to [0,25], angle to [0,90] and force to [0,30].
func NewParams(distance, angle, force float64) Params {
	return Params{
		Distance: clamp(distance, 0, MaxDistance),
		Angle:    clamp(angle, 0, MaxAngle),
		Force:    clamp(force, 0, MaxForce),
	}
}

func (p Params) String() string {
	return fmt.Sprintf("D:%.1fm A:%.1f° F:%.1f", p.Distance, p.Angle, p.Force)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Range is a closed interval for random shot generation.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (r Range) draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Generator draws random shots the way the robot picks them between attempts.
type Generator struct {
	Distance Range
	Angle    Range
	Force    Range

	rng *rand.Rand
}

// DefaultRanges match the robot's practice routine.
var (
	DefaultDistanceRange = Range{Min: 1, Max: 22}
	DefaultAngleRange    = Range{Min: 25, Max: 75}
	DefaultForceRange    = Range{Min: 5, Max: 30}
)

// NewGenerator uses the default ranges and a source seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Distance: DefaultDistanceRange,
		Angle:    DefaultAngleRange,
		Force:    DefaultForceRange,
		rng:      newRand(seed),
	}
}

// Next returns a new clamped shot.
func (g *Generator) Next() Params {
	return NewParams(g.Distance.draw(g.rng), g.Angle.draw(g.rng), g.Force.draw(g.rng))
}

// WithRanges overrides the draw ranges.
func (g *Generator) WithRanges(distance, angle, force Range) *Generator {
	g.Distance, g.Angle, g.Force = distance, angle, force
	return g
}
