package fuzzy

import (
	"fmt"
	"math"
)

// Kind tags the shape of a membership function.
type Kind uint8

const (
	KindTriangular Kind = iota
	KindGaussian
)

func (k Kind) String() string {
	switch k {
	case KindTriangular:
		return "trimf"
	case KindGaussian:
		return "gaussmf"
	default:
		return "unknown"
	}
}

// Membership maps a crisp value to a degree in [0,1].
// Implementations are immutable values and safe for concurrent use.
type Membership interface {
	Kind() Kind
	Degree(x float64) float64
	// Params returns the defining parameters in declaration order.
	Params() []float64
}

var (
	_ Membership = Triangular{}
	_ Membership = Gaussian{}
)

// Triangular rises linearly from 0 at A to 1 at B and falls back to 0 at C.
// A shoulder (A == B or B == C) is a vertical edge with degree 1 at B.
type Triangular struct {
	A, B, C float64
}

// NewTriangular validates A <= B <= C.
func NewTriangular(a, b, c float64) (Triangular, error) {
	if a > b || b > c {
		return Triangular{}, fmt.Errorf("%w: trimf(%g, %g, %g)", ErrInvalidMembership, a, b, c)
	}
	return Triangular{A: a, B: b, C: c}, nil
}

func (t Triangular) Kind() Kind { return KindTriangular }

func (t Triangular) Params() []float64 { return []float64{t.A, t.B, t.C} }

func (t Triangular) Degree(x float64) float64 {
	switch {
	case x < t.A || x > t.C:
		return 0
	case x == t.B:
		return 1
	case x < t.B:
		return (x - t.A) / (t.B - t.A)
	default:
		return (t.C - x) / (t.C - t.B)
	}
}

// Gaussian is exp(-(x-Mean)^2 / (2*Sigma^2)).
type Gaussian struct {
	Mean, Sigma float64
}

// NewGaussian rejects non-positive sigma.
func NewGaussian(mean, sigma float64) (Gaussian, error) {
	if !(sigma > 0) {
		return Gaussian{}, fmt.Errorf("%w: gaussmf(%g, %g)", ErrInvalidMembership, mean, sigma)
	}
	return Gaussian{Mean: mean, Sigma: sigma}, nil
}

func (g Gaussian) Kind() Kind { return KindGaussian }

func (g Gaussian) Params() []float64 { return []float64{g.Mean, g.Sigma} }

func (g Gaussian) Degree(x float64) float64 {
	d := x - g.Mean
	return math.Exp(-(d * d) / (2 * g.Sigma * g.Sigma))
}

// Set is a named membership function on a Variable.
type Set struct {
	Name string
	Fn   Membership
}

// Tri is a convenience for declaring static tables; it panics on invalid parameters.
func Tri(name string, a, b, c float64) Set {
	fn, err := NewTriangular(a, b, c)
	if err != nil {
		panic(err)
	}
	return Set{Name: name, Fn: fn}
}

// Gauss is the Gaussian counterpart of Tri.
func Gauss(name string, mean, sigma float64) Set {
	fn, err := NewGaussian(mean, sigma)
	if err != nil {
		panic(err)
	}
	return Set{Name: name, Fn: fn}
}
