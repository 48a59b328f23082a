package fuzzy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTriangular(t *testing.T) {
	tri, err := NewTriangular(3, 6, 9)
	require.NoError(t, err)

	cases := []struct {
		x    float64
		want float64
	}{
		{x: 0, want: 0},
		{x: 3, want: 0},
		{x: 4.5, want: 0.5},
		{x: 6, want: 1},
		{x: 7.5, want: 0.5},
		{x: 9, want: 0},
		{x: 12, want: 0},
	}
	for _, c := range cases {
		require.InDelta(t, c.want, tri.Degree(c.x), 1e-12, "x=%v", c.x)
	}

	t.Run("Shoulders", func(t *testing.T) {
		left := Triangular{A: 0, B: 0, C: 25}
		require.Equal(t, 1.0, left.Degree(0))
		require.InDelta(t, 0.6, left.Degree(10), 1e-12)

		right := Triangular{A: 85, B: 100, C: 100}
		require.Equal(t, 1.0, right.Degree(100))
		require.InDelta(t, 1.0/3, right.Degree(90), 1e-12)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := NewTriangular(5, 4, 6)
		require.ErrorIs(t, err, ErrInvalidMembership)
		require.Panics(t, func() { Tri("bad", 3, 2, 1) })
	})
}

func TestGaussian(t *testing.T) {
	g, err := NewGaussian(18, 4)
	require.NoError(t, err)
	require.Equal(t, 1.0, g.Degree(18))
	require.InDelta(t, math.Exp(-0.5), g.Degree(22), 1e-12)
	require.InDelta(t, g.Degree(14), g.Degree(22), 1e-12)

	_, err = NewGaussian(0, 0)
	require.ErrorIs(t, err, ErrInvalidMembership)
}

func TestVariable(t *testing.T) {
	v, err := NewVariable("distance", 0, 25, Tri("near", 0, 1, 4), Tri("far", 16, 20, 25))
	require.NoError(t, err)
	require.Equal(t, 26, v.Points())
	require.Len(t, v.Universe(), 26)

	t.Run("Clamp", func(t *testing.T) {
		require.Equal(t, 25.0, v.Clamp(40))
		require.Equal(t, 0.0, v.Clamp(-3))
		require.Equal(t, v.Fuzzify(25), v.Fuzzify(99))
		require.Equal(t, v.Fuzzify(0), v.Fuzzify(-1))
	})

	t.Run("Fuzzify", func(t *testing.T) {
		m := v.Fuzzify(1)
		require.Equal(t, 1.0, m["near"])
		require.Equal(t, 0.0, m["far"])
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := NewVariable("x", 5, 5)
		require.ErrorIs(t, err, ErrInvalidUniverse)
		_, err = NewVariable("x", 0, 5, Tri("a", 0, 1, 2), Tri("a", 1, 2, 3))
		require.ErrorIs(t, err, ErrDuplicateSet)
	})
}

func testSystem(t *testing.T) (*System, []Rule) {
	t.Helper()
	in, err := NewVariable("in", 0, 10, Tri("lo", 0, 0, 5), Tri("hi", 5, 10, 10))
	require.NoError(t, err)
	other, err := NewVariable("other", 0, 10, Gauss("mid", 5, 2))
	require.NoError(t, err)
	out, err := NewVariable("out", 0, 100, Tri("small", 0, 0, 50), Tri("big", 50, 100, 100))
	require.NoError(t, err)

	rules := []Rule{
		NewRule(Is("out", "small"), Is("in", "lo")),
		NewRule(Is("out", "big"), Is("in", "hi"), Is("other", "mid")),
		NewRule(Is("out", "big"), Is("other", "mid")),
	}
	sys, err := NewSystem(out, rules, in, other)
	require.NoError(t, err)
	return sys, rules
}

func TestSystemValidation(t *testing.T) {
	in, _ := NewVariable("in", 0, 10, Tri("lo", 0, 0, 5))
	out, _ := NewVariable("out", 0, 100, Tri("small", 0, 0, 50))

	_, err := NewSystem(out, []Rule{NewRule(Is("out", "small"), Is("nope", "lo"))}, in)
	require.ErrorIs(t, err, ErrUnknownVariable)

	_, err = NewSystem(out, []Rule{NewRule(Is("out", "small"), Is("in", "nope"))}, in)
	require.ErrorIs(t, err, ErrUnknownSet)

	_, err = NewSystem(out, []Rule{NewRule(Is("out", "huge"), Is("in", "lo"))}, in)
	require.ErrorIs(t, err, ErrUnknownSet)

	_, err = NewSystem(out, []Rule{NewRule(Is("out", "small"))}, in)
	require.ErrorIs(t, err, ErrEmptyRule)

	heavy := NewRule(Is("out", "small"), Is("in", "lo"))
	heavy.Weight = 1.5
	_, err = NewSystem(out, []Rule{heavy}, in)
	require.ErrorIs(t, err, ErrInvalidWeight)

	_, err = NewSystem(out, nil, in, nil)
	require.ErrorIs(t, err, ErrUnknownVariable)

	_, err = NewSystem(nil, nil, in)
	require.ErrorIs(t, err, ErrUnknownVariable)
}

func TestZeroWeightDisablesRule(t *testing.T) {
	in, err := NewVariable("in", 0, 10, Tri("lo", 0, 0, 5))
	require.NoError(t, err)
	out, err := NewVariable("out", 0, 100, Tri("small", 0, 0, 50))
	require.NoError(t, err)

	off := NewRule(Is("out", "small"), Is("in", "lo"))
	off.Weight = 0
	sys, err := NewSystem(out, []Rule{off}, in)
	require.NoError(t, err)
	require.Zero(t, sys.Rules()[0].Weight)

	sim := sys.NewSimulation()
	require.NoError(t, sim.Input("in", 0))
	res, err := sim.Compute()
	require.NoError(t, err)
	require.Zero(t, res.Activations[0].Strength)
	require.Zero(t, res.Value)

	literal := Rule{Antecedent: []Term{Is("in", "lo")}, Consequent: Is("out", "small")}
	require.Zero(t, literal.Strength(Memberships{"in": {"lo": 1}}))
	require.Equal(t, 1.0, NewRule(Is("out", "small"), Is("in", "lo")).Strength(Memberships{"in": {"lo": 1}}))
}

func TestSimulation(t *testing.T) {
	sys, _ := testSystem(t)

	t.Run("Compute", func(t *testing.T) {
		sim := sys.NewSimulation()
		require.NoError(t, sim.Input("in", 0))
		require.NoError(t, sim.Input("other", 50))
		res, err := sim.Compute()
		require.NoError(t, err)
		require.Less(t, res.Value, 50.0)
		require.Equal(t, 1.0, res.Activations[0].Strength)
	})

	t.Run("MissingInput", func(t *testing.T) {
		sim := sys.NewSimulation()
		require.NoError(t, sim.Input("in", 3))
		_, err := sim.Compute()
		require.ErrorIs(t, err, ErrMissingInput)
	})

	t.Run("UnknownInput", func(t *testing.T) {
		require.ErrorIs(t, sys.NewSimulation().Input("zzz", 1), ErrUnknownVariable)
	})

	t.Run("SingleUse", func(t *testing.T) {
		sim := sys.NewSimulation()
		require.NoError(t, sim.Input("in", 9))
		require.NoError(t, sim.Input("other", 5))
		_, err := sim.Compute()
		require.NoError(t, err)
		_, err = sim.Compute()
		require.ErrorIs(t, err, ErrConsumed)
		require.ErrorIs(t, sim.Input("in", 1), ErrConsumed)
	})

	t.Run("NoResidualState", func(t *testing.T) {
		first := sys.NewSimulation()
		require.NoError(t, first.Input("in", 10))
		require.NoError(t, first.Input("other", 5))
		a, err := first.Compute()
		require.NoError(t, err)

		second := sys.NewSimulation()
		require.NoError(t, second.Input("in", 10))
		_, err = second.Compute()
		require.ErrorIs(t, err, ErrMissingInput)

		third := sys.NewSimulation()
		require.NoError(t, third.Input("in", 10))
		require.NoError(t, third.Input("other", 5))
		b, err := third.Compute()
		require.NoError(t, err)
		require.Equal(t, a.Value, b.Value)
	})
}

func TestInferOrderIndependent(t *testing.T) {
	sys, rules := testSystem(t)
	in := Memberships{
		"in":    sys.Inputs()[0].Fuzzify(6),
		"other": sys.Inputs()[1].Fuzzify(4),
	}
	want := NewEngine(sys.Output(), rules).Infer(in).Output

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]Rule(nil), rules...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := NewEngine(sys.Output(), shuffled).Infer(in).Output
		require.Equal(t, want, got)
	}
}

func TestInferMissingTermDisablesRule(t *testing.T) {
	sys, rules := testSystem(t)
	inf := NewEngine(sys.Output(), rules).Infer(Memberships{"in": sys.Inputs()[0].Fuzzify(10)})
	for _, a := range inf.Activations[1:] {
		require.Zero(t, a.Strength)
	}
	require.Zero(t, inf.Labels["big"].Mass())
	require.Zero(t, inf.Labels["big"].Peak())
}

func TestInferLabelsPeakAtStrength(t *testing.T) {
	sys, rules := testSystem(t)
	in := Memberships{
		"in":    sys.Inputs()[0].Fuzzify(2),
		"other": sys.Inputs()[1].Fuzzify(5),
	}
	inf := NewEngine(sys.Output(), rules).Infer(in)

	require.InDelta(t, inf.Activations[0].Strength, inf.Labels["small"].Peak(), 1e-12)
	require.InDelta(t, math.Max(inf.Activations[1].Strength, inf.Activations[2].Strength), inf.Labels["big"].Peak(), 1e-12)
	require.InDelta(t, math.Max(inf.Labels["small"].Peak(), inf.Labels["big"].Peak()), inf.Output.Peak(), 1e-12)
}

func TestCentroid(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		require.Equal(t, 0.0, Centroid(Distribution{Lo: 0, Degrees: make([]float64, 101)}))
	})

	t.Run("Symmetric", func(t *testing.T) {
		d := Distribution{Lo: 0, Degrees: make([]float64, 11)}
		d.Degrees[4], d.Degrees[5], d.Degrees[6] = 0.5, 1, 0.5
		require.InDelta(t, 5.0, Centroid(d), 1e-12)
	})

	t.Run("Offset", func(t *testing.T) {
		d := Distribution{Lo: 10, Degrees: []float64{1, 1}}
		require.InDelta(t, 10.5, Centroid(d), 1e-12)
		require.Equal(t, 1.0, d.At(11))
		require.Equal(t, 0.0, d.At(12))
	})
}

func TestDescribe(t *testing.T) {
	sys, rules := testSystem(t)
	d := sys.Describe()

	require.Len(t, d.Inputs, 2)
	require.Equal(t, "in", d.Inputs[0].Name)
	require.Equal(t, "other", d.Inputs[1].Name)
	require.Equal(t, SetDescription{Name: "mid", Kind: "gaussmf", Params: []float64{5, 2}}, d.Inputs[1].Sets[0])
	require.Equal(t, "out", d.Output.Name)
	require.Equal(t, 100, d.Output.Hi)
	require.Equal(t, rules, d.Rules)

	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	require.Contains(t, string(out), "kind: trimf")
	require.Contains(t, string(out), "params: [0, 0, 5]")

	var back Description
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, d, back)
}
