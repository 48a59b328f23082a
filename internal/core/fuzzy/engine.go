package fuzzy

import "math"

// Distribution is a fuzzy set sampled at unit steps starting at Lo.
type Distribution struct {
	Lo      int
	Degrees []float64
}

// Mass is the sum of all degrees.
func (d Distribution) Mass() float64 {
	var sum float64
	for _, mu := range d.Degrees {
		sum += mu
	}
	return sum
}

// Peak is the highest degree, i.e. the level a clipped consequent was cut at.
func (d Distribution) Peak() float64 {
	var peak float64
	for _, mu := range d.Degrees {
		peak = math.Max(peak, mu)
	}
	return peak
}

// At returns the degree at universe point x, or 0 outside the universe.
func (d Distribution) At(x int) float64 {
	i := x - d.Lo
	if i < 0 || i >= len(d.Degrees) {
		return 0
	}
	return d.Degrees[i]
}

// Activation records how strongly one rule fired.
type Activation struct {
	Rule       int
	Consequent Term
	Strength   float64
}

// Inference is the aggregated output of one rule-base evaluation.
type Inference struct {
	// Output is the pointwise maximum over every label.
	Output Distribution
	// Labels holds the aggregate per consequent label.
	Labels      map[string]Distribution
	Activations []Activation
}

// Engine evaluates a rule list against one output variable.
// Consequent curves are sampled once in NewEngine and only read afterwards.
type Engine struct {
	output *Variable
	rules  []Rule
	curves map[string][]float64
}

// NewEngine samples the consequent curve of every output set.
func NewEngine(output *Variable, rules []Rule) *Engine {
	e := &Engine{
		output: output,
		rules:  append([]Rule(nil), rules...),
		curves: make(map[string][]float64, len(output.sets)),
	}
	for _, s := range output.sets {
		e.curves[s.Name] = output.curve(s.Name)
	}
	return e
}

// Infer applies min implication and max aggregation. Rules are independent,
// so the result does not depend on their order.
func (e *Engine) Infer(in Memberships) Inference {
	n := e.output.Points()
	res := Inference{
		Output:      Distribution{Lo: e.output.lo, Degrees: make([]float64, n)},
		Labels:      make(map[string]Distribution),
		Activations: make([]Activation, 0, len(e.rules)),
	}

	for i, r := range e.rules {
		strength := r.Strength(in)
		res.Activations = append(res.Activations, Activation{Rule: i, Consequent: r.Consequent, Strength: strength})

		label := r.Consequent.Set
		agg, ok := res.Labels[label]
		if !ok {
			agg = Distribution{Lo: e.output.lo, Degrees: make([]float64, n)}
			res.Labels[label] = agg
		}
		if strength <= 0 {
			continue
		}
		for x, mu := range e.curves[label] {
			clipped := math.Min(mu, strength)
			if clipped > agg.Degrees[x] {
				agg.Degrees[x] = clipped
			}
			if clipped > res.Output.Degrees[x] {
				res.Output.Degrees[x] = clipped
			}
		}
	}

	return res
}

// Centroid returns the centre of area of d. A distribution with no mass
// yields 0.
func Centroid(d Distribution) float64 {
	var num, den float64
	for i, mu := range d.Degrees {
		num += float64(d.Lo+i) * mu
		den += mu
	}
	if den == 0 {
		return 0
	}
	c := num / den
	lo, hi := float64(d.Lo), float64(d.Lo+len(d.Degrees)-1)
	return math.Max(lo, math.Min(hi, c))
}
