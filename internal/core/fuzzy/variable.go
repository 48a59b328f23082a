package fuzzy

import "fmt"

// Variable is a linguistic variable over the closed integer universe [lo, hi]
// sampled at unit steps. All of its sets share that universe.
// A Variable is never modified after NewVariable returns.
type Variable struct {
	name  string
	lo    int
	hi    int
	sets  []Set
	index map[string]int
}

// NewVariable builds a variable and checks that set names are unique.
func NewVariable(name string, lo, hi int, sets ...Set) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: variable name is required", ErrInvalidUniverse)
	}
	if lo >= hi {
		return nil, fmt.Errorf("%w: %s [%d, %d]", ErrInvalidUniverse, name, lo, hi)
	}

	v := &Variable{
		name:  name,
		lo:    lo,
		hi:    hi,
		sets:  make([]Set, 0, len(sets)),
		index: make(map[string]int, len(sets)),
	}
	for _, s := range sets {
		if s.Fn == nil {
			return nil, fmt.Errorf("%w: %s.%s has no function", ErrInvalidMembership, name, s.Name)
		}
		if _, dup := v.index[s.Name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateSet, name, s.Name)
		}
		v.index[s.Name] = len(v.sets)
		v.sets = append(v.sets, s)
	}

	return v, nil
}

func (v *Variable) Name() string { return v.name }
func (v *Variable) Lo() int      { return v.lo }
func (v *Variable) Hi() int      { return v.hi }

// Sets returns a copy of the declared sets in declaration order.
func (v *Variable) Sets() []Set {
	out := make([]Set, len(v.sets))
	copy(out, v.sets)
	return out
}

// Set looks up a membership function by name.
func (v *Variable) Set(name string) (Membership, bool) {
	i, ok := v.index[name]
	if !ok {
		return nil, false
	}
	return v.sets[i].Fn, true
}

// Clamp pins x to the universe bounds.
func (v *Variable) Clamp(x float64) float64 {
	if x < float64(v.lo) {
		return float64(v.lo)
	}
	if x > float64(v.hi) {
		return float64(v.hi)
	}
	return x
}

// Points returns the number of unit steps in the universe, bounds included.
func (v *Variable) Points() int { return v.hi - v.lo + 1 }

// Universe returns the sampled universe lo, lo+1, ..., hi.
func (v *Variable) Universe() []float64 {
	out := make([]float64, v.Points())
	for i := range out {
		out[i] = float64(v.lo + i)
	}
	return out
}

// Fuzzify evaluates every set at x after clamping x to the universe.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	x = v.Clamp(x)
	out := make(map[string]float64, len(v.sets))
	for _, s := range v.sets {
		out[s.Name] = s.Fn.Degree(x)
	}
	return out
}

// curve samples one set over the universe.
func (v *Variable) curve(name string) []float64 {
	fn, ok := v.Set(name)
	if !ok {
		return nil
	}
	out := make([]float64, v.Points())
	for i := range out {
		out[i] = fn.Degree(float64(v.lo + i))
	}
	return out
}
