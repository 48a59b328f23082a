package fuzzy

import "fmt"

// System is an immutable rule base: input variables, one output variable and
// the rules linking them. It is safe to share between goroutines; every
// evaluation goes through its own Simulation.
type System struct {
	inputs map[string]*Variable
	order  []*Variable
	output *Variable
	rules  []Rule
	engine *Engine
}

// NewSystem validates that every rule references existing variables and sets.
func NewSystem(output *Variable, rules []Rule, inputs ...*Variable) (*System, error) {
	if output == nil {
		return nil, fmt.Errorf("%w: output variable is required", ErrUnknownVariable)
	}

	s := &System{
		inputs: make(map[string]*Variable, len(inputs)),
		order:  make([]*Variable, 0, len(inputs)),
		output: output,
		rules:  make([]Rule, len(rules)),
	}
	for i, v := range inputs {
		if v == nil {
			return nil, fmt.Errorf("%w: input %d is nil", ErrUnknownVariable, i+1)
		}
		if _, dup := s.inputs[v.Name()]; dup || v.Name() == output.Name() {
			return nil, fmt.Errorf("duplicate variable %q", v.Name())
		}
		s.inputs[v.Name()] = v
		s.order = append(s.order, v)
	}
	for i, r := range rules {
		if err := r.validate(s.inputs, output); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		r.Antecedent = append([]Term(nil), r.Antecedent...)
		s.rules[i] = r
	}
	s.engine = NewEngine(output, s.rules)

	return s, nil
}

// Inputs returns the input variables in declaration order.
func (s *System) Inputs() []*Variable {
	return append([]*Variable(nil), s.order...)
}

func (s *System) Output() *Variable { return s.output }

// Rules returns a copy of the rule list.
func (s *System) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		r.Antecedent = append([]Term(nil), r.Antecedent...)
		out[i] = r
	}
	return out
}

// NewSimulation returns a fresh input binding for one evaluation.
func (s *System) NewSimulation() *Simulation {
	return &Simulation{
		system: s,
		inputs: make(map[string]float64, len(s.order)),
	}
}

// Result is the crisp and fuzzy output of one evaluation.
type Result struct {
	Value float64
	Inference
}

// Simulation binds crisp inputs for a single Compute call. It is not safe
// for concurrent use and cannot be reused once computed.
type Simulation struct {
	system   *System
	inputs   map[string]float64
	computed bool
}

// Input sets a crisp value for the named input variable.
func (sim *Simulation) Input(name string, value float64) error {
	if sim.computed {
		return ErrConsumed
	}
	if _, ok := sim.system.inputs[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	sim.inputs[name] = value
	return nil
}

// Compute fuzzifies the bound inputs, runs the rule base and defuzzifies the
// aggregate by centroid.
func (sim *Simulation) Compute() (Result, error) {
	if sim.computed {
		return Result{}, ErrConsumed
	}
	in := make(Memberships, len(sim.system.order))
	for _, v := range sim.system.order {
		x, ok := sim.inputs[v.Name()]
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrMissingInput, v.Name())
		}
		in[v.Name()] = v.Fuzzify(x)
	}
	sim.computed = true

	inf := sim.system.engine.Infer(in)
	return Result{Value: Centroid(inf.Output), Inference: inf}, nil
}
