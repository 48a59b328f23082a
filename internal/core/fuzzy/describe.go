package fuzzy

// Description is a serialisable view of a System, used to print the rule base.
type Description struct {
	Inputs []VariableDescription `yaml:"inputs" json:"inputs"`
	Output VariableDescription   `yaml:"output" json:"output"`
	Rules  []Rule                `yaml:"rules" json:"rules"`
}

type VariableDescription struct {
	Name string           `yaml:"name" json:"name"`
	Lo   int              `yaml:"lo" json:"lo"`
	Hi   int              `yaml:"hi" json:"hi"`
	Sets []SetDescription `yaml:"sets" json:"sets"`
}

type SetDescription struct {
	Name   string    `yaml:"name" json:"name"`
	Kind   string    `yaml:"kind" json:"kind"`
	Params []float64 `yaml:"params,flow" json:"params"`
}

// Describe returns the variables in declaration order and the rules in
// evaluation order.
func (s *System) Describe() Description {
	d := Description{Output: describeVariable(s.output), Rules: s.Rules()}
	for _, v := range s.Inputs() {
		d.Inputs = append(d.Inputs, describeVariable(v))
	}
	return d
}

func describeVariable(v *Variable) VariableDescription {
	out := VariableDescription{Name: v.Name(), Lo: v.Lo(), Hi: v.Hi()}
	for _, set := range v.Sets() {
		out.Sets = append(out.Sets, SetDescription{
			Name:   set.Name,
			Kind:   set.Fn.Kind().String(),
			Params: set.Fn.Params(),
		})
	}
	return out
}
