package fuzzy

import (
	"fmt"
	"strings"
)

// Term names one fuzzy set of one variable.
type Term struct {
	Variable string `json:"variable" yaml:"variable"`
	Set      string `json:"set" yaml:"set"`
}

// Is builds a Term.
func Is(variable, set string) Term {
	return Term{Variable: variable, Set: set}
}

func (t Term) String() string { return t.Variable + "[" + t.Set + "]" }

// Rule fires its Consequent with the fuzzy AND (minimum) of its Antecedent terms.
// Weight scales the firing strength; a weight of 0 disables the rule, so rules
// built as literals must set it explicitly.
type Rule struct {
	Antecedent []Term  `json:"if" yaml:"if"`
	Consequent Term    `json:"then" yaml:"then"`
	Weight     float64 `json:"weight" yaml:"weight"`
}

// NewRule returns a rule with weight 1.
func NewRule(consequent Term, antecedent ...Term) Rule {
	return Rule{Antecedent: antecedent, Consequent: consequent, Weight: 1}
}

func (r Rule) String() string {
	parts := make([]string, len(r.Antecedent))
	for i, t := range r.Antecedent {
		parts[i] = t.String()
	}
	return "IF " + strings.Join(parts, " AND ") + " THEN " + r.Consequent.String()
}

// Strength is the antecedent degree scaled by the weight. A term whose
// variable or set is absent from in contributes 0, which disables the rule.
func (r Rule) Strength(in Memberships) float64 {
	if len(r.Antecedent) == 0 {
		return 0
	}
	degree := 1.0
	for _, t := range r.Antecedent {
		d := in.Degree(t)
		if d < degree {
			degree = d
		}
	}
	return degree * r.Weight
}

func (r Rule) validate(inputs map[string]*Variable, output *Variable) error {
	if len(r.Antecedent) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyRule, r)
	}
	for _, t := range r.Antecedent {
		v, ok := inputs[t.Variable]
		if !ok {
			return fmt.Errorf("%w: %q in %s", ErrUnknownVariable, t.Variable, r)
		}
		if _, ok = v.Set(t.Set); !ok {
			return fmt.Errorf("%w: %s in %s", ErrUnknownSet, t, r)
		}
	}
	if r.Consequent.Variable != output.Name() {
		return fmt.Errorf("%w: consequent %q in %s", ErrUnknownVariable, r.Consequent.Variable, r)
	}
	if _, ok := output.Set(r.Consequent.Set); !ok {
		return fmt.Errorf("%w: %s in %s", ErrUnknownSet, r.Consequent, r)
	}
	if r.Weight < 0 || r.Weight > 1 {
		return fmt.Errorf("%w: %g in %s", ErrInvalidWeight, r.Weight, r)
	}
	return nil
}

// Memberships holds fuzzified inputs: variable -> set -> degree.
type Memberships map[string]map[string]float64

// Degree returns the degree for t, or 0 when t is unknown.
func (m Memberships) Degree(t Term) float64 {
	sets, ok := m[t.Variable]
	if !ok {
		return 0
	}
	return sets[t.Set]
}
