package fuzzy

import "errors"

var (
	ErrInvalidMembership = errors.New("invalid membership function")
	ErrInvalidUniverse   = errors.New("invalid universe")
	ErrDuplicateSet      = errors.New("duplicate fuzzy set")
	ErrUnknownVariable   = errors.New("unknown variable")
	ErrUnknownSet        = errors.New("unknown fuzzy set")
	ErrEmptyRule         = errors.New("rule has no antecedent")
	ErrInvalidWeight     = errors.New("rule weight out of [0,1]")
	ErrMissingInput      = errors.New("missing crisp input")
	ErrConsumed          = errors.New("simulation already computed")
)
