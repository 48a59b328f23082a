package shot

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/hoopbot/internal/core/fuzzy"
	"github.com/zeusync/hoopbot/internal/core/observability/log"
)

// Result is the decision for one shot.
type Result struct {
	ID     uuid.UUID `json:"id"`
	Params Params    `json:"params"`
	Chance float64   `json:"chance"`
	Made   bool      `json:"made"`
	Band   Band      `json:"band"`
}

func (r Result) Outcome() string {
	if r.Made {
		return "make"
	}
	return "miss"
}

// Evaluator runs the rule base and the sampler for one shot at a time.
// The rule base is shared; the sampler is owned, so an Evaluator must not be
// used from more than one goroutine.
type Evaluator struct {
	system  *fuzzy.System
	sampler *Sampler
	logger  log.Log
}

func NewEvaluator(system *fuzzy.System, sampler *Sampler, logger log.Log) *Evaluator {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Evaluator{system: system, sampler: sampler, logger: logger}
}

// Chance computes the success probability in percent for p. Every call binds
// its inputs to a new simulation.
func (e *Evaluator) Chance(p Params) (fuzzy.Result, error) {
	sim := e.system.NewSimulation()
	for name, v := range map[string]float64{
		VarDistance: p.Distance,
		VarAngle:    p.Angle,
		VarForce:    p.Force,
	} {
		if err := sim.Input(name, v); err != nil {
			return fuzzy.Result{}, err
		}
	}
	res, err := sim.Compute()
	if err != nil {
		return fuzzy.Result{}, fmt.Errorf("compute chance for %s: %w", p, err)
	}
	return res, nil
}

// Shoot evaluates the chance and samples the outcome.
func (e *Evaluator) Shoot(p Params) (Result, error) {
	p = NewParams(p.Distance, p.Angle, p.Force)
	inf, err := e.Chance(p)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ID:     uuid.New(),
		Params: p,
		Chance: inf.Value,
		Made:   e.sampler.Decide(inf.Value),
		Band:   BandOf(inf.Value),
	}

	logger := e.logger.With(log.String("shot_id", res.ID.String()))
	for _, a := range inf.Activations {
		if a.Strength > 0 {
			logger.Debug("rule fired",
				log.Int("rule", a.Rule+1),
				log.String("then", a.Consequent.Set),
				log.Float64("strength", a.Strength),
			)
		}
	}
	logger.Info("shot decided",
		log.Float64("distance", p.Distance),
		log.Float64("angle", p.Angle),
		log.Float64("force", p.Force),
		log.Float64("chance", res.Chance),
		log.Stringer("band", res.Band),
		log.String("outcome", res.Outcome()),
	)

	return res, nil
}
