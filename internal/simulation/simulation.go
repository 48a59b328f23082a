package simulation

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/hoopbot/internal/core/fuzzy"
	"github.com/zeusync/hoopbot/internal/core/observability/log"
	"github.com/zeusync/hoopbot/internal/core/shot"
	"github.com/zeusync/hoopbot/internal/core/systems/physics"
	"github.com/zeusync/hoopbot/pkg/concurrent"
	"github.com/zeusync/hoopbot/pkg/sequence"
)

// Options configures a batch run.
type Options struct {
	Shots   int
	Workers int
	Seed    int64

	Distance shot.Range
	Angle    shot.Range
	Force    shot.Range
}

// Outcome is one simulated shot with its flight summary.
type Outcome struct {
	Result shot.Result
	Steps  int
	// ClosestToTarget is the smallest distance between the ball and the rim
	// centre over the whole flight, in pixels.
	ClosestToTarget float64
	Landing         physics.Vec2
}

// BandStats aggregates outcomes in one probability band.
type BandStats struct {
	Shots      int
	Makes      int
	MeanChance float64
}

// MakeRate is the empirical success percentage.
func (b BandStats) MakeRate() float64 {
	if b.Shots == 0 {
		return 0
	}
	return 100 * float64(b.Makes) / float64(b.Shots)
}

// Report summarises a batch.
type Report struct {
	Total    BandStats
	Bands    map[shot.Band]BandStats
	MaxSteps int
	// TargetMisses counts made shots whose flight never came within
	// physics.TargetTolerance of the rim centre.
	TargetMisses int
	Elapsed      time.Duration
}

// SeedFor derives the seed of shot index from the run seed. The derivation
// only depends on (seed, index), so results do not depend on the worker count.
func SeedFor(seed int64, index int) int64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))
	return int64(xxhash.Sum64(buf[:]))
}

// Runner evaluates batches of random shots against a shared rule base.
type Runner struct {
	system *fuzzy.System
	logger log.Log
}

func NewRunner(system *fuzzy.System, logger log.Log) *Runner {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Runner{system: system, logger: logger}
}

// Simulate runs one shot end to end. Every call owns its generator, sampler
// and solver; only the rule base is shared.
func (r *Runner) Simulate(opts Options, index int) (Outcome, error) {
	seed := SeedFor(opts.Seed, index)
	params := shot.NewGenerator(seed).WithRanges(opts.Distance, opts.Angle, opts.Force).Next()

	res, err := shot.NewEvaluator(r.system, shot.NewSampler(^seed), log.NewNop()).Shoot(params)
	if err != nil {
		return Outcome{}, err
	}

	solver := physics.NewSolver(res.Made, physics.ReleasePoint(params.Distance), params.Force, params.Angle)
	out := Outcome{Result: res, ClosestToTarget: solver.Start().Distance(physics.Target)}
	for sample := range solver.Samples() {
		out.Steps = sample.Step
		out.Landing = sample.Pos()
		if d := sample.Pos().Distance(physics.Target); d < out.ClosestToTarget {
			out.ClosestToTarget = d
		}
	}
	return out, nil
}

// Run simulates opts.Shots shots on opts.Workers goroutines.
func (r *Runner) Run(ctx context.Context, opts Options) ([]Outcome, Report, error) {
	start := time.Now()
	outcomes, err := concurrent.Map(ctx, opts.Shots, opts.Workers, func(_ context.Context, i int) (Outcome, error) {
		return r.Simulate(opts, i)
	})
	if err != nil {
		return nil, Report{}, err
	}

	report := Summarize(outcomes)
	report.Elapsed = time.Since(start)
	r.logger.Info("simulation finished",
		log.Int("shots", report.Total.Shots),
		log.Int("workers", opts.Workers),
		log.Float64("make_rate", report.Total.MakeRate()),
		log.Float64("mean_chance", report.Total.MeanChance),
		log.Int("target_misses", report.TargetMisses),
		log.Duration("elapsed", report.Elapsed),
	)
	return outcomes, report, nil
}

// Summarize groups outcomes by band.
func Summarize(outcomes []Outcome) Report {
	it := sequence.From(outcomes)
	report := Report{
		Total: stats(it),
		Bands: make(map[shot.Band]BandStats, 3),
	}
	for band, group := range sequence.GroupBy(it, func(o Outcome) shot.Band { return o.Result.Band }) {
		report.Bands[band] = stats(sequence.From(group))
	}
	report.MaxSteps = sequence.Reduce(it, 0, func(acc int, o Outcome) int { return max(acc, o.Steps) })
	report.TargetMisses = it.Filter(func(o Outcome) bool {
		return o.Result.Made && o.ClosestToTarget >= physics.TargetTolerance
	}).Count()
	return report
}

func stats(it *sequence.Iterator[Outcome]) BandStats {
	s := sequence.Reduce(it, BandStats{}, func(acc BandStats, o Outcome) BandStats {
		acc.Shots++
		if o.Result.Made {
			acc.Makes++
		}
		acc.MeanChance += o.Result.Chance
		return acc
	})
	if s.Shots > 0 {
		s.MeanChance /= float64(s.Shots)
	}
	return s
}
