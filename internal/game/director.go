package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zeusync/hoopbot/internal/core/events/bus"
	"github.com/zeusync/hoopbot/internal/core/fuzzy"
	"github.com/zeusync/hoopbot/internal/core/observability/log"
	"github.com/zeusync/hoopbot/internal/core/shot"
	"github.com/zeusync/hoopbot/internal/core/systems/animation"
	"github.com/zeusync/hoopbot/internal/core/systems/physics"
)

// Source is the event source of everything the director publishes.
const Source = "director"

// Options controls the presentation loop.
type Options struct {
	TickInterval time.Duration
	Pause        time.Duration
	// Shots stops Run after that many shots; 0 runs until the context ends.
	Shots int
	Seed  int64

	Distance shot.Range
	Angle    shot.Range
	Force    shot.Range
}

// Decided is the payload of bus.TypeShotDecided.
type Decided struct {
	Result   shot.Result  `json:"result"`
	Mode     string       `json:"mode"`
	RobotX   float64      `json:"robot_x"`
	Release  physics.Vec2 `json:"release"`
	Velocity physics.Vec2 `json:"velocity"`
}

// FrameEvent is the payload of bus.TypeShotFrame.
type FrameEvent struct {
	ShotID uuid.UUID `json:"shot_id"`
	animation.Frame
}

// Settled is the payload of bus.TypeShotSettled.
type Settled struct {
	Result  shot.Result  `json:"result"`
	Steps   int          `json:"steps"`
	Swished bool         `json:"swished"`
	Landing physics.Vec2 `json:"landing"`
}

// Director is the robot: it picks a shot, lets the rule base and the sampler
// decide it, then animates the flight frame by frame on the bus.
type Director struct {
	events    bus.EventBus
	logger    log.Log
	opts      Options
	generator *shot.Generator
	evaluator *shot.Evaluator
}

func NewDirector(system *fuzzy.System, events bus.EventBus, logger log.Log, opts Options) *Director {
	if logger == nil {
		logger = log.NewNop()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / physics.TickRate
	}
	return &Director{
		events:    events,
		logger:    logger,
		opts:      opts,
		generator: shot.NewGenerator(opts.Seed).WithRanges(opts.Distance, opts.Angle, opts.Force),
		evaluator: shot.NewEvaluator(system, shot.NewSampler(^opts.Seed), logger),
	}
}

// Run plays random shots until ctx is done or the shot limit is reached.
// A cancelled context is not an error.
func (d *Director) Run(ctx context.Context) error {
	d.logger.Info("director started",
		log.Duration("tick", d.opts.TickInterval),
		log.Duration("pause", d.opts.Pause),
		log.Int("shots", d.opts.Shots),
	)

	for played := 0; d.opts.Shots == 0 || played < d.opts.Shots; played++ {
		if played > 0 && !sleep(ctx, d.opts.Pause) {
			break
		}
		if _, err := d.Play(ctx, d.generator.Next()); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			return err
		}
	}

	m := d.events.GetMetrics()
	d.logger.Info("director stopped",
		log.Uint64("published", m.Published),
		log.Uint64("delivered", m.DeliveredHandlers),
		log.Uint64("errors", m.Errors),
	)
	return nil
}

// Play decides and animates one shot, one frame per tick.
func (d *Director) Play(ctx context.Context, p shot.Params) (Settled, error) {
	res, err := d.evaluator.Shoot(p)
	if err != nil {
		return Settled{}, errors.Wrap(err, "shoot")
	}
	ctx = log.WithShotID(ctx, res.ID.String())
	logger := d.logger.WithContext(ctx)

	robotX := physics.RobotX(res.Params.Distance)
	solver := physics.NewSolver(res.Made, physics.ReleasePoint(res.Params.Distance), res.Params.Force, res.Params.Angle)
	anim := animation.NewShot(solver, res.Made, res.Params.Angle, robotX)

	if err = d.publish(bus.TypeShotDecided, Decided{
		Result:   res,
		Mode:     solver.Mode().String(),
		RobotX:   robotX,
		Release:  solver.Start(),
		Velocity: solver.Velocity(),
	}); err != nil {
		return Settled{}, err
	}

	ticker := time.NewTicker(d.opts.TickInterval)
	defer ticker.Stop()

	for {
		frame, ok := anim.Tick()
		if !ok {
			break
		}
		if err = d.publish(bus.TypeShotFrame, FrameEvent{ShotID: res.ID, Frame: frame}); err != nil {
			return Settled{}, err
		}
		if frame.Swish {
			logger.Debug("swish", log.Int("step", frame.Sample.Step))
		}
		if frame.State == animation.StateSettled {
			break
		}

		select {
		case <-ctx.Done():
			logger.Warn("shot interrupted", log.Int("step", frame.Sample.Step))
			return Settled{}, ctx.Err()
		case <-ticker.C:
		}
	}

	settled := Settled{
		Result:  res,
		Steps:   anim.Last().Step,
		Swished: anim.Swished(),
		Landing: anim.Last().Pos(),
	}
	if err = d.publish(bus.TypeShotSettled, settled); err != nil {
		return Settled{}, err
	}
	logger.Info("shot settled",
		log.String("outcome", res.Outcome()),
		log.Int("steps", settled.Steps),
		log.Bool("swished", settled.Swished),
	)
	return settled, nil
}

func (d *Director) publish(typ string, data any) error {
	if d.events == nil {
		return nil
	}
	return errors.Wrapf(d.events.Publish(bus.NewEvent(typ, Source, data)), "publish %s", typ)
}

func sleep(ctx context.Context, dur time.Duration) bool {
	if dur <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(dur)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
