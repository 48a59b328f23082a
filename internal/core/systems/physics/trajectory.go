package physics

import (
	"iter"
	"math"
)

// Mode selects how the launch velocity is chosen.
type Mode uint8

const (
	// ModeFreeFall launches along the shot's own angle and speed.
	ModeFreeFall Mode = iota
	// ModeTargetHit solves for the velocity that reaches the rim centre.
	ModeTargetHit
)

func (m Mode) String() string {
	switch m {
	case ModeFreeFall:
		return "free_fall"
	case ModeTargetHit:
		return "target_hit"
	default:
		return "unknown"
	}
}

const (
	// MaxSteps bounds every trajectory regardless of launch conditions.
	MaxSteps = 10_000
	// FallbackFlightTime replaces an undefined or non-positive flight time.
	FallbackFlightTime = 1.5

	minCos = 1e-9
)

// Sample is the ball position after Step frames.
type Sample struct {
	Step int     `json:"step"`
	Time float64 `json:"t"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (s Sample) Pos() Vec2 { return Vec2{X: s.X, Y: s.Y} }

// Solver steps one ball flight. It carries no state between shots; create a
// new Solver for every shot.
type Solver struct {
	mode    Mode
	start   Vec2
	initVel Vec2
	frames  int

	pos  Vec2
	vel  Vec2
	step int
	done bool
}

// NewSolver picks ModeTargetHit for a made shot and ModeFreeFall otherwise.
func NewSolver(made bool, start Vec2, force, angle float64) *Solver {
	speed := LaunchSpeed(force)
	if made {
		return NewTargetHit(start, Target, speed, angle)
	}
	return NewFreeFall(start, speed, angle)
}

// NewFreeFall launches at speed along angle degrees above the horizontal.
func NewFreeFall(start Vec2, speed, angle float64) *Solver {
	return newSolver(ModeFreeFall, start, Polar(speed, angle), 0)
}

// NewTargetHit launches so that the ball is at target after the solved
// number of frames.
func NewTargetHit(start, target Vec2, speed, angle float64) *Solver {
	vel, frames := SolveTarget(start, target, speed, angle)
	return newSolver(ModeTargetHit, start, vel, frames)
}

func newSolver(mode Mode, start, vel Vec2, frames int) *Solver {
	return &Solver{mode: mode, start: start, initVel: vel, frames: frames, pos: start, vel: vel}
}

// FlightTime estimates how long the shot would take to cover the horizontal
// gap at its own speed and angle: (target.X-start.X) / (speed*cos(angle)).
// Non-positive or undefined estimates become FallbackFlightTime.
func FlightTime(start, target Vec2, speed, angle float64) float64 {
	vx := speed * math.Cos(angle*math.Pi/180)
	if math.Abs(vx) < minCos {
		return FallbackFlightTime
	}
	t := (target.X - start.X) / vx
	if t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return FallbackFlightTime
	}
	return t
}

// SolveTarget returns the launch velocity and the frame at which the ball
// reaches target. The flight time is rounded to whole frames since samples
// only exist at frame boundaries. Gravity is applied before each move, which
// adds g*n/2 of drop by frame n on top of the g*n^2/2 of the exact parabola.
func SolveTarget(start, target Vec2, speed, angle float64) (Vec2, int) {
	n := int(math.Round(FlightTime(start, target, speed, angle)))
	if n < 1 {
		n = 1
	}
	t := float64(n)
	d := target.Sub(start)
	return Vec2{
		X: d.X / t,
		Y: (d.Y-0.5*Gravity*t*t)/t - 0.5*Gravity,
	}, n
}

func (s *Solver) Mode() Mode { return s.mode }

// Velocity is the launch velocity.
func (s *Solver) Velocity() Vec2 { return s.initVel }

func (s *Solver) Start() Vec2 { return s.start }

// TargetFrame is the frame at which a ModeTargetHit shot passes the target,
// or 0 for free fall.
func (s *Solver) TargetFrame() int { return s.frames }

// Done reports whether the ball has landed or left the court.
func (s *Solver) Done() bool { return s.done }

// Advance moves the ball by one frame. It returns false once the flight is
// over; the sample that lands is still returned with true.
func (s *Solver) Advance() (Sample, bool) {
	if s.done {
		return Sample{}, false
	}
	s.vel.Y += Gravity
	s.pos = s.pos.Add(s.vel)
	s.step++

	if Landed(s.pos) || s.step >= MaxSteps {
		s.done = true
	}
	return Sample{Step: s.step, Time: float64(s.step), X: s.pos.X, Y: s.pos.Y}, true
}

// Samples replays the flight from launch. Each range over the sequence starts
// again from the initial conditions and does not disturb Advance.
func (s *Solver) Samples() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		replay := newSolver(s.mode, s.start, s.initVel, s.frames)
		for {
			sample, ok := replay.Advance()
			if !ok || !yield(sample) {
				return
			}
		}
	}
}
