package animation

import (
	"math"

	"github.com/zeusync/hoopbot/internal/core/systems/physics"
)

// State of a shot animation.
type State uint8

const (
	StateFlying State = iota
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateFlying:
		return "flying"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Net sway timing.
const (
	NetSwayStart     = 1.0
	NetSwayDecay     = 0.05
	NetSwayAmplitude = 5.0
)

// Frame is what a renderer needs to draw one tick.
type Frame struct {
	Sample physics.Sample `json:"sample"`
	// NetSway is the horizontal offset of the bottom of the net strings.
	NetSway float64 `json:"net_sway"`
	// RobotArm is the arm angle; it drops to 0 once the ball leaves the hand.
	RobotArm float64 `json:"robot_arm"`
	State    State   `json:"state"`
	Swish    bool    `json:"swish,omitempty"`
}

// Shot drives one shot from release to landing. The physics stepping lives
// in the solver; Shot only adds the net timer and the state transitions.
type Shot struct {
	solver *physics.Solver
	made   bool
	angle  float64
	robotX float64

	state   State
	netTime float64
	swished bool
	last    physics.Sample
}

// NewShot wraps a fresh solver for one shot.
func NewShot(solver *physics.Solver, made bool, angle, robotX float64) *Shot {
	return &Shot{solver: solver, made: made, angle: angle, robotX: robotX, state: StateFlying}
}

func (s *Shot) State() State { return s.state }

// Swished reports whether the ball has dropped through the net.
func (s *Shot) Swished() bool { return s.swished }

// Last is the most recent sample.
func (s *Shot) Last() physics.Sample { return s.last }

// Tick advances one frame. It returns false once the shot has settled.
func (s *Shot) Tick() (Frame, bool) {
	if s.state == StateSettled {
		return Frame{}, false
	}

	sway := 0.0
	if s.netTime > 0 {
		sway = math.Sin(s.netTime*math.Pi) * NetSwayAmplitude
		s.netTime -= NetSwayDecay
	}

	sample, ok := s.solver.Advance()
	if !ok {
		s.state = StateSettled
		return Frame{}, false
	}
	s.last = sample

	frame := Frame{Sample: sample, NetSway: sway, State: StateFlying}
	if sample.X < s.robotX+50 {
		frame.RobotArm = s.angle
	}

	if s.made && s.netTime <= 0 && physics.InTarget(sample.Pos()) {
		s.netTime = NetSwayStart
		frame.Swish = !s.swished
		s.swished = true
	}

	if s.solver.Done() {
		s.state = StateSettled
		frame.State = StateSettled
	}
	return frame, true
}
