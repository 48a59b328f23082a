package physics

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCourtGeometry(t *testing.T) {
	require.Equal(t, 520.0, FloorY)
	require.Equal(t, Vec2{X: 899, Y: 322}, Target)
	require.InDelta(t, 32.5818, PixelsPerMetre, 1e-3)
	require.InDelta(t, 924-6*PixelsPerMetre-150+20, ReleasePoint(6).X, 1e-9)
	require.Equal(t, 470.0, ReleasePoint(6).Y)
	require.Equal(t, 8.0, LaunchSpeed(0))
	require.InDelta(t, 29.0, LaunchSpeed(30), 1e-12)
}

func TestLandedBoundaries(t *testing.T) {
	require.True(t, Landed(Vec2{X: 500, Y: FloorY}))
	require.False(t, Landed(Vec2{X: 500, Y: FloorY - 1e-9}))
	require.False(t, Landed(Vec2{X: -BoundsMargin, Y: 300}))
	require.True(t, Landed(Vec2{X: -BoundsMargin - 1e-9, Y: 300}))
	require.False(t, Landed(Vec2{X: CourtWidth + BoundsMargin, Y: 300}))
	require.True(t, Landed(Vec2{X: CourtWidth + BoundsMargin + 1e-9, Y: 300}))
}

func TestFreeFall(t *testing.T) {
	t.Run("FirstStep", func(t *testing.T) {
		start := Vec2{X: 100, Y: 470}
		s := NewFreeFall(start, 10, 45)
		v := Polar(10, 45)
		require.Less(t, v.Y, 0.0)

		sample, ok := s.Advance()
		require.True(t, ok)
		require.Equal(t, 1, sample.Step)
		require.InDelta(t, start.X+v.X, sample.X, 1e-9)
		require.InDelta(t, start.Y+v.Y+Gravity, sample.Y, 1e-9)
	})

	t.Run("Terminates", func(t *testing.T) {
		for d := 0.0; d <= 25; d += 2.5 {
			for a := 0.0; a <= 90; a += 5 {
				for f := 0.0; f <= 30; f += 5 {
					s := NewSolver(false, ReleasePoint(d), f, a)
					require.Equal(t, ModeFreeFall, s.Mode())

					prev := 0
					var last Sample
					for sample := range s.Samples() {
						require.Equal(t, prev+1, sample.Step)
						prev = sample.Step
						last = sample
					}
					require.Greater(t, prev, 0)
					require.Less(t, prev, MaxSteps, "d=%v a=%v f=%v", d, a, f)
					require.True(t, Landed(last.Pos()))
				}
			}
		}
	})

	t.Run("StopsAfterLanding", func(t *testing.T) {
		s := NewFreeFall(Vec2{X: 500, Y: FloorY - 0.2}, 1, 0)
		_, ok := s.Advance()
		require.True(t, ok)
		require.True(t, s.Done())
		_, ok = s.Advance()
		require.False(t, ok)
	})
}

func TestFlightTime(t *testing.T) {
	start := Vec2{X: 100, Y: 470}
	require.InDelta(t, 799/(20*math.Cos(math.Pi/4)), FlightTime(start, Target, 20, 45), 1e-9)
	require.Equal(t, FallbackFlightTime, FlightTime(start, Target, 20, 90))
	require.Equal(t, FallbackFlightTime, FlightTime(Vec2{X: 950, Y: 470}, Target, 20, 45))
	require.Equal(t, FallbackFlightTime, FlightTime(start, Target, 0, 45))
}

func TestTargetHit(t *testing.T) {
	t.Run("PassesThroughTarget", func(t *testing.T) {
		for d := 1.0; d <= 22; d += 3 {
			for a := 10.0; a <= 80; a += 5 {
				for f := 0.0; f <= 30; f += 5 {
					s := NewSolver(true, ReleasePoint(d), f, a)
					require.Equal(t, ModeTargetHit, s.Mode())
					n := s.TargetFrame()
					require.GreaterOrEqual(t, n, 1)

					var hit *Sample
					for sample := range s.Samples() {
						if sample.Step == n {
							hit = &sample
						}
					}
					require.NotNil(t, hit, "d=%v a=%v f=%v frame %d never reached", d, a, f, n)
					require.Less(t, hit.Pos().Distance(Target), 2.0, "d=%v a=%v f=%v", d, a, f)
					require.True(t, InTarget(hit.Pos()))
				}
			}
		}
	})

	t.Run("VerticalFallback", func(t *testing.T) {
		start := ReleasePoint(3)
		vel, n := SolveTarget(start, Target, 20, 90)
		require.Equal(t, 2, n)
		require.InDelta(t, (Target.X-start.X)/2, vel.X, 1e-9)

		s := NewTargetHit(start, Target, 20, 90)
		first, _ := s.Advance()
		second, _ := s.Advance()
		require.Equal(t, 1, first.Step)
		require.InDelta(t, Target.X, second.X, 1e-9)
		require.InDelta(t, Target.Y, second.Y, 1e-9)
	})
}

func TestSamplesRestartable(t *testing.T) {
	s := NewSolver(false, ReleasePoint(8), 15, 45)
	first := slices.Collect(s.Samples())
	second := slices.Collect(s.Samples())
	require.Equal(t, first, second)

	var stepped []Sample
	for {
		sample, ok := s.Advance()
		if !ok {
			break
		}
		stepped = append(stepped, sample)
	}
	require.Equal(t, first, stepped)
	require.Equal(t, first, slices.Collect(s.Samples()))
}

func TestLongestShotReleasedOutsideBounds(t *testing.T) {
	start := ReleasePoint(25)
	require.Less(t, start.X, -BoundsMargin)

	s := NewSolver(true, start, 15, 89)
	require.Greater(t, s.TargetFrame(), 1)

	sample, ok := s.Advance()
	require.True(t, ok)
	require.Equal(t, 1, sample.Step)
	require.True(t, s.Done())
	require.True(t, Landed(sample.Pos()))

	s = NewSolver(true, start, 15, 45)
	for !s.Done() {
		sample, _ = s.Advance()
	}
	require.GreaterOrEqual(t, sample.Step, s.TargetFrame())
}
