package shot

import (
	"sync"

	"github.com/zeusync/hoopbot/internal/core/fuzzy"
)

// Variable names.
const (
	VarDistance = "distance"
	VarAngle    = "angle"
	VarForce    = "force"
	VarChance   = "chance"
)

// Set names.
const (
	DistanceVeryShort  = "very_short"
	DistanceShortIdeal = "short_ideal"
	DistanceMedium     = "medium"
	DistanceLong       = "long"

	AngleLow         = "low"
	AngleMediumIdeal = "medium_ideal"
	AngleHigh        = "high"

	ForceWeak   = "weak"
	ForceIdeal  = "ideal"
	ForceStrong = "strong"

	ChanceMinimal  = "minimal"
	ChanceLow      = "low"
	ChanceMedium   = "medium"
	ChanceHigh     = "high"
	ChanceVeryHigh = "very_high"
)

// Universe bounds.
const (
	MaxDistance = 25
	MaxAngle    = 90
	MaxForce    = 30
	MaxChance   = 100
)

func distance(set string) fuzzy.Term { return fuzzy.Is(VarDistance, set) }
func angle(set string) fuzzy.Term    { return fuzzy.Is(VarAngle, set) }
func force(set string) fuzzy.Term    { return fuzzy.Is(VarForce, set) }
func chance(set string) fuzzy.Term   { return fuzzy.Is(VarChance, set) }

// Rules is the shot rule table, in evaluation order.
func Rules() []fuzzy.Rule {
	return []fuzzy.Rule{
		fuzzy.NewRule(chance(ChanceVeryHigh), distance(DistanceShortIdeal), angle(AngleMediumIdeal), force(ForceIdeal)),
		fuzzy.NewRule(chance(ChanceVeryHigh), distance(DistanceVeryShort), angle(AngleLow), force(ForceWeak)),
		fuzzy.NewRule(chance(ChanceHigh), distance(DistanceShortIdeal), angle(AngleMediumIdeal), force(ForceWeak)),
		fuzzy.NewRule(chance(ChanceHigh), distance(DistanceMedium), angle(AngleMediumIdeal), force(ForceIdeal)),
		fuzzy.NewRule(chance(ChanceMedium), distance(DistanceLong), angle(AngleMediumIdeal), force(ForceStrong)),
		fuzzy.NewRule(chance(ChanceMedium), distance(DistanceMedium), angle(AngleMediumIdeal), force(ForceStrong)),
		fuzzy.NewRule(chance(ChanceLow), force(ForceStrong), angle(AngleLow)),
		fuzzy.NewRule(chance(ChanceLow), distance(DistanceLong), force(ForceIdeal)),
		fuzzy.NewRule(chance(ChanceLow), angle(AngleHigh)),
		fuzzy.NewRule(chance(ChanceMinimal), distance(DistanceLong), force(ForceWeak)),
		fuzzy.NewRule(chance(ChanceMinimal), force(ForceStrong), distance(DistanceVeryShort)),
	}
}

// NewKnowledgeBase builds the shot rule base from scratch.
func NewKnowledgeBase() (*fuzzy.System, error) {
	dist, err := fuzzy.NewVariable(VarDistance, 0, MaxDistance,
		fuzzy.Tri(DistanceVeryShort, 0, 1, 4),
		fuzzy.Tri(DistanceShortIdeal, 3, 6, 9),
		fuzzy.Tri(DistanceMedium, 8, 13, 17),
		fuzzy.Tri(DistanceLong, 16, 20, 25),
	)
	if err != nil {
		return nil, err
	}
	ang, err := fuzzy.NewVariable(VarAngle, 0, MaxAngle,
		fuzzy.Tri(AngleLow, 0, 20, 35),
		fuzzy.Tri(AngleMediumIdeal, 30, 48, 60),
		fuzzy.Tri(AngleHigh, 55, 75, 90),
	)
	if err != nil {
		return nil, err
	}
	frc, err := fuzzy.NewVariable(VarForce, 0, MaxForce,
		fuzzy.Tri(ForceWeak, 0, 5, 12),
		fuzzy.Gauss(ForceIdeal, 18, 4),
		fuzzy.Tri(ForceStrong, 20, 25, 30),
	)
	if err != nil {
		return nil, err
	}
	out, err := fuzzy.NewVariable(VarChance, 0, MaxChance,
		fuzzy.Tri(ChanceMinimal, 0, 0, 25),
		fuzzy.Tri(ChanceLow, 15, 30, 45),
		fuzzy.Tri(ChanceMedium, 40, 55, 70),
		fuzzy.Tri(ChanceHigh, 65, 80, 90),
		fuzzy.Tri(ChanceVeryHigh, 85, 100, 100),
	)
	if err != nil {
		return nil, err
	}

	return fuzzy.NewSystem(out, Rules(), dist, ang, frc)
}

var (
	kbOnce sync.Once
	kb     *fuzzy.System
)

// KnowledgeBase returns the process-wide shot rule base. It is built on first
// use and shared read-only afterwards.
func KnowledgeBase() *fuzzy.System {
	kbOnce.Do(func() {
		sys, err := NewKnowledgeBase()
		if err != nil {
			panic(err)
		}
		kb = sys
	})
	return kb
}
