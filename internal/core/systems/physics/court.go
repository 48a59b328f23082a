package physics

// Court geometry in pixels, one time unit per rendered frame.
const (
	TickRate = 60

	CourtWidth  = 1024.0
	CourtHeight = 600.0
	FloorY      = CourtHeight - 80

	// Gravity is added to the vertical velocity once per frame.
	Gravity = 0.3

	// BoundsMargin is how far the ball may leave the court sideways.
	BoundsMargin = 20.0

	RobotY = CourtHeight - 130

	BasketX = CourtWidth - 100
	BasketY = CourtHeight - 350

	// The rim centre is the point a made shot must pass through.
	TargetX = BasketX - 25
	TargetY = BasketY + 72

	// TargetTolerance is the half-size of the box around the rim centre that
	// counts as the ball dropping through the net.
	TargetTolerance = 10.0

	PixelsPerMetre = CourtWidth * 0.7 / 22

	// robotStandOff separates the robot from the basket at zero distance.
	robotStandOff = 150.0
	releaseOffset = 20.0

	BaseSpeed    = 8.0
	SpeedPerUnit = 0.7
)

// Target is the rim centre.
var Target = Vec2{X: TargetX, Y: TargetY}

// RobotX returns the robot's left edge for a shot from distance metres.
func RobotX(distance float64) float64 {
	return BasketX - distance*PixelsPerMetre - robotStandOff
}

// ReleasePoint is where the ball leaves the robot's hand.
func ReleasePoint(distance float64) Vec2 {
	return Vec2{X: RobotX(distance) + releaseOffset, Y: RobotY}
}

// LaunchSpeed converts applied force into initial speed.
func LaunchSpeed(force float64) float64 {
	return BaseSpeed + SpeedPerUnit*force
}

// Landed reports whether p has reached the floor or left the court sideways.
func Landed(p Vec2) bool {
	return p.Y >= FloorY || p.X > CourtWidth+BoundsMargin || p.X < -BoundsMargin
}

// InTarget reports whether p is inside the scoring box around the rim centre.
func InTarget(p Vec2) bool {
	return p.X > TargetX-TargetTolerance && p.X < TargetX+TargetTolerance &&
		p.Y > TargetY-TargetTolerance && p.Y < TargetY+TargetTolerance
}
