package physics

import "math"

// Vec2 is a point or velocity in screen space: x grows right, y grows down.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Distance(o Vec2) float64 { return Distance2(v.X, v.Y, o.X, o.Y) }

// Distance2 computes Euclidean distance between two 2D points.
func Distance2(x1, y1, x2, y2 float64) float64 { return math.Hypot(x2-x1, y2-y1) }

// Polar returns the launch velocity for speed and an elevation angle in
// degrees. Elevation points up, so the y component is negated.
func Polar(speed, degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	return Vec2{X: speed * math.Cos(rad), Y: -speed * math.Sin(rad)}
}
