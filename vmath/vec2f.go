package vmath

import (
	"math"
)

// Vec2F is a float64 2D vector for world-space navigation math
type Vec2F struct {
	X, Y float64
}

func V2F(x, y float64) Vec2F {
	return Vec2F{X: x, Y: y}
}

func V2FAdd(a, b Vec2F) Vec2F {
	return Vec2F{a.X + b.X, a.Y + b.Y}
}

func V2FSub(a, b Vec2F) Vec2F {
	return Vec2F{a.X - b.X, a.Y - b.Y}
}

func V2FScale(v Vec2F, s float64) Vec2F {
	return Vec2F{v.X * s, v.Y * s}
}

func V2FDot(a, b Vec2F) float64 {
	return a.X*b.X + a.Y*b.Y
}

// V2FCross returns the z component of the 3D cross product of a and b
func V2FCross(a, b Vec2F) float64 {
	return a.X*b.Y - a.Y*b.X
}

func V2FMagSq(v Vec2F) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2FMag(v Vec2F) float64 {
	return math.Sqrt(V2FMagSq(v))
}

// V2FDist returns Euclidean distance between a and b
func V2FDist(a, b Vec2F) float64 {
	return V2FMag(V2FSub(a, b))
}

// V2FNormalize returns unit vector, zero-safe
func V2FNormalize(v Vec2F) Vec2F {
	mag := V2FMag(v)
	if mag == 0 {
		return Vec2F{}
	}
	inv := 1.0 / mag
	return Vec2F{v.X * inv, v.Y * inv}
}

// V2FFromAngle returns unit vector for heading in radians (0 = +X, counter-clockwise)
func V2FFromAngle(angle float64) Vec2F {
	return Vec2F{math.Cos(angle), math.Sin(angle)}
}

// V2FAngle returns heading of v in radians, range (-π, π]
func V2FAngle(v Vec2F) float64 {
	return math.Atan2(v.Y, v.X)
}

// WrapAngle maps an angle into (-π, π]
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// RotateToward turns heading toward target by at most maxStep radians, never overshooting
func RotateToward(heading, target, maxStep float64) float64 {
	delta := WrapAngle(target - heading)
	if math.Abs(delta) <= maxStep {
		return WrapAngle(target)
	}
	if delta > 0 {
		return WrapAngle(heading + maxStep)
	}
	return WrapAngle(heading - maxStep)
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
