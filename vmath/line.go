package vmath

// VerticalLineGradient stands in for the undefined slope of a vertical line
const VerticalLineGradient = 1e5

// Line is an infinite 2D line in slope-intercept form with a fixed approach side.
// It is built from an anchor lying on the line and a reference point; the line runs
// perpendicular to the segment joining the two, and the side holding the reference
// point is recorded as the approach side.
type Line struct {
	gradient              float64
	yIntercept            float64
	gradientPerpendicular float64
	anchor                Vec2F
	secondary             Vec2F
	approachSide          bool
}

// NewLine builds the line through linePoint perpendicular to (linePoint - linePointPerpendicular)
func NewLine(linePoint, linePointPerpendicular Vec2F) Line {
	dx := linePoint.X - linePointPerpendicular.X
	dy := linePoint.Y - linePointPerpendicular.Y

	var l Line
	if dx == 0 {
		l.gradientPerpendicular = VerticalLineGradient
	} else {
		l.gradientPerpendicular = dy / dx
	}

	if l.gradientPerpendicular == 0 {
		l.gradient = VerticalLineGradient
	} else {
		l.gradient = -1 / l.gradientPerpendicular
	}

	l.yIntercept = linePoint.Y - l.gradient*linePoint.X
	l.anchor = linePoint
	l.secondary = V2FAdd(linePoint, Vec2F{1, l.gradient})

	l.approachSide = l.Side(linePointPerpendicular)
	return l
}

// Side classifies p into one of the two half-planes by the sign of the cross product
func (l Line) Side(p Vec2F) bool {
	return (p.X-l.anchor.X)*(l.secondary.Y-l.anchor.Y) > (p.Y-l.anchor.Y)*(l.secondary.X-l.anchor.X)
}

// HasCrossedLine reports whether p lies on the far side from the approach side
func (l Line) HasCrossedLine(p Vec2F) bool {
	return l.Side(p) != l.approachSide
}

// DistanceFromPoint returns the perpendicular distance from p to the line
func (l Line) DistanceFromPoint(p Vec2F) float64 {
	denom := l.gradient - l.gradientPerpendicular
	if denom == 0 {
		return V2FDist(p, l.anchor)
	}
	yInterceptPerpendicular := p.Y - l.gradientPerpendicular*p.X
	intersectX := (yInterceptPerpendicular - l.yIntercept) / denom
	intersectY := l.gradient*intersectX + l.yIntercept
	return V2FDist(p, Vec2F{intersectX, intersectY})
}

// Anchor returns the point the line was built through
func (l Line) Anchor() Vec2F {
	return l.anchor
}

// Direction returns a unit vector along the line
func (l Line) Direction() Vec2F {
	return V2FNormalize(Vec2F{1, l.gradient})
}

// Gradient returns the line slope, VerticalLineGradient for vertical lines
func (l Line) Gradient() float64 {
	return l.gradient
}
