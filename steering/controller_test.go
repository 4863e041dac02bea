package steering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/vmath"
)

const tick = 0.02

// runUntilArrived advances c until Arrived or maxTicks, returning ticks used
func runUntilArrived(c *Controller, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if c.State() == Arrived {
			return i
		}
		c.Advance(tick)
	}
	return maxTicks
}

func TestControllerStraightPathArrives(t *testing.T) {
	c := NewController(DefaultParams(), Pose{})
	waypoints := []vmath.Vec2F{vmath.V2F(10, 0), vmath.V2F(20, 0), vmath.V2F(30, 0)}
	c.SetPath(navigation.NewPath(waypoints, vmath.V2F(0, 0), 1, 5))
	require.Equal(t, Following, c.State())

	sawDecelerating := false
	for i := 0; i < 3000 && c.State() != Arrived; i++ {
		c.Advance(tick)
		if c.State() == Decelerating {
			sawDecelerating = true
			assert.Equal(t, 2, c.Index())
		}
	}

	require.Equal(t, Arrived, c.State())
	assert.True(t, sawDecelerating)
	pos := c.Pose().Position
	assert.InDelta(t, 30, pos.X, 0.15)
	assert.InDelta(t, 0, pos.Y, 1e-9)
	assert.Zero(t, c.SpeedFactor())
}

func TestControllerSpeedNeverExceedsLimit(t *testing.T) {
	params := DefaultParams()
	c := NewController(params, Pose{})
	c.SetPath(navigation.NewPath([]vmath.Vec2F{vmath.V2F(40, 0)}, vmath.V2F(0, 0), 1, 10))

	prev := c.Pose().Position
	for i := 0; i < 500; i++ {
		pos := c.Advance(tick).Position
		assert.LessOrEqual(t, vmath.V2FDist(prev, pos), params.Speed*tick+1e-9)
		prev = pos
	}
}

func TestControllerDeceleratesNearFinish(t *testing.T) {
	c := NewController(DefaultParams(), Pose{})
	c.SetPath(navigation.NewPath([]vmath.Vec2F{vmath.V2F(20, 0)}, vmath.V2F(0, 0), 1, 10))

	c.Advance(tick)
	assert.Equal(t, Decelerating, c.State())
	assert.InDelta(t, 1.0, c.SpeedFactor(), 1e-9)

	c.Teleport(Pose{Position: vmath.V2F(15, 0)})
	c.Advance(tick)
	assert.InDelta(t, 0.5, c.SpeedFactor(), 1e-9)
}

func TestControllerTurnsCorner(t *testing.T) {
	c := NewController(DefaultParams(), Pose{})
	waypoints := []vmath.Vec2F{vmath.V2F(10, 0), vmath.V2F(10, 10)}
	c.SetPath(navigation.NewPath(waypoints, vmath.V2F(0, 0), 2, 3))

	n := runUntilArrived(c, 5000)
	require.Less(t, n, 5000)
	assert.Less(t, vmath.V2FDist(c.Pose().Position, vmath.V2F(10, 10)), 1.0)
}

func TestControllerSetPathFacesFirstLookPoint(t *testing.T) {
	c := NewController(DefaultParams(), Pose{Position: vmath.V2F(2, 2), Heading: 0})
	// First look point directly behind the agent
	c.SetPath(navigation.NewPath([]vmath.Vec2F{vmath.V2F(-20, 2)}, vmath.V2F(2, 2), 1, 0))
	assert.InDelta(t, math.Pi, math.Abs(c.Pose().Heading), 1e-9)

	// Moves straight away without a U-turn
	pos := c.Advance(tick).Position
	assert.Less(t, pos.X, 2.0)
	assert.InDelta(t, 2.0, pos.Y, 1e-9)

	// Look point on the agent leaves heading untouched
	c.Teleport(Pose{Position: vmath.V2F(5, 5), Heading: 1})
	c.SetPath(navigation.NewPath([]vmath.Vec2F{vmath.V2F(5, 5)}, vmath.V2F(5, 5), 1, 0))
	assert.Equal(t, 1.0, c.Pose().Heading)
}

func TestControllerTurnRateBounded(t *testing.T) {
	params := DefaultParams()
	c := NewController(params, Pose{})
	// Sharp reversal after the first waypoint
	waypoints := []vmath.Vec2F{vmath.V2F(5, 0), vmath.V2F(-20, -1)}
	c.SetPath(navigation.NewPath(waypoints, vmath.V2F(0, 0), 1, 0))

	prev := c.Pose().Heading
	turned := false
	for i := 0; i < 200; i++ {
		h := c.Advance(tick).Heading
		delta := math.Abs(vmath.WrapAngle(h - prev))
		assert.LessOrEqual(t, delta, params.TurnSpeed*tick+1e-9)
		turned = turned || delta > 0
		prev = h
	}
	assert.True(t, turned)
}

func TestControllerEmptyPathHolds(t *testing.T) {
	start := Pose{Position: vmath.V2F(3, 4), Heading: 1}
	c := NewController(DefaultParams(), start)

	assert.Equal(t, start, c.Advance(tick))
	assert.Equal(t, Arrived, c.State())

	c.SetPath(navigation.NewPath([]vmath.Vec2F{vmath.V2F(10, 4)}, start.Position, 1, 1))
	faced := c.Pose()
	assert.Equal(t, start.Position, faced.Position)
	c.SetPath(nil)
	assert.Equal(t, faced, c.Advance(tick))
	assert.Nil(t, c.Path())
}

func TestControllerZeroDeltaDoesNotMove(t *testing.T) {
	c := NewController(DefaultParams(), Pose{})
	c.SetPath(navigation.NewPath([]vmath.Vec2F{vmath.V2F(10, 0)}, vmath.V2F(0, 0), 1, 1))
	assert.Equal(t, Pose{}, c.Advance(0))
}

func TestControllerSetPathRestarts(t *testing.T) {
	c := NewController(DefaultParams(), Pose{})
	waypoints := []vmath.Vec2F{vmath.V2F(2, 0), vmath.V2F(4, 0), vmath.V2F(30, 0)}
	c.SetPath(navigation.NewPath(waypoints, vmath.V2F(0, 0), 0.5, 1))
	for i := 0; i < 100; i++ {
		c.Advance(tick)
	}
	require.Greater(t, c.Index(), 0)

	c.SetPath(navigation.NewPath([]vmath.Vec2F{vmath.V2F(0, 30)}, c.Pose().Position, 0.5, 1))
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, Following, c.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "following", Following.String())
	assert.Equal(t, "decelerating", Decelerating.String())
	assert.Equal(t, "arrived", Arrived.String())
	assert.Equal(t, "unknown", State(9).String())
}
