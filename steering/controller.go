package steering

import (
	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/parameter"
	"github.com/lixenwraith/navgrid/vmath"
)

// State is the steering phase of a controller
type State int

const (
	Following State = iota
	Decelerating
	Arrived
)

func (s State) String() string {
	switch s {
	case Following:
		return "following"
	case Decelerating:
		return "decelerating"
	case Arrived:
		return "arrived"
	default:
		return "unknown"
	}
}

// Params are the motion limits of an agent
type Params struct {
	Speed            float64 // World units per second at full speed
	TurnSpeed        float64 // Radians per second
	StoppingDistance float64 // Distance before the finish line where deceleration completes; 0 disables
	ArriveEpsilon    float64 // Speed factor that ends deceleration
}

// DefaultParams returns the stock agent tuning
func DefaultParams() Params {
	return Params{
		Speed:            parameter.AgentSpeed,
		TurnSpeed:        parameter.AgentTurnSpeed,
		StoppingDistance: parameter.AgentStoppingDistance,
		ArriveEpsilon:    parameter.AgentArriveEpsilon,
	}
}

// Pose is agent position and heading (radians, 0 = +X)
type Pose struct {
	Position vmath.Vec2F
	Heading  float64
}

// Controller steers a pose along a Path, one Advance per tick
// Not safe for concurrent use; drive it from the simulation goroutine
type Controller struct {
	params      Params
	pose        Pose
	path        *navigation.Path
	index       int
	state       State
	speedFactor float64
}

// NewController creates a controller holding position at pose
func NewController(params Params, pose Pose) *Controller {
	return &Controller{
		params: params,
		pose:   pose,
		state:  Arrived,
	}
}

// SetPath supersedes the current path and restarts from its first look point
// The agent faces the first look point at once; turn rate limits apply from then on
// A nil or empty path holds position
func (c *Controller) SetPath(p *navigation.Path) {
	c.index = 0
	c.speedFactor = 1
	if p.Len() == 0 {
		c.path = nil
		c.state = Arrived
		return
	}
	c.path = p
	c.state = Following
	if d := vmath.V2FSub(p.LookPoints[0], c.pose.Position); vmath.V2FMagSq(d) > 0 {
		c.pose.Heading = vmath.V2FAngle(d)
	}
}

// Advance moves the pose dt seconds along the path and returns it
func (c *Controller) Advance(dt float64) Pose {
	if c.path == nil || c.state == Arrived || dt <= 0 {
		return c.pose
	}
	p := c.path
	pos := c.pose.Position

	for p.TurnBoundaries[c.index].HasCrossedLine(pos) {
		if c.index == p.FinishLineIndex {
			c.state = Arrived
			c.speedFactor = 0
			return c.pose
		}
		c.index++
	}

	c.speedFactor = 1
	if c.index >= p.SlowDownIndex && c.params.StoppingDistance > 0 {
		c.state = Decelerating
		finish := p.TurnBoundaries[p.FinishLineIndex]
		c.speedFactor = vmath.Clamp01(finish.DistanceFromPoint(pos) / c.params.StoppingDistance)
		if c.speedFactor < c.params.ArriveEpsilon {
			c.state = Arrived
			c.speedFactor = 0
			return c.pose
		}
	}

	target := vmath.V2FAngle(vmath.V2FSub(p.LookPoints[c.index], pos))
	c.pose.Heading = vmath.RotateToward(c.pose.Heading, target, c.params.TurnSpeed*dt)

	step := c.params.Speed * c.speedFactor * dt
	c.pose.Position = vmath.V2FAdd(pos, vmath.V2FScale(vmath.V2FFromAngle(c.pose.Heading), step))
	return c.pose
}

// Teleport places the agent without touching the path
func (c *Controller) Teleport(pose Pose) {
	c.pose = pose
}

func (c *Controller) Pose() Pose {
	return c.pose
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Path() *navigation.Path {
	return c.path
}

// Index returns the active look point index
func (c *Controller) Index() int {
	return c.index
}

// SpeedFactor returns the last applied fraction of full speed
func (c *Controller) SpeedFactor() float64 {
	return c.speedFactor
}

