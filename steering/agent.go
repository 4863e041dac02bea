package steering

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/parameter"
	"github.com/lixenwraith/navgrid/vmath"
)

// Requester dispatches path requests
// The request callback must run on the goroutine that ticks the agent
type Requester interface {
	RequestPath(req navigation.PathRequest)
}

// RequesterFunc adapts a function to Requester
type RequesterFunc func(req navigation.PathRequest)

func (f RequesterFunc) RequestPath(req navigation.PathRequest) {
	f(req)
}

// AgentConfig tunes path building and re-plan gating
type AgentConfig struct {
	Params

	TurnDistance      float64
	MinUpdateInterval time.Duration
	MoveThreshold     float64 // Target displacement that triggers a re-plan
	StartupDelay      time.Duration
}

// DefaultAgentConfig returns the stock agent tuning
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Params:            DefaultParams(),
		TurnDistance:      parameter.AgentTurnDistance,
		MinUpdateInterval: parameter.AgentMinPathUpdateTime,
		MoveThreshold:     parameter.AgentPathUpdateMoveThreshold,
		StartupDelay:      parameter.AgentStartupDelay,
	}
}

// Agent follows a moving target, re-planning when it moves far enough
// Rate limiting runs on simulation time, so replays and tests are deterministic
type Agent struct {
	cfg       AgentConfig
	ctrl      *Controller
	requester Requester
	limiter   *rate.Limiter
	logger    *slog.Logger

	epoch   time.Time
	elapsed time.Duration

	requested  bool
	lastTarget vmath.Vec2F
	pending    uuid.UUID // Latest request; older results are discarded

	lastSuccess bool
	replans     int
	onResult    func(waypoints []vmath.Vec2F, success bool)
}

// NewAgent creates an agent at pose that issues requests through r
func NewAgent(cfg AgentConfig, pose Pose, r Requester, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if cfg.MinUpdateInterval > 0 {
		limit = rate.Every(cfg.MinUpdateInterval)
	}
	return &Agent{
		cfg:       cfg,
		ctrl:      NewController(cfg.Params, pose),
		requester: r,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger,
		epoch:     time.Unix(0, 0),
	}
}

// OnResult registers an observer for accepted path results
func (a *Agent) OnResult(fn func(waypoints []vmath.Vec2F, success bool)) {
	a.onResult = fn
}

// Tick advances simulation time by dt, issues a request if due, and steers
func (a *Agent) Tick(dt time.Duration, target vmath.Vec2F) Pose {
	a.elapsed += dt
	now := a.epoch.Add(a.elapsed)

	if a.elapsed >= a.cfg.StartupDelay {
		switch {
		case !a.requested:
			a.limiter.AllowN(now, 1)
			a.request(target)
		case vmath.V2FDist(target, a.lastTarget) > a.cfg.MoveThreshold && a.limiter.AllowN(now, 1):
			a.replans++
			a.request(target)
		}
	}

	return a.ctrl.Advance(dt.Seconds())
}

// Replan forces a request on the next Tick regardless of gating
func (a *Agent) Replan() {
	a.requested = false
}

func (a *Agent) request(target vmath.Vec2F) {
	a.requested = true
	a.lastTarget = target

	req := navigation.NewPathRequest(a.ctrl.Pose().Position, target, nil)
	id := req.ID
	a.pending = id
	req.Callback = func(waypoints []vmath.Vec2F, success bool) {
		a.onPathFound(id, waypoints, success)
	}
	a.requester.RequestPath(req)
}

func (a *Agent) onPathFound(id uuid.UUID, waypoints []vmath.Vec2F, success bool) {
	if id != a.pending {
		a.logger.Debug("stale path result dropped", "request", id)
		return
	}
	a.lastSuccess = success
	if success {
		a.ctrl.SetPath(navigation.NewPath(waypoints, a.ctrl.Pose().Position, a.cfg.TurnDistance, a.cfg.StoppingDistance))
	}
	if a.onResult != nil {
		a.onResult(waypoints, success)
	}
}

func (a *Agent) Controller() *Controller {
	return a.ctrl
}

func (a *Agent) Pose() Pose {
	return a.ctrl.Pose()
}

func (a *Agent) State() State {
	return a.ctrl.State()
}

// Replans returns how many displacement-triggered requests were issued
func (a *Agent) Replans() int {
	return a.replans
}

// LastSuccess reports the outcome of the latest accepted result
func (a *Agent) LastSuccess() bool {
	return a.lastSuccess
}
