package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/navgrid/audio"
	"github.com/lixenwraith/navgrid/config"
	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/parameter"
	"github.com/lixenwraith/navgrid/render"
	"github.com/lixenwraith/navgrid/steering"
	"github.com/lixenwraith/navgrid/surface"
	"github.com/lixenwraith/navgrid/vmath"
)

// CuePlayer plays audio cues; *audio.SoundManager satisfies it
type CuePlayer interface {
	Play(c audio.Cue)
}

type WorldOption func(*World)

func WithLogger(l *slog.Logger) WorldOption {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithCues(p CuePlayer) WorldOption {
	return func(w *World) {
		w.cues = p
	}
}

// World owns the grid, one agent and its target
// All mutation happens under mu on the scheduler goroutine; readers go through View
type World struct {
	mu     sync.Mutex
	cfg    *config.Config
	scene  *surface.Scene
	logger *slog.Logger
	cues   CuePlayer

	grid      *navigation.Grid
	penalties navigation.PenaltyRange
	finder    *navigation.Finder
	trace     *render.TraceQueue // nil when tracing is off
	board     *render.TraceBoard
	costs     *navigation.CostFieldCache
	showCosts bool

	agent  *steering.Agent
	target vmath.Vec2F

	last     navigation.PathResult
	searched bool
	arrived  bool // Arrival cue played for the current path
	message  string
	ticks    uint64
}

// NewWorld builds the grid from cfg and scene; scene may be nil for an open field
// The agent starts at the scene start (grid origin if unset), the target at the scene target
func NewWorld(cfg *config.Config, scene *surface.Scene, opts ...WorldOption) (*World, error) {
	w := &World{
		scene:  scene,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.build(cfg); err != nil {
		return nil, err
	}

	start := w.grid.Origin()
	if scene != nil && scene.Start != nil {
		start = *scene.Start
	}
	w.target = start
	if scene != nil && scene.Target != nil {
		w.target = *scene.Target
	}
	w.target = w.clampToGrid(w.target)
	w.agent = w.newAgent(steering.Pose{Position: start})

	w.logger.Info("world ready",
		"cells", fmt.Sprintf("%dx%d", w.grid.Width(), w.grid.Height()),
		"penalty_min", w.penalties.Min, "penalty_max", w.penalties.Max,
		"trace", w.trace != nil)
	return w, nil
}

// BuildGrid samples scene into a grid shaped by cfg and blurs its penalties
// A scene size overrides the configured world size; a nil scene is open ground
func BuildGrid(cfg *config.Config, scene *surface.Scene) (*navigation.Grid, navigation.PenaltyRange, error) {
	spec := cfg.GridSpec()
	var sampler navigation.Sampler
	if scene != nil {
		if scene.Size != nil {
			spec.WorldSize = *scene.Size
		}
		sampler = surface.NewSampler(scene)
	}

	grid, err := navigation.NewGrid(spec, sampler)
	if err != nil {
		return nil, navigation.PenaltyRange{}, err
	}
	return grid, grid.BlurPenalties(cfg.Grid.BlurRadius), nil
}

// build replaces every grid-derived structure; nothing is assigned unless the grid builds
// Caller holds mu or owns w exclusively
func (w *World) build(cfg *config.Config) error {
	grid, penalties, err := BuildGrid(cfg, w.scene)
	if err != nil {
		return err
	}

	finderOpts := []navigation.Option{
		navigation.WithOptions(cfg.SearchOptions()),
		navigation.WithLogger(w.logger),
	}
	var trace *render.TraceQueue
	if cfg.Sim.TraceEnabled {
		trace = render.NewTraceQueue(parameter.TraceQueueCapacity)
		finderOpts = append(finderOpts, navigation.WithTracer(trace))
	}

	w.cfg = cfg
	w.grid = grid
	w.penalties = penalties
	w.finder = navigation.NewFinder(grid, finderOpts...)
	w.trace = trace
	w.board = render.NewTraceBoard(grid.Width(), grid.Height())
	w.costs = navigation.NewCostFieldCache(grid, cfg.SearchOptions(),
		parameter.NavFieldMinTicksBetweenCompute, parameter.NavFieldDirtyDistance)
	return nil
}

func (w *World) newAgent(pose steering.Pose) *steering.Agent {
	return steering.NewAgent(w.cfg.Steering(), pose, w, w.logger)
}

// RequestPath implements steering.Requester by searching synchronously
func (w *World) RequestPath(req navigation.PathRequest) {
	res := w.finder.Request(req)
	w.last = res
	w.searched = true

	if res.Success {
		w.arrived = false
		w.play(audio.CuePathFound)
		return
	}
	w.play(audio.CuePathFailed)
	w.logger.Debug("search failed", "goal", req.Goal, "error", res.Err)
}

// Tick advances the simulation by dt
func (w *World) Tick(dt time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.trace != nil {
		w.trace.Drain(w.cfg.Sim.TraceDrainPerTick, w.board.Apply)
	}
	if w.showCosts {
		w.costs.Update(w.grid, w.grid.CellFromWorld(w.target).Point())
	}

	w.agent.Tick(dt, w.target)

	if !w.arrived && w.searched && w.last.Success && w.agent.State() == steering.Arrived {
		w.arrived = true
		w.play(audio.CueArrived)
	}
	w.ticks++
}

// Reload rebuilds the grid from cfg; the agent keeps its pose and re-plans
// On error the current world is left untouched
func (w *World) Reload(cfg *config.Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.build(cfg); err != nil {
		return err
	}
	w.agent = w.newAgent(w.agent.Pose())
	w.target = w.clampToGrid(w.target)
	w.searched = false
	w.message = "config reloaded"
	w.logger.Info("world rebuilt", "cells", fmt.Sprintf("%dx%d", w.grid.Width(), w.grid.Height()))
	return nil
}

// SetTarget moves the target, clamped into the grid rectangle
func (w *World) SetTarget(p vmath.Vec2F) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.target = w.clampToGrid(p)
}

// SetTargetCell moves the target to the center of cell (x, y)
func (w *World) SetTargetCell(x, y int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.grid.InBounds(x, y) {
		w.target = w.grid.WorldFromCell(x, y)
	}
}

// NudgeTarget moves the target by whole cells
func (w *World) NudgeTarget(dx, dy int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.grid.CellDiameter()
	w.target = w.clampToGrid(vmath.V2FAdd(w.target, vmath.V2F(float64(dx)*d, float64(dy)*d)))
}

// ToggleCosts enables or disables the cost field overlay computation
func (w *World) ToggleCosts() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.showCosts = !w.showCosts
	if w.showCosts {
		w.costs.MarkDirty()
	}
	return w.showCosts
}

// Replan forces a fresh request on the next tick
func (w *World) Replan() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.agent.Replan()
}

// SetMessage sets the status line note
func (w *World) SetMessage(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.message = msg
}

// View calls fn with a frame of the current state under the world lock
// fn must not retain the frame's pointers past its return
func (w *World) View(paused bool, fn func(render.Frame)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f := render.Frame{
		Grid:   w.grid,
		Range:  w.penalties,
		Path:   w.agent.Controller().Path(),
		Agent:  w.agent.Pose(),
		Target: w.target,
		Status: render.Status{
			State:     w.agent.State(),
			Searched:  w.searched,
			Success:   w.last.Success,
			Cost:      w.last.Cost,
			Expanded:  w.last.Expanded,
			Waypoints: len(w.last.Waypoints),
			Replans:   w.agent.Replans(),
			Paused:    paused,
			Message:   w.message,
		},
	}
	if w.trace != nil {
		f.Board = w.board
	}
	if w.showCosts && w.costs.IsValid() {
		f.Costs = w.costs.Field
	}
	fn(f)
}

func (w *World) clampToGrid(p vmath.Vec2F) vmath.Vec2F {
	bl := w.grid.BottomLeft()
	size := w.grid.WorldSize()
	return vmath.V2F(
		min(max(p.X, bl.X), bl.X+size.X),
		min(max(p.Y, bl.Y), bl.Y+size.Y),
	)
}

func (w *World) play(c audio.Cue) {
	if w.cues != nil {
		w.cues.Play(c)
	}
}

func (w *World) Grid() *navigation.Grid {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.grid
}

func (w *World) Pose() steering.Pose {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.agent.Pose()
}

func (w *World) State() steering.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.agent.State()
}

func (w *World) Target() vmath.Vec2F {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// LastResult returns the most recent search result
func (w *World) LastResult() navigation.PathResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// PendingTrace returns how many trace events wait to be replayed
func (w *World) PendingTrace() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.trace == nil {
		return 0
	}
	return w.trace.Len()
}

func (w *World) Ticks() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ticks
}
