package parameter

import "time"

// Simulation loop timing
const (
	// TickInterval is the fixed simulation step
	TickInterval = 20 * time.Millisecond

	// FrameUpdateInterval is the rendering frame interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond

	// MaxCatchUpTicks caps ticks replayed after a stall before the schedule is reset
	MaxCatchUpTicks = 5
)

// Debug trace visualization
const (
	// TraceDrainPerTick is how many search trace events the renderer consumes per tick
	TraceDrainPerTick = 64

	// TraceQueueCapacity bounds buffered trace events; oldest are dropped beyond it
	TraceQueueCapacity = 1 << 16
)

// Config reload
const (
	// ConfigReloadDebounce coalesces bursts of file writes into one reload
	ConfigReloadDebounce = 100 * time.Millisecond
)
