package parameter

import "time"

// Grid construction
const (
	// GridCellRadius is half the edge length of one cell in world units
	GridCellRadius = 0.5

	// GridWorldWidth and GridWorldHeight are the default covered rectangle
	GridWorldWidth  = 60.0
	GridWorldHeight = 30.0

	// GridBlurRadius is the box blur half-extent applied to penalties after sampling
	GridBlurRadius = 3

	// GridObstacleProximityPenalty is added to unwalkable cells so blur raises cost near walls
	GridObstacleProximityPenalty = 10
)

// Search
const (
	// SearchAllowDiagonal enables 8-connected expansion
	SearchAllowDiagonal = true

	// SearchCornerCutting permits diagonal steps past a blocked orthogonal neighbor
	SearchCornerCutting = true

	// SearchBatchWorkers bounds parallel searches, 0 uses GOMAXPROCS
	SearchBatchWorkers = 0
)

// Agent steering
const (
	AgentSpeed            = 5.0
	AgentTurnSpeed        = 3.0 // radians per second
	AgentTurnDistance     = 5.0
	AgentStoppingDistance = 10.0

	// AgentArriveEpsilon is the speed factor below which deceleration ends in Arrived
	AgentArriveEpsilon = 0.01
)

// Agent re-planning
const (
	// AgentMinPathUpdateTime is the minimum simulation time between re-plans
	AgentMinPathUpdateTime = 200 * time.Millisecond

	// AgentPathUpdateMoveThreshold is target displacement (world units) that triggers a re-plan
	AgentPathUpdateMoveThreshold = 0.5

	// AgentStartupDelay holds the first request while the scene settles
	AgentStartupDelay = 300 * time.Millisecond
)

// Navigation - cost field overlay
const (
	// NavFieldMinTicksBetweenCompute is minimum ticks between cost field recomputation
	NavFieldMinTicksBetweenCompute = 3

	// NavFieldDirtyDistance triggers recompute if target moves this far (cells)
	NavFieldDirtyDistance = 2
)
