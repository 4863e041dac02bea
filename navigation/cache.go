package navigation

// CostFieldCache recomputes a CostField toward a moving target with throttling
type CostFieldCache struct {
	Field *CostField

	// Recomputation throttling
	LastTarget             Point
	TicksSinceCompute      int // Ticks since last computation
	MinTicksBetweenCompute int // Minimum ticks between recomputes
	DirtyDistance          int // Target must move this many cells (Manhattan) to trigger a recompute

	// PendingUpdate latches true on any state change, cleared after compute
	PendingUpdate bool
}

// NewCostFieldCache creates a cache over g with the given throttling
func NewCostFieldCache(g *Grid, opts Options, minTicks, dirtyDist int) *CostFieldCache {
	return &CostFieldCache{
		Field:                  NewCostField(g, opts),
		LastTarget:             Point{-1, -1},
		TicksSinceCompute:      minTicks, // Allow immediate first compute
		MinTicksBetweenCompute: minTicks,
		DirtyDistance:          max(dirtyDist, 1),
		PendingUpdate:          true, // Force initial compute
	}
}

// Update checks whether recomputation is due and performs it
// Returns true if the field was recomputed this tick
func (c *CostFieldCache) Update(g *Grid, target Point) bool {
	c.TicksSinceCompute++

	if absInt(target.X-c.LastTarget.X)+absInt(target.Y-c.LastTarget.Y) >= c.DirtyDistance {
		c.PendingUpdate = true
	}

	if (c.PendingUpdate && c.TicksSinceCompute >= c.MinTicksBetweenCompute) || !c.Field.Valid {
		c.Field.Compute(g, target.X, target.Y)
		c.LastTarget = target
		c.TicksSinceCompute = 0
		c.PendingUpdate = false
		return true
	}
	return false
}

// MarkDirty forces recomputation on next eligible tick
func (c *CostFieldCache) MarkDirty() {
	c.PendingUpdate = true
}

// Cost returns cached cost to target, -1 if unreachable
func (c *CostFieldCache) Cost(x, y int) int {
	return c.Field.Cost(x, y)
}

// IsValid returns true if field has valid data
func (c *CostFieldCache) IsValid() bool {
	return c.Field.Valid
}
