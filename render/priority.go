package render

// Priority determines layer order, lower values render first
type Priority int

const (
	PrioritySurface Priority = iota
	PriorityTrace
	PriorityCost
	PriorityPath
	PriorityAgent
	PriorityUI
)
