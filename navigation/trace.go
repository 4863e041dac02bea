package navigation

// TraceKind classifies a cell event emitted during search
type TraceKind uint8

const (
	TraceStart TraceKind = iota
	TraceOpen
	TraceExplored
	TraceCost // g/h label refresh after relaxation
	TraceEnd
	TraceFinalPath
)

var traceKindNames = [...]string{"start", "open", "explored", "cost", "end", "path"}

func (k TraceKind) String() string {
	if int(k) < len(traceKindNames) {
		return traceKindNames[k]
	}
	return "unknown"
}

// TraceEvent is one search visualization update
type TraceEvent struct {
	Kind TraceKind
	X, Y int
	G, H int
}

// Tracer receives search events in emission order
// Trace runs on the searching goroutine and must not block
type Tracer interface {
	Trace(ev TraceEvent)
}

// TracerFunc adapts a function to Tracer
type TracerFunc func(ev TraceEvent)

func (f TracerFunc) Trace(ev TraceEvent) {
	f(ev)
}
