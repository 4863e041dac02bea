package audio

// Cue identifies a navigation sound effect
type Cue int

const (
	CuePathFound  Cue = iota // Search succeeded
	CuePathFailed            // Search found no path
	CueArrived               // Agent reached the finish line
	cueCount
)

var cueNames = [cueCount]string{"path_found", "path_failed", "arrived"}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}
