package audio

import (
	"github.com/lixenwraith/navgrid/parameter"
)

// AudioConfig holds output settings and per-cue gain
type AudioConfig struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64
	CueVolumes   map[Cue]float64
}

// DefaultAudioConfig returns enabled audio at the stock volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: parameter.AudioMasterVolume,
		CueVolumes: map[Cue]float64{
			CuePathFound:  0.6,
			CuePathFailed: 0.8,
			CueArrived:    1.0,
		},
	}
}

// volume is the effective gain for c, clamped to [0, 1]
func (cfg *AudioConfig) volume(c Cue) float64 {
	v, ok := cfg.CueVolumes[c]
	if !ok {
		v = 1
	}
	return min(max(v*cfg.MasterVolume, 0), 1)
}
