package audio

import (
	"testing"
)

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("Expected default master volume 0.5, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default sample rate 44100, got %d", cfg.SampleRate)
	}

	for c := Cue(0); c < cueCount; c++ {
		if _, ok := cfg.CueVolumes[c]; !ok {
			t.Errorf("Expected volume for cue %s to be set", c)
		}
	}
}

// TestCueVolumeClamped verifies effective gain stays in [0, 1]
func TestCueVolumeClamped(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 4
	if v := cfg.volume(CueArrived); v != 1 {
		t.Errorf("Expected gain clamped to 1, got %f", v)
	}

	cfg.MasterVolume = 0.5
	delete(cfg.CueVolumes, CuePathFound)
	if v := cfg.volume(CuePathFound); v != 0.5 {
		t.Errorf("Expected missing cue volume to default to master, got %f", v)
	}
}
