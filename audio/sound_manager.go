package audio

import (
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/navgrid/parameter"
)

// Speaker hooks, replaced in tests
var (
	speakerInit   = speaker.Init
	speakerPlay   = func(s beep.Streamer) { speaker.Play(s) }
	speakerLock   = speaker.Lock
	speakerUnlock = speaker.Unlock
)

// SoundManager plays navigation cues through one shared mixer
// The speaker is opened on the first cue; if that fails the manager stays silent
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	logger      *slog.Logger
	initialized bool
	failed      bool
	played      int
}

// NewSoundManager creates a manager; nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig, logger *slog.Logger) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SoundManager{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Play queues cue c; a no-op when disabled or silent
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.cfg.Enabled || !sm.ensureSpeaker() {
		return
	}
	s := CueStreamer(c, sm.cfg)
	if s == nil {
		return
	}

	speakerLock()
	sm.mixer.Add(s)
	speakerUnlock()
	sm.played++
}

// ensureSpeaker opens the device once, caller holds mu
func (sm *SoundManager) ensureSpeaker() bool {
	if sm.initialized {
		return true
	}
	if sm.failed {
		return false
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speakerInit(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		sm.failed = true
		sm.logger.Warn("audio unavailable, continuing silent", "error", err)
		return false
	}
	speakerPlay(sm.mixer)
	sm.initialized = true
	return true
}

// SetVolume changes the master volume for cues played afterwards
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.cfg.MasterVolume = min(max(v, 0), 1)
}

// SetEnabled turns cue playback on or off without touching the device
func (sm *SoundManager) SetEnabled(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.cfg.Enabled = on
}

// Silent reports whether the device failed to open
func (sm *SoundManager) Silent() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.failed
}

// Played returns how many cues reached the mixer
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Cleanup drops queued cues; the speaker itself stays open for the process
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speakerLock()
	sm.mixer.Clear()
	speakerUnlock()
}
