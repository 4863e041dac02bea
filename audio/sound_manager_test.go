package audio

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/gopxl/beep"
)

// stubSpeaker swaps the speaker hooks for the duration of a test
func stubSpeaker(t *testing.T, initErr error) *int {
	t.Helper()
	calls := 0
	oldInit, oldPlay, oldLock, oldUnlock := speakerInit, speakerPlay, speakerLock, speakerUnlock
	speakerInit = func(beep.SampleRate, int) error {
		calls++
		return initErr
	}
	speakerPlay = func(beep.Streamer) {}
	speakerLock = func() {}
	speakerUnlock = func() {}
	t.Cleanup(func() {
		speakerInit, speakerPlay, speakerLock, speakerUnlock = oldInit, oldPlay, oldLock, oldUnlock
	})
	return &calls
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSoundManagerLazyInit verifies the speaker opens once on first cue
func TestSoundManagerLazyInit(t *testing.T) {
	calls := stubSpeaker(t, nil)
	sm := NewSoundManager(nil, quietLogger())

	if *calls != 0 {
		t.Fatal("Speaker opened before any cue")
	}

	sm.Play(CuePathFound)
	sm.Play(CueArrived)

	if *calls != 1 {
		t.Errorf("Expected one speaker init, got %d", *calls)
	}
	if sm.Played() != 2 {
		t.Errorf("Expected 2 cues played, got %d", sm.Played())
	}
	if sm.mixer.Len() != 2 {
		t.Errorf("Expected 2 streamers in mixer, got %d", sm.mixer.Len())
	}

	sm.Cleanup()
	if sm.mixer.Len() != 0 {
		t.Errorf("Expected mixer cleared, got %d", sm.mixer.Len())
	}
}

// TestSoundManagerGracefulDegradation verifies a failed device turns the manager silent
func TestSoundManagerGracefulDegradation(t *testing.T) {
	calls := stubSpeaker(t, errors.New("no device"))
	sm := NewSoundManager(nil, quietLogger())

	sm.Play(CuePathFailed)
	sm.Play(CuePathFailed)

	if !sm.Silent() {
		t.Error("Expected silent mode after init failure")
	}
	if *calls != 1 {
		t.Errorf("Expected init attempted once, got %d", *calls)
	}
	if sm.Played() != 0 {
		t.Errorf("Expected no cues played, got %d", sm.Played())
	}
	sm.Cleanup()
}

// TestSoundManagerDisabled verifies disabled audio never touches the device
func TestSoundManagerDisabled(t *testing.T) {
	calls := stubSpeaker(t, nil)
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg, quietLogger())

	sm.Play(CueArrived)
	if *calls != 0 || sm.Played() != 0 {
		t.Errorf("Expected no activity, got init=%d played=%d", *calls, sm.Played())
	}

	sm.SetEnabled(true)
	sm.Play(CueArrived)
	if sm.Played() != 1 {
		t.Errorf("Expected cue after enabling, got %d", sm.Played())
	}
}

// TestSoundManagerSetVolumeClamps verifies volume stays in [0, 1]
func TestSoundManagerSetVolumeClamps(t *testing.T) {
	sm := NewSoundManager(nil, quietLogger())
	sm.SetVolume(3)
	if sm.cfg.MasterVolume != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", sm.cfg.MasterVolume)
	}
	sm.SetVolume(-1)
	if sm.cfg.MasterVolume != 0 {
		t.Errorf("Expected volume clamped to 0, got %f", sm.cfg.MasterVolume)
	}
}

// TestSoundManagerUnknownCue verifies unknown cues are ignored
func TestSoundManagerUnknownCue(t *testing.T) {
	stubSpeaker(t, nil)
	sm := NewSoundManager(nil, quietLogger())
	sm.Play(Cue(42))
	if sm.Played() != 0 {
		t.Errorf("Expected unknown cue ignored, got %d", sm.Played())
	}
}
