package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioMasterVolume is the default output gain in [0, 1]
	AudioMasterVolume = 0.5
)

// Path found chime
const (
	FoundSoundNote1Duration = 70 * time.Millisecond
	FoundSoundNote2Duration = 160 * time.Millisecond
	FoundSoundAttack        = 5 * time.Millisecond
	FoundSoundNote1Release  = 30 * time.Millisecond
	FoundSoundNote2Release  = 120 * time.Millisecond
)

// Path failed buzz
const (
	FailedSoundDuration = 120 * time.Millisecond
	FailedSoundAttack   = 5 * time.Millisecond
	FailedSoundRelease  = 40 * time.Millisecond
)

// Arrival bell
const (
	ArrivedSoundDuration           = 500 * time.Millisecond
	ArrivedSoundAttack             = 5 * time.Millisecond
	ArrivedSoundFundamentalRelease = 450 * time.Millisecond
	ArrivedSoundOvertoneRelease    = 180 * time.Millisecond
)
