package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/navgrid/parameter"
)

// Wave is an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// sample evaluates one period-normalized phase in [0, 1)
func (w Wave) sample(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Note is one tone with linear attack and release ramps
type Note struct {
	Freq    float64
	Wave    Wave
	Length  time.Duration
	Attack  time.Duration
	Release time.Duration
	Gain    float64 // 0 is treated as 1
}

// Streamer returns a finite mono-in-stereo stream of n at rate
func (n Note) Streamer(rate beep.SampleRate) beep.Streamer {
	gain := n.Gain
	if gain == 0 {
		gain = 1
	}
	return &tone{
		wave:    n.Wave,
		step:    n.Freq / float64(rate),
		gain:    gain,
		total:   rate.N(n.Length),
		attack:  rate.N(n.Attack),
		release: rate.N(n.Release),
	}
}

type tone struct {
	wave  Wave
	step  float64 // Phase increment per sample
	phase float64
	gain  float64

	pos, total      int
	attack, release int
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	n := min(len(samples), t.total-t.pos)
	for i := 0; i < n; i++ {
		v := t.wave.sample(t.phase) * t.gain * t.envelope()
		samples[i] = [2]float64{v, v}

		t.phase += t.step
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

func (t *tone) envelope() float64 {
	switch {
	case t.attack > 0 && t.pos < t.attack:
		return float64(t.pos) / float64(t.attack)
	case t.release > 0 && t.pos >= t.total-t.release:
		return float64(t.total-t.pos) / float64(t.release)
	}
	return 1
}

// newVolume wraps s with linear gain vol; zero and below is silent
// math.Log2(0) is -Inf, hence the explicit silent branch
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Rising B5 to E6 square chime
var foundNotes = []Note{
	{Freq: 987.77, Wave: WaveSquare, Length: parameter.FoundSoundNote1Duration,
		Attack: parameter.FoundSoundAttack, Release: parameter.FoundSoundNote1Release},
	{Freq: 1318.51, Wave: WaveSquare, Length: parameter.FoundSoundNote2Duration,
		Attack: parameter.FoundSoundAttack, Release: parameter.FoundSoundNote2Release},
}

// Low saw buzz
var failedNote = Note{
	Freq: 100, Wave: WaveSaw, Length: parameter.FailedSoundDuration,
	Attack: parameter.FailedSoundAttack, Release: parameter.FailedSoundRelease,
}

// A5 bell with a shorter octave overtone, partial gains sum to 1
var arrivedPartials = []Note{
	{Freq: 880, Wave: WaveSine, Length: parameter.ArrivedSoundDuration, Gain: 0.7,
		Attack: parameter.ArrivedSoundAttack, Release: parameter.ArrivedSoundFundamentalRelease},
	{Freq: 1760, Wave: WaveSine, Length: parameter.ArrivedSoundDuration, Gain: 0.3,
		Attack: parameter.ArrivedSoundAttack, Release: parameter.ArrivedSoundOvertoneRelease},
}

func streamers(notes []Note, rate beep.SampleRate) []beep.Streamer {
	out := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		out[i] = n.Streamer(rate)
	}
	return out
}

// CueStreamer returns a fresh finite streamer for c, nil for an unknown cue
func CueStreamer(c Cue, cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch c {
	case CuePathFound:
		s = beep.Seq(streamers(foundNotes, rate)...)
	case CuePathFailed:
		s = failedNote.Streamer(rate)
	case CueArrived:
		s = beep.Mix(streamers(arrivedPartials, rate)...)
	default:
		return nil
	}
	return newVolume(s, cfg.volume(c))
}
