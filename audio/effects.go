package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a streamer producing duration of the wave at freq
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s by a linear gain; math.Log2(0) is -Inf so zero is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound is a collision or action cue
type Sound uint8

const (
	SoundFire Sound = iota
	SoundHit
	SoundExplosion
	SoundDamage
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundHit:
		return "hit"
	case SoundExplosion:
		return "explosion"
	case SoundDamage:
		return "damage"
	}
	return "unknown"
}

// Duration returns the playing time of the cue
func (s Sound) Duration() time.Duration {
	switch s {
	case SoundFire:
		return 60 * time.Millisecond
	case SoundHit:
		return 90 * time.Millisecond
	case SoundExplosion:
		return 300 * time.Millisecond
	case SoundDamage:
		return 200 * time.Millisecond
	}
	return 0
}

// NewSound builds a finite streamer for s, nil for unknown cues
func NewSound(s Sound, rate beep.SampleRate) beep.Streamer {
	d := s.Duration()
	switch s {
	case SoundFire:
		osc := NewOscillator(1320, d, WaveSquare, rate)
		return newVolume(NewEnvelope(osc, d, 2*time.Millisecond, 40*time.Millisecond, rate), 0.25)
	case SoundHit:
		hi := NewEnvelope(NewOscillator(880, d, WaveSine, rate), d, 2*time.Millisecond, 60*time.Millisecond, rate)
		lo := NewEnvelope(NewOscillator(440, d, WaveSine, rate), d, 2*time.Millisecond, 80*time.Millisecond, rate)
		return beep.Mix(newVolume(hi, 0.35), newVolume(lo, 0.25))
	case SoundExplosion:
		noise := NewOscillator(0, d, WaveNoise, rate)
		rumble := NewOscillator(70, d, WaveSine, rate)
		mixed := beep.Mix(newVolume(noise, 0.3), newVolume(rumble, 0.3))
		return NewEnvelope(mixed, d, 5*time.Millisecond, 250*time.Millisecond, rate)
	case SoundDamage:
		osc := NewOscillator(110, d, WaveSaw, rate)
		return newVolume(NewEnvelope(osc, d, 5*time.Millisecond, 120*time.Millisecond, rate), 0.4)
	}
	return nil
}
