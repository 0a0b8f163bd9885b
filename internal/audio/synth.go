package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"git.lost.host/meutraa/opus/internal/game"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const SampleRate = beep.SampleRate(44100)

// Envelope of every synth voice, in seconds. Sustain is a level.
const (
	attack  = 0.005
	decay   = 0.1
	sustain = 0.3
	release = 1.2
)

const releaseTime = 1200 * time.Millisecond

// arpeggioStep separates the notes of the success arpeggio.
const arpeggioStep = 80 * time.Millisecond

type Options struct {
	// Volume in decibels relative to full scale.
	Volume float64
	Mute   bool
}

// Synth is a small polyphonic sine synthesizer on the system speaker.
// Until Open succeeds every method is a no-op.
type Synth struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	master *effects.Volume
	opened bool
	muted  bool
}

func NewSynth(opts Options) *Synth {
	mixer := &beep.Mixer{}
	return &Synth{
		mixer: mixer,
		master: &effects.Volume{
			Streamer: mixer,
			Base:     2,
			Volume:   opts.Volume / 6.0206,
			Silent:   opts.Mute,
		},
		muted: opts.Mute,
	}
}

// Open claims the speaker. It must be called at most once per process.
func (s *Synth) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/30)); nil != err {
		return fmt.Errorf("unable to open speaker: %w", err)
	}
	speaker.Play(s.master)
	s.opened = true
	return nil
}

// Close silences every voice.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.opened = false
}

// Stop drops every playing voice and track but keeps the speaker open.
func (s *Synth) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

func (s *Synth) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	if s.opened {
		speaker.Lock()
	}
	s.master.Silent = muted
	if s.opened {
		speaker.Unlock()
	}
}

func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Synth) PlayNote(p game.Pitch, d time.Duration) {
	s.add(voice(p.Frequency(), d, 1))
}

func (s *Synth) PlayChord(ps []game.Pitch, d time.Duration) {
	s.add(chord(ps, d, 0))
}

func (s *Synth) PlaySuccess(root game.Pitch) {
	s.add(chord(Major7(root), Sixteenth, arpeggioStep))
}

func (s *Synth) PlayError() {
	s.add(chord(ErrorChord, Sixteenth, 0))
}

// Play mixes an arbitrary streamer, such as a backing track, into the output.
func (s *Synth) Play(st beep.Streamer) {
	s.add(st)
}

func (s *Synth) add(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened || st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// chord mixes one voice per pitch, each starting step after the previous.
func chord(ps []game.Pitch, d, step time.Duration) beep.Streamer {
	voices := make([]beep.Streamer, 0, len(ps))
	for i, p := range ps {
		f := p.Frequency()
		if f <= 0 {
			continue
		}
		v := voice(f, d, 1/float64(len(ps)))
		if step > 0 && i > 0 {
			v = beep.Seq(beep.Silence(SampleRate.N(step*time.Duration(i))), v)
		}
		voices = append(voices, v)
	}
	if len(voices) == 0 {
		return nil
	}
	return beep.Mix(voices...)
}

// voice is a sine tone held for d then released.
func voice(freq float64, d time.Duration, gain float64) beep.Streamer {
	if freq <= 0 {
		return nil
	}
	return &tone{
		step: freq / float64(SampleRate),
		gain: gain,
		held: SampleRate.N(d),
		end:  SampleRate.N(d) + SampleRate.N(releaseTime),
	}
}

type tone struct {
	phase, step float64
	gain        float64
	pos         int
	held, end   int
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.end {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.end {
			return i, true
		}
		v := math.Sin(2*math.Pi*t.phase) * t.level() * t.gain
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.step
		if t.phase >= 1 {
			t.phase -= 1
		}
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error {
	return nil
}

// level is the envelope amplitude at the current sample.
func (t *tone) level() float64 {
	sec := float64(t.pos) / float64(SampleRate)
	held := float64(t.held) / float64(SampleRate)
	if t.pos >= t.held {
		return sustainAt(held) * (1 - (sec-held)/release)
	}
	return sustainAt(sec)
}

// sustainAt is the attack/decay/sustain curve at sec while the key is held.
func sustainAt(sec float64) float64 {
	switch {
	case sec < attack:
		return sec / attack
	case sec < attack+decay:
		return 1 - (1-sustain)*(sec-attack)/decay
	default:
		return sustain
	}
}
