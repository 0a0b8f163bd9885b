package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"git.lost.host/meutraa/opus/internal/game"
	"github.com/faiface/beep"
)

func drain(st beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		c, ok := st.Stream(buf)
		for _, s := range buf[:c] {
			peak = math.Max(peak, math.Abs(s[0]))
		}
		n += c
		if !ok {
			return n, peak
		}
	}
}

var voiceLengths = map[time.Duration]int{
	Sixteenth: SampleRate.N(Sixteenth) + SampleRate.N(releaseTime),
	Half:      SampleRate.N(Half) + SampleRate.N(releaseTime),
}

func TestVoiceLength(t *testing.T) {
	for d, expected := range voiceLengths {
		n, peak := drain(voice(440, d, 1))
		if n != expected {
			t.Log("Duration", d)
			t.Log("Samples ", n)
			t.Log("Expected", expected)
			t.Fail()
		}
		if peak > 1 || peak < 0.5 {
			t.Log("peak out of range", peak)
			t.Fail()
		}
	}
}

func TestEnvelope(t *testing.T) {
	if sustainAt(0) != 0 || sustainAt(attack) != 1 || sustainAt(1) != sustain {
		t.Log("envelope", sustainAt(0), sustainAt(attack), sustainAt(1))
		t.Fail()
	}
	v := voice(440, Quarter, 1).(*tone)
	v.pos = v.end - 1
	if l := v.level(); l < 0 || l > 0.01 {
		t.Log("release does not fade out", l)
		t.Fail()
	}
}

func TestArpeggioStaggersVoices(t *testing.T) {
	root := game.MustPitch("C4")
	n, peak := drain(chord(Major7(root), Sixteenth, arpeggioStep))
	single, _ := drain(voice(root.Frequency(), Sixteenth, 1))
	if n != single+SampleRate.N(3*arpeggioStep) {
		t.Log("arpeggio length", n, "single", single)
		t.Fail()
	}
	if peak > 1 {
		t.Log("mixed chord clips", peak)
		t.Fail()
	}
}

func TestChordSkipsInvalidPitches(t *testing.T) {
	if chord([]game.Pitch{{Name: "X", Octave: 4}}, Quarter, 0) != nil {
		t.Log("chord of invalid pitches is not empty")
		t.Fail()
	}
}

func TestMajor7(t *testing.T) {
	expected := []string{"E4", "G#4", "B4", "D#5"}
	for i, p := range Major7(game.MustPitch("E4")) {
		if p.String() != expected[i] {
			t.Log("Got     ", p)
			t.Log("Expected", expected[i])
			t.Fail()
		}
	}
}

func TestClosedSynthIsSilent(t *testing.T) {
	s := NewSynth(Options{Volume: -8})
	s.PlayNote(game.MustPitch("A4"), Eighth)
	s.PlaySuccess(game.MustPitch("C4"))
	s.PlayError()
	s.Close()
	if s.mixer.Len() != 0 {
		t.Log("voices queued without a speaker", s.mixer.Len())
		t.Fail()
	}
	s.SetMuted(true)
	if !s.Muted() || !s.master.Silent {
		t.Log("mute not applied")
		t.Fail()
	}
}

// A track started while muted is heard once the synth is unmuted.
func TestMutedSynthKeepsStreams(t *testing.T) {
	s := NewSynth(Options{Mute: true})
	s.opened = true
	s.Play(beep.Silence(SampleRate.N(time.Second)))
	s.PlayError()
	if s.mixer.Len() != 2 || !s.master.Silent {
		t.Log("muted synth dropped streams", s.mixer.Len(), s.master.Silent)
		t.Fail()
	}
	s.SetMuted(false)
	if s.mixer.Len() != 2 || s.master.Silent {
		t.Log("unmute lost streams", s.mixer.Len(), s.master.Silent)
		t.Fail()
	}
}

var noteLengths = []time.Duration{Whole, Half, Quarter, Eighth, Sixteenth, ThirtySecond}

func TestNoteLengths(t *testing.T) {
	if Quarter != time.Minute/120 {
		t.Log("quarter note is not one beat at 120 bpm", Quarter)
		t.Fail()
	}
	for i := 1; i < len(noteLengths); i++ {
		if noteLengths[i]*2 != noteLengths[i-1] {
			t.Log("Length  ", noteLengths[i])
			t.Log("Previous", noteLengths[i-1])
			t.Fail()
		}
	}
}

func TestLoadTrackRejectsUnknownFormats(t *testing.T) {
	if _, err := LoadTrack("song.wav"); !errors.Is(err, ErrUnsupportedTrack) {
		t.Log("expected ErrUnsupportedTrack, got", err)
		t.Fail()
	}
	if _, err := LoadTrack("does-not-exist.ogg"); nil == err {
		t.Log("missing file loaded")
		t.Fail()
	}
}
