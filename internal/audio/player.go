package audio

import (
	"time"

	"git.lost.host/meutraa/opus/internal/game"
)

// Note lengths at 120 bpm.
const (
	Whole        = 2 * time.Second
	Half         = time.Second
	Quarter      = 500 * time.Millisecond
	Eighth       = 250 * time.Millisecond
	Sixteenth    = 125 * time.Millisecond
	ThirtySecond = 62500 * time.Microsecond
)

// Player is the sound capability handed to a play session. Every method is
// fire and forget.
type Player interface {
	PlayNote(p game.Pitch, d time.Duration)
	PlayChord(ps []game.Pitch, d time.Duration)
	// PlaySuccess arpeggiates a major seventh chord on root
	PlaySuccess(root game.Pitch)
	PlayError()
}

// Silent discards everything.
type Silent struct{}

func (Silent) PlayNote(game.Pitch, time.Duration) {}
func (Silent) PlayChord([]game.Pitch, time.Duration) {}
func (Silent) PlaySuccess(game.Pitch) {}
func (Silent) PlayError() {}

// Major7 is the root, major third, fifth and major seventh above root.
func Major7(root game.Pitch) []game.Pitch {
	return []game.Pitch{root, root.Transpose(4), root.Transpose(7), root.Transpose(11)}
}

// ErrorChord is a D minor triad.
var ErrorChord = []game.Pitch{game.MustPitch("D4"), game.MustPitch("F4"), game.MustPitch("A4")}
