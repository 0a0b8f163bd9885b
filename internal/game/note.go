package game

import "time"

type Note struct {
	Lane  int // staff slot or chart column
	Pitch Pitch
	X, Y  float64
	Due   time.Duration // when the note reaches the cursor, schedule driven modes only
	Seq   uint64        // spawn order within the session

	// This is state
	Hit     bool
	Missed  bool
	Perfect bool
}

// Resolved notes are inert: they no longer take part in hit or miss checks.
func (n *Note) Resolved() bool {
	return n.Hit || n.Missed
}

// MarkHit resolves the note as hit. It reports false if the note was
// already resolved.
func (n *Note) MarkHit(perfect bool) bool {
	if n.Resolved() {
		return false
	}
	n.Hit = true
	n.Perfect = perfect
	return true
}

// MarkMissed resolves the note as missed. It reports false if the note was
// already resolved.
func (n *Note) MarkMissed() bool {
	if n.Resolved() {
		return false
	}
	n.Missed = true
	return true
}

// Tone selects the particle colour in the theme.
type Tone int

const (
	ToneAccent Tone = iota
	ToneGold
	ToneSuccess
	ToneError
)

// Particle is a short lived feedback spark. Life counts down in frames.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Alpha  float64
	Tone   Tone
}

func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Cursor is the player marker. It only ever jumps between lanes.
type Cursor struct {
	Lane int
	X, Y float64
}
