package engine

import (
	"math"
	"math/rand"

	"git.lost.host/meutraa/opus/internal/game"
)

// advance moves every note and particle by frames reference frames.
func advance(w *World, r *Rules, frames float64) {
	dx := r.Speed(w.Score.Score) * frames
	w.Notes.Each(func(h game.Handle, n *game.Note) bool {
		if r.Spawn == SpawnOnSchedule && r.Chart != nil {
			n.X = r.scheduleX(n.Due, w.Clock)
		} else {
			n.X -= dx
		}
		return true
	})

	w.Particles.Each(func(h game.Handle, p *game.Particle) bool {
		p.X += p.VX * frames
		p.Y += p.VY * frames
		p.Alpha = math.Max(0, p.Alpha-r.Particles.Fade*frames)
		p.Life -= frames
		return true
	})
}

// sweep removes notes that left the screen and particles that burnt out.
func sweep(w *World, r *Rules) {
	w.Notes.Each(func(h game.Handle, n *game.Note) bool {
		if n.X < r.CleanupX {
			w.Notes.Remove(h)
		}
		return true
	})
	w.Particles.Each(func(h game.Handle, p *game.Particle) bool {
		if !p.Alive() {
			w.Particles.Remove(h)
		}
		return true
	})
}

// burst throws a ring of particles out of x, y.
func burst(w *World, r *Rules, rng *rand.Rand, x, y float64, tone game.Tone) {
	b := r.Particles
	for i := 0; i < b.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(b.Count)
		speed := b.MinSpeed + rng.Float64()*(b.MaxSpeed-b.MinSpeed)
		w.Particles.Insert(game.Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  b.MinLife + rng.Float64()*(b.MaxLife-b.MinLife),
			Alpha: 1,
			Tone:  tone,
		})
	}
}

// hover bobs the cursor around the middle lane while the menu is shown.
func hover(w *World, r *Rules) {
	t := float64(w.Idle.Milliseconds()) * 0.002
	w.Cursor.Y = r.Staff.LaneY(w.Cursor.Lane, r.CenterY()) + math.Sin(t)*10
}
