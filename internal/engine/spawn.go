package engine

import (
	"math/rand"

	"git.lost.host/meutraa/opus/internal/game"
)

// allowedLanes is the pitch set notes are drawn from: the current level's
// pitches when there is a catalog, otherwise the whole staff.
func allowedLanes(w *World, r *Rules) []int {
	if r.Catalog == nil {
		lanes := make([]int, r.Staff.Lanes())
		for i := range lanes {
			lanes[i] = i
		}
		return lanes
	}
	level := r.Catalog.Config(w.Score.Level)
	lanes := make([]int, 0, len(level.Pitches))
	for _, p := range level.Pitches {
		if r.Staff.Valid(p) {
			lanes = append(lanes, p)
		}
	}
	return lanes
}

// pickLane draws uniformly from the allowed set. An empty set yields false.
func pickLane(w *World, r *Rules, rng *rand.Rand) (int, bool) {
	lanes := allowedLanes(w, r)
	if len(lanes) == 0 {
		return 0, false
	}
	return lanes[rng.Intn(len(lanes))], true
}

func placeNote(w *World, r *Rules, lane int, x float64) game.Handle {
	w.seq++
	return w.Notes.Insert(game.Note{
		Lane:  lane,
		Pitch: r.Staff.Pitch(lane),
		X:     x,
		Y:     r.Staff.LaneY(lane, r.CenterY()),
		Seq:   w.seq,
	})
}

// spawnOnInterval places a note at the spawn edge once the deadline passed
// and recomputes the deadline from the current score.
func spawnOnInterval(w *World, r *Rules, rng *rand.Rand) (game.Handle, bool) {
	if w.Clock < w.NextSpawn {
		return game.NoHandle, false
	}
	lane, ok := pickLane(w, r, rng)
	if !ok {
		return game.NoHandle, false
	}
	h := placeNote(w, r, lane, r.SpawnX)
	w.NextSpawn = w.Clock + r.Interval.At(w.Score.Score)
	return h, true
}

// spawnOnDemand places the next note only when nothing is waiting for an
// answer and no feedback is pending.
func spawnOnDemand(w *World, r *Rules, rng *rand.Rand) (game.Handle, bool) {
	if w.Feedback != game.FeedbackNone {
		return game.NoHandle, false
	}
	if _, ok := w.ActiveNote(); ok {
		return game.NoHandle, false
	}
	lane, ok := pickLane(w, r, rng)
	if !ok {
		return game.NoHandle, false
	}
	w.Active = placeNote(w, r, lane, r.SpawnX)
	return w.Active, true
}

// spawnOnSchedule places every chart beat whose note has come into view.
func spawnOnSchedule(w *World, r *Rules) int {
	if r.Chart == nil {
		return 0
	}
	lead := r.leadIn()
	n := 0
	for w.chartNext < len(r.Chart.Beats) {
		b := r.Chart.Beats[w.chartNext]
		due := b.Time + lead
		x := r.scheduleX(due, w.Clock)
		if x > r.SpawnX {
			break
		}
		h := placeNote(w, r, r.Staff.Clamp(b.Lane), x)
		if note, ok := w.Notes.Get(h); ok {
			note.Due = due
		}
		w.chartNext++
		n++
	}
	return n
}
