package engine

import (
	"math"
	"strings"

	"git.lost.host/meutraa/opus/internal/audio"
	"git.lost.host/meutraa/opus/internal/game"
)

// Move shifts the cursor by delta lanes. Moves off the staff are ignored.
// With proximity hits the move itself may resolve a note.
func (e *Engine) Move(delta int) {
	w, r := e.world, &e.rules
	if e.closed || w.State != game.StatePlaying {
		return
	}
	lane := w.Cursor.Lane + delta
	if !r.Staff.Valid(lane) {
		return
	}
	w.Cursor.Lane = lane
	w.Cursor.Y = r.Staff.LaneY(lane, r.CenterY())

	if r.Hit == HitByProximity {
		e.checkProximity()
	}
}

// checkProximity resolves the newest unresolved note on the cursor lane
// within the hit window.
func (e *Engine) checkProximity() {
	w, r := e.world, &e.rules
	window := game.Window(r.Judgements)
	var (
		found game.Handle
		note  *game.Note
	)
	w.Notes.Reverse(func(h game.Handle, n *game.Note) bool {
		if n.Resolved() || n.Lane != w.Cursor.Lane {
			return true
		}
		if math.Hypot(n.X-w.Cursor.X, n.Y-w.Cursor.Y) < window {
			found, note = h, n
			return false
		}
		return true
	})
	if !found.Valid() {
		return
	}

	j, ok := game.Judge(r.Judgements, math.Abs(note.X-w.Cursor.X))
	if !ok {
		return
	}
	note.MarkHit(j.Perfect)
	w.Score.Add(j.Points)

	tone := game.ToneAccent
	if j.Perfect {
		tone = game.ToneGold
	}
	burst(w, r, e.rng, note.X, note.Y, tone)
	e.audio.PlayNote(note.Pitch, audio.Eighth)
	e.scoreUpdated()
}

// Select answers the active note with a letter name, A to G.
func (e *Engine) Select(name string) {
	w, r := e.world, &e.rules
	if e.closed || w.State != game.StatePlaying || r.Hit != HitByName {
		return
	}
	if w.Feedback != game.FeedbackNone {
		return
	}
	note, ok := w.ActiveNote()
	if !ok || note.Resolved() {
		return
	}
	name = strings.ToUpper(strings.TrimSpace(name))
	if !e.allowedName(name) {
		return
	}

	if name != note.Pitch.Letter() {
		w.Score.Break()
		e.setFeedback(game.FeedbackIncorrect)
		e.audio.PlayError()
		w.schedule(r.FeedbackDelay, timerClearFeedback)
		e.scoreUpdated()
		return
	}

	note.MarkHit(true)
	w.Score.Add(r.CorrectPoints)
	e.audio.PlaySuccess(note.Pitch)
	burst(w, r, e.rng, r.CursorX, r.CenterY(), game.ToneSuccess)

	// a level's required score is what it takes to leave it
	current := r.Catalog.Config(w.Score.Level)
	if next, ok := r.Catalog.Next(w.Score.Level); ok && w.Score.Score >= current.RequiredScore {
		e.setFeedback(game.FeedbackLevelUp)
		if e.cb.OnLevelUp != nil {
			e.cb.OnLevelUp(next.ID)
		}
		w.schedule(r.LevelUpDelay, timerLevelUp)
	} else {
		e.setFeedback(game.FeedbackCorrect)
		w.schedule(r.FeedbackDelay, timerNextNote)
	}
	e.scoreUpdated()
}

// allowedName reports whether name is the letter of a pitch in play.
func (e *Engine) allowedName(name string) bool {
	for _, lane := range allowedLanes(e.world, &e.rules) {
		if e.rules.Staff.Pitch(lane).Letter() == name {
			return true
		}
	}
	return false
}

// Strike hits the unresolved note nearest the cursor on lane. A negative
// lane accepts any lane. Striking nothing breaks the streak.
func (e *Engine) Strike(lane int) {
	w, r := e.world, &e.rules
	if e.closed || w.State != game.StatePlaying || r.Hit != HitByStrike {
		return
	}
	var (
		note *game.Note
		best = math.Inf(1)
	)
	w.Notes.Each(func(h game.Handle, n *game.Note) bool {
		if n.Resolved() || (lane >= 0 && n.Lane != lane) {
			return true
		}
		if d := math.Abs(n.X - w.Cursor.X); d < best {
			best, note = d, n
		}
		return true
	})

	j, ok := game.Judgement{}, false
	if note != nil {
		j, ok = game.Judge(r.Judgements, best)
	}
	if !ok {
		w.Score.Break()
		e.setFeedback(game.FeedbackIncorrect)
		w.schedule(r.FeedbackDelay, timerClearFeedback)
		e.scoreUpdated()
		return
	}

	note.MarkHit(j.Perfect)
	w.Score.Add(j.Points)
	e.audio.PlayNote(note.Pitch, audio.Sixteenth)
	burst(w, r, e.rng, note.X, note.Y, game.ToneGold)
	e.setFeedback(game.FeedbackCorrect)
	w.schedule(r.FeedbackDelay, timerClearFeedback)
	e.scoreUpdated()
}
