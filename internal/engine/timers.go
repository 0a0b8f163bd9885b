package engine

import "git.lost.host/meutraa/opus/internal/game"

func (e *Engine) runTimers() {
	w := e.world
	for {
		t, ok := w.due()
		if !ok {
			return
		}
		switch t.kind {
		case timerClearFeedback:
			if t.seq == w.feedbackSeq {
				w.Feedback = game.FeedbackNone
				e.feedback(game.FeedbackNone)
			}
		case timerNextNote:
			e.clearActive()
			w.Feedback = game.FeedbackNone
			e.feedback(game.FeedbackNone)
		case timerLevelUp:
			if next, ok := e.rules.Catalog.Next(w.Score.Level); ok {
				w.Score.Level = next.ID
				w.LevelClock = 0
			}
			// the note goes only after the level moved on, so the next
			// spawn draws from the new level's pitches
			e.clearActive()
			w.Feedback = game.FeedbackNone
			e.feedback(game.FeedbackNone)
			e.scoreUpdated()
		}
	}
}

func (e *Engine) clearActive() {
	w := e.world
	if w.Active.Valid() {
		w.Notes.Remove(w.Active)
	}
	w.Active = game.NoHandle
}

// setFeedback shows f. Timers queued after this call carry the new
// feedback generation, older clear timers become stale.
func (e *Engine) setFeedback(f game.Feedback) {
	w := e.world
	w.feedbackSeq++
	w.Feedback = f
	e.feedback(f)
}
