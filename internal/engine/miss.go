package engine

import "git.lost.host/meutraa/opus/internal/game"

// detectMisses marks every unresolved note that crossed behind the cursor
// and throws an error burst where each one was lost. All of them are marked
// in the same frame; the policy is applied once.
func (e *Engine) detectMisses() {
	w, r := e.world, &e.rules
	if r.Hit == HitByName {
		return
	}
	missed := 0
	w.Notes.Each(func(h game.Handle, n *game.Note) bool {
		if !n.Resolved() && n.X < w.Cursor.X-r.MissMargin {
			n.MarkMissed()
			burst(w, r, e.rng, n.X, n.Y, game.ToneError)
			missed++
		}
		return true
	})
	if missed == 0 || r.Miss == MissIgnored {
		return
	}

	w.Score.Break()
	e.audio.PlayError()
	e.scoreUpdated()
	if r.Miss == MissEndsSession {
		e.gameOver()
	}
}
