package engine

import (
	"sort"
	"time"

	"git.lost.host/meutraa/opus/internal/game"
)

// World is everything a play session owns. It is reset in full when a
// session starts or returns to the menu.
type World struct {
	State     game.State
	Score     game.Score
	Cursor    game.Cursor
	Notes     *game.Arena[game.Note]
	Particles *game.Arena[game.Particle]

	Clock      time.Duration // time spent playing this session
	LevelClock time.Duration // time spent on the current level
	Idle       time.Duration // time spent in the menu, drives the hover animation
	NextSpawn  time.Duration

	Active   game.Handle // the note waiting for an answer, identification only
	Feedback game.Feedback

	seq          uint64
	chartNext    int
	timers       []timer
	feedbackSeq  uint64
	gameOverSent bool
}

func newWorld() *World {
	return &World{
		Score:     game.NewScore(),
		Notes:     game.NewArena[game.Note](32),
		Particles: game.NewArena[game.Particle](128),
	}
}

// reset discards every note, particle and pending timer.
func (w *World) reset(r *Rules) {
	w.Score.Reset()
	w.Notes.Clear()
	w.Particles.Clear()
	w.Clock = 0
	w.LevelClock = 0
	w.Idle = 0
	w.NextSpawn = 0
	w.Active = game.NoHandle
	w.Feedback = game.FeedbackNone
	w.seq = 0
	w.chartNext = 0
	w.timers = w.timers[:0]
	w.feedbackSeq = 0
	w.gameOverSent = false

	lane := r.Staff.Clamp(r.Staff.Middle)
	w.Cursor = game.Cursor{Lane: lane, X: r.CursorX, Y: r.Staff.LaneY(lane, r.CenterY())}
}

// ActiveNote returns the note waiting for an answer.
func (w *World) ActiveNote() (*game.Note, bool) {
	if !w.Active.Valid() {
		return nil, false
	}
	return w.Notes.Get(w.Active)
}

// Pending reports the number of chart beats not yet spawned.
func (w *World) Pending(r *Rules) int {
	if r.Chart == nil {
		return 0
	}
	return len(r.Chart.Beats) - w.chartNext
}

type timerKind int

const (
	timerClearFeedback timerKind = iota
	timerNextNote
	timerLevelUp
)

type timer struct {
	at   time.Duration
	kind timerKind
	seq  uint64
}

// schedule queues a timer on the session clock, keeping the queue ordered.
func (w *World) schedule(after time.Duration, kind timerKind) {
	t := timer{at: w.Clock + after, kind: kind, seq: w.feedbackSeq}
	i := sort.Search(len(w.timers), func(i int) bool { return w.timers[i].at > t.at })
	w.timers = append(w.timers, timer{})
	copy(w.timers[i+1:], w.timers[i:])
	w.timers[i] = t
}

// due pops the next timer that has expired.
func (w *World) due() (timer, bool) {
	if len(w.timers) == 0 || w.timers[0].at > w.Clock {
		return timer{}, false
	}
	t := w.timers[0]
	w.timers = w.timers[1:]
	return t, true
}
