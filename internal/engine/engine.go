package engine

import (
	"math/rand"
	"time"

	"git.lost.host/meutraa/opus/internal/audio"
	"git.lost.host/meutraa/opus/internal/game"
)

// Callbacks are invoked synchronously from Tick and the input methods.
// Any of them may be nil.
type Callbacks struct {
	OnScoreUpdate func(score, streak, level int)
	OnGameOver    func(finalScore int)
	OnLevelUp     func(level int)
	OnFeedback    func(f game.Feedback)
}

type Options struct {
	Audio     audio.Player
	Callbacks Callbacks
	Rand      *rand.Rand
}

// Engine drives one mini-game. It is not safe for concurrent use: Tick and
// the input methods must be called from the same goroutine.
type Engine struct {
	rules  Rules
	world  *World
	audio  audio.Player
	cb     Callbacks
	rng    *rand.Rand
	closed bool
}

func New(rules Rules, opts Options) *Engine {
	e := &Engine{
		rules: rules,
		world: newWorld(),
		audio: opts.Audio,
		cb:    opts.Callbacks,
		rng:   opts.Rand,
	}
	if e.audio == nil {
		e.audio = audio.Silent{}
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.world.reset(&e.rules)
	return e
}

func (e *Engine) Rules() *Rules {
	return &e.rules
}

// World exposes the session state for rendering. Callers must not modify it.
func (e *Engine) World() *World {
	return e.world
}

func (e *Engine) State() game.State {
	return e.world.State
}

// Start begins a new session from the menu or after a game over.
func (e *Engine) Start() {
	if e.closed {
		return
	}
	e.world.reset(&e.rules)
	e.world.State = game.StatePlaying
	e.scoreUpdated()
}

// End finishes the running session as if it had been lost.
func (e *Engine) End() {
	if e.closed || e.world.State != game.StatePlaying {
		return
	}
	e.gameOver()
}

// Menu abandons whatever is running and returns to the idle state.
func (e *Engine) Menu() {
	if e.closed {
		return
	}
	e.world.reset(&e.rules)
	e.world.State = game.StateMenu
}

// Close tears the engine down. Nothing fires after Close.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.world.reset(&e.rules)
	e.world.State = game.StateMenu
	e.closed = true
}

// Tick advances the session by one rendered frame of length dt.
func (e *Engine) Tick(dt time.Duration) {
	if e.closed || dt <= 0 {
		return
	}
	w, r := e.world, &e.rules
	switch w.State {
	case game.StateMenu:
		w.Idle += dt
		hover(w, r)
	case game.StatePlaying:
		w.Clock += dt
		w.LevelClock += dt
		e.runTimers()
		if e.expired() {
			e.gameOver()
			return
		}

		frames := float64(dt) / float64(FrameDuration)
		e.spawn()
		advance(w, r, frames)
		e.detectMisses()
		sweep(w, r)

		if w.State == game.StatePlaying && e.exhausted() {
			e.gameOver()
		}
	}
}

func (e *Engine) spawn() {
	w, r := e.world, &e.rules
	switch r.Spawn {
	case SpawnOnInterval:
		spawnOnInterval(w, r, e.rng)
	case SpawnOnDemand:
		if h, ok := spawnOnDemand(w, r, e.rng); ok {
			if n, ok := w.Notes.Get(h); ok {
				e.audio.PlayNote(n.Pitch, audio.Half)
			}
		}
	case SpawnOnSchedule:
		spawnOnSchedule(w, r)
	}
}

// expired reports whether the current level's time limit ran out.
func (e *Engine) expired() bool {
	r := &e.rules
	if r.Catalog == nil {
		return false
	}
	limit := r.Catalog.Config(e.world.Score.Level).TimeLimit
	return limit > 0 && e.world.LevelClock >= limit
}

// exhausted reports whether a chart has been played to the end.
func (e *Engine) exhausted() bool {
	r := &e.rules
	if r.Spawn != SpawnOnSchedule || r.Chart == nil {
		return false
	}
	return e.world.Pending(r) == 0 && e.world.Notes.Len() == 0
}

// gameOver latches the end of the session; the callback fires once.
func (e *Engine) gameOver() {
	w := e.world
	w.State = game.StateGameOver
	w.timers = w.timers[:0]
	if w.gameOverSent {
		return
	}
	w.gameOverSent = true
	if e.cb.OnGameOver != nil {
		e.cb.OnGameOver(w.Score.Score)
	}
}

func (e *Engine) scoreUpdated() {
	if e.cb.OnScoreUpdate != nil {
		s := e.world.Score
		e.cb.OnScoreUpdate(s.Score, s.Streak, s.Level)
	}
}

func (e *Engine) feedback(f game.Feedback) {
	if e.cb.OnFeedback != nil {
		e.cb.OnFeedback(f)
	}
}
