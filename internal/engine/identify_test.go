package engine

import (
	"testing"
	"time"

	"git.lost.host/meutraa/opus/internal/game"
)

func newIdentification(catalog *game.Catalog) (*Engine, *events, *recorder) {
	e, ev, rec := newTestEngine(Identification(1000, 600, catalog))
	e.Start()
	e.Tick(FrameDuration)
	return e, ev, rec
}

// wrongLetter is an allowed letter other than the active note's.
func wrongLetter(e *Engine) string {
	n, _ := e.World().ActiveNote()
	for _, lane := range allowedLanes(e.World(), e.Rules()) {
		if l := e.Rules().Staff.Pitch(lane).Letter(); l != n.Pitch.Letter() {
			return l
		}
	}
	return ""
}

func TestIdentificationLevelUp(t *testing.T) {
	catalog := game.DefaultCatalog
	e, ev, rec := newIdentification(&catalog)
	w := e.World()

	for i := 1; i <= 5; i++ {
		n, ok := w.ActiveNote()
		if !ok {
			t.Log("no note to answer at round", i)
			t.FailNow()
		}
		e.Select(n.Pitch.Letter())
		if w.Score.Score != i*10 || w.Score.Streak != i {
			t.Log("Round ", i)
			t.Log("Score ", w.Score.Score, "streak", w.Score.Streak)
			t.Fail()
		}
		if i < 5 && len(ev.levelUps) != 0 {
			t.Log("level up before reaching the threshold", i)
			t.Fail()
		}
		e.Tick(2 * time.Second)
	}

	if len(ev.levelUps) != 1 || ev.levelUps[0] != 2 {
		t.Log("level ups", ev.levelUps)
		t.Fail()
	}
	if w.Score.Level != 2 || w.Feedback != game.FeedbackNone {
		t.Log("level", w.Score.Level, "feedback", w.Feedback)
		t.Fail()
	}
	if rec.successes != 5 {
		t.Log("success chords", rec.successes)
		t.Fail()
	}
	n, ok := w.ActiveNote()
	if !ok {
		t.Log("no note after levelling up")
		t.FailNow()
	}
	spaces := map[int]bool{1: true, 3: true, 5: true}
	if !spaces[n.Lane] {
		t.Log("level 2 note drawn from outside its pitches", n.Lane)
		t.Fail()
	}
}

func TestIdentificationWrongAnswer(t *testing.T) {
	e, ev, rec := newIdentification(&game.DefaultCatalog)
	w := e.World()
	w.Score.Add(10)
	before := w.Active

	e.Select(wrongLetter(e))
	if w.Score.Streak != 0 || w.Score.Score != 10 || w.Feedback != game.FeedbackIncorrect || rec.errors != 1 {
		t.Log("after a wrong answer", w.Score, w.Feedback, rec.errors)
		t.Fail()
	}

	// answers during feedback are ignored
	n, _ := w.ActiveNote()
	e.Select(n.Pitch.Letter())
	if w.Score.Score != 10 {
		t.Log("answer accepted while feedback pending")
		t.Fail()
	}

	e.Tick(600 * time.Millisecond)
	if w.Feedback != game.FeedbackNone || w.Active != before {
		t.Log("feedback", w.Feedback, "active", w.Active, "before", before)
		t.Fail()
	}
	last := ev.feedback[len(ev.feedback)-1]
	if last != game.FeedbackNone {
		t.Log("feedback not cleared through the callback", last)
		t.Fail()
	}
}

func TestIdentificationRejectsForeignLetters(t *testing.T) {
	e, _, _ := newIdentification(&game.DefaultCatalog)
	w := e.World()
	// level one holds E, G and B only
	for _, name := range []string{"A", "C", "D", "F", "", "H"} {
		e.Select(name)
	}
	if w.Feedback != game.FeedbackNone || w.Score.Score != 0 {
		t.Log("letters outside the level were judged", w.Feedback)
		t.Fail()
	}
}

func TestIdentificationEmptyLevel(t *testing.T) {
	catalog := &game.Catalog{Levels: []game.Level{{ID: 1, Name: "Nothing"}}}
	e, _, _ := newIdentification(catalog)
	for i := 0; i < 10; i++ {
		e.Tick(FrameDuration)
	}
	if _, ok := e.World().ActiveNote(); ok || e.World().Notes.Len() != 0 {
		t.Log("spawned from an empty pitch set")
		t.Fail()
	}
	e.Select("E")
	if e.World().Feedback != game.FeedbackNone {
		t.Log("answer judged without a note")
		t.Fail()
	}
}

func TestIdentificationNoMisses(t *testing.T) {
	e, ev, _ := newIdentification(&game.DefaultCatalog)
	h := e.World().Active
	for i := 0; i < 600; i++ {
		e.Tick(FrameDuration)
	}
	if e.World().Active != h || len(ev.gameOvers) != 0 {
		t.Log("unanswered note was dropped")
		t.Fail()
	}
}

func TestIdentificationTimeLimit(t *testing.T) {
	catalog := &game.Catalog{Levels: []game.Level{{ID: 1, Pitches: []int{0}, TimeLimit: time.Second}}}
	e, ev, _ := newIdentification(catalog)
	e.Tick(500 * time.Millisecond)
	if e.State() != game.StatePlaying {
		t.Log("ended before the limit")
		t.Fail()
	}
	e.Tick(500 * time.Millisecond)
	if e.State() != game.StateGameOver || len(ev.gameOvers) != 1 {
		t.Log("time limit did not end the session", e.State())
		t.Fail()
	}
}

func TestCloseCancelsDelays(t *testing.T) {
	e, ev, _ := newIdentification(&game.DefaultCatalog)
	n, _ := e.World().ActiveNote()
	e.Select(n.Pitch.Letter())
	count := len(ev.feedback)

	e.Close()
	e.Tick(5 * time.Second)
	if len(ev.feedback) != count || len(e.World().timers) != 0 {
		t.Log("a delayed transition fired after close")
		t.Fail()
	}
}
