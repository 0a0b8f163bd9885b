package engine

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"git.lost.host/meutraa/opus/internal/game"
)

type recorder struct {
	notes, chords, successes, errors int
}

func (r *recorder) PlayNote(game.Pitch, time.Duration)    { r.notes++ }
func (r *recorder) PlayChord([]game.Pitch, time.Duration) { r.chords++ }
func (r *recorder) PlaySuccess(game.Pitch)                { r.successes++ }
func (r *recorder) PlayError()                            { r.errors++ }

type events struct {
	scores    []int
	gameOvers []int
	levelUps  []int
	feedback  []game.Feedback
}

func (ev *events) callbacks() Callbacks {
	return Callbacks{
		OnScoreUpdate: func(score, streak, level int) { ev.scores = append(ev.scores, score) },
		OnGameOver:    func(score int) { ev.gameOvers = append(ev.gameOvers, score) },
		OnLevelUp:     func(level int) { ev.levelUps = append(ev.levelUps, level) },
		OnFeedback:    func(f game.Feedback) { ev.feedback = append(ev.feedback, f) },
	}
}

func newTestEngine(rules Rules) (*Engine, *events, *recorder) {
	ev, rec := &events{}, &recorder{}
	e := New(rules, Options{Audio: rec, Callbacks: ev.callbacks(), Rand: rand.New(rand.NewSource(1))})
	return e, ev, rec
}

// quietSight never spawns on its own so tests control every note.
func quietSight() Rules {
	r := SightReading(1000, 600)
	r.Interval.Base, r.Interval.Min = time.Hour, time.Hour
	return r
}

var proximityTests = map[float64]int{
	10: 200,
	20: 100,
	29: 100,
	30: 0,
	45: 0,
}

func TestProximityHit(t *testing.T) {
	for offset, expected := range proximityTests {
		e, _, rec := newTestEngine(quietSight())
		e.Start()
		w := e.World()
		placeNote(w, e.Rules(), w.Cursor.Lane+1, w.Cursor.X+offset)

		e.Move(1)
		if w.Score.Score != expected {
			t.Log("Offset  ", offset)
			t.Log("Score   ", w.Score.Score)
			t.Log("Expected", expected)
			t.Fail()
		}
		if expected > 0 && (w.Score.Streak != 1 || rec.notes != 1 || w.Particles.Len() != 8) {
			t.Log("Offset", offset, "streak", w.Score.Streak, "notes played", rec.notes, "particles", w.Particles.Len())
			t.Fail()
		}
	}
}

func TestProximityNeedsMatchingLane(t *testing.T) {
	e, _, _ := newTestEngine(quietSight())
	e.Start()
	w := e.World()
	placeNote(w, e.Rules(), w.Cursor.Lane+2, w.Cursor.X)

	e.Move(1)
	if w.Score.Score != 0 {
		t.Log("a note two lanes away was hit")
		t.Fail()
	}
	if w.Cursor.Y != e.Rules().Staff.LaneY(w.Cursor.Lane, e.Rules().CenterY()) {
		t.Log("cursor did not jump to the lane", w.Cursor.Y)
		t.Fail()
	}
}

func TestProximityHitsOnce(t *testing.T) {
	e, _, _ := newTestEngine(quietSight())
	e.Start()
	w := e.World()
	lane := w.Cursor.Lane + 1
	placeNote(w, e.Rules(), lane, w.Cursor.X+5)
	placeNote(w, e.Rules(), lane, w.Cursor.X+8)

	e.Move(1)
	e.Move(-1)
	e.Move(1)
	if w.Score.Score != 400 {
		t.Log("expected both notes hit over two moves, score", w.Score.Score)
		t.Fail()
	}
	e.Move(-1)
	e.Move(1)
	if w.Score.Score != 400 {
		t.Log("a resolved note scored again", w.Score.Score)
		t.Fail()
	}
}

func TestMoveOffStaffIgnored(t *testing.T) {
	e, _, _ := newTestEngine(quietSight())
	e.Start()
	w := e.World()
	lanes := e.Rules().Staff.Lanes()
	for i := 0; i < lanes*2; i++ {
		e.Move(1)
	}
	if w.Cursor.Lane != lanes-1 {
		t.Log("cursor left the staff", w.Cursor.Lane)
		t.Fail()
	}
	e.Move(-lanes * 3)
	if w.Cursor.Lane != lanes-1 {
		t.Log("a jump off the staff was applied", w.Cursor.Lane)
		t.Fail()
	}
}

func TestMissedNoteCleanup(t *testing.T) {
	r := quietSight()
	r.Miss = MissIgnored
	e, ev, _ := newTestEngine(r)
	e.Start()

	e.Tick(FrameDuration)
	w := e.World()
	if w.Notes.Len() != 1 {
		t.Log("expected a note on the first frame, got", w.Notes.Len())
		t.FailNow()
	}
	for i := 2; i <= 143; i++ {
		e.Tick(FrameDuration)
	}
	if w.Notes.Len() != 1 {
		t.Log("note removed before leaving the screen")
		t.Fail()
	}
	e.Tick(FrameDuration)
	if w.Notes.Len() != 0 {
		t.Log("note still alive after 144 frames")
		t.Fail()
	}
	if len(ev.gameOvers) != 0 || w.State != game.StatePlaying {
		t.Log("ignored misses ended the session")
		t.Fail()
	}
}

func TestFirstMissEndsSession(t *testing.T) {
	e, ev, rec := newTestEngine(quietSight())
	e.Start()
	w := e.World()
	w.Score.Add(100)
	a := placeNote(w, e.Rules(), 0, 150)
	b := placeNote(w, e.Rules(), 1, 160)

	e.Tick(FrameDuration)
	e.Tick(FrameDuration)
	if len(ev.gameOvers) != 1 || ev.gameOvers[0] != 100 {
		t.Log("game over events", ev.gameOvers)
		t.Fail()
	}
	if w.State != game.StateGameOver || w.Score.Streak != 0 || rec.errors != 1 {
		t.Log("state", w.State, "streak", w.Score.Streak, "errors", rec.errors)
		t.Fail()
	}
	for _, h := range []game.Handle{a, b} {
		if n, ok := w.Notes.Get(h); !ok || !n.Missed {
			t.Log("note not marked missed", h)
			t.Fail()
		}
	}
	if w.Particles.Len() != 2*e.Rules().Particles.Count {
		t.Log("particles after two misses", w.Particles.Len())
		t.Fail()
	}
	w.Particles.Each(func(h game.Handle, p *game.Particle) bool {
		if p.Tone != game.ToneError {
			t.Log("miss particle with tone", p.Tone)
			t.Fail()
			return false
		}
		return true
	})
}

func TestEndFiresGameOverOnce(t *testing.T) {
	e, ev, _ := newTestEngine(quietSight())
	e.Start()
	e.End()
	e.End()
	e.Tick(time.Second)
	if len(ev.gameOvers) != 1 {
		t.Log("game over fired", len(ev.gameOvers), "times")
		t.Fail()
	}
}

var intervalTests = map[int]time.Duration{
	0:      2000 * time.Millisecond,
	2500:   1600 * time.Millisecond,
	5000:   1200 * time.Millisecond,
	10000:  600 * time.Millisecond,
	100000: 600 * time.Millisecond,
}

func TestSpawnInterval(t *testing.T) {
	r := SightReading(1000, 600)
	for score, expected := range intervalTests {
		if got := r.Interval.At(score); got != expected {
			t.Log("Score   ", score)
			t.Log("Interval", got)
			t.Log("Expected", expected)
			t.Fail()
		}
	}
}

func TestSpeedGrows(t *testing.T) {
	r := SightReading(1000, 600)
	if r.Speed(0) != 8 || r.Speed(10000) != 16 {
		t.Log("speed", r.Speed(0), r.Speed(10000))
		t.Fail()
	}
}

func TestMenuIdle(t *testing.T) {
	e, ev, _ := newTestEngine(SightReading(1000, 600))
	w := e.World()
	r := e.Rules()
	mid := r.Staff.LaneY(r.Staff.Middle, r.CenterY())
	for i := 0; i < 600; i++ {
		e.Tick(FrameDuration)
		if math.Abs(w.Cursor.Y-mid) > 10 {
			t.Log("cursor drifted", w.Cursor.Y, mid)
			t.FailNow()
		}
	}
	if w.Notes.Len() != 0 || w.Score.Score != 0 || len(ev.scores) != 0 {
		t.Log("the menu changed the session")
		t.Fail()
	}
	e.Move(1)
	if w.Cursor.Lane != r.Staff.Middle {
		t.Log("menu accepted a move")
		t.Fail()
	}
}

// assertFresh checks the state every session starts from.
func assertFresh(t *testing.T, e *Engine) {
	t.Helper()
	w := e.World()
	if w.State != game.StatePlaying || w.Score.Score != 0 || w.Score.Streak != 0 || w.Score.Level != 1 {
		t.Log("restart kept", w.State, w.Score)
		t.Fail()
	}
	if w.Notes.Len() != 0 || w.Particles.Len() != 0 || w.Clock != 0 || w.LevelClock != 0 {
		t.Log("notes", w.Notes.Len(), "particles", w.Particles.Len(), "clock", w.Clock, "level clock", w.LevelClock)
		t.Fail()
	}
	if w.Active != game.NoHandle || w.Feedback != game.FeedbackNone {
		t.Log("active", w.Active, "feedback", w.Feedback)
		t.Fail()
	}
	if w.Cursor.Lane != e.Rules().Staff.Middle {
		t.Log("cursor not back on the middle lane", w.Cursor.Lane)
		t.Fail()
	}
}

func TestRestartResets(t *testing.T) {
	e, _, _ := newTestEngine(quietSight())
	e.Start()
	w := e.World()
	placeNote(w, e.Rules(), w.Cursor.Lane+1, w.Cursor.X+5)
	e.Move(1)
	e.Tick(FrameDuration)
	if w.Score.Streak != 1 || w.Particles.Len() == 0 {
		t.Log("setup hit did not land", w.Score, w.Particles.Len())
		t.FailNow()
	}
	e.End()

	e.Start()
	assertFresh(t, e)
}

func TestRestartResetsIdentificationLevel(t *testing.T) {
	catalog := game.DefaultCatalog
	e, ev, _ := newIdentification(&catalog)
	w := e.World()
	for i := 0; i < 5; i++ {
		n, _ := w.ActiveNote()
		e.Select(n.Pitch.Letter())
		e.Tick(2 * time.Second)
	}
	n, ok := w.ActiveNote()
	if !ok || w.Score.Level != 2 {
		t.Log("setup did not reach level 2", w.Score.Level)
		t.FailNow()
	}
	e.Select(n.Pitch.Letter())
	if w.Feedback != game.FeedbackCorrect || w.Particles.Len() == 0 || w.Score.Streak != 6 {
		t.Log("setup answer", w.Feedback, w.Particles.Len(), w.Score.Streak)
		t.FailNow()
	}
	e.End()

	e.Start()
	assertFresh(t, e)

	levelUps := len(ev.levelUps)
	e.Tick(FrameDuration)
	e.Tick(2 * time.Second)
	n, ok = w.ActiveNote()
	lines := map[int]bool{0: true, 2: true, 4: true}
	if !ok || !lines[n.Lane] {
		t.Log("first note after restart not drawn from level 1", ok)
		t.Fail()
	}
	if len(ev.levelUps) != levelUps || w.Feedback != game.FeedbackNone || w.Score.Level != 1 {
		t.Log("delay from the previous session fired", w.Feedback, w.Score.Level)
		t.Fail()
	}
}

func TestMenuAfterGameOver(t *testing.T) {
	e, ev, _ := newTestEngine(quietSight())
	e.Start()
	w := e.World()
	placeNote(w, e.Rules(), w.Cursor.Lane+1, w.Cursor.X+5)
	e.Move(1)
	e.End()

	scores := len(ev.scores)
	e.Menu()
	if w.State != game.StateMenu || w.Score.Score != 0 || w.Notes.Len() != 0 || w.Particles.Len() != 0 {
		t.Log("menu kept", w.State, w.Score, w.Notes.Len(), w.Particles.Len())
		t.Fail()
	}
	e.Move(1)
	e.Tick(time.Minute)
	if len(ev.scores) != scores || len(ev.gameOvers) != 1 || w.Notes.Len() != 0 {
		t.Log("menu ran the game", len(ev.scores)-scores, len(ev.gameOvers), w.Notes.Len())
		t.Fail()
	}
	if w.Idle != time.Minute || w.Cursor.Lane != e.Rules().Staff.Middle {
		t.Log("idle", w.Idle, "cursor lane", w.Cursor.Lane)
		t.Fail()
	}

	e.Start()
	assertFresh(t, e)
}

func TestCloseSilencesEngine(t *testing.T) {
	e, ev, _ := newTestEngine(SightReading(1000, 600))
	e.Start()
	e.Tick(FrameDuration)
	e.Close()
	before := len(ev.scores)
	e.Start()
	e.Tick(time.Minute)
	if len(ev.scores) != before || len(ev.gameOvers) != 0 || e.World().Notes.Len() != 0 {
		t.Log("engine still running after close")
		t.Fail()
	}
}
