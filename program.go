package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"git.lost.host/meutraa/opus/internal/advice"
	"git.lost.host/meutraa/opus/internal/audio"
	"git.lost.host/meutraa/opus/internal/config"
	"git.lost.host/meutraa/opus/internal/engine"
	"git.lost.host/meutraa/opus/internal/game"
	"git.lost.host/meutraa/opus/internal/input"
	"git.lost.host/meutraa/opus/internal/render"
	"git.lost.host/meutraa/opus/internal/score"
	"git.lost.host/meutraa/opus/internal/theme"
	"github.com/eiannone/keyboard"
)

// The world every mode is laid out in, scaled onto the terminal.
const (
	worldWidth  = 1000
	worldHeight = 600
	hudRows     = 3
)

type menuEntry struct {
	mode        engine.Mode
	title       string
	description string
}

var menuEntries = []menuEntry{
	{engine.ModeSightReading, "Sight Reading", "Step onto the notes as they fly in. One miss ends it."},
	{engine.ModeIdentification, "Note Identification", "Name each note on the treble staff, A to G."},
	{engine.ModeRhythm, "Rhythm", "Strike each note as it crosses the playhead."},
}

type session struct {
	engine  *engine.Engine
	mode    engine.Mode
	context input.Context
	view    render.Viewport

	score, streak, level int
	feedback             game.Feedback
	highScore            int

	summary score.Summary
	advice  *advice.Advice
	pending <-chan advice.Advice
}

type Program struct {
	Config   *config.Config
	Renderer render.Renderer
	Theme    theme.Theme
	Scorer   score.Scorer
	Audio    audio.Player
	Synth    *audio.Synth // nil when sound is unavailable
	Music    *audio.Track
	Advisor  *advice.Advisor
	Catalog  *game.Catalog
	Chart    *game.Chart

	ctx     context.Context
	rng     *rand.Rand
	idle    *engine.Engine // never started, animates the menu
	menu    int
	current *session
	quit    bool
}

func (p *Program) Init(ctx context.Context) {
	p.ctx = ctx
	seed := p.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p.rng = rand.New(rand.NewSource(seed))
	if nil == p.Audio {
		p.Audio = audio.Silent{}
	}
	if nil == p.Catalog {
		p.Catalog = &game.DefaultCatalog
	}
	p.idle = engine.New(engine.SightReading(worldWidth, worldHeight), engine.Options{Rand: p.rng})

	switch p.Config.Mode {
	case config.ModeSight:
		p.start(engine.ModeSightReading)
	case config.ModeIdentify:
		p.start(engine.ModeIdentification)
	case config.ModeRhythm:
		p.start(engine.ModeRhythm)
	}
}

func (p *Program) rules(mode engine.Mode) (engine.Rules, input.Context) {
	switch mode {
	case engine.ModeIdentification:
		return engine.Identification(worldWidth, worldHeight, p.Catalog), input.Identification
	case engine.ModeRhythm:
		return engine.Rhythm(worldWidth, worldHeight, p.Chart), input.Rhythm
	}
	return engine.SightReading(worldWidth, worldHeight), input.SightReading
}

func (p *Program) start(mode engine.Mode) {
	p.stop()
	rules, ctx := p.rules(mode)
	s := &session{mode: mode, context: ctx, level: 1}
	if best, ok := p.Scorer.Best(string(mode)); ok {
		s.highScore = best.Score
	}
	s.engine = engine.New(rules, engine.Options{
		Audio: p.Audio,
		Rand:  p.rng,
		Callbacks: engine.Callbacks{
			OnScoreUpdate: func(score, streak, level int) {
				if score > s.score {
					p.splash(s, fmt.Sprintf("+%v", score-s.score))
				}
				s.score, s.streak, s.level = score, streak, level
			},
			OnGameOver: func(final int) { p.finish(s, final) },
			OnLevelUp: func(level int) {
				columns, rows := p.Renderer.Size()
				name := p.Catalog.Config(level).Name
				p.Renderer.AddDecoration(columns/2-len(name)/2, rows/2-4, "\033[1;33m"+name+"\033[0m", 90)
			},
			OnFeedback: func(f game.Feedback) { s.feedback = f },
		},
	})
	p.current = s
	s.engine.Start()
	if mode == engine.ModeRhythm && nil != p.Music && nil != p.Synth {
		p.Synth.Play(p.Music.Loop())
	}
}

// stop returns the running session to the menu, nothing it scheduled fires
// afterwards. Its engine keeps animating the menu.
func (p *Program) stop() {
	if nil == p.current {
		return
	}
	p.current.engine.Menu()
	p.idle = p.current.engine
	p.current = nil
	if nil != p.Synth {
		p.Synth.Stop()
	}
}

func (p *Program) splash(s *session, text string) {
	c := s.engine.World().Cursor
	col, row := s.view.Cell(c.X, c.Y)
	p.Renderer.AddDecoration(col+2, row-1, "\033[1;33m"+text+"\033[0m", 20)
}

func (p *Program) finish(s *session, final int) {
	w := s.engine.World()
	level := 0
	if s.mode == engine.ModeIdentification {
		level = w.Score.Level
	}
	r := score.NewRecord(string(s.mode), final, w.Score.BestStreak, level, w.Clock)
	if err := p.Scorer.Save(r); nil != err {
		log.Println(err)
	}
	s.summary = p.Scorer.Summary(string(s.mode))
	situation := advice.Context(string(s.mode), final, w.Score.BestStreak, level)
	s.pending = p.Advisor.Fetch(p.ctx, string(s.mode), situation)
}

// Update applies the key presses that arrived since the last frame and
// advances the running session.
func (p *Program) Update(keys <-chan keyboard.KeyEvent, dt time.Duration) {
	for i := len(keys); i > 0; i-- {
		p.handle(<-keys)
	}
	s := p.current
	if nil == s {
		p.idle.Tick(dt)
		return
	}
	s.engine.Tick(dt)
	if nil != s.pending {
		select {
		case a := <-s.pending:
			s.advice = &a
			s.pending = nil
		default:
		}
	}
}

func (p *Program) inputContext() input.Context {
	switch {
	case nil == p.current:
		return input.Menu
	case p.current.engine.State() == game.StateGameOver:
		return input.GameOver
	}
	return p.current.context
}

func (p *Program) handle(ev keyboard.KeyEvent) {
	if nil != ev.Err {
		log.Println("keyboard error", ev.Err)
		return
	}
	a := input.Map(ev, p.inputContext())
	switch a.Kind {
	case input.Quit:
		p.quit = true
	case input.Mute:
		if nil != p.Synth {
			p.Synth.SetMuted(!p.Synth.Muted())
		}
	case input.Back:
		p.stop()
	case input.Choose:
		p.menu = a.Index
		p.start(menuEntries[a.Index].mode)
	case input.Start:
		if nil == p.current {
			p.start(menuEntries[p.menu].mode)
		} else {
			p.start(p.current.mode)
		}
	case input.Move:
		if nil == p.current {
			p.menu = (p.menu + a.Delta + len(menuEntries)) % len(menuEntries)
		} else {
			p.current.engine.Move(a.Delta)
		}
	case input.Select:
		p.current.engine.Select(a.Name)
	case input.Strike:
		p.current.engine.Strike(a.Lane)
	case input.End:
		p.current.engine.End()
	}
}

// Frame is the render loop callback.
func (p *Program) Frame(keys <-chan keyboard.KeyEvent, dt time.Duration) bool {
	p.Update(keys, dt)
	if p.quit {
		p.stop()
		p.idle.Close()
		return false
	}
	if nil == p.current {
		p.renderMenu()
	} else {
		p.renderSession(p.current)
	}
	return true
}

func (p *Program) center(row int, text string, width int) {
	columns, _ := p.Renderer.Size()
	p.Renderer.Fill(row, max(1, (columns-width)/2), text)
}

func (p *Program) renderMenu() {
	_, rows := p.Renderer.Size()
	top := max(1, rows/2-6)
	w, r := p.idle.World(), p.idle.Rules()
	bob := int(math.Round((w.Cursor.Y - r.Staff.LaneY(w.Cursor.Lane, r.CenterY())) / 10))
	p.center(max(1, top-2+bob), p.Theme.RenderCursor(false), 1)
	p.center(top, "\033[1;35mO P U S   O N E\033[0m", 15)
	p.center(top+1, "a music theory trainer", 22)
	for i, e := range menuEntries {
		marker := "  "
		if i == p.menu {
			marker = p.Theme.RenderCursor(true) + " "
		}
		line := fmt.Sprintf("%v%v) %-20v", marker, i+1, e.title)
		p.center(top+3+i*2, line, 26)
		p.center(top+4+i*2, "\033[2m"+e.description+"\033[0m", len(e.description))
	}
	p.center(top+10, "\033[2m1-3 or enter to start   0 mute   q quit\033[0m", 38)
}

func (p *Program) renderSession(s *session) {
	columns, rows := p.Renderer.Size()
	s.view = render.Viewport{Width: worldWidth, Height: worldHeight, Columns: columns, Rows: rows, Top: hudRows}
	w := s.engine.World()
	r := s.engine.Rules()

	p.renderHUD(s, w, r)
	p.renderStaff(s, r)
	if r.Mode == engine.ModeRhythm {
		col, _ := s.view.Cell(r.CursorX, 0)
		for row := hudRows + 1; row <= rows; row++ {
			p.Renderer.Fill(row, col, p.Theme.RenderPlayhead())
		}
	}

	w.Notes.Each(func(h game.Handle, n *game.Note) bool {
		if !s.view.Visible(n.X, n.Y) {
			return true
		}
		col, row := s.view.Cell(n.X, n.Y)
		reveal := r.Mode != engine.ModeIdentification || n.Resolved()
		p.Renderer.Fill(row, col, p.Theme.RenderNote(n, reveal))
		if r.Mode == engine.ModeIdentification && n.Resolved() {
			p.Renderer.Fill(row, col+2, n.Pitch.String())
		}
		return true
	})
	w.Particles.Each(func(h game.Handle, pt *game.Particle) bool {
		if s.view.Visible(pt.X, pt.Y) {
			col, row := s.view.Cell(pt.X, pt.Y)
			p.Renderer.Fill(row, col, p.Theme.RenderParticle(pt))
		}
		return true
	})
	if r.Mode == engine.ModeSightReading {
		col, row := s.view.Cell(w.Cursor.X, w.Cursor.Y)
		p.Renderer.Fill(row, col-2, p.Theme.RenderCursor(w.State == game.StatePlaying))
	}

	if w.State == game.StateGameOver {
		p.renderGameOver(s)
	}
}

func (p *Program) renderHUD(s *session, w *engine.World, r *engine.Rules) {
	hud := fmt.Sprintf("\033[1m%v\033[0m   Score %6v   Streak %3v   Best %6v", strings.ReplaceAll(string(s.mode), "_", " "), s.score, s.streak, s.highScore)
	if r.Catalog != nil {
		l := r.Catalog.Config(s.level)
		hud += fmt.Sprintf("   Level %v: %v", l.ID, l.Name)
		if l.ShowTimer {
			if l.TimeLimit > 0 {
				hud += fmt.Sprintf("   %4.1fs left", (l.TimeLimit - w.LevelClock).Seconds())
			} else {
				hud += fmt.Sprintf("   %4.1fs", w.LevelClock.Seconds())
			}
		}
	}
	p.Renderer.Fill(1, 2, hud)

	switch s.feedback {
	case game.FeedbackCorrect:
		p.Renderer.FillColor(2, 2, p.Theme.ToneColor(game.ToneSuccess), "Correct!")
	case game.FeedbackIncorrect:
		p.Renderer.FillColor(2, 2, p.Theme.ToneColor(game.ToneError), "Not quite.")
	case game.FeedbackLevelUp:
		p.Renderer.FillColor(2, 2, p.Theme.ToneColor(game.ToneGold), "Level up!")
	default:
		p.Renderer.Fill(2, 2, "\033[2m"+p.hint(s, r)+"\033[0m")
	}
}

func (p *Program) hint(s *session, r *engine.Rules) string {
	switch s.mode {
	case engine.ModeIdentification:
		names := []string{}
		for _, lane := range r.Catalog.Config(s.level).Pitches {
			names = append(names, r.Staff.Pitch(lane).Letter())
		}
		return "name the note: " + strings.Join(names, " ") + "   enter to finish   esc menu"
	case engine.ModeRhythm:
		return "space or d f j k to strike   esc menu"
	}
	return "up/down to move   esc menu"
}

// renderStaff draws a line through every other lane, starting at the bottom.
func (p *Program) renderStaff(s *session, r *engine.Rules) {
	columns, _ := p.Renderer.Size()
	for lane := 0; lane < r.Staff.Lanes(); lane++ {
		if r.Mode != engine.ModeRhythm && lane%2 == 1 {
			continue
		}
		_, row := s.view.Cell(0, r.Staff.LaneY(lane, r.CenterY()))
		p.Renderer.Fill(row, 1, p.Theme.RenderStaffLine(columns))
		if r.Mode == engine.ModeRhythm {
			p.Renderer.Fill(row, 1, r.Staff.Pitch(lane).String())
		}
	}
}

func (p *Program) renderGameOver(s *session) {
	_, rows := p.Renderer.Size()
	top := max(hudRows+1, rows/2-4)
	title := fmt.Sprintf("GAME OVER   final score %v", s.score)
	p.center(top, "\033[1;31m"+title+"\033[0m", len(title))
	switch {
	case nil != s.advice:
		p.center(top+2, "\033[3m"+s.advice.Explanation+"\033[0m", len(s.advice.Explanation))
		p.center(top+3, s.advice.Tip, len(s.advice.Tip))
	case nil != s.pending:
		p.center(top+2, "\033[2mthe maestro is thinking...\033[0m", 26)
	}
	sum := s.summary
	stats := fmt.Sprintf("%v sessions   high score %v   average %.0f   best streak %v", sum.Sessions, sum.HighScore, sum.MeanScore, sum.BestStreak)
	p.center(top+4, "\033[2m"+stats+"\033[0m", len(stats))
	p.center(top+6, "\033[2menter play again   m menu   q quit\033[0m", 34)
}
