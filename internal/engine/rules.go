package engine

import (
	"math"
	"time"

	"git.lost.host/meutraa/opus/internal/game"
)

// FrameDuration is the reference frame. Speeds, velocities and particle
// lifetimes are expressed per reference frame and scaled by the real delta.
const FrameDuration = time.Second / 60

type Mode string

const (
	ModeSightReading   Mode = "SIGHT_READING"
	ModeIdentification Mode = "IDENTIFICATION"
	ModeRhythm         Mode = "RHYTHM"
)

// SpawnPolicy decides when notes enter the field.
type SpawnPolicy int

const (
	SpawnOnInterval SpawnPolicy = iota // deadline recomputed from the score after each spawn
	SpawnOnDemand                      // one note at a time, next one when the field is empty
	SpawnOnSchedule                    // from a chart, as beats come into view
)

// HitPolicy decides which input resolves notes.
type HitPolicy int

const (
	HitByProximity HitPolicy = iota // moving onto the lane of a nearby note
	HitByName                       // naming the pitch of the active note
	HitByStrike                     // striking while a note crosses the cursor
)

// MissPolicy decides what an unresolved note passing the cursor costs.
type MissPolicy int

const (
	MissEndsSession MissPolicy = iota
	MissBreaksStreak
	MissIgnored
)

// Interval is the spawn interval curve: Base shrinking by Step for every
// ScorePerStep points, at most MaxSteps times, never below Min.
type Interval struct {
	Base, Min, Step time.Duration
	ScorePerStep    float64
	MaxSteps        float64
}

func (iv Interval) At(score int) time.Duration {
	steps := 0.0
	if iv.ScorePerStep > 0 {
		steps = math.Min(float64(score)/iv.ScorePerStep, iv.MaxSteps)
	}
	d := iv.Base - time.Duration(steps*float64(iv.Step))
	if d < iv.Min {
		d = iv.Min
	}
	return d
}

// Burst describes the particles thrown on a scoring event.
type Burst struct {
	Count              int
	MinSpeed, MaxSpeed float64
	MinLife, MaxLife   float64 // frames
	Fade               float64 // alpha lost per frame
}

// Rules parameterise the engine. Each mini-game is a Rules value.
type Rules struct {
	Mode  Mode
	Staff game.Staff

	Width, Height float64
	CursorX       float64
	SpawnX        float64

	Spawn SpawnPolicy
	Hit   HitPolicy
	Miss  MissPolicy

	BaseSpeed  float64 // units per frame at score 0
	SpeedScale float64 // score at which the speed has doubled
	Interval   Interval

	Judgements []game.Judgement
	MissMargin float64
	CleanupX   float64

	CorrectPoints int
	FeedbackDelay time.Duration
	LevelUpDelay  time.Duration

	Particles Burst

	Catalog       *game.Catalog
	Chart         *game.Chart
	PixelsPerBeat float64
}

// Speed is the note speed for a score. It grows without bound.
func (r *Rules) Speed(score int) float64 {
	if r.SpeedScale <= 0 {
		return r.BaseSpeed
	}
	return r.BaseSpeed * (1 + float64(score)/r.SpeedScale)
}

func (r *Rules) CenterY() float64 {
	return r.Height / 2
}

// leadIn is the time a scheduled note needs from the spawn edge to the cursor.
func (r *Rules) leadIn() time.Duration {
	if r.Chart == nil || r.PixelsPerBeat <= 0 {
		return 0
	}
	beats := (r.SpawnX - r.CursorX) / r.PixelsPerBeat
	return time.Duration(beats * float64(r.Chart.BeatDuration()))
}

// scheduleX places a note due at due on the time axis running through the cursor.
func (r *Rules) scheduleX(due, clock time.Duration) float64 {
	beat := r.Chart.BeatDuration()
	if beat <= 0 {
		return r.CursorX
	}
	return r.CursorX + float64(due-clock)/float64(beat)*r.PixelsPerBeat
}

// SightReading: notes fly in from the right on random lanes and the player
// steps onto them. The first miss ends the session.
func SightReading(width, height float64) Rules {
	return Rules{
		Mode:       ModeSightReading,
		Staff:      game.TrebleSightReading,
		Width:      width,
		Height:     height,
		CursorX:    250,
		SpawnX:     width + 50,
		Spawn:      SpawnOnInterval,
		Hit:        HitByProximity,
		Miss:       MissEndsSession,
		BaseSpeed:  8,
		SpeedScale: 10000,
		Interval: Interval{
			Base:         2000 * time.Millisecond,
			Min:          600 * time.Millisecond,
			Step:         800 * time.Millisecond,
			ScorePerStep: 5000,
			MaxSteps:     2,
		},
		Judgements: game.SightJudgements,
		MissMargin: 50,
		CleanupX:   -100,
		Particles:  Burst{Count: 8, MinSpeed: 2, MaxSpeed: 4, MinLife: 30, MaxLife: 50, Fade: 0.03},
	}
}

// Identification: a single note sits on the staff until its letter is named.
// Levels from the catalog widen the set of notes.
func Identification(width, height float64, catalog *game.Catalog) Rules {
	return Rules{
		Mode:          ModeIdentification,
		Staff:         game.TrebleIdentification,
		Width:         width,
		Height:        height,
		CursorX:       width / 2,
		SpawnX:        width / 2,
		Spawn:         SpawnOnDemand,
		Hit:           HitByName,
		Miss:          MissIgnored,
		CleanupX:      -100,
		CorrectPoints: 10,
		FeedbackDelay: 600 * time.Millisecond,
		LevelUpDelay:  2000 * time.Millisecond,
		Particles:     Burst{Count: 12, MinSpeed: 200.0 / 36, MaxSpeed: 200.0 / 36, MinLife: 36, MaxLife: 36, Fade: 1.0 / 36},
		Catalog:       catalog,
	}
}

var rhythmPitches = []game.Pitch{
	game.MustPitch("C4"), game.MustPitch("E4"), game.MustPitch("G4"), game.MustPitch("C5"),
	game.MustPitch("E5"), game.MustPitch("G5"), game.MustPitch("C6"), game.MustPitch("E6"),
}

// RhythmStaff gives each chart column a pitch from a C major arpeggio.
func RhythmStaff(lanes int) game.Staff {
	if lanes < 1 {
		lanes = 1
	}
	if lanes > len(rhythmPitches) {
		lanes = len(rhythmPitches)
	}
	return game.Staff{Pitches: rhythmPitches[:lanes], Middle: lanes / 2, Spacing: 120}
}

// Rhythm: chart notes scroll past a playhead and are struck in time.
func Rhythm(width, height float64, chart *game.Chart) Rules {
	if chart == nil {
		chart = game.DefaultChart()
	}
	return Rules{
		Mode:          ModeRhythm,
		Staff:         RhythmStaff(chart.Lanes),
		Width:         width,
		Height:        height,
		CursorX:       200,
		SpawnX:        width + 50,
		Spawn:         SpawnOnSchedule,
		Hit:           HitByStrike,
		Miss:          MissBreaksStreak,
		Judgements:    game.RhythmJudgements,
		MissMargin:    50,
		CleanupX:      -100,
		FeedbackDelay: 500 * time.Millisecond,
		Particles:     Burst{Count: 8, MinSpeed: 2, MaxSpeed: 4, MinLife: 30, MaxLife: 50, Fade: 0.03},
		Chart:         chart,
		PixelsPerBeat: 100,
	}
}
