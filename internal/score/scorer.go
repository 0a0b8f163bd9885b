package score

import (
	"time"

	"github.com/google/uuid"
)

type Scorer interface {
	Init(path string) error
	Deinit()

	// Save the result of a finished session
	Save(r Record) error

	// Best is the highest scoring session of a mode
	Best(mode string) (Record, bool)

	// Recent sessions of a mode, newest first
	Recent(mode string, n int) []Record

	Summary(mode string) Summary
}

type Record struct {
	ID         uuid.UUID
	Mode       string
	Score      int
	BestStreak int
	Level      int
	Played     time.Time
	Duration   time.Duration
}

type Summary struct {
	Sessions   int
	HighScore  int
	MeanScore  float64
	BestStreak int
	TotalTime  time.Duration
}
