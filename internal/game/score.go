package game

// State of a play session.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "MENU"
	case StatePlaying:
		return "PLAYING"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Feedback is the pending reaction to the last answer. While it is not
// FeedbackNone further answers are ignored.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
	FeedbackLevelUp
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	case FeedbackLevelUp:
		return "level up"
	default:
		return ""
	}
}

type Score struct {
	Score      int
	Streak     int
	BestStreak int
	Level      int
}

func NewScore() Score {
	return Score{Level: 1}
}

func (s *Score) Reset() {
	*s = NewScore()
}

// Add awards points for a successful hit or answer and extends the streak.
func (s *Score) Add(points int) {
	if points > 0 {
		s.Score += points
	}
	s.Streak++
	if s.Streak > s.BestStreak {
		s.BestStreak = s.Streak
	}
}

// Break ends the current streak.
func (s *Score) Break() {
	s.Streak = 0
}
