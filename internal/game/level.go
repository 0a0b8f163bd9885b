package game

import (
	"errors"
	"fmt"
	"time"
)

type Level struct {
	ID            int           `yaml:"id"`
	Name          string        `yaml:"name"`
	Description   string        `yaml:"description"`
	Pitches       []int         `yaml:"pitches"` // lanes of the identification staff
	RequiredScore int           `yaml:"required_score"` // score needed to move on to the next level
	TimeLimit     time.Duration `yaml:"time_limit"`
	ShowTimer     bool          `yaml:"show_timer"`
}

type Catalog struct {
	Levels []Level `yaml:"levels"`
}

// DefaultCatalog walks from the staff lines to the whole staff.
var DefaultCatalog = Catalog{Levels: []Level{
	{ID: 1, Name: "The Lines", Description: "Master the 3 lines of the treble clef", Pitches: []int{0, 2, 4}, RequiredScore: 50},
	{ID: 2, Name: "The Spaces", Description: "Learn the spaces between the lines", Pitches: []int{1, 3, 5}, RequiredScore: 100},
	{ID: 3, Name: "Lines & Spaces", Description: "Combine everything you've learned", Pitches: []int{0, 1, 2, 3, 4, 5}, RequiredScore: 200},
	{ID: 4, Name: "Full Staff", Description: "Complete treble clef mastery", Pitches: []int{0, 1, 2, 3, 4, 5, 6}, RequiredScore: 300},
	{ID: 5, Name: "Speed Reading", Description: "Can you keep up the pace?", Pitches: []int{0, 1, 2, 3, 4, 5, 6}, RequiredScore: 400, ShowTimer: true},
	{ID: 6, Name: "Master Class", Description: "The ultimate challenge", Pitches: []int{0, 1, 2, 3, 4, 5, 6}, RequiredScore: 500, ShowTimer: true, TimeLimit: 60 * time.Second},
}}

// Config returns the level with the given id, or the first level when the
// id is unknown.
func (c *Catalog) Config(id int) Level {
	if c == nil {
		return Level{ID: 1}
	}
	for _, l := range c.Levels {
		if l.ID == id {
			return l
		}
	}
	if len(c.Levels) == 0 {
		return Level{ID: 1}
	}
	return c.Levels[0]
}

// Next returns the level following id, if any.
func (c *Catalog) Next(id int) (Level, bool) {
	if c == nil {
		return Level{}, false
	}
	for _, l := range c.Levels {
		if l.ID == id+1 {
			return l, true
		}
	}
	return Level{}, false
}

// Validate checks that ids count up from 1, thresholds strictly increase
// and every pitch index exists on the staff.
func (c *Catalog) Validate(staff Staff) error {
	if len(c.Levels) == 0 {
		return errors.New("level catalog is empty")
	}
	for i, l := range c.Levels {
		if l.ID != i+1 {
			return fmt.Errorf("level %d: expected id %d", l.ID, i+1)
		}
		if i > 0 && l.RequiredScore <= c.Levels[i-1].RequiredScore {
			return fmt.Errorf("level %d: required score %d does not exceed %d", l.ID, l.RequiredScore, c.Levels[i-1].RequiredScore)
		}
		if l.TimeLimit < 0 {
			return fmt.Errorf("level %d: negative time limit", l.ID)
		}
		for _, p := range l.Pitches {
			if !staff.Valid(p) {
				return fmt.Errorf("level %d: pitch index %d outside the staff", l.ID, p)
			}
		}
	}
	return nil
}
