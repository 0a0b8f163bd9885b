package game

import "strings"

// Staff is the set of vertical slots (lines and spaces) a note or the
// cursor can occupy. Lane 0 is the lowest slot.
type Staff struct {
	Pitches []Pitch
	Middle  int     // lane drawn on the vertical center
	Spacing float64 // distance between two staff lines
}

var (
	// TrebleSightReading spans the treble staff from the bottom line E4 to
	// the top line F5, centered on B4.
	TrebleSightReading = Staff{
		Pitches: []Pitch{
			MustPitch("E4"), MustPitch("F4"), MustPitch("G4"),
			MustPitch("A4"), MustPitch("B4"), MustPitch("C5"),
			MustPitch("D5"), MustPitch("E5"), MustPitch("F5"),
		},
		Middle:  4,
		Spacing: 40,
	}

	// TrebleIdentification is the seven note letters E4 to D5.
	TrebleIdentification = Staff{
		Pitches: []Pitch{
			MustPitch("E4"), MustPitch("F4"), MustPitch("G4"),
			MustPitch("A4"), MustPitch("B4"), MustPitch("C5"),
			MustPitch("D5"),
		},
		Middle:  4,
		Spacing: 60,
	}
)

func (s Staff) Lanes() int {
	return len(s.Pitches)
}

func (s Staff) Valid(lane int) bool {
	return lane >= 0 && lane < len(s.Pitches)
}

// Clamp keeps lane inside the staff.
func (s Staff) Clamp(lane int) int {
	if lane < 0 {
		return 0
	}
	if lane >= len(s.Pitches) {
		return len(s.Pitches) - 1
	}
	return lane
}

// LaneY is the vertical coordinate of a lane, each lane being half a line
// spacing above the previous one.
func (s Staff) LaneY(lane int, centerY float64) float64 {
	return centerY - float64(lane-s.Middle)*(s.Spacing/2)
}

// LaneByName finds the first lane whose pitch letter matches name.
func (s Staff) LaneByName(name string) int {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, p := range s.Pitches {
		if p.Letter() == name || p.Name == name {
			return i
		}
	}
	return -1
}

// Pitch returns the pitch of a lane, or the zero Pitch when out of range.
func (s Staff) Pitch(lane int) Pitch {
	if !s.Valid(lane) {
		return Pitch{}
	}
	return s.Pitches[lane]
}
