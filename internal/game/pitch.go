package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	chromatic = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	naturals  = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}
)

// Pitch is a named note in scientific pitch notation, e.g. E4 or C#5.
type Pitch struct {
	Name   string
	Octave int
}

func (p Pitch) String() string {
	return p.Name + strconv.Itoa(p.Octave)
}

// Letter is the note letter without accidentals, which is what the
// identification keys select.
func (p Pitch) Letter() string {
	if p.Name == "" {
		return ""
	}
	return p.Name[:1]
}

func (p Pitch) semitone() (int, error) {
	if p.Name == "" {
		return 0, fmt.Errorf("empty pitch name")
	}
	s, ok := naturals[p.Name[0]]
	if !ok {
		return 0, fmt.Errorf("invalid pitch name %q", p.Name)
	}
	for _, c := range p.Name[1:] {
		switch c {
		case '#':
			s++
		case 'b':
			s--
		default:
			return 0, fmt.Errorf("invalid accidental in %q", p.Name)
		}
	}
	return s, nil
}

// MIDI returns the MIDI note number, C4 = 60. Invalid pitches return -1.
func (p Pitch) MIDI() int {
	s, err := p.semitone()
	if nil != err {
		return -1
	}
	return (p.Octave+1)*12 + s
}

// Frequency in Hz, equal temperament with A4 = 440Hz.
func (p Pitch) Frequency() float64 {
	m := p.MIDI()
	if m < 0 {
		return 0
	}
	return 440.0 * math.Pow(2, float64(m-69)/12.0)
}

// Transpose returns the pitch n semitones away, spelled with sharps.
func (p Pitch) Transpose(n int) Pitch {
	m := p.MIDI()
	if m < 0 {
		return p
	}
	m += n
	return Pitch{Name: chromatic[((m%12)+12)%12], Octave: m/12 - 1}
}

// ParsePitch parses strings like "E4", "c#5" or "Bb3".
func ParsePitch(s string) (Pitch, error) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == 0 || i == len(s) {
		return Pitch{}, fmt.Errorf("invalid pitch %q", s)
	}
	octave, err := strconv.Atoi(s[i:])
	if nil != err {
		return Pitch{}, fmt.Errorf("invalid octave in %q: %w", s, err)
	}
	name := strings.ToUpper(s[:1]) + s[1:i]
	p := Pitch{Name: name, Octave: octave}
	if _, err := p.semitone(); nil != err {
		return Pitch{}, err
	}
	return p, nil
}

// MustPitch is ParsePitch for package level tables.
func MustPitch(s string) Pitch {
	p, err := ParsePitch(s)
	if nil != err {
		panic(err)
	}
	return p
}
