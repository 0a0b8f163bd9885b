package game

import "time"

// Beat is one scheduled note of a rhythm chart.
type Beat struct {
	Time  time.Duration // offset from the start of the chart
	Lane  int
	Denom int // the beat length as a denominator, 4 = 1/4 beat
}

type Chart struct {
	Name       string
	Difficulty string
	Meter      string
	BPM        float64 // scroll tempo, the first tempo of the song
	Lanes      int
	Beats      []Beat
}

// Length is the time of the last beat.
func (c *Chart) Length() time.Duration {
	if len(c.Beats) == 0 {
		return 0
	}
	return c.Beats[len(c.Beats)-1].Time
}

// BeatDuration is the length of one beat at the chart tempo.
func (c *Chart) BeatDuration() time.Duration {
	if c.BPM <= 0 {
		return 0
	}
	return time.Duration(float64(time.Minute) / c.BPM)
}

// DefaultChart is thirty two eighth notes at 90 bpm over lanes 1 to 3.
func DefaultChart() *Chart {
	c := &Chart{Name: "Adagio", BPM: 90, Lanes: 4}
	beat := c.BeatDuration()
	pattern := [...]int{1, 2, 3, 2, 1, 3, 2, 3}
	for i := 0; i < 32; i++ {
		c.Beats = append(c.Beats, Beat{
			Time:  time.Duration(i) * beat / 2,
			Lane:  pattern[i%len(pattern)],
			Denom: 8,
		})
	}
	return c
}
