package game

// Judgement is one band of hit quality. A hit lands in the first band whose
// Radius is strictly greater than the distance.
type Judgement struct {
	Name    string
	Radius  float64
	Points  int
	Perfect bool
}

var (
	SightJudgements = []Judgement{
		{Name: "Perfect", Radius: 15, Points: 200, Perfect: true},
		{Name: "Good", Radius: 30, Points: 100},
	}
	RhythmJudgements = []Judgement{
		{Name: "Perfect", Radius: 40, Points: 100, Perfect: true},
	}
)

// Judge returns the band d falls into.
func Judge(judgements []Judgement, d float64) (Judgement, bool) {
	for _, j := range judgements {
		if d < j.Radius {
			return j, true
		}
	}
	return Judgement{}, false
}

// Window is the widest radius of the table, anything at or beyond it is
// not a hit at all.
func Window(judgements []Judgement) float64 {
	w := 0.0
	for _, j := range judgements {
		if j.Radius > w {
			w = j.Radius
		}
	}
	return w
}
