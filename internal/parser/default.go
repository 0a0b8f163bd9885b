package parser

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/opus/internal/game"
)

// DefaultParser reads StepMania .sm files.
type DefaultParser struct{}

// lanes per StepMania chart type
var laneMap = map[string]int{
	"dance-single": 4,
	"dance-solo":   6,
	"dance-double": 8,
}

type bpm struct {
	startingBeat float64
	value        float64
}

type difficulty struct {
	name    string
	meter   string
	section string
	lanes   int
}

var ErrNoCharts = errors.New("no playable charts found")

func (p *DefaultParser) getSecondsPerNote(rates []bpm, currentBeat float64, bpn float64) float64 {
	sel := 0.0
	for _, r := range rates {
		if currentBeat >= r.startingBeat {
			sel = r.value
		} else {
			break
		}
	}
	if sel <= 0 {
		return 0
	}
	return bpn * 60.0 / sel
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine
// K – Automatic keysound
// L – Lift note
// F – Fake note
func (p *DefaultParser) isStrike(ch byte) bool {
	return ch == '1' || ch == '2' || ch == '4' || ch == 'L'
}

func (p *DefaultParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.ParseString(string(data))
}

func (p *DefaultParser) ParseString(data string) ([]*game.Chart, error) {
	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]

	difficulties := []difficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		lanes, ok := laneMap[chartType]
		if !ok {
			continue
		}
		notes := lines[6]
		if i := strings.Index(notes, ";"); i >= 0 {
			notes = notes[:i]
		}
		difficulties = append(difficulties, difficulty{
			name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			meter:   strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			section: notes,
			lanes:   lanes,
		})
	}
	if len(difficulties) == 0 {
		return nil, ErrNoCharts
	}

	title := ""
	offset := 0.0
	bpms := []bpm{}
	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		value := func(key string) string {
			v := strings.TrimPrefix(mdl, key)
			return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), ";"))
		}
		switch {
		case strings.HasPrefix(mdl, "TITLE:"):
			title = value("TITLE:")
		case strings.HasPrefix(mdl, "OFFSET:"):
			offs, err := strconv.ParseFloat(value("OFFSET:"), 64)
			if nil != err {
				return nil, fmt.Errorf("invalid offset: %w", err)
			}
			offset = -offs
		case strings.HasPrefix(mdl, "BPMS:"):
			list := strings.ReplaceAll(value("BPMS:"), "\n", "")
			for _, b := range strings.Split(list, ",") {
				as := strings.Split(strings.TrimSpace(b), "=")
				if len(as) != 2 {
					return nil, fmt.Errorf("invalid bpm %q", b)
				}
				sb, err := strconv.ParseFloat(as[0], 64)
				if nil != err {
					return nil, fmt.Errorf("invalid bpm beat: %w", err)
				}
				v, err := strconv.ParseFloat(as[1], 64)
				if nil != err {
					return nil, fmt.Errorf("invalid bpm value: %w", err)
				}
				bpms = append(bpms, bpm{startingBeat: sb, value: v})
			}
		}
	}
	if len(bpms) == 0 || bpms[0].value <= 0 {
		return nil, errors.New("chart has no tempo")
	}

	charts := []*game.Chart{}
	for _, d := range difficulties {
		seconds := offset
		currentBeat := 0.0
		beats := []game.Beat{}

		for _, block := range strings.Split(d.section, ",") {
			lines := []string{}
			for _, l := range strings.Split(block, "\n") {
				l = strings.TrimSpace(l)
				if i := strings.Index(l, "//"); i >= 0 {
					l = strings.TrimSpace(l[:i])
				}
				if len(l) == d.lanes {
					lines = append(lines, l)
				}
			}
			if len(lines) == 0 {
				continue
			}

			// Beat count is 4 per measure
			lineCount := int64(len(lines))
			beatsPerNote := 4.0 / float64(lineCount)

			for i, line := range lines {
				denom := big.NewRat(int64(i*4), lineCount).Denom().Int64()
				for lane := 0; lane < len(line); lane++ {
					if !p.isStrike(line[lane]) {
						continue
					}
					beats = append(beats, game.Beat{
						Time:  time.Duration(seconds * float64(time.Second)),
						Lane:  lane,
						Denom: int(denom) * 4,
					})
				}
				seconds += p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)
				currentBeat += beatsPerNote
			}
		}

		charts = append(charts, &game.Chart{
			Name:       title,
			Difficulty: d.name,
			Meter:      d.meter,
			BPM:        bpms[0].value,
			Lanes:      d.lanes,
			Beats:      beats,
		})
	}
	return charts, nil
}
