package testdata

import (
	"os"
	"path/filepath"

	"git.lost.host/meutraa/opus/internal/game"
	"git.lost.host/meutraa/opus/internal/parser"
)

// Chart is a two difficulty StepMania file at 120 bpm with a tempo change
// to 240 bpm at beat 8.
const Chart = `#TITLE:Minuet in G;
#ARTIST:Petzold;
#OFFSET:-0.500;
#BPMS:0.000=120.000,
8.000=240.000;
#NOTES:
     dance-single:
     opus:
     Beginner:
     1:
     0,0,0,0,0:
1000
0100
0010
0001
,
1000
0000
0M00
0000
0000
0000
0000
0001
,  // measure 3
2000
3000
0000
1000
;
#NOTES:
     dance-double:
     opus:
     Hard:
     8:
     0,0,0,0,0:
10000001
00000000
00000000
00000000
;
`

// Levels is a three level catalog over the identification staff.
const Levels = `levels:
  - id: 1
    name: Lines
    description: E, G and B
    pitches: [0, 2, 4]
    required_score: 20
  - id: 2
    name: Spaces
    pitches: [1, 3, 5]
    required_score: 40
  - id: 3
    name: Against the clock
    pitches: [0, 1, 2, 3, 4, 5, 6]
    required_score: 60
    time_limit: 30s
    show_timer: true
`

// Write puts content into dir/name and returns the path.
func Write(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); nil != err {
		return "", err
	}
	return path, nil
}

func GetChart() (*game.Chart, error) {
	p := parser.DefaultParser{}
	charts, err := p.ParseString(Chart)
	if nil != err {
		return nil, err
	}
	return charts[0], nil
}

func GetCatalog() (*game.Catalog, error) {
	p := parser.LevelParser{Staff: game.TrebleIdentification}
	return p.ParseBytes([]byte(Levels))
}
