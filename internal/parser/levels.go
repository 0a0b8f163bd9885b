package parser

import (
	"fmt"
	"os"

	"git.lost.host/meutraa/opus/internal/game"
	"gopkg.in/yaml.v3"
)

// LevelParser reads a YAML level catalog and validates it against the
// identification staff.
type LevelParser struct {
	Staff game.Staff
}

func (p *LevelParser) Parse(file string) (*game.Catalog, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.ParseBytes(data)
}

func (p *LevelParser) ParseBytes(data []byte) (*game.Catalog, error) {
	var c game.Catalog
	if err := yaml.Unmarshal(data, &c); nil != err {
		return nil, fmt.Errorf("invalid level catalog: %w", err)
	}
	staff := p.Staff
	if staff.Lanes() == 0 {
		staff = game.TrebleIdentification
	}
	if err := c.Validate(staff); nil != err {
		return nil, fmt.Errorf("invalid level catalog: %w", err)
	}
	return &c, nil
}
