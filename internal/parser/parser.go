package parser

import "git.lost.host/meutraa/opus/internal/game"

// Parser reads every chart a file holds, one per difficulty.
type Parser interface {
	Parse(file string) ([]*game.Chart, error)
}

// CatalogParser reads a level catalog.
type CatalogParser interface {
	Parse(file string) (*game.Catalog, error)
}
