package theme

import (
	"image/color"

	"git.lost.host/meutraa/opus/internal/game"
)

type Theme interface {
	RenderNote(n *game.Note, reveal bool) string
	RenderParticle(p *game.Particle) string
	RenderCursor(playing bool) string
	RenderStaffLine(width int) string
	RenderPlayhead() string

	PitchColor(p game.Pitch) color.RGBA
	ToneColor(t game.Tone) color.RGBA
	// Fade blends c toward the background, alpha 1 leaves it untouched
	Fade(c color.RGBA, alpha float64) color.RGBA
}
