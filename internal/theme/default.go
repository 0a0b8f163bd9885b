package theme

import (
	"fmt"
	"image/color"
	"strings"

	"git.lost.host/meutraa/opus/internal/game"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type DefaultTheme struct {
}

const (
	noteSym     = "⬤"
	hitSym      = "◯"
	missSym     = "⨯"
	cursorSym   = "▶"
	idleSym     = "▷"
	staffSym    = "─"
	playheadSym = "┃"
)

var (
	background = rgb(0x0f, 0x0e, 0x11)
	staffLine  = rgb(0x66, 0x66, 0x66)
	primary    = rgb(0xa8, 0x55, 0xf7)
	noteColor  = rgb(0xf3, 0xf4, 0xf6)
	toneColors = map[game.Tone]color.RGBA{
		game.ToneAccent:  rgb(0xfb, 0xbf, 0x24),
		game.ToneGold:    rgb(0xff, 0xd7, 0x00),
		game.ToneSuccess: rgb(0x10, 0xb9, 0x81),
		game.ToneError:   rgb(0xef, 0x44, 0x44),
	}
	// one colour per note letter, used once a note is revealed
	pitchColors = map[string]color.RGBA{
		"E": rgb(0xe0, 0x79, 0xa4),
		"F": rgb(0xe1, 0x3e, 0xbe),
		"G": rgb(0xb7, 0x38, 0x3b),
		"A": rgb(0x8e, 0x4e, 0x11),
		"B": rgb(0xd1, 0x7d, 0x77),
		"C": rgb(0x87, 0x59, 0x63),
		"D": rgb(0x83, 0x2f, 0x14),
	}
)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderNote(n *game.Note, reveal bool) string {
	switch {
	case n.Missed:
		return paint(toneColors[game.ToneError], missSym)
	case n.Hit && n.Perfect:
		return paint(toneColors[game.ToneGold], hitSym)
	case n.Hit:
		return paint(toneColors[game.ToneAccent], hitSym)
	case reveal:
		return paint(t.PitchColor(n.Pitch), noteSym)
	}
	return paint(noteColor, noteSym)
}

func (t *DefaultTheme) RenderParticle(p *game.Particle) string {
	return paint(t.Fade(t.ToneColor(p.Tone), p.Alpha), "•")
}

func (t *DefaultTheme) RenderCursor(playing bool) string {
	if playing {
		return paint(primary, cursorSym)
	}
	return paint(t.Fade(primary, 0.6), idleSym)
}

func (t *DefaultTheme) RenderStaffLine(width int) string {
	if width <= 0 {
		return ""
	}
	return paint(staffLine, strings.Repeat(staffSym, width))
}

func (t *DefaultTheme) RenderPlayhead() string {
	return paint(toneColors[game.ToneAccent], playheadSym)
}

func (t *DefaultTheme) PitchColor(p game.Pitch) color.RGBA {
	c, ok := pitchColors[p.Letter()]
	if !ok {
		return noteColor
	}
	return c
}

func (t *DefaultTheme) ToneColor(tone game.Tone) color.RGBA {
	c, ok := toneColors[tone]
	if !ok {
		return noteColor
	}
	return c
}

func (t *DefaultTheme) Fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return background
	}
	from, _ := colorful.MakeColor(background)
	to, _ := colorful.MakeColor(c)
	r, g, b := from.BlendLab(to, alpha).Clamped().RGB255()
	return rgb(r, g, b)
}
