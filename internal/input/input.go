package input

import (
	"unicode"

	"github.com/eiannone/keyboard"
)

type Kind int

const (
	None Kind = iota
	Move
	Select
	Strike
	Choose
	Start
	Back
	End
	Quit
	Mute
)

// Action is a key press resolved for the current screen.
type Action struct {
	Kind  Kind
	Delta int    // Move
	Name  string // Select, a letter from A to G
	Lane  int    // Strike, -1 for any lane
	Index int    // Choose, a menu entry
}

// Context is the screen keys are read for.
type Context int

const (
	Menu Context = iota
	SightReading
	Identification
	Rhythm
	GameOver
)

// strikeKeys are the rhythm lanes from left to right.
var strikeKeys = []rune{'d', 'f', 'j', 'k', 's', 'l', 'a', ';'}

// Map resolves a key event. Unknown keys map to None.
func Map(ev keyboard.KeyEvent, ctx Context) Action {
	switch ev.Key {
	case keyboard.KeyCtrlC:
		return Action{Kind: Quit}
	case keyboard.KeyEsc:
		if ctx == Menu {
			return Action{Kind: Quit}
		}
		return Action{Kind: Back}
	}

	switch ctx {
	case Menu:
		return menu(ev)
	case GameOver:
		switch {
		case ev.Key == keyboard.KeyEnter, ev.Rune == 'r':
			return Action{Kind: Start}
		case ev.Rune == 'm', ev.Key == keyboard.KeyBackspace, ev.Key == keyboard.KeyBackspace2:
			return Action{Kind: Back}
		case ev.Rune == 'q':
			return Action{Kind: Quit}
		}
	case SightReading:
		switch {
		case ev.Key == keyboard.KeyArrowUp, ev.Rune == 'k', ev.Rune == 'w':
			return Action{Kind: Move, Delta: 1}
		case ev.Key == keyboard.KeyArrowDown, ev.Rune == 'j', ev.Rune == 's':
			return Action{Kind: Move, Delta: -1}
		}
	case Identification:
		r := unicode.ToUpper(ev.Rune)
		if r >= 'A' && r <= 'G' {
			return Action{Kind: Select, Name: string(r)}
		}
		if ev.Key == keyboard.KeyEnter {
			return Action{Kind: End}
		}
	case Rhythm:
		if ev.Key == keyboard.KeySpace {
			return Action{Kind: Strike, Lane: -1}
		}
		for i, k := range strikeKeys {
			if unicode.ToLower(ev.Rune) == k {
				return Action{Kind: Strike, Lane: i}
			}
		}
	}
	if ev.Rune == '0' {
		return Action{Kind: Mute}
	}
	return Action{}
}

func menu(ev keyboard.KeyEvent) Action {
	switch {
	case ev.Rune >= '1' && ev.Rune <= '3':
		return Action{Kind: Choose, Index: int(ev.Rune - '1')}
	case ev.Key == keyboard.KeyArrowUp, ev.Rune == 'k':
		return Action{Kind: Move, Delta: -1}
	case ev.Key == keyboard.KeyArrowDown, ev.Rune == 'j':
		return Action{Kind: Move, Delta: 1}
	case ev.Key == keyboard.KeyEnter, ev.Key == keyboard.KeySpace:
		return Action{Kind: Start}
	case ev.Rune == 'q':
		return Action{Kind: Quit}
	case ev.Rune == '0':
		return Action{Kind: Mute}
	}
	return Action{}
}
