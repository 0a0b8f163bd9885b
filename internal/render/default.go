package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

type DefaultRenderer struct {
	// Out defaults to os.Stdout
	Out io.Writer

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
	columns      int
	rows         int
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

func (r *DefaultRenderer) out() io.Writer {
	if nil == r.Out {
		return os.Stdout
	}
	return r.Out
}

func (r *DefaultRenderer) Init() error {
	fd := int(os.Stdout.Fd())
	state, err := term.MakeRaw(fd)
	if nil != err {
		return fmt.Errorf("unable to enter raw mode: %w", err)
	}
	r.restoreState = state
	r.resize()

	fmt.Fprintf(r.out(), "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[2J",     // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.out(), "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), r.restoreState)
}

func (r *DefaultRenderer) resize() {
	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		columns, rows = 80, 24
	}
	r.columns, r.rows = columns, rows
}

// Size is the terminal size measured at the start of the current frame.
func (r *DefaultRenderer) Size() (int, int) {
	if r.columns == 0 {
		return 80, 24
	}
	return r.columns, r.rows
}

// SetSize overrides the measured size until the next frame.
func (r *DefaultRenderer) SetSize(columns, rows int) {
	r.columns, r.rows = columns, rows
}

func (r *DefaultRenderer) Clear() {
	r.buffer.WriteString("\033[2J")
}

func (r *DefaultRenderer) AddDecoration(col, row int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
}

// tickDecorations draws every live decoration and counts its frames down.
func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames <= 0 {
			continue
		}
		r.Fill(d.Y, d.X, d.Content)
		d.Frames--
		nd = append(nd, d)
	}
	r.decorations = nd
}

// RenderLoop calls render once per frame with the time since the previous
// frame until it returns false.
func (r *DefaultRenderer) RenderLoop(framePeriod time.Duration, render func(dt time.Duration) bool) {
	last := time.Now()
	for {
		now := time.Now()
		deadline := now.Add(framePeriod)
		dt := now.Sub(last)
		last = now

		r.resize()
		r.Clear()
		cont := render(dt)
		r.tickDecorations()
		r.flush()
		if !cont {
			return
		}

		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) inBounds(row, column int) bool {
	columns, rows := r.Size()
	return row >= 1 && row <= rows && column >= 1 && column <= columns
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	if !r.inBounds(row, column) {
		return
	}
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column int, c color.RGBA, message string) {
	if !r.inBounds(row, column) {
		return
	}
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H\033[38;2;")
	r.buffer.WriteString(strconv.Itoa(int(c.R)))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(int(c.G)))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(int(c.B)))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

func (r *DefaultRenderer) flush() {
	r.out().Write([]byte(r.buffer.String()))
	r.buffer.Reset()
}
