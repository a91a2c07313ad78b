package model

import (
	"fmt"
	"iter"

	"github.com/gdamore/tcell/v2"
)

const (
	gridPosAlive = '+'
	gridPosEmpty = ' '

	frameTitle  = " GAME OF LIFE "
	genLabelX   = 3
	statusRight = 3
)

var (
	frameStyle = tcell.StyleDefault.Foreground(tcell.ColorGrey)
	aliveStyle = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	emptyStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	labelStyle = tcell.StyleDefault
)

// CellWriter is the part of a terminal screen the renderer draws through.
// tcell.Screen satisfies it.
type CellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// TerminalRenderer paints generations incrementally onto a cell-addressed
// screen. Row and column 0 and the last row and column belong to the frame.
type TerminalRenderer struct {
	screen     CellWriter
	width      int
	height     int
	lastStatus string
}

// NewTerminalRenderer creates a renderer for a width x height screen area
func NewTerminalRenderer(screen CellWriter, width, height int) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, width: width, height: height}
}

// DrawFrame draws the border ring and the title
func (r *TerminalRenderer) DrawFrame() {
	var (
		right  = r.width - 1
		bottom = r.height - 1
	)

	for x := 1; x < right; x++ {
		r.screen.SetContent(x, 0, '─', nil, frameStyle)
		r.screen.SetContent(x, bottom, '─', nil, frameStyle)
	}
	for y := 1; y < bottom; y++ {
		r.screen.SetContent(0, y, '│', nil, frameStyle)
		r.screen.SetContent(right, y, '│', nil, frameStyle)
	}
	r.screen.SetContent(0, 0, '┌', nil, frameStyle)
	r.screen.SetContent(right, 0, '┐', nil, frameStyle)
	r.screen.SetContent(0, bottom, '└', nil, frameStyle)
	r.screen.SetContent(right, bottom, '┘', nil, frameStyle)

	if len(frameTitle)+2 <= r.width {
		r.drawText(r.width/2-len(frameTitle)/2, 0, frameTitle, frameStyle)
	}
}

// Paint writes every changed cell, the generation label and an optional
// status label, then flushes the frame once. It returns the number of cells
// written.
func (r *TerminalRenderer) Paint(gen int, changes iter.Seq[Change], status string) (painted int) {
	for c := range changes {
		if c.Alive {
			r.screen.SetContent(c.X, c.Y, gridPosAlive, nil, aliveStyle)
		} else {
			r.screen.SetContent(c.X, c.Y, gridPosEmpty, nil, emptyStyle)
		}
		painted++
	}

	if status != r.lastStatus {
		r.clearStatus(r.lastStatus)
		r.lastStatus = status
	}

	genLabel := fmt.Sprintf(" Gen: %04d ", gen)
	r.drawText(genLabelX, r.height-1, genLabel, labelStyle)

	if status != "" {
		x := r.width - statusRight - len(status)
		if x > genLabelX+len(genLabel) {
			r.drawText(x, r.height-1, status, labelStyle)
		}
	}

	r.screen.Show()
	return painted
}

// clearStatus restores the border under a previously drawn status label
func (r *TerminalRenderer) clearStatus(status string) {
	x := r.width - statusRight - len(status)
	for i := range len(status) {
		if x+i > 0 && x+i < r.width-1 {
			r.screen.SetContent(x+i, r.height-1, '─', nil, frameStyle)
		}
	}
}

// drawText writes s starting at (x, y), clipped to the screen width
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		if x >= 0 && x < r.width {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}
