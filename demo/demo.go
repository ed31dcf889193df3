// Package demo renders a CPU's live register and memory state as a
// false-color bitmap: one cell per byte of zero page and the stack page,
// colored by value, with a text strip of PC/opcode/register state drawn
// over the top. cmd/demo pushes the frames this package builds into an
// SDL window.
package demo

import (
	"image"
	"image/color"
	"image/draw"
	"math/bits"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/m65xx/m65xx/bus"
	"github.com/m65xx/m65xx/cpu"
)

const (
	cellSize  = 8
	gridCols  = 16
	gridRows  = 16
	textRows  = 2
	textLineH = 14
)

// Renderer owns the pieces a frame needs: the CPU to snapshot and the bus
// to read memory from for display (Peek only, so drawing a frame is never
// itself a bus cycle).
type Renderer struct {
	Proc    *cpu.CPU
	Bus     bus.Bus
	Variant cpu.Variant
}

// Width and Height are the fixed pixel dimensions of every frame this
// Renderer produces.
func (r *Renderer) Width() int { return gridCols * cellSize }
func (r *Renderer) Height() int {
	return textRows*textLineH + 2*gridRows*cellSize + cellSize // gap row between the two grids
}

// falseColor maps a byte value to a color that makes memory patterns
// (runs of zeros, repeated opcodes, a moving stack pointer) visible at a
// glance: red tracks the value directly, green its complement, blue the
// population count, so two unrelated values rarely collide.
func falseColor(val uint8) color.NRGBA {
	return color.NRGBA{
		R: val,
		G: 255 - val,
		B: uint8(bits.OnesCount8(val)) * 32,
		A: 255,
	}
}

func (r *Renderer) drawPage(img draw.Image, base uint16, top int, highlight uint16, hasHighlight bool) {
	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridCols; col++ {
			addr := base + uint16(row*gridCols+col)
			val := r.Bus.Peek(addr)
			c := falseColor(val)
			if hasHighlight && addr == highlight {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			x0, y0 := col*cellSize, top+row*cellSize
			for y := y0; y < y0+cellSize; y++ {
				for x := x0; x < x0+cellSize; x++ {
					img.Set(x, y, c)
				}
			}
		}
	}
}

func (r *Renderer) drawText(img draw.Image, snap cpu.Snapshot) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	line1 := "PC:$" + hex16(snap.PC) + " OP:$" + hex8(snap.Opcode) + " " + snap.Status.String()
	line2 := "A:$" + hex8(snap.A) + " X:$" + hex8(snap.X) + " Y:$" + hex8(snap.Y) +
		" S:$" + hex8(snap.S) + " P:$" + hex8(snap.P)
	d.Dot = fixed.P(2, textLineH-2)
	d.DrawString(line1)
	d.Dot = fixed.P(2, 2*textLineH-2)
	d.DrawString(line2)
}

const hexDigits = "0123456789ABCDEF"

func hex8(v uint8) string {
	return string([]byte{hexDigits[v>>4], hexDigits[v&0xF]})
}

func hex16(v uint16) string {
	return hex8(uint8(v>>8)) + hex8(uint8(v))
}

// Frame renders one complete bitmap of the current CPU state: the text
// strip, zero page ($0000-$00FF), and the stack page ($0100-$01FF) with
// the stack pointer's current byte highlighted.
func (r *Renderer) Frame() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width(), r.Height()))
	snap := r.Proc.Snapshot()
	r.drawText(img, snap)
	zpTop := textRows * textLineH
	r.drawPage(img, 0x0000, zpTop, snap.PC, true)
	stackTop := zpTop + gridRows*cellSize + cellSize
	r.drawPage(img, 0x0100, stackTop, 0x0100|uint16(snap.S), true)
	return img
}
