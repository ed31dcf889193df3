// Command demo runs a flat binary and shows a live false-color view of
// zero page and the stack page in an SDL window, refreshed every N CPU
// instructions.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/m65xx/m65xx/cpu"
	"github.com/m65xx/m65xx/demo"
	"github.com/m65xx/m65xx/irq"
	"github.com/m65xx/m65xx/memory"
)

var (
	cart     = flag.String("cart", "", "path to a flat binary to load and run")
	scale    = flag.Int("scale", 3, "window scale factor")
	rate     = flag.Int("instructions_per_frame", 50, "CPU instructions to run between redraws")
	irqEvery = flag.Int("irq_every", 0, "raise an irq.Line IRQ every N instructions (0 disables)")
)

// windowImage wraps an SDL window surface as a draw.Image by poking
// pixel bytes directly, the same trick the pack's SDL-based display code
// uses to avoid a per-pixel color.Color conversion.
type windowImage struct {
	surface *sdl.Surface
	data    []byte
}

func (w *windowImage) Set(x, y int, c color.Color) {
	r, g, b, a := c.RGBA()
	i := int32(y)*w.surface.Pitch + int32(x)*int32(w.surface.Format.BytesPerPixel)
	w.data[i+0] = uint8(b >> 8)
	w.data[i+1] = uint8(g >> 8)
	w.data[i+2] = uint8(r >> 8)
	w.data[i+3] = uint8(a >> 8)
}
func (w *windowImage) ColorModel() color.Model { return w.surface.ColorModel() }
func (w *windowImage) Bounds() image.Rectangle { return w.surface.Bounds() }
func (w *windowImage) At(x, y int) color.Color { return w.surface.At(x, y) }

func main() {
	flag.Parse()
	if *cart == "" {
		log.Fatalf("usage: %s -cart <file> [-scale N] [-instructions_per_frame N]", os.Args[0])
	}
	program, err := os.ReadFile(*cart)
	if err != nil {
		log.Fatalf("can't load cart: %v", err)
	}

	ram, err := memory.New8BitRAMBank(1<<16, nil)
	if err != nil {
		log.Fatalf("can't init RAM: %v", err)
	}
	const load = 0x0200
	for i, v := range program {
		ram.Write(load+uint16(i), v)
	}
	ram.Write(cpu.ResetVector, uint8(uint16(load)))
	ram.Write(cpu.ResetVector+1, uint8(uint16(load)>>8))

	variant := cpu.NMOS6502
	table := cpu.NewTable(variant, cpu.Options{})
	proc, err := cpu.New(variant, table, cpu.Options{}, ram)
	if err != nil {
		log.Fatalf("can't construct cpu: %v", err)
	}
	r := &demo.Renderer{Proc: proc, Bus: ram, Variant: variant}

	sdl.Main(func() {
		if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
			log.Fatalf("can't init SDL: %v", err)
		}
		defer sdl.Quit()

		w, h := r.Width()**scale, r.Height()**scale
		window, err := sdl.CreateWindow("m65xx demo", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(w), int32(h), sdl.WINDOW_SHOWN)
		if err != nil {
			log.Fatalf("can't create window: %v", err)
		}
		defer window.Destroy()

		surface, err := window.GetSurface()
		if err != nil {
			log.Fatalf("can't get window surface: %v", err)
		}
		wi := &windowImage{surface: surface, data: surface.Pixels()}

		dst := image.Rect(0, 0, w, h)
		now := time.Now()
		running := true
		var line irq.Line
		instructionCount := 0
		for running {
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				if _, ok := event.(*sdl.QuitEvent); ok {
					running = false
				}
			}
			if proc.Status == cpu.Running {
				for i := 0; i < *rate && proc.Status == cpu.Running; i++ {
					if *irqEvery > 0 && instructionCount%*irqEvery == 0 {
						line.Set(true)
					}
					proc.Step(ram)
					instructionCount++
					if line.Raised() {
						proc.SignalIRQ()
						line.Set(false)
					}
					proc.HandlePendingInterrupt(ram)
				}
			}

			frame := r.Frame()
			scaled := scaleNearest(frame, *scale)
			draw.Draw(wi, dst, scaled, image.Point{}, draw.Src)
			window.UpdateSurface()

			elapsed := time.Since(now)
			now = time.Now()
			fmt.Printf("frame in %s\n", elapsed)
		}
	})
}

// scaleNearest blows frame up by factor using nearest-neighbor sampling,
// since the demo's cell-based bitmap has no need for interpolation.
func scaleNearest(frame *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return frame
	}
	b := frame.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := frame.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			for dy := 0; dy < factor; dy++ {
				for dx := 0; dx < factor; dx++ {
					out.SetNRGBA(x*factor+dx, y*factor+dy, c)
				}
			}
		}
	}
	return out
}
