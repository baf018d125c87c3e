// Package imageprint prints textures on a terminal. UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bufio"
	"fmt"
	"image"
	ic "image/color"
	"io"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

type Mode int

const (
	// Mode24bit changes the background with 24bit colour escape sequences.
	Mode24bit Mode = iota
	// Mode256 uses 256colour escape sequences.
	Mode256
	// ModeNoColor draws brightness with characters only.
	ModeNoColor
	// ModeRaster sends the image itself with the kitty, iTerm or sixel
	// protocols, whichever the terminal supports.
	ModeRaster
)

// Printer draws images on W.
type Printer struct {
	W    io.Writer
	Mode Mode
	// Blanks draws coloured spaces instead of brightness characters.
	Blanks bool
}

func brightness(cR, cG, cB uint32) string {
	a := ((cR + cG + cB) / 3) >> 8
	switch {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func (p Printer) cell(w io.Writer, col ic.Color) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if p.Mode == ModeNoColor {
			fmt.Fprint(w, "  ")
			return
		}
		fmt.Fprint(w, "\x1b[0m  ")
		return
	}
	s := "  "
	if !p.Blanks {
		s = brightness(cR, cG, cB)
	}
	switch p.Mode {
	case ModeNoColor:
		fmt.Fprint(w, s)
	case Mode256:
		fmt.Fprint(w, color.RGB(uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), true).Sprint(s))
	default:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), s)
	}
}

// Print draws img.
func (p Printer) Print(img image.Image) error {
	if img == nil {
		return errors.New("no image")
	}
	if p.Mode == ModeRaster {
		return printRaster(p.W, img)
	}
	bw := bufio.NewWriter(p.W)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.cell(bw, img.At(x, y))
		}
		if p.Mode != ModeNoColor {
			fmt.Fprint(bw, "\x1b[0m")
		}
		fmt.Fprint(bw, "\n")
	}
	return bw.Flush()
}
