package main

import (
	"image"
	"io"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-skinmod/imageprint"
)

func out(w io.Writer, img image.Image) error {
	if *downsize {
		termSize, err := GetTermSize()
		if err == nil {
			if termSize.WSXPixel != 0 && termSize.WSYPixel != 0 && *iterm {
				// Prefer the native size if an image protocol prints it rather than pixels.
				img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
			} else {
				img = resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.Lanczos3)
			}
		}
	}

	p := imageprint.Printer{W: w, Blanks: *blanks}
	switch {
	case *iterm:
		p.Mode = imageprint.ModeRaster
	case !*col:
		p.Mode = imageprint.ModeNoColor
	case *col256:
		p.Mode = imageprint.Mode256
	}
	return p.Print(img)
}
