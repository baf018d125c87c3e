package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

// ErrNoRaster is returned when the terminal supports none of the raster
// protocols.
var ErrNoRaster = errors.New("terminal cannot display images")

// printRaster draws an image using the RasTerm library.
func printRaster(w io.Writer, i image.Image) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(w, i)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(w, i)
	default:
		capable, serr := rasterm.IsSixelCapable()
		if serr != nil || !capable {
			return ErrNoRaster
		}
		palettedImage := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, i.Bounds(), i, image.Point{})
		err = rasterm.Settings{}.SixelWriteImage(w, palettedImage)
	}
	if err != nil {
		return errors.Wrap(err, "writing image")
	}
	fmt.Fprint(w, "\n")
	return nil
}
