// Package sample produces the point clouds the packer consumes: a text
// rasterizer and a CSV point-file reader/writer.
package sample

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/inference-sim/swarmpack/sim"
)

// TextOptions controls text rasterization.
type TextOptions struct {
	Size      float64 `yaml:"size"`      // world width (and height) the raster maps onto
	Width     int     `yaml:"width"`     // raster columns
	Height    int     `yaml:"height"`    // raster rows
	Fill      float64 `yaml:"fill"`      // fraction of the raster the text may cover, in (0, 1]
	Threshold uint8   `yaml:"threshold"` // alpha above which a pixel is lit
}

// DefaultTextOptions mirrors a 512x512 canvas with 12 world units per character.
func DefaultTextOptions(text string) TextOptions {
	return TextOptions{
		Size:      12 * float64(len(text)),
		Width:     512,
		Height:    512,
		Fill:      0.9,
		Threshold: 1,
	}
}

// Text renders text with the basic 7x13 face, scales it to fill the raster
// and returns one point per lit pixel. Points are centered on the origin with
// y pointing up. Columns are scanned left to right, rows top to bottom.
func Text(text string, opts TextOptions) []sim.Point2D {
	if text == "" || opts.Width <= 0 || opts.Height <= 0 || opts.Size <= 0 {
		return nil
	}
	fill := opts.Fill
	if fill <= 0 || fill > 1 {
		fill = 1
	}

	face := basicfont.Face7x13
	advance := font.MeasureString(face, text).Ceil()
	glyphs := image.NewAlpha(image.Rect(0, 0, advance, face.Height))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	// Uniform glyph-pixel to raster-pixel scale, centered.
	w, h := float64(opts.Width), float64(opts.Height)
	k := fill * math.Min(w/float64(advance), h/float64(face.Height))
	offX := (w - k*float64(advance)) / 2
	offY := (h - k*float64(face.Height)) / 2

	var points []sim.Point2D
	for x := 0; x < opts.Width; x++ {
		sx := int(math.Floor((float64(x) - offX) / k))
		if sx < 0 || sx >= advance {
			continue
		}
		for y := 0; y < opts.Height; y++ {
			sy := int(math.Floor((float64(y) - offY) / k))
			if sy < 0 || sy >= face.Height {
				continue
			}
			if glyphs.AlphaAt(sx, sy).A <= opts.Threshold {
				continue
			}
			points = append(points, sim.Point2D{
				X: (float64(x) - w/2) * opts.Size / w,
				Y: (h - float64(y) - 1 - h/2) * opts.Size / h,
			})
		}
	}
	return points
}
