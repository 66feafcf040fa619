package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/draw"
)

// Canvas is a drawing surface that accepts rectangle fills. Rectangles are
// half-open, as image.Rectangle is.
type Canvas interface {
	Bounds() image.Rectangle
	FillRect(r image.Rectangle, c color.Color)
}

type Raster struct {
	img *image.NRGBA
}

func NewRaster(width, height int, bg color.Color) *Raster {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Raster{img: img}
}

func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

func (r *Raster) FillRect(rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) Image() *image.NRGBA { return r.img }

// EncodePNG writes the image losslessly. An opaque canvas is stored as
// 8-bit RGB.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

// SVG streams rectangles into an SVG document as they are filled.
type SVG struct {
	canvas *svg.SVG
	bounds image.Rectangle
}

// NewSVG writes the document header and background immediately. Close must
// be called to finish the document.
func NewSVG(w io.Writer, width, height int, bg color.Color) *SVG {
	s := &SVG{
		canvas: svg.New(w),
		bounds: image.Rect(0, 0, width, height),
	}
	s.canvas.Start(width, height)
	s.canvas.Rect(0, 0, width, height, fill(bg))
	return s
}

func (s *SVG) Bounds() image.Rectangle { return s.bounds }

func (s *SVG) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(s.bounds)
	if r.Empty() {
		return
	}
	s.canvas.Rect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), fill(c))
}

func (s *SVG) Close() { s.canvas.End() }

func fill(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("fill:rgb(%d,%d,%d)", n.R, n.G, n.B)
}
