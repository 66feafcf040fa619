package render_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galton/internal/board"
	"github.com/san-kum/galton/internal/render"
)

type fill struct {
	rect  image.Rectangle
	color color.Color
}

type recordingCanvas struct {
	bounds image.Rectangle
	fills  []fill
}

func (c *recordingCanvas) Bounds() image.Rectangle { return c.bounds }
func (c *recordingCanvas) FillRect(r image.Rectangle, col color.Color) {
	c.fills = append(c.fills, fill{r, col})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func cfg(width, height int) board.Config {
	c := board.DefaultConfig()
	c.Width, c.Height = width, height
	return c
}

func onlyBackground(img *image.NRGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) != board.Background {
				return false
			}
		}
	}
	return true
}

var _ = Describe("Renderer", func() {
	Describe("bar geometry", func() {
		It("draws a single full-height column for a lone peak", func() {
			canvas := &recordingCanvas{bounds: image.Rect(0, 0, 5, 100)}
			_, err := render.NewRenderer(cfg(5, 100), canvas).Render([]int{0, 0, 5, 0, 0})
			Expect(err).NotTo(HaveOccurred())

			Expect(canvas.fills).To(HaveLen(5))
			Expect(canvas.fills[2].rect).To(Equal(image.Rect(2, 0, 3, 100)))
			for _, i := range []int{0, 1, 3, 4} {
				Expect(canvas.fills[i].rect.Empty()).To(BeTrue())
			}
		})

		It("scales heights linearly and rounds down", func() {
			r := render.NewRenderer(cfg(3, 100), &recordingCanvas{})
			Expect(r.BarHeight(1, 3)).To(Equal(33))
			Expect(r.BarHeight(2, 3)).To(Equal(66))
			Expect(r.BarHeight(3, 3)).To(Equal(100))
			Expect(r.BarHeight(0, 0)).To(Equal(0))
		})

		It("widens bars when there are fewer bins than columns", func() {
			canvas := &recordingCanvas{bounds: image.Rect(0, 0, 10, 10)}
			_, err := render.NewRenderer(cfg(10, 10), canvas).Render([]int{1, 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(canvas.fills[0].rect).To(Equal(image.Rect(0, 5, 5, 10)))
			Expect(canvas.fills[1].rect).To(Equal(image.Rect(5, 0, 10, 10)))
		})
	})

	Describe("colors", func() {
		It("splits left and right at the integer midpoint", func() {
			canvas := &recordingCanvas{bounds: image.Rect(0, 0, 5, 10)}
			_, err := render.NewRenderer(cfg(5, 10), canvas).Render([]int{1, 1, 1, 1, 1})
			Expect(err).NotTo(HaveOccurred())

			Expect(canvas.fills[0].color).To(Equal(board.LeftHalf))
			Expect(canvas.fills[1].color).To(Equal(board.LeftHalf))
			Expect(canvas.fills[2].color).To(Equal(board.RightHalf))
			Expect(canvas.fills[4].color).To(Equal(board.RightHalf))
		})
	})

	Describe("errors", func() {
		It("rejects an empty histogram", func() {
			_, err := render.NewRenderer(cfg(5, 10), &recordingCanvas{}).Render(nil)
			Expect(err).To(MatchError(render.ErrEmptyHistogram))
		})

		It("rejects a zero-width board", func() {
			_, err := render.NewRenderer(cfg(0, 10), &recordingCanvas{}).Render([]int{1})
			Expect(err).To(MatchError(board.ErrInvalidWidth))
		})
	})

	Describe("raster output", func() {
		It("leaves an all-zero histogram as plain background", func() {
			raster := render.NewRaster(20, 10, board.Background)
			_, err := render.NewRenderer(cfg(20, 10), raster).Render(make([]int, 20))
			Expect(err).NotTo(HaveOccurred())
			Expect(onlyBackground(raster.Image())).To(BeTrue())
		})

		It("paints the peak column from bottom to top", func() {
			raster := render.NewRaster(5, 100, board.Background)
			_, err := render.NewRenderer(cfg(5, 100), raster).Render([]int{0, 0, 5, 0, 0})
			Expect(err).NotTo(HaveOccurred())

			img := raster.Image()
			Expect(img.NRGBAAt(2, 0)).To(Equal(board.RightHalf))
			Expect(img.NRGBAAt(2, 99)).To(Equal(board.RightHalf))
			Expect(img.NRGBAAt(1, 99)).To(Equal(board.Background))
			Expect(img.NRGBAAt(3, 50)).To(Equal(board.Background))
		})

		It("is pixel-identical across fresh canvases", func() {
			counts := []int{3, 0, 7, 1, 9, 4, 0, 2}
			a := render.NewRaster(8, 40, board.Background)
			b := render.NewRaster(8, 40, board.Background)

			_, err := render.NewRenderer(cfg(8, 40), a).Render(counts)
			Expect(err).NotTo(HaveOccurred())
			_, err = render.NewRenderer(cfg(8, 40), b).Render(counts)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Image().Pix).To(Equal(b.Image().Pix))
		})

		It("encodes a decodable PNG of the board size", func() {
			raster := render.NewRaster(12, 7, board.Background)
			var buf bytes.Buffer
			Expect(raster.EncodePNG(&buf)).To(Succeed())

			img, err := png.Decode(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 12, 7)))
		})
	})

	Describe("svg output", func() {
		It("writes background and bars", func() {
			var buf bytes.Buffer
			doc := render.NewSVG(&buf, 4, 10, board.Background)
			_, err := render.NewRenderer(cfg(4, 10), doc).Render([]int{0, 2, 0, 0})
			Expect(err).NotTo(HaveOccurred())
			doc.Close()

			out := buf.String()
			Expect(out).To(ContainSubstring("<svg"))
			Expect(out).To(ContainSubstring("fill:rgb(102,51,153)"))
			Expect(out).To(ContainSubstring("fill:rgb(122,122,244)"))
			Expect(strings.Count(out, "<rect")).To(Equal(2))
			Expect(out).To(ContainSubstring("</svg>"))
		})
	})

	Describe("saving", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("saves a PNG file", func() {
			path := filepath.Join(dir, "board.png")
			Expect(render.Save(path, render.FormatPNG, cfg(10, 10), []int{0, 1, 2, 3, 4, 4, 3, 2, 1, 0})).To(Succeed())

			f, err := os.Open(path)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()
			img, err := png.Decode(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds().Dx()).To(Equal(10))
		})

		It("saves an SVG file", func() {
			path := filepath.Join(dir, "board.svg")
			Expect(render.Save(path, render.FormatSVG, cfg(3, 10), []int{1, 2, 1})).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(HaveSuffix("</svg>\n"))
		})

		It("surfaces write failures", func() {
			path := filepath.Join(dir, "missing", "board.png")
			Expect(render.SavePNG(path, cfg(3, 10), []int{1, 2, 1})).NotTo(Succeed())
		})

		It("reports SVG write failures", func() {
			err := render.WriteSVG(failingWriter{}, cfg(3, 10), []int{1, 2, 1})
			Expect(err).To(MatchError(ContainSubstring("disk full")))
		})

		It("refuses an empty histogram before touching disk", func() {
			path := filepath.Join(dir, "empty.svg")
			Expect(render.SaveSVG(path, cfg(3, 10), nil)).To(MatchError(render.ErrEmptyHistogram))
			_, err := os.Stat(path)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	DescribeTable("ParseFormat",
		func(format, path string, want render.Format, ok bool) {
			got, err := render.ParseFormat(format, path)
			if !ok {
				Expect(err).To(MatchError(render.ErrUnknownFormat))
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("explicit png", "png", "x", render.FormatPNG, true),
		Entry("explicit svg", "SVG", "x.png", render.FormatSVG, true),
		Entry("from extension", "", "chart.svg", render.FormatSVG, true),
		Entry("no extension", "", "chart", render.FormatPNG, true),
		Entry("unknown", "gif", "x", render.Format(""), false),
	)
})
