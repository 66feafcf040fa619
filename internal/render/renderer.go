package render

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/san-kum/galton/internal/board"
)

// ErrEmptyHistogram is returned when there are no bins to draw.
var ErrEmptyHistogram = errors.New("render: histogram has no bins")

type Renderer struct {
	cfg    board.Config
	canvas Canvas
}

// NewRenderer draws onto canvas, which should already carry the
// background; Render never clears it.
func NewRenderer(cfg board.Config, canvas Canvas) *Renderer {
	return &Renderer{cfg: cfg, canvas: canvas}
}

// Render paints one bar per bin, scaled so the fullest bin reaches the top
// of the board, and returns the canvas.
func (r *Renderer) Render(counts []int) (Canvas, error) {
	if len(counts) == 0 {
		return nil, ErrEmptyHistogram
	}
	if r.cfg.Width <= 0 {
		return nil, fmt.Errorf("%w, got %d", board.ErrInvalidWidth, r.cfg.Width)
	}

	maxFrequency := slices.Max(counts)
	barWidth := r.cfg.Width / len(counts)

	for i, f := range counts {
		rect := r.bar(i, f, maxFrequency, barWidth)
		r.canvas.FillRect(rect, r.cfg.BarColor(rect.Min.X))
	}

	return r.canvas, nil
}

func (r *Renderer) bar(bin, frequency, maxFrequency, barWidth int) image.Rectangle {
	h := r.BarHeight(frequency, maxFrequency)
	x0 := bin * barWidth
	return image.Rect(x0, r.cfg.Height-h, x0+barWidth, r.cfg.Height)
}

// BarHeight scales frequency linearly to pixels, rounding down.
func (r *Renderer) BarHeight(frequency, maxFrequency int) int {
	if maxFrequency == 0 {
		return 0
	}
	return frequency * r.cfg.Height / maxFrequency
}
