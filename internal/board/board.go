package board

import (
	"fmt"
	"image/color"
)

const (
	DefaultRows   = 12
	DefaultBalls  = 50_000
	DefaultWidth  = 1000
	DefaultHeight = 600

	// PegRadius is kept for compatibility; balls are not drawn.
	PegRadius = 8

	DefaultOutput = "galton_board.png"

	// ProgressInterval is the number of trials between progress reports.
	ProgressInterval = 10_000
)

var (
	Background = color.NRGBA{R: 102, G: 51, B: 153, A: 255}
	LeftHalf   = color.NRGBA{R: 122, G: 122, B: 244, A: 255}
	RightHalf  = color.NRGBA{R: 122, G: 244, B: 122, A: 255}
)

// Walk selects what determines the number of steps a ball takes.
type Walk string

const (
	WalkHeight Walk = "height"
	WalkRows   Walk = "rows"
)

// ParseWalk accepts "height", "rows" or the empty string (height).
func ParseWalk(s string) (Walk, error) {
	switch Walk(s) {
	case "", WalkHeight:
		return WalkHeight, nil
	case WalkRows:
		return WalkRows, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWalk, s)
}

type Config struct {
	Rows   int
	Balls  int
	Width  int
	Height int
	Walk   Walk
	Seed   int64
}

func DefaultConfig() Config {
	return Config{
		Rows:   DefaultRows,
		Balls:  DefaultBalls,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Walk:   WalkHeight,
	}
}

// Validate reports the first configuration problem found. It must pass
// before a board is simulated and rendered end to end.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidWidth, c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidHeight, c.Height)
	}
	if c.Balls < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidBalls, c.Balls)
	}
	if c.Rows <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidRows, c.Rows)
	}
	if _, err := ParseWalk(string(c.Walk)); err != nil {
		return err
	}
	return nil
}

// WalkLength is the number of ±1 steps each ball takes.
func (c Config) WalkLength() int {
	if c.Walk == WalkRows {
		return c.Rows
	}
	return c.Height
}

// Center is the starting bin of every ball.
func (c Config) Center() int { return c.Width / 2 }

// BarColor picks the fill for a bar whose left edge is at x0.
func (c Config) BarColor(x0 int) color.NRGBA {
	if x0 < c.Width/2 {
		return LeftHalf
	}
	return RightHalf
}
