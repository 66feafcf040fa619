package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/galton/internal/board"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

var ErrUnknownFormat = errors.New("render: unknown output format")

// ParseFormat accepts "png" or "svg". An empty string is inferred from the
// path's extension, falling back to PNG.
func ParseFormat(s, path string) (Format, error) {
	if s == "" {
		s = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if s == "" {
			return FormatPNG, nil
		}
	}
	switch Format(strings.ToLower(s)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Save renders counts and writes the chart to path.
func Save(path string, format Format, cfg board.Config, counts []int) error {
	switch format {
	case FormatPNG:
		return SavePNG(path, cfg, counts)
	case FormatSVG:
		return SaveSVG(path, cfg, counts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func SavePNG(path string, cfg board.Config, counts []int) error {
	raster := NewRaster(cfg.Width, cfg.Height, board.Background)
	if _, err := NewRenderer(cfg, raster).Render(counts); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := raster.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

func SaveSVG(path string, cfg board.Config, counts []int) error {
	if len(counts) == 0 {
		return ErrEmptyHistogram
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSVG(f, cfg, counts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteSVG renders counts as a complete SVG document. svgo drops write
// errors, so output is buffered and the flush error is returned instead.
func WriteSVG(w io.Writer, cfg board.Config, counts []int) error {
	buf := bufio.NewWriter(w)
	doc := NewSVG(buf, cfg.Width, cfg.Height, board.Background)
	if _, err := NewRenderer(cfg, doc).Render(counts); err != nil {
		return err
	}
	doc.Close()

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
