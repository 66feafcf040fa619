package config

import (
	"sort"

	"github.com/san-kum/galton/internal/board"
)

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"quick": {
		Board:   BoardConfig{Rows: 12, Balls: 5_000, Width: 1000, Height: 600, Walk: "height"},
		Workers: 1, Output: board.DefaultOutput,
	},
	"narrow": {
		Board:   BoardConfig{Rows: 12, Balls: 50_000, Width: 1000, Height: 600, Walk: "rows"},
		Workers: 1, Output: "galton_narrow.png",
	},
	"wide": {
		Board:   BoardConfig{Rows: 12, Balls: 50_000, Width: 2000, Height: 600, Walk: "height"},
		Workers: 1, Output: "galton_wide.png",
	},
	"huge": {
		Board:   BoardConfig{Rows: 12, Balls: 500_000, Width: 1000, Height: 600, Walk: "height"},
		Workers: 4, Output: "galton_huge.png",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
