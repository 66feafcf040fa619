package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/galton/internal/board"
)

// DefaultFormat is empty so the output file's extension picks the format.
const (
	DefaultFormat  = ""
	DefaultWorkers = 1
)

// Config is the on-disk description of a run.
type Config struct {
	Board   BoardConfig `yaml:"board"`
	Seed    int64       `yaml:"seed"`
	Workers int         `yaml:"workers"`
	Output  string      `yaml:"output"`
	Format  string      `yaml:"format"`
}

type BoardConfig struct {
	Rows   int    `yaml:"rows"`
	Balls  int    `yaml:"balls"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Walk   string `yaml:"walk"`
}

func DefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			Rows:   board.DefaultRows,
			Balls:  board.DefaultBalls,
			Width:  board.DefaultWidth,
			Height: board.DefaultHeight,
			Walk:   string(board.WalkHeight),
		},
		Workers: DefaultWorkers,
		Output:  board.DefaultOutput,
		Format:  DefaultFormat,
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BoardConfig converts the file form into a validated-ready board.Config.
func (c *Config) BoardConfig() (board.Config, error) {
	walk, err := board.ParseWalk(c.Board.Walk)
	if err != nil {
		return board.Config{}, err
	}
	return board.Config{
		Rows:   c.Board.Rows,
		Balls:  c.Board.Balls,
		Width:  c.Board.Width,
		Height: c.Board.Height,
		Walk:   walk,
		Seed:   c.Seed,
	}, nil
}
