package galton

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/galton/internal/board"
)

type Simulator struct {
	cfg       board.Config
	walk      int
	counts    []int
	completed int
	coin      Coin
	observers []Observer
	every     int
}

// New builds a simulator with a zeroed histogram of cfg.Width bins.
// A zero Height is accepted: every ball then stays at the midpoint.
func New(cfg board.Config, opts ...Option) (*Simulator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:       cfg,
		walk:      cfg.WalkLength(),
		observers: make([]Observer, 0),
		every:     board.ProgressInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.counts) != cfg.Width {
		s.counts = make([]int, cfg.Width)
	}
	if s.coin == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.coin = NewSeededCoin(seed)
	}

	return s, nil
}

func validateConfig(cfg board.Config) error {
	if cfg.Width <= 0 {
		return fmt.Errorf("%w, got %d", board.ErrInvalidWidth, cfg.Width)
	}
	if cfg.Height < 0 {
		return fmt.Errorf("%w, got %d", board.ErrInvalidHeight, cfg.Height)
	}
	if cfg.Balls < 0 {
		return fmt.Errorf("%w, got %d", board.ErrInvalidBalls, cfg.Balls)
	}
	walk, err := board.ParseWalk(string(cfg.Walk))
	if err != nil {
		return err
	}
	if walk == board.WalkRows && cfg.Rows < 0 {
		return fmt.Errorf("%w, got %d", board.ErrInvalidRows, cfg.Rows)
	}
	return nil
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run drops every remaining ball. The context is checked between balls.
func (s *Simulator) Run(ctx context.Context) error {
	for s.completed < s.cfg.Balls {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.dropOne()
	}
	return nil
}

// Drop runs up to n more balls and returns how many were dropped.
func (s *Simulator) Drop(n int) int {
	n = min(n, s.Remaining())
	for i := 0; i < n; i++ {
		s.dropOne()
	}
	return max(n, 0)
}

func (s *Simulator) dropOne() {
	s.counts[s.FinalBin()]++
	s.completed++

	if s.every > 0 && s.completed%s.every == 0 {
		for _, obs := range s.observers {
			obs.OnProgress(s.completed, s.cfg.Balls)
		}
	}
}

// FinalBin walks a single ball from the midpoint and returns its bin.
func (s *Simulator) FinalBin() int {
	pos := s.cfg.Width / 2
	for i := 0; i < s.walk; i++ {
		step, err := s.coin.Flip()
		if err != nil {
			// An unavailable source biases this one step rightward.
			step = 1
		}
		pos += step
	}
	return max(0, min(pos, s.cfg.Width-1))
}

// Counts returns a copy of the histogram.
func (s *Simulator) Counts() []int {
	c := make([]int, len(s.counts))
	copy(c, s.counts)
	return c
}

func (s *Simulator) Config() board.Config { return s.cfg }
func (s *Simulator) Completed() int       { return s.completed }
func (s *Simulator) Remaining() int       { return s.cfg.Balls - s.completed }
func (s *Simulator) Done() bool           { return s.completed >= s.cfg.Balls }
