// Package galton simulates balls falling through a bean machine.
//
// Each ball starts at the board's horizontal midpoint and takes a fixed
// number of unbiased ±1 steps drawn from a [Coin]. Its final position is
// clamped to the board and tallied into a per-column histogram.
//
//   - [Simulator]: single-threaded run over all balls
//   - [Ensemble]: splits the balls across workers with private histograms
//   - [Observer]: receives progress every 10,000 balls
//
// # Example
//
//	cfg := board.DefaultConfig()
//	cfg.Seed = 42
//	s, err := galton.New(cfg, galton.WithObserver(progress))
//	if err != nil {
//	    return err
//	}
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//	counts := s.Counts()
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Use [Ensemble] to run trials in
// parallel; it never shares a counter between goroutines.
package galton
