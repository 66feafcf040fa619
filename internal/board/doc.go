// Package board describes the geometry and palette of a simulated bean
// machine (Galton board).
//
// A [Config] fixes everything a run needs:
//
//   - Rows: nominal peg rows (walk length only in [WalkRows] mode)
//   - Balls: number of independent trials
//   - Width, Height: pixel dimensions; Width is also the number of bins
//
// # Walk Length
//
// By default a ball takes Height steps, one per vertical pixel, which
// matches the classic rendering. Select [WalkRows] to use Rows instead:
//
//	cfg := board.DefaultConfig()
//	cfg.Walk = board.WalkRows
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// The shorter walk produces a much narrower distribution.
package board
