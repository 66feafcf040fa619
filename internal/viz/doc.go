// Package viz provides terminal output for bean machine runs.
//
//   - [PlotHistogram]: asciigraph line plot of a histogram, resampled to fit
//   - [RenderSummary]: styled block of run statistics
//   - [LiveModel]: Bubble Tea view that drops balls in batches and redraws
//
// # Key Bindings
//
//	Space - Pause/Resume dropping
//	Q     - Quit early
package viz
