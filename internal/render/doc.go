// Package render turns a bean machine histogram into a bar chart.
//
// The [Renderer] only needs a [Canvas] that can fill rectangles. Two are
// provided:
//
//   - [Raster]: an in-memory NRGBA image, encoded as PNG
//   - [SVG]: a streaming SVG document
//
// Both are painted with the background color when created; rendering then
// draws one bar per bin, growing upward from the bottom edge.
package render
