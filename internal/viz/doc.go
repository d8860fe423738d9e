// Package viz renders Fibonacci sequences for the terminal.
//
// Two views share one palette:
//
//   - [RenderList]: (index, value) rows with thousands separators
//   - [RenderBars]: the first [MaxBars] values as columns on a log scale
//
// # Scaling
//
// Bar heights follow log(v+1)/log(max+1) scaled to 90%, with a 5% floor so
// the leading zero stays visible. See [BarHeights].
package viz
