// Package viz renders simulated tables and agreement reports for the
// terminal.
//
//   - [RenderReport]: pass/fail agreement report
//   - [RenderSummary]: per-column statistics with sparklines
//   - [Histogram]: asciigraph plot of a column distribution
//   - [Viewer]: interactive bubbletea browser over the table columns
package viz
