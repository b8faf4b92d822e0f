// Package viz renders analysis results for the terminal.
//
// Tables are drawn with lipgloss, curves with asciigraph. Values are rounded
// with [numfmt.Round] for display only; nothing here feeds back into the
// analysis.
//
//   - [MethodTable]: x, approximated y, exact y, total and local error
//   - [SweepTable]: maximum error against N for every method
//   - [Plot]: several series on one asciigraph chart with a legend
package viz
