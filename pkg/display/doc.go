// Package display renders operation results for people and machines.
//
// FormatPlan turns a step list into the plain plan text that is embedded in
// results. The renderers write whole results: JSON for machines, and text
// that is styled with lipgloss when the output is a color terminal.
package display
