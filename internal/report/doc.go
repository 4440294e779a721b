// Package report renders the per-word lookup outcome table printed by
// --summary.
package report
