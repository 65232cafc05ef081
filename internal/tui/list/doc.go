// Package listview provides a scrolling list for Bubble Tea views whose rows
// are rendered by the caller. Only the rows inside the viewport are rendered.
package listview
