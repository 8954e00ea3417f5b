// Package ui provides the terminal viewer for logpeek.
//
// The viewer is a single Bubble Tea screen: a header with the log path, the
// requested line count and per-level counts, a scrollable viewport holding
// the colorized tail, and a footer of key hints. It never follows the file;
// r reloads on demand and +/- change the line count for the session. The
// theme choice is saved through package prefs.
package ui
