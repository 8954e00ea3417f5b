// Package app is the composition root between configuration, the log tail
// core and the front ends.
//
// # Overview
//
// Every front end (terminal viewer, admin page, plain CLI output) asks the
// same question: what are the last N lines of the configured log, and how
// should they look? Load answers it once:
//
//	┌──────────────┐
//	│   Load()     │
//	└──────┬───────┘
//	       ├─────> logtail.Tail()    last N lines, or ErrNotFound
//	       ├─────> logtail.Format()  HTML severity markup
//	       └─────> logtail.Parse()   records for level counts
//
// Run wires config and prefs into the bubbletea viewer in package ui.
//
// # Error Handling
//
// A missing log is not an error: View.Found is false and Raw/Body carry a
// human readable message naming the path. A partial read keeps the text that
// was read and records the cause in View.Err. Only configuration errors are
// returned from Run.
package app
