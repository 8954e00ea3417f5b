// Package logtail reads the end of a log file and highlights PHP style
// severity lines for display.
//
// # Overview
//
// The package has two halves that are used back to back:
//
//  1. Tail: return the last N lines of a file without loading the whole file
//  2. Format / ColorizeLine: decorate those lines for HTML or the terminal
//
// Parse turns the same text into Record values for callers that want counts
// or grouping rather than markup.
//
// # Reading Log Files
//
// Tail walks the file backwards from the end in fixed-size chunks:
//
//	1. Read the last byte; an unterminated final line counts as a line
//	2. While bytes remain and more lines are wanted:
//	   - step back min(offset, buffer) bytes
//	   - read that chunk and prepend it to the output
//	   - subtract the newlines it contained from the remaining count
//	3. Drop the surplus leading lines the last chunk pulled in
//	4. Trim surrounding whitespace
//
// The chunk size adapts to the request: 64 bytes for a single line, 512 for
// fewer than ten, 4096 otherwise. WithAdaptive(false) pins it at 4096.
//
// All offset arithmetic is done on raw bytes, so multi-byte text never shifts
// the seek positions.
//
// Example usage:
//
//	text, err := logtail.Tail("/var/www/wp-content/debug.log", 100)
//	switch {
//	case errors.Is(err, logtail.ErrNotFound):
//		// missing or rotated away; show a message instead
//	case err != nil:
//		// partial text is still usable
//	}
//	html := logtail.Format(text)
//
// # Highlighting
//
// Three line shapes are recognized, each introduced by a two-token timestamp
// and the literal PHP marker:
//
//	2024-01-01 10:00:00 PHP Fatal error:  Uncaught Exception: boom
//	2024-01-01 10:00:00 PHP Stack trace:
//	2024-01-01 10:00:00 PHP   1. {main}() /var/www/index.php:0
//
// Format rewrites severity lines into a timestamp block plus a level label
// whose text doubles as its CSS class, so "Fatal error" picks up the .error
// rule. Stack trace headers and frames lose their timestamp and are indented.
// Anything else passes through byte for byte.
//
// # Error Handling
//
// Tail returns ErrNotFound when the file cannot be opened; a missing or
// rotated log is an expected condition. Read failures during the scan return
// the partial text with an error wrapping ErrRead.
//
// Format, Parse and the colorizers never fail.
//
// # Concurrency
//
// There is no package state. Every call opens and closes its own file handle.
package logtail
