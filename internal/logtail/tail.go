package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrNotFound reports that the log file could not be opened for reading.
	ErrNotFound = errors.New("log file not found")
	// ErrRead reports an I/O failure part-way through the backward scan.
	// The text returned alongside it is a best-effort partial tail.
	ErrRead = errors.New("read log")
)

const (
	defaultBufferSize = 4096

	// Matches the whitespace set trimmed from both ends of the result.
	trimCutset = " \t\n\r\x00\x0b"
)

type options struct {
	adaptive   bool
	bufferSize int
}

// Option configures Tail.
type Option func(*options)

// WithAdaptive toggles line-count based buffer sizing. Default: true.
func WithAdaptive(adaptive bool) Option {
	return func(o *options) {
		o.adaptive = adaptive
	}
}

// WithBufferSize sets the chunk size used when adaptive sizing is off.
// Non-positive values keep the 4096 byte default.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

func defaultOptions() options {
	return options{adaptive: true, bufferSize: defaultBufferSize}
}

// BufferSize returns the chunk size Tail uses for the given request.
func BufferSize(lines int, adaptive bool) int {
	if !adaptive {
		return defaultBufferSize
	}
	switch {
	case lines < 2:
		return 64
	case lines < 10:
		return 512
	default:
		return defaultBufferSize
	}
}

// Tail returns the last lines of the file at path, trimmed of surrounding
// whitespace. The file is read backwards in fixed-size chunks so memory use
// does not depend on the file size.
//
// A file that cannot be opened yields ErrNotFound. An I/O error during the
// scan yields whatever was read so far together with an error wrapping ErrRead.
func Tail(path string, lines int, opts ...Option) (string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if lines < 0 {
		lines = 0
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %v", ErrNotFound, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	size := info.Size()
	if size == 0 {
		return "", nil
	}

	buffer := o.bufferSize
	if o.adaptive {
		buffer = BufferSize(lines, true)
	}

	text, err := tail(file, size, lines, buffer)
	if err != nil {
		return text, fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// tail scans the last size bytes of r backwards in chunks of buffer bytes.
func tail(r io.ReaderAt, size int64, lines, buffer int) (string, error) {
	if size <= 0 {
		return "", nil
	}

	// An unterminated final line counts as one of the requested lines.
	last := make([]byte, 1)
	if n, err := r.ReadAt(last, size-1); err != nil && !(errors.Is(err, io.EOF) && n == 1) {
		return "", fmt.Errorf("%w: last byte: %v", ErrRead, err)
	}
	if last[0] != '\n' {
		lines--
	}

	var (
		output  []byte
		readErr error
	)
	pos := size
	for pos > 0 && lines >= 0 {
		seek := min(pos, int64(buffer))
		pos -= seek

		chunk := make([]byte, seek)
		n, err := r.ReadAt(chunk, pos)
		if err != nil && !(errors.Is(err, io.EOF) && int64(n) == seek) {
			readErr = fmt.Errorf("%w at offset %d: %v", ErrRead, pos, err)
			break
		}
		output = append(chunk, output...)
		lines -= bytes.Count(chunk, []byte{'\n'})
	}

	// Chunks rarely end on a line boundary, so surplus leading lines are dropped.
	for lines < 0 {
		lines++
		idx := bytes.IndexByte(output, '\n')
		if idx < 0 {
			output = output[:0]
			break
		}
		output = output[idx+1:]
	}

	return strings.Trim(string(output), trimCutset), readErr
}
