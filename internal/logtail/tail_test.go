package logtail

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

// lastLines is the straightforward split-based answer Tail must agree with.
func lastLines(content string, n int) string {
	body := strings.TrimSuffix(content, "\n")
	if body == "" || n <= 0 {
		return ""
	}
	lines := strings.Split(body, "\n")
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return strings.Trim(strings.Join(lines, "\n"), trimCutset)
}

func numberedLines(count int) string {
	var content strings.Builder
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&content, "line %04d %s\n", i, strings.Repeat("x", i%37))
	}
	return content.String()
}

func TestTail(t *testing.T) {
	var content strings.Builder
	for i := 1; i <= 10; i++ {
		content.WriteString(fmt.Sprintf("Line %d\n", i))
	}
	logPath := writeLog(t, content.String())

	tests := []struct {
		name     string
		lines    int
		expected string
	}{
		{
			name:     "zero lines",
			lines:    0,
			expected: "",
		},
		{
			name:     "negative lines",
			lines:    -1,
			expected: "",
		},
		{
			name:     "single line",
			lines:    1,
			expected: "Line 10",
		},
		{
			name:     "read partial (5)",
			lines:    5,
			expected: "Line 6\nLine 7\nLine 8\nLine 9\nLine 10",
		},
		{
			name:     "read exactly all (10)",
			lines:    10,
			expected: strings.TrimSpace(content.String()),
		},
		{
			name:     "read more than exists (20)",
			lines:    20,
			expected: strings.TrimSpace(content.String()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(logPath, tt.lines)
			if err != nil {
				t.Fatalf("Tail() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Tail() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTail_ThreeLinesRequestTwo(t *testing.T) {
	path := writeLog(t, "line 1\nline 2\nline 3\n")

	got, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if got != "line 2\nline 3" {
		t.Fatalf("Tail() = %q, want %q", got, "line 2\nline 3")
	}
}

func TestTail_UnterminatedLastLine(t *testing.T) {
	path := writeLog(t, "alpha\nbeta\ngamma")

	tests := []struct {
		lines int
		want  string
	}{
		{0, ""},
		{1, "gamma"},
		{2, "beta\ngamma"},
		{3, "alpha\nbeta\ngamma"},
		{4, "alpha\nbeta\ngamma"},
	}
	for _, tt := range tests {
		got, err := Tail(path, tt.lines)
		if err != nil {
			t.Fatalf("Tail(%d) error = %v", tt.lines, err)
		}
		if got != tt.want {
			t.Errorf("Tail(%d) = %q, want %q", tt.lines, got, tt.want)
		}
	}
}

func TestTail_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.log")
	for _, n := range []int{0, 1, 100} {
		got, err := Tail(missing, n)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Tail(%d) error = %v, want ErrNotFound", n, err)
		}
		if got != "" {
			t.Fatalf("Tail(%d) = %q, want empty", n, got)
		}
	}
}

func TestTail_DirectoryIsNotFound(t *testing.T) {
	if _, err := Tail(t.TempDir(), 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Tail(dir) error = %v, want ErrNotFound", err)
	}
}

func TestTail_EmptyFile(t *testing.T) {
	path := writeLog(t, "")
	for _, n := range []int{0, 1, 50} {
		got, err := Tail(path, n)
		if err != nil {
			t.Fatalf("Tail(%d) error = %v, want nil", n, err)
		}
		if got != "" {
			t.Fatalf("Tail(%d) = %q, want empty", n, got)
		}
	}
}

func TestTail_BufferThresholdsMatchReference(t *testing.T) {
	content := numberedLines(2000)
	unterminated := strings.TrimSuffix(content, "\n")

	for _, tc := range []struct {
		name    string
		content string
	}{
		{"terminated", content},
		{"unterminated", unterminated},
	} {
		path := writeLog(t, tc.content)
		for _, n := range []int{0, 1, 2, 9, 10, 11, 100, 1999, 2000, 2500} {
			want := lastLines(tc.content, n)
			for _, adaptive := range []bool{true, false} {
				got, err := Tail(path, n, WithAdaptive(adaptive))
				if err != nil {
					t.Fatalf("%s Tail(%d, adaptive=%v) error = %v", tc.name, n, adaptive, err)
				}
				if got != want {
					t.Errorf("%s Tail(%d, adaptive=%v) mismatch:\n got  %q\n want %q", tc.name, n, adaptive, truncate(got), truncate(want))
				}
			}
		}
	}
}

func TestTail_SmallBufferOverride(t *testing.T) {
	content := numberedLines(300)
	path := writeLog(t, content)

	for _, size := range []int{1, 3, 7, 4096} {
		got, err := Tail(path, 25, WithAdaptive(false), WithBufferSize(size))
		if err != nil {
			t.Fatalf("Tail(buffer=%d) error = %v", size, err)
		}
		if want := lastLines(content, 25); got != want {
			t.Errorf("Tail(buffer=%d) = %q, want %q", size, truncate(got), truncate(want))
		}
	}
}

func TestTail_MultiByteContent(t *testing.T) {
	var content strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&content, "%d héllo — 日本語のログ ✓ %s\n", i, strings.Repeat("é", i%11))
	}
	path := writeLog(t, content.String())

	for _, n := range []int{1, 5, 9, 10, 150} {
		got, err := Tail(path, n)
		if err != nil {
			t.Fatalf("Tail(%d) error = %v", n, err)
		}
		if want := lastLines(content.String(), n); got != want {
			t.Errorf("Tail(%d) = %q, want %q", n, truncate(got), truncate(want))
		}
	}
}

func TestTail_Idempotent(t *testing.T) {
	path := writeLog(t, numberedLines(500))

	first, err := Tail(path, 42)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	second, err := Tail(path, 42)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if first != second {
		t.Fatalf("Tail() not idempotent: %q vs %q", truncate(first), truncate(second))
	}
}

func TestTail_TrimsSurroundingWhitespace(t *testing.T) {
	path := writeLog(t, "  first\nsecond  \n\n")

	got, err := Tail(path, 5)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if got != "first\nsecond" {
		t.Fatalf("Tail() = %q, want %q", got, "first\nsecond")
	}
}

// failingReaderAt serves data but fails every read that starts below failBelow.
type failingReaderAt struct {
	data      []byte
	failBelow int64
}

func (r failingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < r.failBelow {
		return 0, errors.New("input/output error")
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestTail_ReadErrorKeepsPartialTail(t *testing.T) {
	var entries strings.Builder
	for i := 1; i <= 100; i++ {
		fmt.Fprintf(&entries, "entry %03d\n", i)
	}
	content := entries.String()

	tests := []struct {
		name      string
		data      string
		failBelow int64
		lines     int
		buffer    int
		want      string
		wantErr   bool
	}{
		{
			name:      "stops at failing chunk",
			data:      content,
			failBelow: 500,
			lines:     80,
			buffer:    100,
			want:      lastLines(content, 50),
			wantErr:   true,
		},
		{
			name:      "partial chunk is trimmed",
			data:      "head\n\n   \tbody one\nbody two\n",
			failBelow: 6,
			lines:     10,
			buffer:    22,
			want:      "body one\nbody two",
			wantErr:   true,
		},
		{
			name:      "last byte unreadable",
			data:      "only line\n",
			failBelow: 10,
			lines:     5,
			buffer:    64,
			want:      "",
			wantErr:   true,
		},
		{
			name:      "failure before the requested lines is never reached",
			data:      content,
			failBelow: 500,
			lines:     3,
			buffer:    100,
			want:      lastLines(content, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := failingReaderAt{data: []byte(tt.data), failBelow: tt.failBelow}
			got, err := tail(r, int64(len(tt.data)), tt.lines, tt.buffer)
			if tt.wantErr {
				if !errors.Is(err, ErrRead) {
					t.Fatalf("tail() error = %v, want ErrRead", err)
				}
			} else if err != nil {
				t.Fatalf("tail() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("tail() = %q, want %q", truncate(got), truncate(tt.want))
			}
		})
	}
}

func TestBufferSize(t *testing.T) {
	tests := []struct {
		lines    int
		adaptive bool
		want     int
	}{
		{0, true, 64},
		{1, true, 64},
		{2, true, 512},
		{9, true, 512},
		{10, true, 4096},
		{1000, true, 4096},
		{1, false, 4096},
		{9, false, 4096},
	}
	for _, tt := range tests {
		if got := BufferSize(tt.lines, tt.adaptive); got != tt.want {
			t.Errorf("BufferSize(%d, %v) = %d, want %d", tt.lines, tt.adaptive, got, tt.want)
		}
	}
}

func truncate(s string) string {
	if len(s) <= 120 {
		return s
	}
	return s[:60] + " ... " + s[len(s)-60:]
}
