package logtail

import (
	"strings"
)

// Level is the severity class of a log record.
type Level int

const (
	LevelUnknown Level = iota
	LevelNotice
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelNotice:
		return "notice"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel maps a free-form level word such as "Fatal error" or
// "Deprecated" onto a Level.
func ParseLevel(word string) Level {
	w := strings.ToLower(word)
	switch {
	case strings.Contains(w, "error"):
		return LevelError
	case strings.Contains(w, "warning"):
		return LevelWarning
	case strings.Contains(w, "notice"), strings.Contains(w, "deprecated"):
		return LevelNotice
	default:
		return LevelUnknown
	}
}

// Record is one log entry with its stack trace frames, if any.
type Record struct {
	Timestamp  string
	Level      Level
	LevelText  string
	Message    string
	StackTrace []string
}

// Parse splits tail text into records. Stack trace lines attach to the record
// before them; lines of unknown shape become records of LevelUnknown.
func Parse(text string) []Record {
	var records []Record
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := severityPattern.FindStringSubmatch(line); m != nil {
			records = append(records, Record{
				Timestamp: m[1],
				Level:     ParseLevel(m[2]),
				LevelText: m[2],
				Message:   strings.TrimSpace(m[3]),
			})
			continue
		}
		if stackHeadPattern.MatchString(line) && len(records) > 0 {
			continue
		}
		if m := stackFramePattern.FindStringSubmatch(line); m != nil && len(records) > 0 {
			last := &records[len(records)-1]
			last.StackTrace = append(last.StackTrace, m[2]+" "+strings.TrimSpace(m[3]))
			continue
		}
		records = append(records, Record{Level: LevelUnknown, Message: line})
	}
	return records
}

// Counts tallies records per level.
func Counts(records []Record) map[Level]int {
	counts := make(map[Level]int, 4)
	for _, r := range records {
		counts[r.Level]++
	}
	return counts
}
