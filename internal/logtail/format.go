package logtail

import (
	"regexp"
	"strings"
)

const indent = "&nbsp;&nbsp;&nbsp;&nbsp;"

var (
	severityPattern   = regexp.MustCompile(`(?i)^(\S+ \S+) PHP ([\w\s]+):(.+)$`)
	stackHeadPattern  = regexp.MustCompile(`(?i)^(\S+ \S+) PHP Stack trace:$`)
	stackFramePattern = regexp.MustCompile(`(?i)^(\S+ \S+) PHP\s+(\d+\.)(.+)$`)
)

type rewrite struct {
	pattern  *regexp.Regexp
	template string
}

// Order matters: the first matching rule wins for a line.
var rewrites = []rewrite{
	{
		pattern:  severityPattern,
		template: `<br /><strong class="datetime">${1}</strong><br /><strong class="${2}">${2}</strong> ${3}`,
	},
	{
		pattern:  stackHeadPattern,
		template: indent + `<em class="info">Stack Trace</em>`,
	},
	{
		pattern:  stackFramePattern,
		template: indent + `<small>${2}<span>${3}</span></small>`,
	},
}

// Format decorates tail text with HTML severity markup. Lines matching none of
// the known shapes are returned untouched. Message bodies are not escaped.
func Format(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = FormatLine(line)
	}
	return strings.Join(lines, "\n")
}

// FormatLine applies the first matching rewrite to a single line.
func FormatLine(line string) string {
	for _, rw := range rewrites {
		if rw.pattern.MatchString(line) {
			return rw.pattern.ReplaceAllString(line, rw.template)
		}
	}
	return line
}
