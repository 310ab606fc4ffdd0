package medium2md

import (
	"regexp"
	"strings"
)

var headingRe = regexp.MustCompile(`^#{1,6} (.*)$`)

// ExtractHeading returns the canonical heading of a Markdown document: the
// text of its first ATX heading joined by a space to the next non-blank
// line. Heading markers on that next line are dropped, so a title followed
// by a subtitle heading reads as one sentence. If the first heading is the
// last non-blank line, its text alone is returned.
//
// The second result is false when the document has no heading.
func ExtractHeading(text string) (string, bool) {
	heading, _, ok := findHeading(text)
	return heading, ok
}

// FirstHeading returns the text of the first non-empty ATX heading of text,
// without the line that follows it.
func FirstHeading(text string) (string, bool) {
	for _, l := range strings.Split(text, "\n") {
		m := headingRe.FindStringSubmatch(strings.TrimRight(l, "\r"))
		if m == nil {
			continue
		}
		if h := strings.TrimSpace(m[1]); h != "" {
			return h, true
		}
	}
	return "", false
}

// findHeading returns the canonical heading and the raw line it starts on.
func findHeading(text string) (heading, line string, ok bool) {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		l = strings.TrimRight(l, "\r")
		m := headingRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		heading = strings.TrimSpace(m[1])
		if heading == "" {
			continue
		}
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if next == "" {
				continue
			}
			if headingRe.MatchString(next) {
				next = strings.TrimSpace(strings.TrimLeft(next, "#"))
			}
			return heading + " " + next, l, true
		}
		return heading, l, true
	}
	return "", "", false
}

// firstLine returns the first non-blank line of text.
func firstLine(text string) string {
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimRight(l, "\r"); strings.TrimSpace(l) != "" {
			return l
		}
	}
	return ""
}
