package medium2md

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxFileNameRunes = 200

var (
	unsafeFileCharsRe = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f]+`)
	spaceRunRe        = regexp.MustCompile(`\s+`)
)

// MarkdownFileName derives the output file name from an article title.
// Path separators and characters reserved on common file systems become
// dashes; an empty result falls back to "article".
func MarkdownFileName(title string) string {
	name := spaceRunRe.ReplaceAllString(title, " ")
	name = unsafeFileCharsRe.ReplaceAllString(name, "-")
	name = strings.Trim(name, " .-")

	if utf8.RuneCountInString(name) > maxFileNameRunes {
		name = strings.TrimSpace(string([]rune(name)[:maxFileNameRunes]))
	}
	if name == "" {
		name = "article"
	}
	return name + ".md"
}
