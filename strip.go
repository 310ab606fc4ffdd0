package medium2md

import (
	"fmt"
	"regexp"
	"strings"
)

// Default heuristics for the Medium article layout.
const (
	DefaultImageHost        = "https://miro.medium.com"
	DefaultDivider          = `\--`
	DefaultDividerBacktrack = 2
	DefaultTrailingLines    = 5
	DefaultMinLines         = 1
)

// Markers of Medium boilerplate regions.
const (
	SupportAuthorsMarker = "## Support independent authors"
	ShareMarker          = "Share"
)

var (
	moreFromHeadingRe  = regexp.MustCompile(`(?m)^#{1,6}[ \t]+More from`)
	writtenByHeadingRe = regexp.MustCompile(`(?m)^#{1,6}[ \t]+Written by`)
	moreFromRe         = regexp.MustCompile(`More from`)
	recommendedRe      = regexp.MustCompile(`Recommended`)
)

// Rule is a single cleaning pass. Apply must be total: when its marker is
// absent it returns the text unchanged.
type Rule struct {
	Name  string
	Apply func(text string) string
}

// Stripper removes boilerplate from a converted Markdown document by
// applying its rules in order, each to the output of the previous one.
type Stripper struct {
	Rules []Rule

	// Heading prepends the canonical heading of the input document
	// (see ExtractHeading) to the cleaned output. Nothing is prepended
	// when the input has no heading, or when the cleaned output still
	// starts with the input's heading line, so stripping an already
	// stripped document leaves it unchanged.
	Heading bool
}

// Strip returns the cleaned document. The canonical heading is taken from
// text before any rule runs; when text has no heading nothing is prepended.
// If the rules left the source heading line at the top of the document, the
// document already starts with its heading and nothing is prepended either.
func (s *Stripper) Strip(text string) string {
	heading, line, ok := findHeading(text)
	for _, rule := range s.Rules {
		text = rule.Apply(text)
	}
	if s.Heading && ok && firstLine(text) != line {
		text = "# " + heading + "\n" + text
	}
	return text
}

// RuleNames lists the rule names in application order.
func (s *Stripper) RuleNames() []string {
	names := make([]string, len(s.Rules))
	for i, r := range s.Rules {
		names[i] = r.Name
	}
	return names
}

// RemoveFrom deletes everything from the first match of re to the end of
// the text.
func RemoveFrom(name string, re *regexp.Regexp) Rule {
	return Rule{
		Name: name,
		Apply: func(text string) string {
			loc := re.FindStringIndex(text)
			if loc == nil {
				return text
			}
			return text[:loc[0]]
		},
	}
}

// RemoveBlocks deletes every raw <tag ...>...</tag> block. Matching is
// case-insensitive and each block ends at the nearest closing tag.
func RemoveBlocks(tag string) Rule {
	re := regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(tag) + `\b[^>]*>.*?</` + regexp.QuoteMeta(tag) + `\s*>`)
	return Rule{
		Name: tag + "-block",
		Apply: func(text string) string {
			return re.ReplaceAllString(text, "")
		},
	}
}

// RemoveThroughLine deletes every line from the start of the text through
// the first line containing marker, inclusive.
func RemoveThroughLine(marker string) Rule {
	return Rule{
		Name: "through-" + strings.ToLower(marker),
		Apply: func(text string) string {
			idx := strings.Index(text, marker)
			if idx < 0 {
				return text
			}
			end := strings.IndexByte(text[idx:], '\n')
			if end < 0 {
				return ""
			}
			return text[idx+end+1:]
		},
	}
}

// TruncateAtLastLine drops the line holding the last occurrence of marker
// and everything after it.
func TruncateAtLastLine(marker string) Rule {
	return Rule{
		Name: "last-line-" + marker,
		Apply: func(text string) string {
			idx := strings.LastIndex(text, marker)
			if idx < 0 {
				return text
			}
			start := strings.LastIndexByte(text[:idx], '\n')
			if start < 0 {
				return ""
			}
			return text[:start]
		},
	}
}

// TrimTrailingLines drops the last n lines but never leaves fewer than
// minLines lines.
func TrimTrailingLines(n, minLines int) Rule {
	return Rule{
		Name: fmt.Sprintf("trailing-%d", n),
		Apply: func(text string) string {
			if n <= 0 {
				return text
			}
			lines := strings.Split(text, "\n")
			keep := max(len(lines)-n, minLines, 0)
			if keep >= len(lines) {
				return text
			}
			return strings.Join(lines[:keep], "\n")
		},
	}
}

// TruncateBeforeLastLine finds the last line containing marker and keeps
// only the lines that precede it by more than back-1 lines. With back=2 the
// marker line and the line before it are dropped.
func TruncateBeforeLastLine(marker string, back int) Rule {
	return Rule{
		Name: "divider",
		Apply: func(text string) string {
			return DeleteLinesFrom(text, LastLineContaining(text, marker), back)
		},
	}
}

// RemoveFromLine drops the last line starting with prefix and everything
// after it.
func RemoveFromLine(prefix string) Rule {
	return Rule{
		Name: "from-line",
		Apply: func(text string) string {
			lines := strings.Split(text, "\n")
			for i := len(lines) - 1; i >= 0; i-- {
				if strings.HasPrefix(lines[i], prefix) {
					return strings.Join(lines[:i], "\n")
				}
			}
			return text
		},
	}
}

// LastLineContaining returns the 1-indexed number of the last line that
// contains marker, counting blank lines. It returns 0 when no line does.
func LastLineContaining(text, marker string) int {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], marker) {
			return i + 1
		}
	}
	return 0
}

// DeleteLinesFrom keeps the first line-back lines of text. A line of 0
// (marker not found) leaves text unchanged.
func DeleteLinesFrom(text string, line, back int) string {
	if line <= 0 {
		return text
	}
	keep := max(line-back, 0)
	lines := strings.Split(text, "\n")
	if keep >= len(lines) {
		return text
	}
	return strings.Join(lines[:keep], "\n")
}

// Profile names a marker set. Pipelines pick one profile per run.
type Profile string

// Available profiles.
const (
	// ProfileDefault applies every known pass in a fixed order.
	ProfileDefault Profile = "default"

	// ProfileRendered matches the Markdown produced from a browser-rendered
	// Medium page.
	ProfileRendered Profile = "rendered"

	// ProfileStatic matches the Markdown produced from a plain HTTP fetch.
	ProfileStatic Profile = "static"
)

// ParseProfile returns the profile named s.
func ParseProfile(s string) (Profile, error) {
	switch p := Profile(s); p {
	case ProfileDefault, ProfileRendered, ProfileStatic:
		return p, nil
	case "":
		return ProfileDefault, nil
	}
	return "", Errorf(EINVALID, "unknown profile %q (want default, rendered or static)", s)
}

// StripConfig tunes the heuristic passes.
type StripConfig struct {
	// ImageHost is the URL prefix whose last occurrence starts the
	// trailing block to discard.
	ImageHost string

	// Divider marks the section rule that precedes the article footer.
	Divider string

	// DividerBacktrack is how many lines, counting the divider line,
	// are dropped along with everything after it.
	DividerBacktrack int

	// TrailingLines is the fixed window trimmed from the end.
	TrailingLines int

	// MinLines is the floor the trailing trim never goes below.
	MinLines int
}

// DefaultStripConfig returns the configuration for Medium articles.
func DefaultStripConfig() StripConfig {
	return StripConfig{
		ImageHost:        DefaultImageHost,
		Divider:          DefaultDivider,
		DividerBacktrack: DefaultDividerBacktrack,
		TrailingLines:    DefaultTrailingLines,
		MinLines:         DefaultMinLines,
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c StripConfig) Validate() error {
	if c.ImageHost == "" {
		return Errorf(EINVALID, "image host required")
	}
	if c.Divider == "" {
		return Errorf(EINVALID, "divider marker required")
	}
	if c.DividerBacktrack < 0 {
		return Errorf(EINVALID, "divider backtrack must not be negative")
	}
	if c.TrailingLines < 0 {
		return Errorf(EINVALID, "trailing lines must not be negative")
	}
	if c.MinLines < 0 {
		return Errorf(EINVALID, "minimum lines must not be negative")
	}
	return nil
}

// Rules returns the ordered rule list of profile.
func Rules(profile Profile, cfg StripConfig) ([]Rule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch profile {
	case ProfileDefault, "":
		return []Rule{
			RemoveFrom("more-from", moreFromHeadingRe),
			RemoveBlocks("header"),
			RemoveBlocks("nav"),
			RemoveThroughLine(ShareMarker),
			TruncateAtLastLine(cfg.ImageHost),
			TrimTrailingLines(cfg.TrailingLines, cfg.MinLines),
			RemoveFrom("written-by", writtenByHeadingRe),
			RemoveFromLine(SupportAuthorsMarker),
			TruncateBeforeLastLine(cfg.Divider, cfg.DividerBacktrack),
		}, nil
	case ProfileRendered:
		return []Rule{
			RemoveFrom("more-from", moreFromHeadingRe),
			RemoveThroughLine(ShareMarker),
			RemoveFrom("written-by", writtenByHeadingRe),
			TruncateBeforeLastLine(cfg.Divider, cfg.DividerBacktrack),
			RemoveFromLine(SupportAuthorsMarker),
		}, nil
	case ProfileStatic:
		return []Rule{
			RemoveFrom("more-from", moreFromRe),
			RemoveFrom("recommended", recommendedRe),
			RemoveBlocks("header"),
			RemoveBlocks("nav"),
			RemoveThroughLine(ShareMarker),
			TruncateAtLastLine(cfg.ImageHost),
			TrimTrailingLines(cfg.TrailingLines, cfg.MinLines),
		}, nil
	}
	return nil, Errorf(EINVALID, "unknown profile %q", profile)
}

// NewStripper returns a Stripper for profile that prepends the canonical
// heading.
func NewStripper(profile Profile, cfg StripConfig) (*Stripper, error) {
	rules, err := Rules(profile, cfg)
	if err != nil {
		return nil, err
	}
	return &Stripper{Rules: rules, Heading: true}, nil
}
