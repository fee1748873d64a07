package grading

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	spaceAfterOpen   = regexp.MustCompile(`\[\s+`)
	spaceBeforeClose = regexp.MustCompile(`\s+\]`)
	spaceAfterComma  = regexp.MustCompile(`,\s+`)
	spaceBeforeComma = regexp.MustCompile(`\s+,`)
)

// NormalizeOutput canonicalizes program output so that incidental whitespace,
// including newlines and padding inside list-like values, does not affect grading.
// Element order, numeric formatting and case are left untouched.
func NormalizeOutput(text string) string {
	out := strings.TrimSpace(text)
	out = whitespaceRun.ReplaceAllString(out, " ")
	out = spaceAfterOpen.ReplaceAllString(out, "[")
	out = spaceBeforeClose.ReplaceAllString(out, "]")
	out = spaceAfterComma.ReplaceAllString(out, ",")
	out = spaceBeforeComma.ReplaceAllString(out, ",")
	return out
}

// CompareOutput is the grading comparator
func CompareOutput(expected, actual string) bool {
	return NormalizeOutput(expected) == NormalizeOutput(actual)
}
