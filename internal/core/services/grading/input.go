package grading

import (
	"regexp"
	"strings"
)

var (
	// "[1,2] target" -> "[1,2]\ntarget"
	listThenIdentifier = regexp.MustCompile(`\]\s+([a-zA-Z_])`)
	// "9 nums = ..." -> "9\nnums = ..."
	valueThenAssignment = regexp.MustCompile(`(\d)\s+([a-zA-Z_]\w*\s*=)`)
)

// NormalizeInput moves values written on one line onto separate lines.
// It is a heuristic, not a parser: only a list literal followed by an identifier
// and a number followed by "name =" are split.
func NormalizeInput(raw string) string {
	str := strings.TrimSpace(raw)
	if str == "" {
		return ""
	}
	str = listThenIdentifier.ReplaceAllString(str, "]\n${1}")
	str = valueThenAssignment.ReplaceAllString(str, "${1}\n${2}")
	return str
}
