package grading

import "gitlab.com/thinkfirst.net/internal/domain"

// Signature describes what a submission does on its own
type Signature struct {
	// FunctionName is empty when no candidate entry function was found
	FunctionName string
	HasInput     bool
	HasOutput    bool
}

// Detect inspects code with lightweight pattern matching. It never parses the program,
// so matches inside comments or string literals count as well.
func Detect(code string, lang domain.Language) Signature {
	rules, ok := rulesFor(lang)
	if !ok {
		return Signature{}
	}
	return Signature{
		FunctionName: rules.functionName(code),
		HasInput:     rules.inputIdioms.MatchString(code),
		HasOutput:    rules.outputIdioms.MatchString(code),
	}
}

func (s languageRules) functionName(code string) string {
	for _, pattern := range s.namePatterns {
		match := pattern.FindStringSubmatch(code)
		if match == nil {
			continue
		}
		if s.excludedName != "" && match[1] == s.excludedName {
			return ""
		}
		return match[1]
	}
	return ""
}
