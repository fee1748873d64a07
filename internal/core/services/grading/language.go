package grading

import (
	"regexp"

	"gitlab.com/thinkfirst.net/internal/domain"
)

// languageRules holds everything the grader needs to know about one language.
type languageRules struct {
	// namePatterns are tried in order, the first one that matches wins
	namePatterns []*regexp.Regexp
	// excludedName is a name that means "no function" when it is the first match
	excludedName string
	inputIdioms  *regexp.Regexp
	outputIdioms *regexp.Regexp
	// scaffold appends or wraps a harness that calls funcName. It must return code unchanged
	// when the language cannot be scaffolded for this program.
	scaffold func(code, funcName string) string
}

var cFamilyFunction = regexp.MustCompile(`(?:int|void|string|bool|double|float|long|char|vector<[^>]+>)\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)

var languages = map[domain.Language]languageRules{
	domain.LanguagePython: {
		namePatterns: []*regexp.Regexp{
			regexp.MustCompile(`def\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`),
		},
		inputIdioms:  regexp.MustCompile(`\binput\s*\(|sys\.stdin|fileinput|open\s*\(|\.read\s*\(|\.readline`),
		outputIdioms: regexp.MustCompile(`\bprint\s*\(`),
		scaffold:     scaffoldPython,
	},
	domain.LanguageJavaScript: {
		namePatterns: []*regexp.Regexp{
			regexp.MustCompile(`function\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`),
			regexp.MustCompile(`(?:const|let|var)\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*=\s*(?:\(|function)`),
		},
		inputIdioms:  regexp.MustCompile(`require\s*\(\s*['"]fs['"]\s*\)|process\.stdin|readline|prompt\s*\(`),
		outputIdioms: regexp.MustCompile(`console\.log\s*\(`),
		scaffold:     scaffoldJavaScript,
	},
	domain.LanguageJava: {
		namePatterns: []*regexp.Regexp{
			regexp.MustCompile(`public\s+static\s+\w+\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`),
		},
		inputIdioms:  regexp.MustCompile(`Scanner|BufferedReader|System\.in`),
		outputIdioms: regexp.MustCompile(`System\.out\.print`),
		scaffold:     scaffoldJava,
	},
	domain.LanguageCpp: {
		namePatterns: []*regexp.Regexp{cFamilyFunction},
		excludedName: "main",
		inputIdioms:  regexp.MustCompile(`\bcin\b|\bscanf\b|\bgetline\b|\bfgets\b`),
		outputIdioms: regexp.MustCompile(`\bcout\b|\bprintf\b`),
		scaffold:     scaffoldCpp,
	},
	// C programs are never scaffolded, students are expected to write main themselves.
	domain.LanguageC: {
		namePatterns: []*regexp.Regexp{cFamilyFunction},
		excludedName: "main",
		inputIdioms:  regexp.MustCompile(`\bcin\b|\bscanf\b|\bgetline\b|\bfgets\b`),
		outputIdioms: regexp.MustCompile(`\bcout\b|\bprintf\b`),
		scaffold:     func(code, _ string) string { return code },
	},
}

func rulesFor(lang domain.Language) (languageRules, bool) {
	rules, ok := languages[lang]
	return rules, ok
}
