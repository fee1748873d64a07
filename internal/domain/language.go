package domain

import "strings"

// Language is a programming language accepted for submissions
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageJava       Language = "java"
	LanguageCpp        Language = "cpp"
	LanguageC          Language = "c"
)

// SupportedLanguages lists the accepted languages in display order
var SupportedLanguages = []Language{
	LanguagePython,
	LanguageJavaScript,
	LanguageJava,
	LanguageCpp,
	LanguageC,
}

// ParseLanguage matches name case-insensitively against SupportedLanguages
func ParseLanguage(name string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(name)))
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return lang, true
		}
	}
	return "", false
}

func (l Language) String() string {
	return string(l)
}
