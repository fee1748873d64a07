package errs

import "errors"

// Client input errors, returned before any code runs
var (
	CodeAndLanguageRequired = errors.New("code and language are required")
	UnsupportedLanguage     = errors.New("unsupported language")
)

// EngineUnavailable means the execution engine could not be reached at all
var EngineUnavailable = errors.New("execution engine unavailable")

// EngineError covers every other failed round trip to the execution engine
var EngineError = errors.New("execution engine error")
