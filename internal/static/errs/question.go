package errs

import "errors"

var (
	QuestionNotFound     = errors.New("question not found")
	TitleRequired        = errors.New("title and description are required")
	UnknownQuestionField = errors.New("unknown question field")
	InvalidQuestionField = errors.New("invalid question field")
	EmptyQuestionUpdate  = errors.New("no fields to update")
)

var (
	ProblemRequired = errors.New("problem description is required")
	PlanRequired    = errors.New("plan is required")
	CodeRequired    = errors.New("code is required")
	ErrorRequired   = errors.New("error description is required")
)
