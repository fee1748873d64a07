package domain

// Submission represents student code to be graded against a question
type Submission struct {
	Code       string
	Language   string
	QuestionID string
	Question   QuestionSnapshot
}

// NewSubmission creates a new submission
func NewSubmission(code, language string, question QuestionSnapshot) *Submission {
	return &Submission{
		Code:     code,
		Language: language,
		Question: question,
	}
}
