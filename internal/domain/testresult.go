package domain

// ExecutionStatusAccepted is the engine status id for a run that finished cleanly
const ExecutionStatusAccepted = 3

// ExecutionResult is the outcome of running one program once on the engine
type ExecutionResult struct {
	Stdout            string
	Stderr            string
	CompileOutput     string
	Message           string
	StatusID          int
	StatusDescription string
	// Time is the raw engine value in seconds, empty when the engine reported none
	Time string
	// MemoryKB is nil when the engine reported none
	MemoryKB *int64
}

// Accepted reports whether the engine ran the program to completion
func (r *ExecutionResult) Accepted() bool {
	return r.StatusID == ExecutionStatusAccepted
}

// TestCaseResult is the grade of a single test case
type TestCaseResult struct {
	Pass          bool    `json:"pass"`
	Expected      string  `json:"expected"`
	Output        string  `json:"output"`
	Status        string  `json:"status"`
	Explanation   string  `json:"explanation"`
	Stderr        string  `json:"stderr,omitempty"`
	CompileOutput string  `json:"compile_output,omitempty"`
	Time          *string `json:"time,omitempty"`
	Memory        *int64  `json:"memory,omitempty"`
}

// SubmissionReport aggregates the grades of every test case of a submission
type SubmissionReport struct {
	Results          []TestCaseResult
	TotalTimeSeconds float64
	PeakMemoryKB     int64
}

// AllPassed reports whether every test case passed
func (r *SubmissionReport) AllPassed() bool {
	for _, res := range r.Results {
		if !res.Pass {
			return false
		}
	}
	return true
}
