package judge0

// languageIDs maps our languages to Judge0 language ids
var languageIDs = map[string]int{
	"python":     71,
	"javascript": 63,
	"java":       62,
	"cpp":        54,
	"c":          50,
}

type submissionRequest struct {
	SourceCode   string  `json:"source_code"`
	LanguageID   int     `json:"language_id"`
	Stdin        string  `json:"stdin"`
	CPUTimeLimit float64 `json:"cpu_time_limit"`
	MemoryLimit  int     `json:"memory_limit"`
}

type submissionStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// submissionDetails is the synchronous (wait=true) response. Judge0 sends null for
// every output it did not produce.
type submissionDetails struct {
	Token         string           `json:"token"`
	Status        submissionStatus `json:"status"`
	Stdout        *string          `json:"stdout"`
	Stderr        *string          `json:"stderr"`
	CompileOutput *string          `json:"compile_output"`
	Message       *string          `json:"message"`
	Time          *string          `json:"time"`
	Memory        *int64           `json:"memory"`
}

type errorResponse struct {
	Error string `json:"error"`
}
