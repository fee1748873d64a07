package domain

// TestCase is an input / expected output pair used to grade a submission
type TestCase struct {
	Input          string
	ExpectedOutput string
}
