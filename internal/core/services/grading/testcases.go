package grading

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/thinkfirst.net/internal/domain"
)

const sampleSlots = 3

var (
	inputAliases  = []string{"input", "sample_input1", "sampleInput"}
	outputAliases = []string{"output", "expectedOutput", "sample_output1", "sampleOutput"}
)

// CollectTestCases derives the test cases of a question.
// An explicit "testCases" array wins over the sample_input/sample_output pairs.
// When neither yields anything a single empty case is returned so code is still run once.
func CollectTestCases(question domain.QuestionSnapshot) []domain.TestCase {
	var cases []domain.TestCase
	if question != nil {
		if raw, ok := question["testCases"].([]interface{}); ok {
			cases = explicitCases(raw)
		} else {
			cases = sampleCases(question)
		}
	}
	if len(cases) == 0 {
		cases = []domain.TestCase{{Input: "", ExpectedOutput: ""}}
	}
	return cases
}

func explicitCases(raw []interface{}) []domain.TestCase {
	cases := make([]domain.TestCase, 0, len(raw))
	for _, item := range raw {
		tc, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		cases = append(cases, domain.TestCase{
			Input:          NormalizeInput(stripQuotes(firstTruthy(tc, inputAliases))),
			ExpectedOutput: stripQuotes(firstTruthy(tc, outputAliases)),
		})
	}
	return cases
}

func sampleCases(question domain.QuestionSnapshot) []domain.TestCase {
	var cases []domain.TestCase
	for i := 1; i <= sampleSlots; i++ {
		input, hasInput := question[fmt.Sprintf("sample_input%d", i)]
		output, hasOutput := question[fmt.Sprintf("sample_output%d", i)]
		if !hasInput || !hasOutput || input == nil || output == nil {
			continue
		}
		cases = append(cases, domain.TestCase{
			Input:          NormalizeInput(stringify(input)),
			ExpectedOutput: stringify(output),
		})
	}
	return cases
}

// firstTruthy returns the first alias holding a non-empty, non-zero, non-false value
func firstTruthy(tc map[string]interface{}, aliases []string) string {
	for _, key := range aliases {
		if value, ok := tc[key]; ok && truthy(value) {
			return stringify(value)
		}
	}
	return ""
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// stringify renders a decoded JSON value as text. Composite values are re-encoded as JSON.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}

// stripQuotes removes one pair of surrounding double quotes
func stripQuotes(s string) string {
	if !strings.HasPrefix(s, `"`) || !strings.HasSuffix(s, `"`) {
		return s
	}
	if len(s) < 2 {
		return ""
	}
	return s[1 : len(s)-1]
}
