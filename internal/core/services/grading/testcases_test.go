package grading_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/thinkfirst.net/internal/core/services/grading"
	"gitlab.com/thinkfirst.net/internal/domain"
)

func decodeSnapshot(t *testing.T, raw string) domain.QuestionSnapshot {
	t.Helper()
	var snapshot domain.QuestionSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snapshot))
	return snapshot
}

func TestCollectTestCasesFromSamples(t *testing.T) {
	question := decodeSnapshot(t, `{
		"sample_input1": "nums = [2,7,11,15] target = 9",
		"sample_output1": "[0,1]",
		"sample_input2": "[3,3]",
		"sample_output2": null,
		"sample_input3": "",
		"sample_output3": ""
	}`)

	cases := grading.CollectTestCases(question)

	require.Len(t, cases, 2)
	assert.Equal(t, domain.TestCase{Input: "nums = [2,7,11,15]\ntarget = 9", ExpectedOutput: "[0,1]"}, cases[0])
	assert.Equal(t, domain.TestCase{Input: "", ExpectedOutput: ""}, cases[1])
}

func TestCollectTestCasesPrefersExplicitList(t *testing.T) {
	question := decodeSnapshot(t, `{
		"sample_input1": "ignored",
		"sample_output1": "ignored",
		"testCases": [
			{"input": "\"abc\"", "output": "\"cba\""},
			{"sampleInput": "[1,2]", "expectedOutput": "3"},
			{"input": "", "sample_input1": "7", "output": 0, "sampleOutput": "49"},
			"not an object",
			{"input": 5, "output": 25}
		]
	}`)

	cases := grading.CollectTestCases(question)

	assert.Equal(t, []domain.TestCase{
		{Input: "abc", ExpectedOutput: "cba"},
		{Input: "[1,2]", ExpectedOutput: "3"},
		{Input: "7", ExpectedOutput: "49"},
		{Input: "5", ExpectedOutput: "25"},
	}, cases)
}

func TestCollectTestCasesFallsBackToOneEmptyCase(t *testing.T) {
	empty := []domain.TestCase{{Input: "", ExpectedOutput: ""}}

	assert.Equal(t, empty, grading.CollectTestCases(nil))
	assert.Equal(t, empty, grading.CollectTestCases(domain.QuestionSnapshot{"title": "no samples"}))
	assert.Equal(t, empty, grading.CollectTestCases(domain.QuestionSnapshot{"testCases": []interface{}{}}))
}

func TestCollectTestCasesEncodesCompositeValues(t *testing.T) {
	question := decodeSnapshot(t, `{"testCases": [{"input": [2,7,11,15], "output": [0,1]}]}`)

	cases := grading.CollectTestCases(question)

	require.Len(t, cases, 1)
	assert.Equal(t, "[2,7,11,15]", cases[0].Input)
	assert.Equal(t, "[0,1]", cases[0].ExpectedOutput)
}
