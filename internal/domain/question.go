package domain

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	DefaultDifficulty = "Easy"
	DefaultCategory   = "DSA"
)

// Question is a practice problem authored by an admin
type Question struct {
	ID             string    `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	InputFormat    *string   `db:"input_format" json:"input_format"`
	OutputFormat   *string   `db:"output_format" json:"output_format"`
	Constraints    *string   `db:"constraints" json:"constraints"`
	Difficulty     string    `db:"difficulty" json:"difficulty"`
	Category       string    `db:"category" json:"category"`
	IsPublic       bool      `db:"is_public" json:"is_public"`
	SampleInput1   *string   `db:"sample_input1" json:"sample_input1"`
	SampleOutput1  *string   `db:"sample_output1" json:"sample_output1"`
	SampleInput2   *string   `db:"sample_input2" json:"sample_input2"`
	SampleOutput2  *string   `db:"sample_output2" json:"sample_output2"`
	SampleInput3   *string   `db:"sample_input3" json:"sample_input3"`
	SampleOutput3  *string   `db:"sample_output3" json:"sample_output3"`
	SchemaSQL      *string   `db:"schema_sql" json:"schema_sql"`
	SampleData     *string   `db:"sample_data" json:"sample_data"`
	CreatedByAdmin string    `db:"created_by_admin" json:"created_by_admin"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type QuestionTable struct {
	ID             string
	Title          string
	Description    string
	InputFormat    string
	OutputFormat   string
	Constraints    string
	Difficulty     string
	Category       string
	IsPublic       string
	SampleInput1   string
	SampleOutput1  string
	SampleInput2   string
	SampleOutput2  string
	SampleInput3   string
	SampleOutput3  string
	SchemaSQL      string
	SampleData     string
	CreatedByAdmin string
	CreatedAt      string
}

func GetQuestionTable() QuestionTable {
	return QuestionTable{
		ID:             "id",
		Title:          "title",
		Description:    "description",
		InputFormat:    "input_format",
		OutputFormat:   "output_format",
		Constraints:    "constraints",
		Difficulty:     "difficulty",
		Category:       "category",
		IsPublic:       "is_public",
		SampleInput1:   "sample_input1",
		SampleOutput1:  "sample_output1",
		SampleInput2:   "sample_input2",
		SampleOutput2:  "sample_output2",
		SampleInput3:   "sample_input3",
		SampleOutput3:  "sample_output3",
		SchemaSQL:      "schema_sql",
		SampleData:     "sample_data",
		CreatedByAdmin: "created_by_admin",
		CreatedAt:      "created_at",
	}
}

func (QuestionTable) TableName() string {
	return "questions"
}

// Columns returns every column in insert order
func (t QuestionTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.InputFormat, t.OutputFormat, t.Constraints,
		t.Difficulty, t.Category, t.IsPublic,
		t.SampleInput1, t.SampleOutput1, t.SampleInput2, t.SampleOutput2, t.SampleInput3, t.SampleOutput3,
		t.SchemaSQL, t.SampleData, t.CreatedByAdmin, t.CreatedAt,
	}
}

// UpdatableColumns are the columns an admin may change after creation
func (t QuestionTable) UpdatableColumns() mapset.Set[string] {
	return mapset.NewSet(
		t.Title, t.Description, t.InputFormat, t.OutputFormat,
		t.Constraints, t.Difficulty, t.Category, t.IsPublic,
		t.SampleInput1, t.SampleOutput1, t.SampleInput2, t.SampleOutput2,
		t.SampleInput3, t.SampleOutput3, t.SchemaSQL, t.SampleData,
	)
}

// QuestionSnapshot is the loosely typed question object a client submits along with code.
// Only the test-case related keys are read during grading.
type QuestionSnapshot map[string]interface{}

// Snapshot converts a stored question into the shape clients submit
func (q *Question) Snapshot() QuestionSnapshot {
	snapshot := QuestionSnapshot{
		"id":          q.ID,
		"title":       q.Title,
		"description": q.Description,
	}
	samples := []struct {
		key   string
		value *string
	}{
		{"sample_input1", q.SampleInput1}, {"sample_output1", q.SampleOutput1},
		{"sample_input2", q.SampleInput2}, {"sample_output2", q.SampleOutput2},
		{"sample_input3", q.SampleInput3}, {"sample_output3", q.SampleOutput3},
	}
	for _, s := range samples {
		if s.value != nil {
			snapshot[s.key] = *s.value
		}
	}
	return snapshot
}
