package querybuilder

import (
	"fmt"
	"strings"
)

// CondType joins a condition to the one before it
type CondType int

const (
	CondTypeAnd CondType = iota + 1
	CondTypeOr
)

func (c CondType) String() string {
	switch c {
	case CondTypeAnd:
		return "AND"
	case CondTypeOr:
		return "OR"
	default:
		return ""
	}
}

// Condition is either a single clause with its args or a parenthesised group
type Condition struct {
	condType CondType
	clause   string
	args     []interface{}
	group    []Condition
	grouped  bool
}

func clauseCond(condType CondType, clause string, args []interface{}) Condition {
	return Condition{condType: condType, clause: clause, args: args}
}

func groupCond(condType CondType, group []Condition) Condition {
	return Condition{condType: condType, group: group, grouped: true}
}

// renderConditions joins conditions in order. Empty groups are dropped and the
// join word of the first rendered condition is omitted.
func renderConditions(conditions []Condition) (string, []interface{}) {
	parts := make([]string, 0, len(conditions)*2)
	var args []interface{}

	for _, cond := range conditions {
		if cond.grouped && len(cond.group) == 0 {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, cond.condType.String())
		}
		if cond.grouped {
			clause, groupArgs := renderConditions(cond.group)
			parts = append(parts, fmt.Sprintf("(%s)", clause))
			args = append(args, groupArgs...)
			continue
		}
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}

	return strings.Join(parts, " "), args
}
