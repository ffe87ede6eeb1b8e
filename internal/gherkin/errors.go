package gherkin

import "fmt"

// SyntaxError reports malformed grammar: a missing or mis-ordered keyword,
// a ragged table, an unterminated doc string.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
}

// StructureError reports a semantic invariant violation: an outline without
// Examples, a placeholder with no matching column, duplicate columns.
type StructureError struct {
	Line    int
	Message string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure error at line %d: %s", e.Line, e.Message)
}

// Violation is a non-fatal finding collected by Validate.
type Violation struct {
	Kind     string // e.g. "empty-scenario", "duplicate-tag", "unused-column"
	Scenario string // name of the enclosing definition, empty for feature-level
	Line     int
	Message  string
}

func (v Violation) String() string {
	if v.Scenario == "" {
		return fmt.Sprintf("line %d: %s: %s", v.Line, v.Kind, v.Message)
	}
	return fmt.Sprintf("line %d: %s: %s: %s", v.Line, v.Kind, v.Scenario, v.Message)
}

// Violation kinds reported by Validate.
const (
	KindEmptySteps      = "empty-steps"
	KindDuplicateTag    = "duplicate-tag"
	KindEmptyExamples   = "empty-examples"
	KindUnusedColumn    = "unused-column"
	KindUnknownToken    = "unknown-placeholder"
	KindBackgroundOrder = "background-keyword"
	KindNoDefinitions   = "no-definitions"
)
