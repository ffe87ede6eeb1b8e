package gherkin

import "fmt"

// Validate checks structural invariants and accumulates every finding
// instead of failing fast. A well-formed feature yields an empty slice.
// Parse already rejects fatal problems; Validate re-checks invariants
// that matter for trees built or modified programmatically, plus
// non-fatal lint findings.
func Validate(f *Feature) []Violation {
	var violations []Violation

	if len(f.Definitions) == 0 {
		violations = append(violations, Violation{
			Kind:    KindNoDefinitions,
			Line:    f.Line,
			Message: "feature has no scenarios",
		})
	}

	if f.Background != nil {
		if len(f.Background.Steps) == 0 {
			violations = append(violations, Violation{
				Kind:    KindEmptySteps,
				Line:    f.Background.Line,
				Message: "Background has no steps",
			})
		}
		for _, st := range f.Background.Steps {
			if st.Keyword == "When" || st.Keyword == "Then" {
				violations = append(violations, Violation{
					Kind:    KindBackgroundOrder,
					Line:    st.Line,
					Message: fmt.Sprintf("Background steps should be Given preconditions, found %s", st.Keyword),
				})
			}
		}
	}

	violations = append(violations, duplicateTags(f.Tags, "", f.Line)...)

	for _, def := range f.Definitions {
		name := def.Name()
		violations = append(violations, duplicateTags(def.DefTags(), name, def.DefLine())...)

		if def.Scenario != nil {
			if len(def.Scenario.Steps) == 0 {
				violations = append(violations, Violation{
					Kind:     KindEmptySteps,
					Scenario: name,
					Line:     def.Scenario.Line,
					Message:  "scenario has no steps",
				})
			}
			continue
		}

		o := def.Outline
		if len(o.Steps) == 0 {
			violations = append(violations, Violation{
				Kind:     KindEmptySteps,
				Scenario: name,
				Line:     o.Line,
				Message:  "scenario outline has no steps",
			})
		}
		if len(o.Examples.Rows) == 0 {
			violations = append(violations, Violation{
				Kind:     KindEmptyExamples,
				Scenario: name,
				Line:     o.Line,
				Message:  "Examples table has no rows",
			})
		}

		used := make(map[string]bool)
		cols := make(map[string]bool, len(o.Examples.Columns))
		for _, c := range o.Examples.Columns {
			cols[c] = true
		}
		for _, st := range o.Steps {
			for _, token := range stepPlaceholders(st) {
				used[token] = true
				if !cols[token] {
					violations = append(violations, Violation{
						Kind:     KindUnknownToken,
						Scenario: name,
						Line:     st.Line,
						Message:  fmt.Sprintf("placeholder <%s> has no matching Examples column", token),
					})
				}
			}
		}
		for _, c := range o.Examples.Columns {
			if !used[c] {
				violations = append(violations, Violation{
					Kind:     KindUnusedColumn,
					Scenario: name,
					Line:     o.Examples.Line,
					Message:  fmt.Sprintf("Examples column %q is never referenced", c),
				})
			}
		}
	}

	return violations
}

func duplicateTags(tags []Tag, scenario string, line int) []Violation {
	var violations []Violation
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t.Name] {
			violations = append(violations, Violation{
				Kind:     KindDuplicateTag,
				Scenario: scenario,
				Line:     line,
				Message:  fmt.Sprintf("tag %s appears more than once", t.Name),
			})
		}
		seen[t.Name] = true
	}
	return violations
}
