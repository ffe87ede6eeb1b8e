package gherkin

// FilterByTag returns the concrete scenarios of f whose tags satisfy the
// expression, in declaration order. Outlines are pre-expanded; a scenario
// matches against the union of feature-level and definition-level tags.
// An empty expression matches everything.
func FilterByTag(f *Feature, expression string) ([]Scenario, error) {
	var expr TagExpression
	if expression != "" {
		var err error
		expr, err = ParseTagExpression(expression)
		if err != nil {
			return nil, err
		}
	}

	var out []Scenario
	for _, def := range f.Definitions {
		tags := EffectiveTags(f.Tags, def.DefTags())
		if expr != nil && !expr.Match(tags) {
			continue
		}
		if def.Scenario != nil {
			out = append(out, *def.Scenario)
			continue
		}
		out = append(out, Expand(def.Outline)...)
	}
	return out, nil
}

// EffectiveTags returns the deduplicated union of feature-level and
// definition-level tags, feature tags first.
func EffectiveTags(featureTags, defTags []Tag) []Tag {
	tags := make([]Tag, 0, len(featureTags)+len(defTags))
	seen := make(map[string]bool, cap(tags))
	for _, t := range featureTags {
		if !seen[t.Name] {
			seen[t.Name] = true
			tags = append(tags, t)
		}
	}
	for _, t := range defTags {
		if !seen[t.Name] {
			seen[t.Name] = true
			tags = append(tags, t)
		}
	}
	return tags
}
