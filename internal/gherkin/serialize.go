package gherkin

import "strings"

// Serialize renders a Feature in canonical form. The output parses back
// to a structurally identical Feature, and serializing is a fixed point:
// Serialize(Parse(Serialize(f))) == Serialize(f).
func Serialize(f *Feature) string {
	var b strings.Builder

	writeTags(&b, f.Tags, "")
	b.WriteString("Feature: " + f.Name + "\n")
	if f.Narrative != "" {
		for _, line := range strings.Split(f.Narrative, "\n") {
			if line == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString("  " + line + "\n")
		}
	}

	if f.Background != nil {
		b.WriteString("\n  Background:\n")
		writeSteps(&b, f.Background.Steps)
	}

	for _, def := range f.Definitions {
		b.WriteString("\n")
		if def.Scenario != nil {
			writeScenario(&b, *def.Scenario)
			continue
		}
		o := def.Outline
		writeTags(&b, o.Tags, "  ")
		b.WriteString("  Scenario Outline: " + o.Name + "\n")
		writeSteps(&b, o.Steps)
		b.WriteString("\n    Examples:\n")
		rows := make([][]string, 0, len(o.Examples.Rows)+1)
		rows = append(rows, o.Examples.Columns)
		rows = append(rows, o.Examples.Rows...)
		writeTable(&b, rows, "      ")
	}

	return b.String()
}

// SerializeBackground renders a background block.
func SerializeBackground(bg Background) string {
	var b strings.Builder
	b.WriteString("  Background:\n")
	writeSteps(&b, bg.Steps)
	return b.String()
}

// SerializeScenario renders one concrete scenario block.
func SerializeScenario(s Scenario) string {
	var b strings.Builder
	writeScenario(&b, s)
	return b.String()
}

func writeScenario(b *strings.Builder, s Scenario) {
	writeTags(b, s.Tags, "  ")
	b.WriteString("  Scenario: " + s.Name + "\n")
	writeSteps(b, s.Steps)
}

func writeTags(b *strings.Builder, tags []Tag, indent string) {
	if len(tags) == 0 {
		return
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	b.WriteString(indent + strings.Join(names, " ") + "\n")
}

func writeSteps(b *strings.Builder, steps []Step) {
	for _, st := range steps {
		b.WriteString("    " + st.Keyword + " " + st.Text + "\n")
		if st.Table != nil {
			writeTable(b, st.Table.Rows, "      ")
		}
		if st.DocString != nil {
			b.WriteString(`      """` + st.DocString.MediaType + "\n")
			if st.DocString.Content != "" {
				for _, line := range strings.Split(st.DocString.Content, "\n") {
					if line == "" {
						b.WriteString("\n")
						continue
					}
					b.WriteString("      " + line + "\n")
				}
			}
			b.WriteString("      \"\"\"\n")
		}
	}
}

func writeTable(b *strings.Builder, rows [][]string, indent string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for _, row := range rows {
		b.WriteString(indent + "|")
		for i, cell := range row {
			b.WriteString(" " + cell + strings.Repeat(" ", widths[i]-len(cell)) + " |")
		}
		b.WriteString("\n")
	}
}
