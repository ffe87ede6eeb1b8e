package gherkin

import "strings"

// Expand produces one concrete Scenario per Examples row, in row order.
// Every <token> in the outline's name, step phrases, table cells, and doc
// strings is replaced literally with the row's value for that column.
// Parse guarantees step placeholders are covered, so expanded steps carry
// no unresolved tokens.
func Expand(o *Outline) []Scenario {
	scenarios := make([]Scenario, 0, len(o.Examples.Rows))
	for i := range o.Examples.Rows {
		row := o.Examples.RowMap(i)
		s := Scenario{
			Name: substitute(o.Name, row),
			Tags: o.Tags,
			Line: o.Line,
		}
		for _, st := range o.Steps {
			s.Steps = append(s.Steps, expandStep(st, row))
		}
		scenarios = append(scenarios, s)
	}
	return scenarios
}

func expandStep(st Step, row map[string]string) Step {
	out := Step{Keyword: st.Keyword, Text: substitute(st.Text, row), Line: st.Line}
	if st.Table != nil {
		tbl := &DataTable{Rows: make([][]string, len(st.Table.Rows))}
		for i, r := range st.Table.Rows {
			cells := make([]string, len(r))
			for j, cell := range r {
				cells[j] = substitute(cell, row)
			}
			tbl.Rows[i] = cells
		}
		out.Table = tbl
	}
	if st.DocString != nil {
		out.DocString = &DocString{
			MediaType: st.DocString.MediaType,
			Content:   substitute(st.DocString.Content, row),
			Line:      st.DocString.Line,
		}
	}
	return out
}

// substitute replaces each <token> whose token names a column in row.
// Unknown tokens are left literal; values are never coerced.
func substitute(s string, row map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		token := strings.Trim(m, "<>")
		if v, ok := row[token]; ok {
			return v
		}
		return m
	})
}
