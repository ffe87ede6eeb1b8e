package gherkin

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	tagPattern         = regexp.MustCompile(`@[^@\s]+`)
	placeholderPattern = regexp.MustCompile(`<([^<>]+)>`)
)

var stepKeywords = []string{"Given", "When", "Then", "And", "But"}

type parseMode int

const (
	modeNone parseMode = iota
	modeBackground
	modeScenario
	modeOutline
)

// Parse parses feature text into a Feature. It fails fast: the first
// *SyntaxError or *StructureError aborts the parse and no partial
// document is returned.
func Parse(filename string, content []byte) (*Feature, error) {
	lines := strings.Split(string(content), "\n")
	i := 0

	// Skip leading blanks and comments
	for i < len(lines) {
		t := strings.TrimSpace(lines[i])
		if t == "" || strings.HasPrefix(t, "#") {
			i++
			continue
		}
		break
	}

	// Feature-level tags
	var featureTags []Tag
	for i < len(lines) {
		t := strings.TrimSpace(lines[i])
		if isTagLine(t) {
			featureTags = append(featureTags, parseTags(t)...)
			i++
			continue
		}
		if t == "" || strings.HasPrefix(t, "#") {
			i++
			continue
		}
		break
	}

	if i >= len(lines) {
		return nil, &SyntaxError{Line: len(lines), Message: "missing Feature: line"}
	}
	if t := strings.TrimSpace(lines[i]); !strings.HasPrefix(t, "Feature:") {
		return nil, &SyntaxError{Line: i + 1, Message: fmt.Sprintf("expected Feature: line, found %q", t)}
	}

	feature := &Feature{
		Tags: featureTags,
		Name: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i]), "Feature:")),
		Line: i + 1,
	}
	i++

	// Narrative: free text until the first keyword, tag, or step line
	var narrative []string
	for i < len(lines) {
		t := strings.TrimSpace(lines[i])
		if isKeyword(t) || isTagLine(t) {
			break
		}
		if isStepLine(t) {
			return nil, &SyntaxError{Line: i + 1, Message: "step outside of a scenario"}
		}
		if strings.HasPrefix(t, "#") {
			i++
			continue
		}
		narrative = append(narrative, t)
		i++
	}
	for len(narrative) > 0 && narrative[0] == "" {
		narrative = narrative[1:]
	}
	for len(narrative) > 0 && narrative[len(narrative)-1] == "" {
		narrative = narrative[:len(narrative)-1]
	}
	feature.Narrative = strings.Join(narrative, "\n")

	p := &parser{lines: lines, feature: feature}
	if err := p.body(i); err != nil {
		return nil, err
	}
	return feature, nil
}

type parser struct {
	lines   []string
	feature *Feature

	mode        parseMode
	background  *Background
	scenario    *Scenario
	outline     *Outline
	lastStep    *Step
	inExamples  bool
	pendingTags []Tag
}

func (p *parser) body(i int) error {
	for i < len(p.lines) {
		raw := p.lines[i]
		t := strings.TrimSpace(raw)

		switch {
		case t == "":
			i++

		case strings.HasPrefix(t, "#"):
			i++

		case isDocStringDelimiter(t):
			if p.lastStep == nil {
				return &SyntaxError{Line: i + 1, Message: "doc string without a preceding step"}
			}
			ds, next, err := parseDocString(p.lines, i)
			if err != nil {
				return err
			}
			p.lastStep.DocString = ds
			i = next

		case isTagLine(t):
			p.pendingTags = append(p.pendingTags, parseTags(t)...)
			i++

		case strings.HasPrefix(t, "Feature:"):
			return &SyntaxError{Line: i + 1, Message: "duplicate Feature: line"}

		case strings.HasPrefix(t, "Rule:"):
			return &SyntaxError{Line: i + 1, Message: "Rule: is not supported"}

		case strings.HasPrefix(t, "Background:"):
			if len(p.pendingTags) > 0 {
				return &SyntaxError{Line: i + 1, Message: "tags are not allowed on Background"}
			}
			if p.feature.Background != nil {
				return &SyntaxError{Line: i + 1, Message: "duplicate Background"}
			}
			if len(p.feature.Definitions) > 0 {
				return &SyntaxError{Line: i + 1, Message: "Background must precede all scenarios"}
			}
			if err := p.closeDefinition(); err != nil {
				return err
			}
			p.background = &Background{Line: i + 1}
			p.feature.Background = p.background
			p.mode = modeBackground
			i++

		case strings.HasPrefix(t, "Scenario Outline:"):
			if err := p.closeDefinition(); err != nil {
				return err
			}
			p.outline = &Outline{
				Name: strings.TrimSpace(strings.TrimPrefix(t, "Scenario Outline:")),
				Tags: p.pendingTags,
				Line: i + 1,
			}
			p.pendingTags = nil
			p.feature.Definitions = append(p.feature.Definitions, ScenarioDefinition{Outline: p.outline})
			p.mode = modeOutline
			i++

		case strings.HasPrefix(t, "Scenario:"):
			if err := p.closeDefinition(); err != nil {
				return err
			}
			p.scenario = &Scenario{
				Name: strings.TrimSpace(strings.TrimPrefix(t, "Scenario:")),
				Tags: p.pendingTags,
				Line: i + 1,
			}
			p.pendingTags = nil
			p.feature.Definitions = append(p.feature.Definitions, ScenarioDefinition{Scenario: p.scenario})
			p.mode = modeScenario
			i++

		case strings.HasPrefix(t, "Examples:"):
			if p.mode != modeOutline {
				return &StructureError{Line: i + 1, Message: "Examples outside of a Scenario Outline"}
			}
			if len(p.pendingTags) > 0 {
				return &SyntaxError{Line: i + 1, Message: "tags are not allowed on Examples"}
			}
			if p.outline.Examples.Columns != nil {
				return &SyntaxError{Line: i + 1, Message: "duplicate Examples section"}
			}
			p.outline.Examples.Line = i + 1
			p.inExamples = true
			p.lastStep = nil
			i++

		case strings.HasPrefix(t, "|"):
			if err := p.tableRow(t, i); err != nil {
				return err
			}
			i++

		case isStepLine(t):
			if len(p.pendingTags) > 0 {
				return &SyntaxError{Line: i + 1, Message: "tags may only precede Scenario or Scenario Outline"}
			}
			if err := p.step(t, i); err != nil {
				return err
			}
			i++

		default:
			// Free text inside a block (e.g. a description) is ignored.
			i++
		}
	}

	if len(p.pendingTags) > 0 {
		return &SyntaxError{Line: len(p.lines), Message: "tags at end of file attach to nothing"}
	}
	return p.closeDefinition()
}

func (p *parser) step(t string, i int) error {
	kw, text := splitStep(t)
	st := Step{Keyword: kw, Text: text, Line: i + 1}
	switch p.mode {
	case modeBackground:
		p.background.Steps = append(p.background.Steps, st)
		p.lastStep = &p.background.Steps[len(p.background.Steps)-1]
	case modeScenario:
		p.scenario.Steps = append(p.scenario.Steps, st)
		p.lastStep = &p.scenario.Steps[len(p.scenario.Steps)-1]
	case modeOutline:
		p.outline.Steps = append(p.outline.Steps, st)
		p.lastStep = &p.outline.Steps[len(p.outline.Steps)-1]
		p.inExamples = false
	default:
		return &SyntaxError{Line: i + 1, Message: "step outside of a scenario"}
	}
	return nil
}

func (p *parser) tableRow(t string, i int) error {
	cells := splitTableRow(t)

	if p.inExamples {
		ex := &p.outline.Examples
		if ex.Columns == nil {
			seen := make(map[string]bool, len(cells))
			for _, col := range cells {
				if seen[col] {
					return &StructureError{Line: i + 1, Message: fmt.Sprintf("duplicate Examples column %q", col)}
				}
				seen[col] = true
			}
			ex.Columns = cells
			return nil
		}
		if len(cells) != len(ex.Columns) {
			return &SyntaxError{Line: i + 1, Message: fmt.Sprintf("examples row has %d cells, header has %d", len(cells), len(ex.Columns))}
		}
		ex.Rows = append(ex.Rows, cells)
		return nil
	}

	if p.lastStep == nil {
		return &SyntaxError{Line: i + 1, Message: "table row without a preceding step"}
	}
	if p.lastStep.Table == nil {
		p.lastStep.Table = &DataTable{}
	}
	tbl := p.lastStep.Table
	if len(tbl.Rows) > 0 && len(cells) != len(tbl.Rows[0]) {
		return &SyntaxError{Line: i + 1, Message: fmt.Sprintf("table row has %d cells, expected %d", len(cells), len(tbl.Rows[0]))}
	}
	tbl.Rows = append(tbl.Rows, cells)
	return nil
}

// closeDefinition runs end-of-definition checks before a new block starts
// or at EOF. Only outlines carry checks: the Examples section must exist
// and cover every placeholder used in the steps.
func (p *parser) closeDefinition() error {
	if p.mode == modeOutline {
		if p.outline.Examples.Columns == nil {
			return &StructureError{Line: p.outline.Line, Message: fmt.Sprintf("Scenario Outline %q has no Examples section", p.outline.Name)}
		}
		cols := make(map[string]bool, len(p.outline.Examples.Columns))
		for _, c := range p.outline.Examples.Columns {
			cols[c] = true
		}
		for _, st := range p.outline.Steps {
			for _, token := range stepPlaceholders(st) {
				if !cols[token] {
					return &StructureError{Line: st.Line, Message: fmt.Sprintf("placeholder <%s> has no matching Examples column", token)}
				}
			}
		}
	}
	p.mode = modeNone
	p.background = nil
	p.scenario = nil
	p.outline = nil
	p.lastStep = nil
	p.inExamples = false
	return nil
}

// stepPlaceholders returns every <token> referenced by a step, including
// tokens inside its data table and doc string.
func stepPlaceholders(st Step) []string {
	var tokens []string
	collect := func(s string) {
		for _, m := range placeholderPattern.FindAllStringSubmatch(s, -1) {
			tokens = append(tokens, m[1])
		}
	}
	collect(st.Text)
	if st.Table != nil {
		for _, row := range st.Table.Rows {
			for _, cell := range row {
				collect(cell)
			}
		}
	}
	if st.DocString != nil {
		collect(st.DocString.Content)
	}
	return tokens
}

func parseTags(line string) []Tag {
	matches := tagPattern.FindAllString(line, -1)
	var tags []Tag
	for _, m := range matches {
		tags = append(tags, Tag{Name: m})
	}
	return tags
}

func isTagLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "@")
}

func isKeyword(trimmed string) bool {
	return strings.HasPrefix(trimmed, "Feature:") ||
		strings.HasPrefix(trimmed, "Background:") ||
		strings.HasPrefix(trimmed, "Scenario:") ||
		strings.HasPrefix(trimmed, "Scenario Outline:") ||
		strings.HasPrefix(trimmed, "Rule:") ||
		strings.HasPrefix(trimmed, "Examples:")
}

func isStepLine(trimmed string) bool {
	for _, kw := range stepKeywords {
		if strings.HasPrefix(trimmed, kw+" ") {
			return true
		}
	}
	return false
}

func splitStep(trimmed string) (keyword, text string) {
	for _, kw := range stepKeywords {
		if strings.HasPrefix(trimmed, kw+" ") {
			return kw, strings.TrimSpace(trimmed[len(kw):])
		}
	}
	return "", trimmed
}

func isDocStringDelimiter(trimmed string) bool {
	return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "```")
}

// parseDocString consumes a doc string block. i points at the opening
// delimiter. Returns the index of the line after the closing delimiter.
func parseDocString(lines []string, i int) (*DocString, int, error) {
	raw := lines[i]
	opener := strings.TrimSpace(raw)
	delimiter := `"""`
	if strings.HasPrefix(opener, "```") {
		delimiter = "```"
	}
	indent := raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]

	ds := &DocString{
		MediaType: strings.TrimSpace(opener[len(delimiter):]),
		Line:      i + 1,
	}

	var body []string
	for j := i + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == delimiter {
			ds.Content = strings.Join(body, "\n")
			return ds, j + 1, nil
		}
		body = append(body, strings.TrimPrefix(lines[j], indent))
	}
	return nil, 0, &SyntaxError{Line: i + 1, Message: "unterminated doc string"}
}

// splitTableRow splits a pipe-delimited row into trimmed cells.
func splitTableRow(trimmed string) []string {
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
