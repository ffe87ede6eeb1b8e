package gherkin

// Document model for a single .feature file. All types are immutable
// after Parse returns.

type Feature struct {
	Tags        []Tag
	Name        string
	Narrative   string
	Background  *Background
	Definitions []ScenarioDefinition
	Line        int // 1-based line number of the Feature: line
}

type Background struct {
	Steps []Step
	Line  int
}

// ScenarioDefinition holds exactly one of Scenario or Outline.
type ScenarioDefinition struct {
	Scenario *Scenario
	Outline  *Outline
}

type Scenario struct {
	Name  string
	Tags  []Tag
	Steps []Step
	Line  int
}

type Outline struct {
	Name     string
	Tags     []Tag
	Steps    []Step
	Examples ExamplesTable
	Line     int
}

type Tag struct {
	Name string // e.g. "@smoke", "@login"
}

type Step struct {
	Keyword   string // Given, When, Then, And, But
	Text      string
	Table     *DataTable
	DocString *DocString
	Line      int
}

type DataTable struct {
	Rows [][]string
}

type DocString struct {
	MediaType string
	Content   string
	Line      int
}

// ExamplesTable drives outline expansion. Columns preserve header order;
// each row is aligned with Columns.
type ExamplesTable struct {
	Columns []string
	Rows    [][]string
	Line    int
}

// RowMap returns row i as a column name to value mapping.
func (t ExamplesTable) RowMap(i int) map[string]string {
	m := make(map[string]string, len(t.Columns))
	for j, col := range t.Columns {
		m[col] = t.Rows[i][j]
	}
	return m
}

// Name returns the name of whichever variant the definition holds.
func (d ScenarioDefinition) Name() string {
	if d.Scenario != nil {
		return d.Scenario.Name
	}
	return d.Outline.Name
}

// DefTags returns the tags of whichever variant the definition holds.
func (d ScenarioDefinition) DefTags() []Tag {
	if d.Scenario != nil {
		return d.Scenario.Tags
	}
	return d.Outline.Tags
}

// DefLine returns the source line of whichever variant the definition holds.
func (d ScenarioDefinition) DefLine() int {
	if d.Scenario != nil {
		return d.Scenario.Line
	}
	return d.Outline.Line
}
