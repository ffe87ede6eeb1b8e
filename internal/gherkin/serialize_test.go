package gherkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip parses text, serializes, reparses, and asserts the canonical
// form is a fixed point.
func roundTrip(t *testing.T, text string) *Feature {
	t.Helper()
	f, err := Parse("test.feature", []byte(text))
	require.NoError(t, err)

	canonical := Serialize(f)
	f2, err := Parse("test.feature", []byte(canonical))
	require.NoError(t, err)
	assert.Equal(t, canonical, Serialize(f2))
	return f2
}

func TestSerialize_RoundTripFullFeature(t *testing.T) {
	f := roundTrip(t, loginFeatureText)

	assert.Equal(t, "Login", f.Name)
	assert.Equal(t, "As a customer\nI want to log in\nSo that I can shop", f.Narrative)
	require.NotNil(t, f.Background)
	require.Len(t, f.Definitions, 4)
	o := f.Definitions[3].Outline
	require.NotNil(t, o)
	assert.Equal(t, []string{"username", "password", "result"}, o.Examples.Columns)
	require.Len(t, o.Examples.Rows, 3)
}

func TestSerialize_RoundTripDataTableAndDocString(t *testing.T) {
	f := roundTrip(t, `Feature: Checkout
  Scenario: Order summary
    Given the cart contains:
      | name                | price |
      | Sauce Labs Backpack | 29.99 |
    Then the confirmation reads:
      """
      Thank you for your order!
      """
`)

	sc := f.Definitions[0].Scenario
	require.NotNil(t, sc)
	require.NotNil(t, sc.Steps[0].Table)
	assert.Equal(t, []string{"Sauce Labs Backpack", "29.99"}, sc.Steps[0].Table.Rows[1])
	require.NotNil(t, sc.Steps[1].DocString)
	assert.Equal(t, "Thank you for your order!", sc.Steps[1].DocString.Content)
}

func TestSerialize_RoundTripFeatureTags(t *testing.T) {
	f := roundTrip(t, `@e2e @cart
Feature: Shopping cart
  Scenario: Add item
    Given an empty cart
`)
	require.Len(t, f.Tags, 2)
	assert.Equal(t, "@e2e", f.Tags[0].Name)
}

func TestSerialize_AlignsTables(t *testing.T) {
	f, err := Parse("test.feature", []byte(`Feature: Login
  Scenario Outline: Attempts
    When I login as "<username>"

    Examples:
      | username |
      | a |
      | standard_user |
`))
	require.NoError(t, err)

	out := Serialize(f)
	assert.Contains(t, out, "| username      |")
	assert.Contains(t, out, "| a             |")
	assert.Contains(t, out, "| standard_user |")
}

func TestSerializeScenario_SingleBlock(t *testing.T) {
	s := Scenario{
		Name: "Successful login",
		Tags: []Tag{{Name: "@smoke"}},
		Steps: []Step{
			{Keyword: "When", Text: "I enter valid credentials"},
			{Keyword: "Then", Text: "I should be logged in"},
		},
	}
	out := SerializeScenario(s)
	assert.Equal(t, `  @smoke
  Scenario: Successful login
    When I enter valid credentials
    Then I should be logged in
`, out)
}
