package gherkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginFeatureText = `Feature: Login
  As a customer
  I want to log in
  So that I can shop

  Background:
    Given I am on the login page

  @smoke @login
  Scenario: Successful login with valid credentials
    When I enter valid credentials
    Then I should be logged in

  @smoke @login
  Scenario: Failed login with invalid username
    When I enter an invalid username and valid password
    Then I should see an error message

  @smoke @login
  Scenario: Failed login with locked out user
    When I enter locked out user credentials
    Then I should see a locked out error message

  @login @regression
  Scenario Outline: Login attempts
    When I login with "<username>" and "<password>"
    Then the login result should be "<result>"

    Examples:
      | username        | password     | result              |
      | standard_user   | secret_sauce | success             |
      | locked_out_user | secret_sauce | locked_out          |
      | invalid_user    | secret_sauce | invalid_credentials |
`

func parseLoginFeature(t *testing.T) *Feature {
	t.Helper()
	f, err := Parse("login.feature", []byte(loginFeatureText))
	require.NoError(t, err)
	return f
}

func TestFilterByTag_Smoke(t *testing.T) {
	f := parseLoginFeature(t)

	scenarios, err := FilterByTag(f, "@smoke")
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "Successful login with valid credentials", scenarios[0].Name)
	assert.Equal(t, "Failed login with invalid username", scenarios[1].Name)
	assert.Equal(t, "Failed login with locked out user", scenarios[2].Name)
}

func TestFilterByTag_ExpandsMatchingOutlines(t *testing.T) {
	f := parseLoginFeature(t)

	scenarios, err := FilterByTag(f, "@regression")
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, `I login with "standard_user" and "secret_sauce"`, scenarios[0].Steps[0].Text)
	assert.Equal(t, `the login result should be "locked_out"`, scenarios[1].Steps[1].Text)
}

func TestFilterByTag_UnionIncludesOutlineScenarios(t *testing.T) {
	f := parseLoginFeature(t)

	scenarios, err := FilterByTag(f, "@login")
	require.NoError(t, err)
	assert.Len(t, scenarios, 6)
}

func TestFilterByTag_NotExcludes(t *testing.T) {
	f := parseLoginFeature(t)

	scenarios, err := FilterByTag(f, "@login and not @regression")
	require.NoError(t, err)
	assert.Len(t, scenarios, 3)
}

func TestFilterByTag_EmptyExpressionMatchesAll(t *testing.T) {
	f := parseLoginFeature(t)

	scenarios, err := FilterByTag(f, "")
	require.NoError(t, err)
	assert.Len(t, scenarios, 6)
}

func TestFilterByTag_FeatureTagsApply(t *testing.T) {
	content := []byte(`@cart
Feature: Shopping cart
  Scenario: Add item
    Given an empty cart
`)
	f, err := Parse("cart.feature", content)
	require.NoError(t, err)

	scenarios, err := FilterByTag(f, "@cart")
	require.NoError(t, err)
	assert.Len(t, scenarios, 1)
}

func TestFilterByTag_DeclarationOrderPreserved(t *testing.T) {
	f := parseLoginFeature(t)

	scenarios, err := FilterByTag(f, "@login")
	require.NoError(t, err)
	require.Len(t, scenarios, 6)
	assert.Equal(t, "Successful login with valid credentials", scenarios[0].Name)
	assert.Equal(t, "Login attempts", scenarios[3].Name)
}

func TestFilterByTag_Idempotent(t *testing.T) {
	f := parseLoginFeature(t)

	first, err := FilterByTag(f, "@smoke")
	require.NoError(t, err)

	// Re-filtering the filtered result by the same expression changes nothing.
	refiltered := &Feature{Name: f.Name, Tags: f.Tags}
	for i := range first {
		s := first[i]
		refiltered.Definitions = append(refiltered.Definitions, ScenarioDefinition{Scenario: &s})
	}
	second, err := FilterByTag(refiltered, "@smoke")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFilterByTag_BadExpression(t *testing.T) {
	f := parseLoginFeature(t)

	_, err := FilterByTag(f, "smoke and")
	assert.Error(t, err)
}

func TestFilterByTag_NoMatches(t *testing.T) {
	f := parseLoginFeature(t)

	scenarios, err := FilterByTag(f, "@checkout")
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}
