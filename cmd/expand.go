package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/gherkin"
)

var expandCmd = &cobra.Command{
	Use:   "expand <file>",
	Short: "Print a feature with outlines expanded into concrete scenarios",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunExpand(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

func RunExpand(w io.Writer, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	feature, err := gherkin.Parse(path, content)
	if err != nil {
		return err
	}

	expanded := &gherkin.Feature{
		Tags:       feature.Tags,
		Name:       feature.Name,
		Narrative:  feature.Narrative,
		Background: feature.Background,
		Line:       feature.Line,
	}
	for _, def := range feature.Definitions {
		if def.Scenario != nil {
			expanded.Definitions = append(expanded.Definitions, def)
			continue
		}
		for _, s := range gherkin.Expand(def.Outline) {
			s := s
			expanded.Definitions = append(expanded.Definitions, gherkin.ScenarioDefinition{Scenario: &s})
		}
	}

	fmt.Fprint(w, gherkin.Serialize(expanded))
	return nil
}
