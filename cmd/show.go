package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/gherkin"
	"github.com/chriserin/gherk/internal/ui"
)

var showTagsFlag string

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show the concrete scenarios of a feature file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0], showTagsFlag)
	},
}

func init() {
	showCmd.Flags().StringVar(&showTagsFlag, "tags", "", "Filter by tag expression")
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, path, tagExpression string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	feature, err := gherkin.Parse(path, content)
	if err != nil {
		return err
	}

	scenarios, err := gherkin.FilterByTag(feature, tagExpression)
	if err != nil {
		return fmt.Errorf("invalid tag expression: %w", err)
	}

	ui.ShowHeader(w, feature.Name, path)

	if feature.Background != nil {
		fmt.Fprintln(w)
		ui.GherkinBlock(w, gherkin.SerializeBackground(*feature.Background))
	}

	for _, s := range scenarios {
		fmt.Fprintln(w)
		ui.GherkinBlock(w, gherkin.SerializeScenario(s))
	}

	return nil
}
