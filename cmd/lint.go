package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/gherkin"
	"github.com/chriserin/gherk/internal/ui"
)

var lintCmd = &cobra.Command{
	Use:   "lint [<file>...]",
	Short: "Check feature files for syntax and structure problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunLint(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func RunLint(w io.Writer, paths []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		paths, err = filepath.Glob(filepath.Join(cfg.FeaturesDir, "*.feature"))
		if err != nil {
			return fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
		}
		sort.Strings(paths)
	}

	problems := 0
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		feature, err := gherkin.Parse(path, content)
		if err != nil {
			ui.ErrLine(w, path, err.Error())
			problems++
			continue
		}

		for _, v := range gherkin.Validate(feature) {
			if v.Kind == gherkin.KindNoDefinitions && cfg.Lint.AllowEmptyFeatures {
				continue
			}
			msg := v.Message
			if v.Scenario != "" {
				msg = v.Scenario + ": " + msg
			}
			ui.ViolationLine(w, path, v.Line, v.Kind, msg)
			problems++
		}
	}

	ui.LintSummary(w, len(paths), problems)
	if problems > 0 {
		return fmt.Errorf("%d problems found", problems)
	}
	return nil
}
