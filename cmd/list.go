package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/db"
	"github.com/chriserin/gherk/internal/gherkin"
	"github.com/chriserin/gherk/internal/ui"
)

var listTagsFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), listTagsFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&listTagsFlag, "tags", "", "Filter by tag expression, e.g. '@smoke and not @regression'")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	fileName string
	kind     string
	name     string
	tags     string
}

func RunList(w io.Writer, tagExpression string) error {
	cfg, err := requireProject()
	if err != nil {
		return err
	}
	if tagExpression == "" {
		tagExpression = cfg.DefaultTags
	}

	var expr gherkin.TagExpression
	if tagExpression != "" {
		expr, err = gherkin.ParseTagExpression(tagExpression)
		if err != nil {
			return fmt.Errorf("invalid tag expression: %w", err)
		}
	}

	sqlDB, err := db.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT f.file_path, s.kind, s.name,
			COALESCE((SELECT GROUP_CONCAT(t.name, ' ') FROM tags t WHERE t.scenario_id = s.id), '')
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		ORDER BY f.file_path, s.line
	`)
	if err != nil {
		return fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		if err := rows.Scan(&filePath, &r.kind, &r.name, &r.tags); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.fileName = filepath.Base(filePath)

		if expr != nil {
			var tags []gherkin.Tag
			for _, name := range strings.Fields(r.tags) {
				tags = append(tags, gherkin.Tag{Name: name})
			}
			if !expr.Match(tags) {
				continue
			}
		}

		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	fileWidth, kindWidth, nameWidth := 0, 0, 0
	for _, r := range results {
		if len(r.fileName) > fileWidth {
			fileWidth = len(r.fileName)
		}
		if len(r.kind) > kindWidth {
			kindWidth = len(r.kind)
		}
		if len(r.name) > nameWidth {
			nameWidth = len(r.name)
		}
	}

	for _, r := range results {
		ui.ListRow(w, r.fileName, r.kind, r.name, r.tags, fileWidth, kindWidth, nameWidth)
	}

	return nil
}
