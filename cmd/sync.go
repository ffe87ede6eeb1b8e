package cmd

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/db"
	"github.com/chriserin/gherk/internal/gherkin"
	"github.com/chriserin/gherk/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan the features directory and register scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer) error {
	cfg, err := requireProject()
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob(filepath.Join(cfg.FeaturesDir, "*.feature"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
	}
	sort.Strings(matches)

	files, scenarios := 0, 0
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sum := sha256.Sum256(content)
		hash := hex.EncodeToString(sum[:])

		var id int64
		var storedHash string
		err = sqlDB.QueryRow(`SELECT id, content_hash FROM files WHERE file_path = ?`, path).Scan(&id, &storedHash)
		switch {
		case err == sql.ErrNoRows:
			feature, parseErr := gherkin.Parse(path, content)
			if parseErr != nil {
				ui.ErrLine(w, path, parseErr.Error())
				continue
			}
			res, err := sqlDB.Exec(`INSERT INTO files (file_path, content_hash) VALUES (?, ?)`, path, hash)
			if err != nil {
				return fmt.Errorf("inserting %s: %w", path, err)
			}
			fileID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("inserting %s: %w", path, err)
			}
			n, err := registerScenarios(sqlDB, fileID, feature)
			if err != nil {
				return fmt.Errorf("registering %s: %w", path, err)
			}
			scenarios += n
			ui.NewLine(w, path)

		case err != nil:
			return fmt.Errorf("querying %s: %w", path, err)

		case storedHash != hash:
			feature, parseErr := gherkin.Parse(path, content)
			if parseErr != nil {
				ui.ErrLine(w, path, parseErr.Error())
				continue
			}
			if _, err := sqlDB.Exec(
				`UPDATE files SET content_hash = ?, updated_at = datetime('now') WHERE id = ?`, hash, id,
			); err != nil {
				return fmt.Errorf("updating %s: %w", path, err)
			}
			if err := dropScenarios(sqlDB, id); err != nil {
				return fmt.Errorf("clearing %s: %w", path, err)
			}
			n, err := registerScenarios(sqlDB, id, feature)
			if err != nil {
				return fmt.Errorf("registering %s: %w", path, err)
			}
			scenarios += n
			ui.ChgLine(w, path)

		default:
			var n int
			if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM scenarios WHERE file_id = ?`, id).Scan(&n); err != nil {
				return fmt.Errorf("counting scenarios for %s: %w", path, err)
			}
			scenarios += n
			ui.TrkLine(w, path)
		}
		files++
	}

	ui.SummaryLine(w, files, scenarios)
	return nil
}

// registerScenarios inserts one row per scenario definition, with the
// deduplicated union of feature and definition tags.
func registerScenarios(sqlDB *sql.DB, fileID int64, f *gherkin.Feature) (int, error) {
	count := 0
	for _, def := range f.Definitions {
		kind := "scenario"
		if def.Outline != nil {
			kind = "outline"
		}
		res, err := sqlDB.Exec(
			`INSERT INTO scenarios (file_id, name, kind, line) VALUES (?, ?, ?, ?)`,
			fileID, def.Name(), kind, def.DefLine(),
		)
		if err != nil {
			return count, err
		}
		scenarioID, err := res.LastInsertId()
		if err != nil {
			return count, err
		}
		for _, tag := range gherkin.EffectiveTags(f.Tags, def.DefTags()) {
			if _, err := sqlDB.Exec(
				`INSERT INTO tags (scenario_id, name) VALUES (?, ?)`, scenarioID, tag.Name,
			); err != nil {
				return count, err
			}
		}
		count++
	}
	return count, nil
}

func dropScenarios(sqlDB *sql.DB, fileID int64) error {
	if _, err := sqlDB.Exec(
		`DELETE FROM tags WHERE scenario_id IN (SELECT id FROM scenarios WHERE file_id = ?)`, fileID,
	); err != nil {
		return err
	}
	_, err := sqlDB.Exec(`DELETE FROM scenarios WHERE file_id = ?`, fileID)
	return err
}
