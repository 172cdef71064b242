package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/fastbreak/internal/domain/model"
	"github.com/okian/fastbreak/internal/domain/resolve"
)

// Output directory permission constant.
const outputDirPermission = 0o750

// playerMapColumns is the identity-map table header.
var playerMapColumns = []string{
	"observed_name",
	"canonical_name",
	"canonical_id",
	"match_score",
	"method",
}

// WriteFeatureTable writes the golden table in one pass: header from
// model.FeatureColumns, one row per qualifying player-game.
func WriteFeatureTable(ctx context.Context, path string, rows []model.FeatureRow) error {
	lines := make([][]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, []string{
			r.PlayerID,
			r.PlayerName,
			r.Team,
			r.Season,
			r.GameDate.Format(dateLayout),
			formatFloat(r.FantasyPoints),
			formatFloat(r.ShortAvg),
			formatFloat(r.LongAvg),
			formatFloat(r.SeasonAvg),
			formatFloat(r.RestDays),
			strconv.FormatBool(r.BackToBack),
			strconv.FormatBool(r.Home),
			formatFloat(r.TeamWinPct),
		})
	}
	return writeAll(path, model.FeatureColumns, lines)
}

// WritePlayerMap writes the identity-match table from a resolver report.
func WritePlayerMap(ctx context.Context, path string, matches []resolve.Match) error {
	lines := make([][]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, []string{
			m.ObservedName,
			m.CanonicalName,
			m.CanonicalID,
			strconv.Itoa(m.Score),
			string(m.Method),
		})
	}
	return writeAll(path, playerMapColumns, lines)
}

func writeAll(path string, header []string, lines [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), outputDirPermission); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileUnwritable, path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileUnwritable, path, err)
	}
	defer f.Close() //nolint:errcheck // flush errors surface via w.Error

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileUnwritable, path, err)
	}
	if err := w.WriteAll(lines); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileUnwritable, path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileUnwritable, path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
