// Package tabular reads and writes the pipeline's flat tables: per-season
// gamelogs, roster tables, the golden feature table, and the player
// identity map. All IO is wholesale; tables are small enough to live in
// memory for one batch run.
package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/okian/fastbreak/internal/domain/model"
	"github.com/okian/fastbreak/internal/domain/resolve"
)

// Gamelog file naming and parsing constants.
const (
	gamelogFilePattern = "gamelogs_%s.csv" // season slots in
	dateLayout         = "2006-01-02"
)

// SeasonFile points at one discovered per-season gamelog table.
type SeasonFile struct {
	Season string
	Path   string
}

// DiscoverSeasonFiles locates the gamelog file for each configured season
// under dir. Seasons without a file are skipped; zero files found is a
// broken precondition and errors with the searched pattern.
func DiscoverSeasonFiles(ctx context.Context, dir string, seasons []string) ([]SeasonFile, error) {
	var found []SeasonFile
	for _, season := range seasons {
		path := filepath.Join(dir, fmt.Sprintf(gamelogFilePattern, season))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		found = append(found, SeasonFile{Season: season, Path: path})
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputFiles,
			filepath.Join(dir, fmt.Sprintf(gamelogFilePattern, "<season>")))
	}
	return found, nil
}

// ReadGameLogs loads one season gamelog table into typed records. Every
// column in model.RawColumns must be present (matched case-insensitively);
// a missing column fails the load with the column and path named. Missing
// or malformed numeric cells load as zero, a documented data-quality
// default, while an unparseable date or matchup fails the load.
func ReadGameLogs(ctx context.Context, path, season string) ([]model.GameRecord, error) {
	header, lines, err := readAll(path)
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, col := range model.RawColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, col, path)
		}
	}

	records := make([]model.GameRecord, 0, len(lines))
	for n, line := range lines {
		date, err := parseDate(line[idx["GAME_DATE"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, n+2, err)
		}
		matchup := strings.TrimSpace(line[idx["MATCHUP"]])
		if _, err := model.ParseMatchup(matchup); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, n+2, err)
		}

		records = append(records, model.GameRecord{
			PlayerID:   strings.TrimSpace(line[idx["PLAYER_ID"]]),
			PlayerName: strings.TrimSpace(line[idx["PLAYER_NAME"]]),
			Team:       strings.TrimSpace(line[idx["TEAM_ABBREVIATION"]]),
			GameDate:   date,
			Season:     season,
			Matchup:    matchup,
			WinLoss:    strings.TrimSpace(line[idx["WL"]]),
			Box: model.BoxScore{
				Points:     floatOrZero(line[idx["PTS"]]),
				Rebounds:   floatOrZero(line[idx["REB"]]),
				Assists:    floatOrZero(line[idx["AST"]]),
				Steals:     floatOrZero(line[idx["STL"]]),
				Blocks:     floatOrZero(line[idx["BLK"]]),
				Turnovers:  floatOrZero(line[idx["TOV"]]),
				ThreesMade: floatOrZero(line[idx["FG3M"]]),
			},
		})
	}
	return records, nil
}

// Roster column candidates. The secondary feed names its columns
// differently from the primary one, so both spellings are accepted.
var (
	nameColumns = []string{"PLAYER_NAME", "PLAYER"}
	idColumns   = []string{"PLAYER_ID"}
)

// ReadRoster loads the canonical (source-of-record) roster: name plus
// identifier, first-seen order preserved for deterministic tie-breaks.
func ReadRoster(ctx context.Context, path string) ([]resolve.KnownName, error) {
	header, lines, err := readAll(path)
	if err != nil {
		return nil, err
	}

	nameIdx, ok := findColumn(header, nameColumns)
	if !ok {
		return nil, fmt.Errorf("%w: one of %v in %s", ErrMissingColumn, nameColumns, path)
	}
	idIdx, ok := findColumn(header, idColumns)
	if !ok {
		return nil, fmt.Errorf("%w: one of %v in %s", ErrMissingColumn, idColumns, path)
	}

	known := make([]resolve.KnownName, 0, len(lines))
	for _, line := range lines {
		known = append(known, resolve.KnownName{
			Name: strings.TrimSpace(line[nameIdx]),
			ID:   strings.TrimSpace(line[idIdx]),
		})
	}
	return known, nil
}

// ReadObservedNames loads the secondary roster's name column, trimmed and
// deduplicated in first-seen order.
func ReadObservedNames(ctx context.Context, path string) ([]string, error) {
	header, lines, err := readAll(path)
	if err != nil {
		return nil, err
	}

	nameIdx, ok := findColumn(header, nameColumns)
	if !ok {
		return nil, fmt.Errorf("%w: one of %v in %s", ErrMissingColumn, nameColumns, path)
	}

	seen := make(map[string]struct{}, len(lines))
	var names []string
	for _, line := range lines {
		name := strings.TrimSpace(line[nameIdx])
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// readAll reads a whole CSV file, returning header and data lines.
func readAll(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrFileUnreadable, path)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	r := csv.NewReader(f)
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}
	return all[0], all[1:], nil
}

// findColumn matches a header against candidate names, case-insensitively.
func findColumn(header []string, candidates []string) (int, bool) {
	for i, h := range header {
		for _, c := range candidates {
			if strings.EqualFold(strings.TrimSpace(h), c) {
				return i, true
			}
		}
	}
	return 0, false
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

func floatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
