// Package gamelogs generates synthetic per-season gamelog tables so the
// pipeline can be exercised locally without the external acquisition step.
package gamelogs

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fastbreak/internal/domain/model"
	"github.com/okian/fastbreak/pkg/logger"
)

// Default generation constants.
const (
	DefaultTeams          = 8
	DefaultPlayersPerTeam = 8
	DefaultGamesPerTeam   = 20
	DefaultSeed           = 42

	seasonStartMonth = time.May
	seasonStartDay   = 15
	maxRestGapDays   = 3
	dirPermission    = 0o750
)

// Config controls one generation run.
type Config struct {
	OutDir         string
	Seasons        []string
	Teams          int
	PlayersPerTeam int
	GamesPerTeam   int
	Seed           int64
}

// player is one synthetic roster slot; ids are stable across seasons.
type player struct {
	id   string
	name string
	team string
}

var firstNames = []string{
	"Jade", "Alex", "Riley", "Morgan", "Casey", "Drew", "Skyler", "Quinn",
	"Avery", "Reese", "Harper", "Rowan", "Sage", "Emery", "Tatum", "Lennox",
}

var lastNames = []string{
	"Carter", "Nguyen", "Okafor", "Silva", "Kowalski", "Ibrahim", "Laurent",
	"Petrov", "Yamada", "Haddad", "Moreau", "Lindqvist", "Diallo", "Reyes",
}

// Generate writes one gamelog CSV per season under cfg.OutDir and returns
// the written paths. Output is deterministic for a fixed seed.
func Generate(ctx context.Context, cfg Config) ([]string, error) {
	if cfg.Teams < 2 || cfg.Teams%2 != 0 {
		return nil, fmt.Errorf("%w: teams must be even and at least 2", ErrBadConfig)
	}
	if cfg.PlayersPerTeam < 1 || cfg.GamesPerTeam < 1 || len(cfg.Seasons) == 0 {
		return nil, fmt.Errorf("%w: players, games, and seasons must be positive", ErrBadConfig)
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic fixtures, not crypto

	teams := make([]string, cfg.Teams)
	for i := range teams {
		teams[i] = fmt.Sprintf("T%02d", i+1)
	}
	var roster []player
	for _, team := range teams {
		for i := 0; i < cfg.PlayersPerTeam; i++ {
			// UUIDs are drawn from the seeded source so identical seeds
			// reproduce identical rosters.
			uid, err := uuid.NewRandomFromReader(rng)
			if err != nil {
				return nil, fmt.Errorf("generate player id: %w", err)
			}
			roster = append(roster, player{
				id:   uid.String(),
				name: firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
				team: team,
			})
		}
	}

	if err := os.MkdirAll(cfg.OutDir, dirPermission); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	for _, season := range cfg.Seasons {
		path := filepath.Join(cfg.OutDir, fmt.Sprintf("gamelogs_%s.csv", season))
		if err := writeSeason(path, season, teams, roster, cfg.GamesPerTeam, rng); err != nil {
			return nil, err
		}
		logger.Get().Info(ctx, "generated season gamelogs",
			logger.String("season", season),
			logger.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

// writeSeason simulates a season of paired fixtures: every round pairs the
// teams off, both sides' players get rows, and exactly one side wins.
func writeSeason(path, season string, teams []string, roster []player, rounds int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // flush errors surface via w.Error

	w := csv.NewWriter(f)
	if err := w.Write(model.RawColumns); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	year, err := strconv.Atoi(season)
	if err != nil {
		return fmt.Errorf("%w: season %q is not a year", ErrBadConfig, season)
	}
	date := time.Date(year, seasonStartMonth, seasonStartDay, 0, 0, 0, 0, time.UTC)

	byTeam := make(map[string][]player)
	for _, p := range roster {
		byTeam[p.team] = append(byTeam[p.team], p)
	}

	for round := 0; round < rounds; round++ {
		order := rng.Perm(len(teams))
		for i := 0; i+1 < len(order); i += 2 {
			home, away := teams[order[i]], teams[order[i+1]]
			homeWon := rng.Intn(2) == 0
			if err := writeTeamGame(w, byTeam[home], home+" vs. "+away, date, homeWon, rng); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			if err := writeTeamGame(w, byTeam[away], away+" @ "+home, date, !homeWon, rng); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
		date = date.AddDate(0, 0, 1+rng.Intn(maxRestGapDays))
	}

	w.Flush()
	return w.Error()
}

func writeTeamGame(w *csv.Writer, side []player, matchup string, date time.Time, won bool, rng *rand.Rand) error {
	wl := "L"
	if won {
		wl = "W"
	}
	for _, p := range side {
		line := []string{
			p.id,
			p.name,
			p.team,
			date.Format("2006-01-02"),
			matchup,
			wl,
			strconv.Itoa(rng.Intn(31)), // PTS
			strconv.Itoa(rng.Intn(13)), // REB
			strconv.Itoa(rng.Intn(11)), // AST
			strconv.Itoa(rng.Intn(4)),  // STL
			strconv.Itoa(rng.Intn(3)),  // BLK
			strconv.Itoa(rng.Intn(6)),  // TOV
			strconv.Itoa(rng.Intn(6)),  // FG3M
		}
		if err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
