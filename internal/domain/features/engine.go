// Package features turns raw per-season gamelog tables into the single
// leakage-free training table. Every derived value for a player-game uses
// strictly-prior games only: per-player sequences are sorted
// chronologically (ingestion order breaks date ties) and every windowed
// aggregate is shifted by one position.
package features

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/okian/fastbreak/internal/adapters/pool"
	"github.com/okian/fastbreak/internal/domain/model"
	"github.com/okian/fastbreak/internal/domain/scoring"
	"github.com/okian/fastbreak/pkg/logger"
)

// Default engine configuration constants.
const (
	defaultMinGames       = 10
	defaultShortWindow    = 3
	defaultLongWindow     = 10
	defaultRestDays       = 7.0
	backToBackMaxRestDays = 1.0
	hoursPerDay           = 24
)

// Summary reports the row accounting of one engine run, so an operator can
// judge coverage without row-level inspection.
type Summary struct {
	InputRows        int
	PlayersDropped   int // below the min-games threshold
	ColdStartRows    int // dropped for lacking any prior-game signal
	OutputRows       int
	QualifiedPlayers int
}

// Engine computes the golden table. Construct once per run; the zero value
// is not usable.
type Engine struct {
	weights     scoring.Weights
	minGames    int
	shortWindow int
	longWindow  int
	restDefault float64
	workers     int
	logger      logger.Logger
}

// New creates an Engine with the given scoring weights and options.
func New(weights scoring.Weights, opts ...Option) *Engine {
	e := &Engine{
		weights:     weights,
		minGames:    defaultMinGames,
		shortWindow: defaultShortWindow,
		longWindow:  defaultLongWindow,
		restDefault: defaultRestDays,
		workers:     1,
		logger:      logger.Get(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// annotated is the engine's working row: the source record plus target and
// lag slots, filled stage by stage.
type annotated struct {
	rec    model.GameRecord
	ingest int // original union order, the tie-break for same-date rows
	home   bool

	target     float64
	shortAvg   float64
	longAvg    float64
	seasonAvg  float64
	restDays   float64
	teamWinPct float64
}

// Build runs the full pipeline over the unioned season tables and returns
// the golden rows in deterministic order.
func (e *Engine) Build(ctx context.Context, seasons ...[]model.GameRecord) ([]model.FeatureRow, Summary, error) {
	var summary Summary

	rows := e.union(seasons)
	summary.InputRows = len(rows)
	if len(rows) == 0 {
		return nil, summary, ErrNoRecords
	}

	// Target before filtering: the min-games count is global, but the
	// target itself is per-row and independent of neighbors.
	for i := range rows {
		rows[i].target = e.weights.FantasyPoints(rows[i].rec)
		home, err := model.ParseMatchup(rows[i].rec.Matchup)
		if err != nil {
			return nil, summary, fmt.Errorf("row %d: %w", rows[i].ingest, err)
		}
		rows[i].home = home
	}

	rows, dropped := e.filterByGameCount(rows)
	summary.PlayersDropped = dropped
	if len(rows) == 0 {
		return nil, summary, ErrNoQualifyingPlayers
	}

	sortChronological(rows)

	groups := groupByPlayer(rows)
	summary.QualifiedPlayers = len(groups)
	if err := e.computePlayerFeatures(ctx, groups); err != nil {
		return nil, summary, err
	}
	e.joinTeamWinPct(rows)

	out := make([]model.FeatureRow, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		// Cold-start guard: no prior-game signal, no training row.
		if math.IsNaN(r.shortAvg) || math.IsNaN(r.seasonAvg) {
			summary.ColdStartRows++
			continue
		}
		out = append(out, model.FeatureRow{
			PlayerID:      r.rec.PlayerID,
			PlayerName:    r.rec.PlayerName,
			Team:          r.rec.Team,
			Season:        r.rec.Season,
			GameDate:      r.rec.GameDate,
			FantasyPoints: r.target,
			ShortAvg:      r.shortAvg,
			LongAvg:       r.longAvg,
			SeasonAvg:     r.seasonAvg,
			RestDays:      r.restDays,
			BackToBack:    r.restDays <= backToBackMaxRestDays,
			Home:          r.home,
			TeamWinPct:    r.teamWinPct,
		})
	}
	summary.OutputRows = len(out)

	e.logger.Info(ctx, "feature build complete",
		logger.Int("input_rows", summary.InputRows),
		logger.Int("players_dropped", summary.PlayersDropped),
		logger.Int("cold_start_rows", summary.ColdStartRows),
		logger.Int("output_rows", summary.OutputRows))
	return out, summary, nil
}

// union flattens the per-season tables, assigning the ingestion index that
// later breaks same-date sort ties.
func (e *Engine) union(seasons [][]model.GameRecord) []annotated {
	var total int
	for _, s := range seasons {
		total += len(s)
	}
	rows := make([]annotated, 0, total)
	for _, season := range seasons {
		for _, rec := range season {
			if rec.Season == "" {
				rec.Season = model.SeasonFromDate(rec.GameDate)
			}
			rows = append(rows, annotated{rec: rec, ingest: len(rows)})
		}
	}
	return rows
}

// filterByGameCount keeps players with at least minGames across the whole
// unioned set, and reports how many players were cut.
func (e *Engine) filterByGameCount(rows []annotated) ([]annotated, int) {
	counts := make(map[string]int)
	for i := range rows {
		counts[rows[i].rec.PlayerID]++
	}

	dropped := 0
	for _, n := range counts {
		if n < e.minGames {
			dropped++
		}
	}

	kept := rows[:0]
	for _, r := range rows {
		if counts[r.rec.PlayerID] >= e.minGames {
			kept = append(kept, r)
		}
	}
	return kept, dropped
}

// sortChronological establishes the observable row order: player, then
// date, then ingestion index. Identical input always yields identical
// output order.
func sortChronological(rows []annotated) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.rec.PlayerID != b.rec.PlayerID {
			return a.rec.PlayerID < b.rec.PlayerID
		}
		if !a.rec.GameDate.Equal(b.rec.GameDate) {
			return a.rec.GameDate.Before(b.rec.GameDate)
		}
		return a.ingest < b.ingest
	})
}

// groupByPlayer slices the sorted rows into contiguous per-player groups.
// The slices alias rows, so group computations mutate in place.
func groupByPlayer(rows []annotated) [][]annotated {
	var groups [][]annotated
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) || rows[i].rec.PlayerID != rows[start].rec.PlayerID {
			groups = append(groups, rows[start:i])
			start = i
		}
	}
	return groups
}

// computePlayerFeatures fills the per-player lag features. Groups are
// independent, so they run on the pool; each task touches only its own
// slice and the merged result is identical to a sequential pass.
func (e *Engine) computePlayerFeatures(ctx context.Context, groups [][]annotated) error {
	tasks := make([]pool.Task, len(groups))
	for i := range groups {
		group := groups[i]
		tasks[i] = func(ctx context.Context) error {
			e.fillPlayerGroup(group)
			return nil
		}
	}
	p := pool.New(pool.WithSize(e.workers), pool.WithName("feature-groups"))
	return p.Run(ctx, tasks)
}

// fillPlayerGroup computes the shifted windowed features for one player's
// chronological games.
func (e *Engine) fillPlayerGroup(group []annotated) {
	targets := make([]float64, len(group))
	for i := range group {
		targets[i] = group[i].target
	}

	seasonIdx := 0
	for i := range group {
		r := &group[i]
		r.shortAvg = trailingMean(targets, i, e.shortWindow)
		r.longAvg = trailingMean(targets, i, e.longWindow)

		if i > 0 && r.rec.Season != group[i-1].rec.Season {
			seasonIdx = i
		}
		r.seasonAvg = expandingMean(targets[seasonIdx:], i-seasonIdx)

		if i == 0 {
			r.restDays = e.restDefault
		} else {
			r.restDays = calendarDays(group[i-1].rec.GameDate, r.rec.GameDate)
		}
	}
}

// teamGame is one deduplicated team-date outcome on the team timeline.
type teamGame struct {
	team   string
	season string
	date   time.Time
	won    float64
}

// joinTeamWinPct computes each team's expanding in-season win share, shifted
// by one team-game, and joins it back onto every player row for that team
// and date. The timeline is deduplicated to one row per team-game no matter
// how many players from the team appear.
func (e *Engine) joinTeamWinPct(rows []annotated) {
	type key struct {
		team string
		date time.Time
	}
	seen := make(map[key]struct{})
	var timeline []teamGame
	for i := range rows {
		r := &rows[i]
		k := key{team: r.rec.Team, date: r.rec.GameDate}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		timeline = append(timeline, teamGame{
			team:   r.rec.Team,
			season: r.rec.Season,
			date:   r.rec.GameDate,
			won:    r.rec.Won(),
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		if timeline[i].team != timeline[j].team {
			return timeline[i].team < timeline[j].team
		}
		return timeline[i].date.Before(timeline[j].date)
	})

	// Expanding win share within (team, season), shifted: the entering
	// value for a team's first game of a season is 0.0, not missing.
	winPct := make(map[key]float64, len(timeline))
	var wins, games float64
	for i, tg := range timeline {
		if i == 0 || tg.team != timeline[i-1].team || tg.season != timeline[i-1].season {
			wins, games = 0, 0
		}
		pct := 0.0
		if games > 0 {
			pct = wins / games
		}
		winPct[key{team: tg.team, date: tg.date}] = pct
		wins += tg.won
		games++
	}

	for i := range rows {
		rows[i].teamWinPct = winPct[key{team: rows[i].rec.Team, date: rows[i].rec.GameDate}]
	}
}

// calendarDays returns the whole-day gap between two game dates.
func calendarDays(prev, next time.Time) float64 {
	return math.Round(next.Sub(prev).Hours() / hoursPerDay)
}
