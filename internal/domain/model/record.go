// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category identifies a recognized box-score statistic. The set of
// categories is closed: values outside this enumeration never contribute
// to scoring.
type Category string

// Recognized box-score categories.
const (
	CategoryPoints     Category = "PTS"
	CategoryRebounds   Category = "REB"
	CategoryAssists    Category = "AST"
	CategorySteals     Category = "STL"
	CategoryBlocks     Category = "BLK"
	CategoryTurnovers  Category = "TOV"
	CategoryThreesMade Category = "FG3M"
)

// Categories lists every recognized category in a fixed order. Scoring and
// column layouts iterate this slice, never a map, so output order is stable.
var Categories = []Category{
	CategoryPoints,
	CategoryRebounds,
	CategoryAssists,
	CategorySteals,
	CategoryBlocks,
	CategoryTurnovers,
	CategoryThreesMade,
}

// KnownCategory reports whether name is a recognized category key.
func KnownCategory(name string) bool {
	for _, c := range Categories {
		if string(c) == name {
			return true
		}
	}
	return false
}

// BoxScore holds the numeric box-score line for one player-game. Missing
// values in the source table load as zero.
type BoxScore struct {
	Points     float64
	Rebounds   float64
	Assists    float64
	Steals     float64
	Blocks     float64
	Turnovers  float64
	ThreesMade float64
}

// Value returns the stat for a category. Unrecognized categories return
// (0, false) rather than silently matching by string coincidence.
func (b BoxScore) Value(c Category) (float64, bool) {
	switch c {
	case CategoryPoints:
		return b.Points, true
	case CategoryRebounds:
		return b.Rebounds, true
	case CategoryAssists:
		return b.Assists, true
	case CategorySteals:
		return b.Steals, true
	case CategoryBlocks:
		return b.Blocks, true
	case CategoryTurnovers:
		return b.Turnovers, true
	case CategoryThreesMade:
		return b.ThreesMade, true
	default:
		return 0, false
	}
}

// GameRecord represents one player's line for one game, as loaded from a
// season gamelog table. Records are read-only after load; derived values
// live on FeatureRow instead.
type GameRecord struct {
	PlayerID   string
	PlayerName string
	Team       string
	GameDate   time.Time
	Season     string
	Matchup    string // free text, e.g. "LVA vs. NYL" or "LVA @ NYL"
	WinLoss    string // "W" or "L"
	Box        BoxScore
}

// Won reports the win indicator for the record.
func (r GameRecord) Won() float64 {
	if strings.EqualFold(strings.TrimSpace(r.WinLoss), "W") {
		return 1
	}
	return 0
}

// SeasonFromDate derives the season label for a game date. League seasons
// run within a single calendar year, so the season is the year.
func SeasonFromDate(t time.Time) string {
	return strconv.Itoa(t.Year())
}

// Matchup venue markers. These are the only recognized conventions; any
// other matchup text is a load-time error, not a silent away game.
const (
	homeMarkerDotted = " vs. "
	homeMarkerPlain  = " vs "
	awayMarker       = " @ "
)

// ParseMatchup decides home or away from the matchup text convention.
func ParseMatchup(matchup string) (home bool, err error) {
	switch {
	case strings.Contains(matchup, homeMarkerDotted), strings.Contains(matchup, homeMarkerPlain):
		return true, nil
	case strings.Contains(matchup, awayMarker):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownMatchup, matchup)
	}
}

// FeatureRow is the derived record for one player-game: identifiers, the
// fantasy-point target, and the engineered context features. Every lag
// feature reflects strictly-prior games only.
type FeatureRow struct {
	PlayerID   string
	PlayerName string
	Team       string
	Season     string
	GameDate   time.Time

	FantasyPoints float64 // target

	ShortAvg   float64 // trailing mean of target, short window, shifted one game
	LongAvg    float64 // trailing mean of target, long window, shifted one game
	SeasonAvg  float64 // expanding mean of target within season, shifted one game
	RestDays   float64 // calendar days since previous game
	BackToBack bool    // rest of one day or less
	Home       bool    // venue per matchup convention
	TeamWinPct float64 // team's expanding win share entering the game
}

// Raw gamelog column names required after union. Order matches the source
// table layout.
var RawColumns = []string{
	"PLAYER_ID",
	"PLAYER_NAME",
	"TEAM_ABBREVIATION",
	"GAME_DATE",
	"MATCHUP",
	"WL",
	"PTS",
	"REB",
	"AST",
	"STL",
	"BLK",
	"TOV",
	"FG3M",
}

// FeatureColumns is the golden-table header. Raw box-score categories are
// deliberately absent: they would leak the target.
var FeatureColumns = []string{
	"PLAYER_ID",
	"PLAYER_NAME",
	"TEAM_ABBREVIATION",
	"SEASON",
	"GAME_DATE",
	"FANTASY_PTS",
	"FPTS_SHORT_AVG",
	"FPTS_LONG_AVG",
	"FPTS_SEASON_AVG",
	"DAYS_REST",
	"BACK_TO_BACK",
	"IS_HOME",
	"TEAM_WIN_PCT",
}
