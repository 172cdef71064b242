package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/okian/fastbreak/internal/gamelogs"
	"github.com/okian/fastbreak/pkg/logger"
)

func main() {
	var (
		outDir  = flag.String("out", "data/raw", "Output directory for gamelog CSVs")
		seasons = flag.String("seasons", "2023,2024,2025", "Comma-separated season years to generate")
		teams   = flag.Int("teams", gamelogs.DefaultTeams, "Number of teams (must be even)")
		players = flag.Int("players", gamelogs.DefaultPlayersPerTeam, "Players per team")
		games   = flag.Int("games", gamelogs.DefaultGamesPerTeam, "Games per team per season")
		seed    = flag.Int64("seed", gamelogs.DefaultSeed, "Random seed for reproducible output")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	paths, err := gamelogs.Generate(ctx, gamelogs.Config{
		OutDir:         *outDir,
		Seasons:        strings.Split(*seasons, ","),
		Teams:          *teams,
		PlayersPerTeam: *players,
		GamesPerTeam:   *games,
		Seed:           *seed,
	})
	if err != nil {
		logger.Get().Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}
	logger.Get().Info(ctx, "generation complete", logger.Int("files", len(paths)))
}
