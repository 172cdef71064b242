package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/okian/fastbreak/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.RawDataDir, convey.ShouldEqual, "data/raw")
			convey.So(cfg.ProcessedDataDir, convey.ShouldEqual, "data/processed")
			convey.So(cfg.Seasons, convey.ShouldResemble, []string{"2023", "2024", "2025"})
			convey.So(cfg.MinGames, convey.ShouldEqual, 10)
			convey.So(cfg.ShortWindow, convey.ShouldEqual, 3)
			convey.So(cfg.LongWindow, convey.ShouldEqual, 10)
			convey.So(cfg.RestDayDefault, convey.ShouldEqual, 7)
			convey.So(cfg.ScoringSystem, convey.ShouldEqual, "league-default")
			convey.So(cfg.MatchThreshold, convey.ShouldEqual, 85)
			convey.So(cfg.FeaturesFile, convey.ShouldEqual, "training_features.csv")
			convey.So(cfg.PlayerMapFile, convey.ShouldEqual, "player_mapping.csv")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
		})
	})
}
