package cmd

import (
	"context"
	"strconv"

	"github.com/seguido/seguido/config"
	"github.com/seguido/seguido/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addCmd starts tracking a show by tmdb id
var addCmd = &cobra.Command{
	Use:        "add",
	Short:      "start tracking a show",
	Long:       `start tracking a show by its tmdb id`,
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"tmdb id"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		tmdbID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatal("invalid tmdb id", zap.String("arg", args[0]))
		}

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		ctx := logger.WithCtx(context.Background(), log)

		t, err := newTracker(ctx, cfg)
		if err != nil {
			log.Fatal("failed to create tracker", zap.Error(err))
		}
		defer t.Close(ctx)

		show, err := t.AddShow(ctx, cfg.Tracker.User, tmdbID)
		if err != nil {
			log.Fatal("failed to add show", zap.Error(err))
		}

		log.Info("tracking show",
			zap.Int32("id", show.ID),
			zap.String("title", show.Title),
			zap.Int32("aired", show.AiredEpisodes),
			zap.Int32("episodes", show.EpisodeCount))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
